package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/application/connector"
	"github.com/erp/odoo-connector/internal/infrastructure/cache"
	"github.com/erp/odoo-connector/internal/infrastructure/config"
	"github.com/erp/odoo-connector/internal/infrastructure/erp"
	"github.com/erp/odoo-connector/internal/infrastructure/event"
	"github.com/erp/odoo-connector/internal/infrastructure/logger"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence"
	"github.com/erp/odoo-connector/internal/infrastructure/storage"
	"github.com/erp/odoo-connector/internal/infrastructure/telemetry"
	"github.com/erp/odoo-connector/internal/interfaces/http/handler"
	"github.com/erp/odoo-connector/internal/interfaces/http/middleware"
	"github.com/erp/odoo-connector/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	products := persistence.NewGormProductRepository(db.DB)
	groups := persistence.NewGormPropertyGroupRepository(db.DB)
	media := persistence.NewGormMediaRepository(db.DB)
	categories := persistence.NewGormCategoryRepository(db.DB)
	manufacturers := persistence.NewGormManufacturerRepository(db.DB)
	taxes := persistence.NewGormTaxRepository(db.DB)
	currencies := persistence.NewGormCurrencyRepository(db.DB)
	rules := persistence.NewGormRuleRepository(db.DB)
	orders := persistence.NewGormOrderRepository(db.DB)

	tokens := cache.NewTokenStore(cfg.Redis, log)
	erpClient := erp.NewClient(&cfg.Odoo, tokens, log)

	blobs, err := buildObjectStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}

	bus := event.NewBus(log)

	taxMapper := connector.NewTaxMapper(taxes, bus, log)
	currencyMapper := connector.NewCurrencyMapper(currencies, bus, log)
	brandMapper := connector.NewManufacturerMapper(manufacturers, bus, log)
	categoryMapper := connector.NewCategoryMapper(categories, &cfg.Odoo, bus, log)
	productMapper := connector.NewProductMapper(
		products, groups, media,
		taxMapper, categoryMapper, brandMapper,
		storage.NewHTTPMediaFetcher(cfg.Odoo.Timeout), blobs,
		bus, log,
	)
	pricingEngine := connector.NewPricingEngine(rules, products, categories, taxes, &cfg.Odoo, log)
	bridge := connector.NewStatusBridge(orders, erpClient, &cfg.Odoo, log)
	exporter := connector.NewExporter(orders, currencies, erpClient, log)

	dispatcher := connector.NewDispatcher(
		products, categories, manufacturers,
		taxes, currencies, orders,
		erpClient, log,
	)
	bus.Subscribe(dispatcher)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	router.NewRouter(engine).
		Register(handler.NewCatalogHandler(productMapper, categoryMapper, brandMapper)).
		Register(handler.NewFinanceHandler(currencyMapper, taxMapper, pricingEngine)).
		Register(handler.NewTradeHandler(orders, bridge, exporter)).
		Register(handler.NewSystemHandler(&cfg.Odoo)).
		Setup()

	if cfg.Odoo.Configured() {
		bootstrapper := connector.NewBootstrapper(categories, currencies, erpClient, log)
		go seedOdoo(ctx, bootstrapper, log)
	} else {
		log.Info("odoo connection not configured, outbound sync disabled")
	}

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.App.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// buildObjectStorage selects the media store. The in-memory store keeps
// development environments free of S3 credentials.
func buildObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.ObjectStorage, error) {
	if cfg.Storage.Provider != "s3" {
		log.Info("using in-memory object storage", zap.String("provider", cfg.Storage.Provider))
		return storage.NewMemoryObjectStorage(), nil
	}
	s3, err := storage.NewS3ObjectStorage(&cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return s3, nil
}

// seedOdoo pushes the category tree and the default currency so a fresh
// Odoo instance starts from the shop's structure. Failures are logged;
// Odoo retries by re-requesting the tree on its side.
func seedOdoo(ctx context.Context, bootstrapper *connector.Bootstrapper, log *zap.Logger) {
	seedCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := bootstrapper.PushCategoryTree(seedCtx); err != nil {
		log.Warn("category tree seed failed", zap.Error(err))
	}
	if err := bootstrapper.PushDefaultCurrency(seedCtx); err != nil {
		log.Warn("default currency seed failed", zap.Error(err))
	}
}
