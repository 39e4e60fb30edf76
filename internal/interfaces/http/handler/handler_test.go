package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/erp/odoo-connector/internal/application/connector"
	"github.com/erp/odoo-connector/internal/domain/sync"
	"github.com/erp/odoo-connector/internal/domain/trade"
	"github.com/erp/odoo-connector/internal/infrastructure/config"
	"github.com/erp/odoo-connector/internal/infrastructure/erp"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence"
	"github.com/erp/odoo-connector/internal/infrastructure/storage"
	"github.com/erp/odoo-connector/internal/interfaces/http/dto"
	"github.com/erp/odoo-connector/internal/interfaces/http/router"
	"github.com/google/uuid"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...sync.ChangeEvent) error { return nil }

type nopFetcher struct{}

func (nopFetcher) Fetch(context.Context, string) (io.ReadCloser, string, error) {
	return io.NopCloser(bytes.NewReader(nil)), "application/octet-stream", nil
}

type nopStatusPusher struct{}

func (nopStatusPusher) PushOrderStatus(context.Context, erp.StatusNotification) (*erp.Response, error) {
	return &erp.Response{Success: true}, nil
}

type nopExportClient struct{}

func (nopExportClient) CreateContact(context.Context, any) (*erp.Response, error) {
	return &erp.Response{Success: true, OdooID: 1}, nil
}

func (nopExportClient) CreateSaleOrder(context.Context, any) (*erp.Response, error) {
	return &erp.Response{Success: true, OdooID: 2}, nil
}

type testServer struct {
	engine *gin.Engine
	orders trade.OrderRepository
	cfg    *config.OdooConfig
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := &config.OdooConfig{
		CredentialHash:        string(hash),
		DefaultSalesChannelID: uuid.NewString(),
		DeliveryStatusToOdoo:  map[string]string{"open": "pending", "shipped": "done"},
		OrderStatusToOdoo:     map[string]string{"open": "draft", "in_progress": "sale"},
	}

	log := zap.NewNop()
	publisher := nopPublisher{}

	products := persistence.NewGormProductRepository(db)
	groups := persistence.NewGormPropertyGroupRepository(db)
	media := persistence.NewGormMediaRepository(db)
	categories := persistence.NewGormCategoryRepository(db)
	manufacturers := persistence.NewGormManufacturerRepository(db)
	taxes := persistence.NewGormTaxRepository(db)
	currencies := persistence.NewGormCurrencyRepository(db)
	rules := persistence.NewGormRuleRepository(db)
	orders := persistence.NewGormOrderRepository(db)

	taxMapper := connector.NewTaxMapper(taxes, publisher, log)
	currencyMapper := connector.NewCurrencyMapper(currencies, publisher, log)
	brandMapper := connector.NewManufacturerMapper(manufacturers, publisher, log)
	categoryMapper := connector.NewCategoryMapper(categories, cfg, publisher, log)
	productMapper := connector.NewProductMapper(
		products, groups, media,
		taxMapper, categoryMapper, brandMapper,
		nopFetcher{}, storage.NewMemoryObjectStorage(),
		publisher, log,
	)
	pricingEngine := connector.NewPricingEngine(rules, products, categories, taxes, cfg, log)
	bridge := connector.NewStatusBridge(orders, nopStatusPusher{}, cfg, log)
	exporter := connector.NewExporter(orders, currencies, nopExportClient{}, log)

	engine := gin.New()
	router.NewRouter(engine).
		Register(NewCatalogHandler(productMapper, categoryMapper, brandMapper)).
		Register(NewFinanceHandler(currencyMapper, taxMapper, pricingEngine)).
		Register(NewTradeHandler(orders, bridge, exporter)).
		Register(NewSystemHandler(cfg)).
		Setup()

	return &testServer{engine: engine, orders: orders, cfg: cfg}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, dto.Envelope) {
	t.Helper()
	var reader *bytes.Reader
	if raw, ok := body.([]byte); ok {
		reader = bytes.NewReader(raw)
	} else if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var envelope dto.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestTaxEndpoint_AcceptsArrayAndSingleObject(t *testing.T) {
	s := newTestServer(t)

	rec, envelope := s.do(t, http.MethodPost, "/api/odoo/tax",
		[]map[string]any{{"id": 11, "name": "19%", "amount": 19.0}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.TypeSuccess, envelope.Type)
	reports := envelope.IDReports.([]any)
	require.Len(t, reports, 1)
	assert.EqualValues(t, 11, reports[0].(map[string]any)["odooId"])

	rec, envelope = s.do(t, http.MethodPost, "/api/odoo/tax",
		map[string]any{"id": 12, "name": "7%", "amount": 7.0})
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, envelope.IDReports.([]any), 1)
}

func TestTaxEndpoint_MalformedBody(t *testing.T) {
	s := newTestServer(t)

	rec, envelope := s.do(t, http.MethodPost, "/api/odoo/tax", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.TypeError, envelope.Type)
}

func TestStockUpdate_UnknownProductReportsError(t *testing.T) {
	s := newTestServer(t)

	rec, envelope := s.do(t, http.MethodPost, "/api/product/stock/update/odoo",
		[]map[string]any{{"id": 999, "qty_available": 4.0}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.TypeSuccess, envelope.Type)
	require.Len(t, envelope.Errors.([]any), 1)
}

func TestDefaultCurrency_UnknownReturns404(t *testing.T) {
	s := newTestServer(t)

	rec, envelope := s.do(t, http.MethodPost, "/api/currency/default/odoo",
		map[string]any{"id": 404})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, dto.TypeError, envelope.Type)
}

func TestCredentialCheck(t *testing.T) {
	s := newTestServer(t)

	rec, envelope := s.do(t, http.MethodPost, "/api/check/web-url-credential",
		map[string]any{"credential": "s3cret"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.TypeSuccess, envelope.Type)

	rec, _ = s.do(t, http.MethodPost, "/api/check/web-url-credential",
		map[string]any{"credential": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/check/web-url-credential",
		map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderStatusEndpoint(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	order, err := trade.NewOrder("SW-1001", uuid.New())
	require.NoError(t, err)
	require.NoError(t, s.orders.Save(ctx, order))

	rec, envelope := s.do(t, http.MethodGet, "/api/order/status?orderNumber=SW-1001", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "open", data["orderState"])
	assert.Equal(t, "open", data["deliveryState"])

	rec, _ = s.do(t, http.MethodGet, "/api/order/status?orderNumber=SW-9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/order/status", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangeStatus_DrivesMachineAndRejectsGuard(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	order, err := trade.NewOrder("SW-2002", uuid.New())
	require.NoError(t, err)
	require.NoError(t, s.orders.Save(ctx, order))

	rec, _ := s.do(t, http.MethodPost, "/api/order/status/change/order",
		map[string]any{"orderNumber": "SW-2002", "target": trade.OrderStateInProgress})
	assert.Equal(t, http.StatusOK, rec.Code)

	reloaded, err := s.orders.FindByNumber(ctx, "SW-2002")
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStateInProgress, reloaded.State)

	rec, _ = s.do(t, http.MethodPost, "/api/order/status/change/order",
		map[string]any{"orderNumber": "SW-2002", "target": "reopened"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/order/status/change/bogus",
		map[string]any{"orderNumber": "SW-2002", "target": "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyOdooStatus_ReturnCancelsOrder(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	order, err := trade.NewOrder("SW-3003", uuid.New())
	require.NoError(t, err)
	require.NoError(t, s.orders.Save(ctx, order))

	rec, _ := s.do(t, http.MethodPost, "/api/odoo/order/status",
		map[string]any{"orderNumber": "SW-3003", "delivery_state": "done", "return": true})
	assert.Equal(t, http.StatusOK, rec.Code)

	// The acknowledgement carries its keys at the envelope's top level.
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, dto.TypeSuccess, body["type"])
	assert.EqualValues(t, http.StatusOK, body["responseCode"])
	assert.Equal(t, true, body["deliveryStatus"])
	assert.Contains(t, body, "orderId")

	reloaded, err := s.orders.FindByNumber(ctx, "SW-3003")
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStateCancelled, reloaded.State)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec, envelope := s.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, false, data["configured"])
}
