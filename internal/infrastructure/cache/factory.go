package cache

import (
	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/infrastructure/config"
)

// NewTokenStore creates a token store based on configuration. When Redis is
// enabled but unreachable it falls back to the in-memory store so the
// connector keeps running on a single instance.
func NewTokenStore(cfg config.RedisConfig, logger *zap.Logger) TokenStore {
	if !cfg.Enabled {
		logger.Info("using in-memory token store")
		return NewInMemoryTokenStore()
	}

	store, err := NewRedisTokenStore(cfg)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory token store",
			zap.String("host", cfg.Host),
			zap.Error(err),
		)
		return NewInMemoryTokenStore()
	}

	logger.Info("using redis token store",
		zap.String("host", cfg.Host),
		zap.Int("db", cfg.DB),
	)
	return store
}
