package connector

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/erp/odoo-connector/internal/domain/sync"
	"github.com/erp/odoo-connector/internal/infrastructure/config"
	"github.com/erp/odoo-connector/internal/infrastructure/persistence"
)

// testEnv wires the mappers against an in-memory SQLite schema, a
// recording event publisher and stubbed media/storage collaborators.
type testEnv struct {
	db        *gorm.DB
	cfg       *config.OdooConfig
	publisher *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))
	return &testEnv{
		db: db,
		cfg: &config.OdooConfig{
			BaseURL:               "http://odoo.test",
			AccessToken:           "token",
			DefaultSalesChannelID: "7b8f1f3e-5cfa-4f8e-9a35-9a51f0e2a001",
			DeliveryStatusToOdoo: map[string]string{
				"open": "pending", "shipped": "done", "cancelled": "cancel",
			},
			DeliveryStatusFromOdoo: map[string]string{
				"pending": "open", "done": "shipped", "cancel": "cancelled",
			},
			OrderStatusToOdoo: map[string]string{
				"open": "draft", "in_progress": "sale", "completed": "done", "cancelled": "cancel",
			},
			OrderStatusFromOdoo: map[string]string{
				"draft": "open", "sale": "in_progress", "done": "completed", "cancel": "cancelled",
			},
		},
		publisher: &recordingPublisher{},
	}
}

type recordingPublisher struct {
	events []sync.ChangeEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...sync.ChangeEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type stubFetcher struct {
	body        []byte
	contentType string
	fetched     []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (io.ReadCloser, string, error) {
	f.fetched = append(f.fetched, url)
	return io.NopCloser(bytes.NewReader(f.body)), f.contentType, nil
}

func testLogger() *zap.Logger { return zap.NewNop() }
