package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/infrastructure/config"
)

func TestNewTracerProviderDisabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())

	// Shutdown on a no-op provider must not fail.
	assert.NoError(t, tp.Shutdown(context.Background()))

	// Tracer falls back to the global provider.
	tracer := tp.Tracer("test")
	assert.NotNil(t, tracer)
}
