package erp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainsync "github.com/erp/odoo-connector/internal/domain/sync"
	"github.com/erp/odoo-connector/internal/infrastructure/config"
)

type memoryTokens struct {
	mu    sync.Mutex
	token string
}

func (m *memoryTokens) Get(_ context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *memoryTokens) Set(_ context.Context, token string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.OdooConfig{
		BaseURL:     server.URL,
		AccessToken: "secret-token",
		Timeout:     5 * time.Second,
	}
	return NewClient(cfg, &memoryTokens{}, zap.NewNop()), server
}

func TestClientModifySendsAccessToken(t *testing.T) {
	var gotPath, gotToken, gotContentType string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("Access-Token")
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(Response{Success: true, OdooID: 42})
	})

	resp, err := client.Modify(context.Background(), domainsync.EntityProduct, map[string]string{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "/modify/product.template", gotPath)
	assert.Equal(t, "secret-token", gotToken)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, int64(42), resp.OdooID)
}

func TestClientDeleteUsesDeletePath(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(Response{Success: true})
	})

	_, err := client.Delete(context.Background(), domainsync.EntityCategory, map[string]string{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "/delete/product.category", gotPath)
}

func TestClientRemoteFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{Success: false, Message: "duplicate default_code"})
	})

	resp, err := client.Modify(context.Background(), domainsync.EntityProduct, nil)
	require.ErrorIs(t, err, ErrRemote)
	require.NotNil(t, resp)
	assert.Equal(t, "duplicate default_code", resp.Message)
}

func TestClientHTTPError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.PushCurrency(context.Background(), nil)
	require.ErrorIs(t, err, ErrRequestFailed)
}

func TestClientShortCircuitsWhenUnconfigured(t *testing.T) {
	cfg := &config.OdooConfig{Timeout: time.Second}
	client := NewClient(cfg, nil, zap.NewNop())

	_, err := client.Modify(context.Background(), domainsync.EntityProduct, nil)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestClientAuthenticateCachesToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/odoo/auth" {
			json.NewEncoder(w).Encode(Response{
				Success: true,
				Data:    json.RawMessage(`{"token":"session-abc","expires_in":3600}`),
			})
			return
		}
		// Subsequent calls must carry the cached session token.
		assert.Equal(t, "session-abc", r.Header.Get("Access-Token"))
		json.NewEncoder(w).Encode(Response{Success: true})
	})

	token, err := client.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "session-abc", token)

	_, err = client.PushCurrency(context.Background(), nil)
	require.NoError(t, err)
}

func TestClientStatusNotification(t *testing.T) {
	var got StatusNotification
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(Response{Success: true})
	})

	_, err := client.PushOrderStatus(context.Background(), StatusNotification{
		OrderNumber: "10001",
		OrderID:     "order-uuid",
		Status:      "done",
		Type:        "delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, "10001", got.OrderNumber)
	assert.Equal(t, "delivery", got.Type)
}
