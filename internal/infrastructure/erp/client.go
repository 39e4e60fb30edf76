package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/domain/sync"
	"github.com/erp/odoo-connector/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed response size from the Odoo API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// TokenCache stores the short-lived session token handed out by /odoo/auth.
// The configured access token is always accepted as fallback.
type TokenCache interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, token string, ttl time.Duration) error
}

// Client talks to the Odoo REST bridge. All calls short-circuit with
// ErrNotConfigured while the connection settings are incomplete, so the shop
// keeps working standalone.
type Client struct {
	cfg        *config.OdooConfig
	httpClient *http.Client
	tokens     TokenCache
	logger     *zap.Logger
}

// NewClient creates a client for the configured Odoo instance.
func NewClient(cfg *config.OdooConfig, tokens TokenCache, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		tokens: tokens,
		logger: logger,
	}
}

// Response is the generic answer of the Odoo bridge. Endpoint-specific
// payloads arrive in Data and are decoded by the caller.
type Response struct {
	Success bool            `json:"success"`
	OdooID  int64           `json:"odoo_id,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// StatusNotification is pushed to Odoo whenever an order, delivery or
// transaction state changes on the shop side.
type StatusNotification struct {
	OrderNumber string `json:"orderNumber"`
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	Type        string `json:"type"`
}

// Modify pushes a created or updated entity to Odoo under its model path.
func (c *Client) Modify(ctx context.Context, entity sync.EntityType, payload any) (*Response, error) {
	path, err := entity.ModifyPath()
	if err != nil {
		return nil, err
	}
	return c.post(ctx, path, payload)
}

// Delete notifies Odoo that an entity was removed on the shop side.
func (c *Client) Delete(ctx context.Context, entity sync.EntityType, payload any) (*Response, error) {
	path, err := entity.DeletePath()
	if err != nil {
		return nil, err
	}
	return c.post(ctx, path, payload)
}

// PushCategoryTree sends a full category tree snapshot.
func (c *Client) PushCategoryTree(ctx context.Context, payload any) (*Response, error) {
	return c.post(ctx, "/shop/product_category", payload)
}

// PushCurrency sends a currency definition.
func (c *Client) PushCurrency(ctx context.Context, payload any) (*Response, error) {
	return c.post(ctx, "/shop/currency", payload)
}

// CreateSaleOrder exports a shop order as an Odoo sale order.
func (c *Client) CreateSaleOrder(ctx context.Context, payload any) (*Response, error) {
	return c.post(ctx, "/shop/create_sale_order_from_shopware", payload)
}

// CreateContact exports an order customer as an Odoo contact.
func (c *Client) CreateContact(ctx context.Context, payload any) (*Response, error) {
	return c.post(ctx, "/shop/contact_create_from_shopware", payload)
}

// PushOrderStatus notifies Odoo of a local state machine transition.
func (c *Client) PushOrderStatus(ctx context.Context, notification StatusNotification) (*Response, error) {
	return c.post(ctx, "/odoo/states/", notification)
}

// Authenticate exchanges the configured access token for a session token and
// stores it in the token cache.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	resp, err := c.post(ctx, "/odoo/auth", map[string]string{"token": c.cfg.AccessToken})
	if err != nil {
		return "", err
	}
	var auth struct {
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(resp.Data, &auth); err != nil || auth.Token == "" {
		return "", fmt.Errorf("%w: missing session token", ErrInvalidResponse)
	}
	ttl := time.Duration(auth.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	if c.tokens != nil {
		if err := c.tokens.Set(ctx, auth.Token, ttl); err != nil {
			c.logger.Warn("failed to cache odoo session token", zap.Error(err))
		}
	}
	return auth.Token, nil
}

// Configured reports whether calls would reach Odoo instead of
// short-circuiting.
func (c *Client) Configured() bool {
	return c.cfg.Configured()
}

func (c *Client) token(ctx context.Context) string {
	if c.tokens != nil {
		if token, ok := c.tokens.Get(ctx); ok {
			return token
		}
	}
	return c.cfg.AccessToken
}

func (c *Client) post(ctx context.Context, path string, payload any) (*Response, error) {
	if !c.cfg.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erp: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erp: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Access-Token", c.token(ctx))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("erp: failed to read response: %w", err)
	}

	c.logger.Debug("odoo request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d on %s", ErrRequestFailed, resp.StatusCode, path)
	}

	var parsed Response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if !parsed.Success {
		return &parsed, fmt.Errorf("%w: %s", ErrRemote, parsed.Message)
	}
	return &parsed, nil
}
