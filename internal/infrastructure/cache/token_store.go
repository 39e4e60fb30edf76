// Package cache provides the session token stores backing the Odoo client.
// Distributed deployments use Redis so all instances share the session token;
// single-instance deployments and tests use the in-memory store.
package cache

import (
	"context"
	"time"
)

const tokenKey = "odoo:session-token"

// TokenStore holds the short-lived Odoo session token.
type TokenStore interface {
	// Get returns the current session token, or false if none is cached.
	Get(ctx context.Context) (string, bool)
	// Set stores a session token with a TTL.
	Set(ctx context.Context, token string, ttl time.Duration) error
}
