package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryTokenStore implements TokenStore using process memory. This is
// suitable for single-instance deployments and testing.
type InMemoryTokenStore struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

// NewInMemoryTokenStore creates an in-memory token store.
func NewInMemoryTokenStore() *InMemoryTokenStore {
	return &InMemoryTokenStore{}
}

// Get returns the cached token if it has not expired.
func (s *InMemoryTokenStore) Get(_ context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || time.Now().After(s.expiresAt) {
		return "", false
	}
	return s.token, true
}

// Set stores the token with a TTL.
func (s *InMemoryTokenStore) Set(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = time.Now().Add(ttl)
	return nil
}
