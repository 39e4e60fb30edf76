package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erp/odoo-connector/internal/infrastructure/config"
)

// RedisTokenStore implements TokenStore using Redis. This is suitable for
// distributed deployments where multiple instances need to share the
// session token.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a Redis-backed token store and verifies the
// connection.
func NewRedisTokenStore(cfg config.RedisConfig) (*RedisTokenStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTokenStore{client: client}, nil
}

// NewRedisTokenStoreWithClient creates a store with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisTokenStoreWithClient(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

// Get returns the cached session token.
func (s *RedisTokenStore) Get(ctx context.Context) (string, bool) {
	token, err := s.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Treat Redis outages as a cache miss; the client falls back
			// to the configured access token.
			return "", false
		}
		return "", false
	}
	return token, token != ""
}

// Set stores the session token with a TTL.
func (s *RedisTokenStore) Set(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, tokenKey, token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}
