// Package cache provides the key-value store behind sessions, catalog caching,
// token revocation and checkout deduplication.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCacheMiss is returned by Get when the key does not exist or has expired
	ErrCacheMiss = errors.New("cache: key not found")
	// ErrCorruptValue is returned by GetJSON when the stored bytes do not decode
	ErrCorruptValue = errors.New("cache: corrupt value")
)

// Store is a TTL key-value store. A ttl of 0 means no expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX sets the key only if it is absent and reports whether it was set
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// GetJSON loads key and decodes it into dst. It returns ErrCacheMiss when absent.
func GetJSON(ctx context.Context, s Store, key string, dst any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w under %q: %w", ErrCorruptValue, key, err)
	}
	return nil
}

// SetJSON encodes value as JSON and stores it under key
func SetJSON(ctx context.Context, s Store, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %q: %w", key, err)
	}
	return s.Set(ctx, key, data, ttl)
}
