package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/shared"
)

// IdempotencyStore implements shared.IdempotencyStore on a key-value Store
type IdempotencyStore struct {
	store     Store
	keyPrefix string
	ownsStore bool
}

// NewIdempotencyStore creates an idempotency store sharing the given Store.
// Close on the idempotency store does not close a shared Store.
func NewIdempotencyStore(store Store, keyPrefix string) *IdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = "idempotency:"
	}
	return &IdempotencyStore{store: store, keyPrefix: keyPrefix}
}

// NewInMemoryIdempotencyStore creates a standalone in-memory idempotency store
func NewInMemoryIdempotencyStore() *IdempotencyStore {
	s := NewIdempotencyStore(NewMemoryStore(5*time.Minute), "")
	s.ownsStore = true
	return s
}

// MarkProcessed atomically claims key for ttl.
// Returns true if the key was newly claimed, false if it was already claimed.
func (s *IdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.store.SetNX(ctx, s.keyPrefix+key, []byte("1"), ttl)
	if err != nil {
		return false, fmt.Errorf("failed to mark %q as processed: %w", key, err)
	}
	return ok, nil
}

// IsProcessed reports whether key is currently claimed
func (s *IdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	ok, err := s.store.Exists(ctx, s.keyPrefix+key)
	if err != nil {
		return false, fmt.Errorf("failed to check %q: %w", key, err)
	}
	return ok, nil
}

// Release drops the claim so the operation may be retried
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.store.Delete(ctx, s.keyPrefix+key)
}

// Close closes the underlying store when it is owned by this idempotency store
func (s *IdempotencyStore) Close() error {
	if s.ownsStore {
		return s.store.Close()
	}
	return nil
}

var _ shared.IdempotencyStore = (*IdempotencyStore)(nil)
