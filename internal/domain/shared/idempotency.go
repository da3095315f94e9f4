package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys that have already been claimed so that a
// repeated submission (double click, client retry) is processed once.
type IdempotencyStore interface {
	// MarkProcessed claims the key for ttl.
	// Returns true if the key was newly claimed, false if it was already held.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key is currently claimed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release drops a claim so the key can be processed again
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
