package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/cart"
)

// SessionStore keeps one JSON document per session under a namespace.
// Every save refreshes the TTL.
type SessionStore struct {
	store     Store
	namespace string
	ttl       time.Duration
}

// NewSessionStore creates a SessionStore. Keys look like session:<namespace>:<id>.
func NewSessionStore(store Store, namespace string, ttl time.Duration) *SessionStore {
	return &SessionStore{store: store, namespace: namespace, ttl: ttl}
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + s.namespace + ":" + sessionID
}

// Load decodes the session document into dst and reports whether it existed
func (s *SessionStore) Load(ctx context.Context, sessionID string, dst any) (bool, error) {
	err := GetJSON(ctx, s.store, s.key(sessionID), dst)
	if errors.Is(err, ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Save stores the session document
func (s *SessionStore) Save(ctx context.Context, sessionID string, value any) error {
	return SetJSON(ctx, s.store, s.key(sessionID), value, s.ttl)
}

// Delete drops the session document
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, s.key(sessionID))
}

// CartStore implements cart.Store on a SessionStore
type CartStore struct {
	sessions *SessionStore
}

var _ cart.Store = (*CartStore)(nil)

// NewCartStore creates a cart store with the given idle TTL
func NewCartStore(store Store, ttl time.Duration) *CartStore {
	return &CartStore{sessions: NewSessionStore(store, "cart", ttl)}
}

// Load returns the session's cart, or nil when there is none
func (c *CartStore) Load(ctx context.Context, key string) (*cart.Cart, error) {
	var crt cart.Cart
	ok, err := c.sessions.Load(ctx, key, &crt)
	if errors.Is(err, ErrCorruptValue) {
		return nil, fmt.Errorf("%w: %w", cart.ErrCorrupt, err)
	}
	if err != nil || !ok {
		return nil, err
	}
	if crt.Items == nil {
		crt.Items = []cart.Item{}
	}
	return &crt, nil
}

// Save stores the cart
func (c *CartStore) Save(ctx context.Context, key string, crt *cart.Cart) error {
	return c.sessions.Save(ctx, key, crt)
}

// Delete drops the cart
func (c *CartStore) Delete(ctx context.Context, key string) error {
	return c.sessions.Delete(ctx, key)
}
