package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/maxwelladwale/coltech/internal/infrastructure/cache"
)

// TokenBlacklist invalidates JWTs before they expire (logout)
type TokenBlacklist interface {
	// AddToBlacklist revokes a token's JTI; ttl should be the token's remaining lifetime
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error

	// IsBlacklisted checks if a token's JTI has been revoked
	IsBlacklisted(ctx context.Context, jti string) (bool, error)

	// RevokeSession revokes every token carrying the given session id
	RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error

	// IsSessionRevoked checks if a login session has been revoked
	IsSessionRevoked(ctx context.Context, sessionID string) (bool, error)
}

// StoreTokenBlacklist implements TokenBlacklist on the shared key-value store,
// so revocations are visible to every instance when Redis is configured.
type StoreTokenBlacklist struct {
	store     cache.Store
	keyPrefix string
}

// NewStoreTokenBlacklist creates a blacklist backed by store
func NewStoreTokenBlacklist(store cache.Store) *StoreTokenBlacklist {
	return &StoreTokenBlacklist{store: store, keyPrefix: "token:blacklist:"}
}

func (b *StoreTokenBlacklist) jtiKey(jti string) string {
	return b.keyPrefix + "jti:" + jti
}

func (b *StoreTokenBlacklist) sessionKey(sessionID string) string {
	return b.keyPrefix + "sid:" + sessionID
}

// AddToBlacklist implements TokenBlacklist
func (b *StoreTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.store.Set(ctx, b.jtiKey(jti), []byte("1"), ttl); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

// IsBlacklisted implements TokenBlacklist
func (b *StoreTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	ok, err := b.store.Exists(ctx, b.jtiKey(jti))
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return ok, nil
}

// RevokeSession implements TokenBlacklist
func (b *StoreTokenBlacklist) RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.store.Set(ctx, b.sessionKey(sessionID), []byte("1"), ttl); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// IsSessionRevoked implements TokenBlacklist
func (b *StoreTokenBlacklist) IsSessionRevoked(ctx context.Context, sessionID string) (bool, error) {
	ok, err := b.store.Exists(ctx, b.sessionKey(sessionID))
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return ok, nil
}

var _ TokenBlacklist = (*StoreTokenBlacklist)(nil)
