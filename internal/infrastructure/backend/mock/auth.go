package mock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maxwelladwale/coltech/internal/domain/identity"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	user         identity.User
	passwordHash []byte
}

// AuthService keeps accounts in memory with bcrypt password hashes and
// hands out opaque random tokens
type AuthService struct {
	mu       sync.RWMutex
	accounts map[string]*account // by lower-cased email
	tokens   map[string]string   // token -> email
	cost     int
	now      func() time.Time
}

var _ identity.AuthService = (*AuthService)(nil)

// NewAuthService creates an AuthService. cost <= 0 uses bcrypt.DefaultCost.
func NewAuthService(cost int) *AuthService {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		cost:     cost,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// issue creates a token for email. Callers hold s.mu.
func (s *AuthService) issue(email string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	s.tokens[token] = email
	return token, nil
}

// Login checks the password and issues a token
func (s *AuthService) Login(_ context.Context, email, password string) (*identity.AuthResult, error) {
	key := normalizeEmail(email)

	s.mu.RLock()
	acc, ok := s.accounts[key]
	s.mu.RUnlock()
	if !ok {
		return nil, identity.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return nil, identity.ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	token, err := s.issue(key)
	if err != nil {
		return nil, err
	}
	return &identity.AuthResult{User: acc.user, Token: token}, nil
}

// Register creates an unverified account and logs it in
func (s *AuthService) Register(_ context.Context, reg identity.Registration) (*identity.AuthResult, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return nil, err
	}

	key := normalizeEmail(reg.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[key]; exists {
		return nil, identity.ErrEmailTaken
	}

	acc := &account{
		user: identity.User{
			ID:        uuid.NewString(),
			Email:     key,
			Phone:     reg.Phone,
			FullName:  strings.TrimSpace(reg.FullName),
			Role:      "customer",
			CreatedAt: s.now(),
		},
		passwordHash: hash,
	}
	s.accounts[key] = acc

	token, err := s.issue(key)
	if err != nil {
		return nil, err
	}
	return &identity.AuthResult{User: acc.user, Token: token}, nil
}

// Logout forgets the token
func (s *AuthService) Logout(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	return nil
}

// GetCurrentUser resolves a token
func (s *AuthService) GetCurrentUser(_ context.Context, token string) (*identity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.byToken(token)
	if !ok {
		return nil, shared.ErrUnauthorized
	}
	u := acc.user
	return &u, nil
}

func (s *AuthService) byToken(token string) (*account, bool) {
	email, ok := s.tokens[token]
	if !ok {
		return nil, false
	}
	acc, ok := s.accounts[email]
	return acc, ok
}

// ResetPassword always reports the email as sent so account existence
// does not leak
func (s *AuthService) ResetPassword(context.Context, string) (bool, error) {
	return true, nil
}

// ResendVerification re-sends the verification email for the token's account
func (s *AuthService) ResendVerification(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.byToken(token)
	if !ok {
		return "", shared.ErrUnauthorized
	}
	if acc.user.IsEmailVerified() {
		return "Email already verified", nil
	}
	return "Verification link sent to " + acc.user.Email, nil
}

// VerifyEmail marks an account verified
func (s *AuthService) VerifyEmail(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[normalizeEmail(email)]
	if !ok {
		return false
	}
	now := s.now()
	acc.user.EmailVerifiedAt = &now
	return true
}
