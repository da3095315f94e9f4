package identity

import (
	"context"
	"strings"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/shared"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 8

// User is a storefront customer account
type User struct {
	ID              string
	Email           string
	Phone           string
	FullName        string
	Role            string
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
}

// IsEmailVerified reports whether the user confirmed their email address
func (u *User) IsEmailVerified() bool {
	return u.EmailVerifiedAt != nil
}

// AuthResult is returned by login and registration
type AuthResult struct {
	User  User
	Token string
}

// Registration carries sign-up data
type Registration struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// Validate checks the registration before it reaches the backend
func (r Registration) Validate() error {
	if !strings.Contains(r.Email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if len(r.Password) < MinPasswordLength {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	if strings.TrimSpace(r.FullName) == "" {
		return shared.NewDomainError("INVALID_NAME", "Full name is required")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone number is required")
	}
	return nil
}

// Domain errors for authentication
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrEmailTaken         = shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
)

// AuthService is the backend contract for customer authentication.
// Tokens here are backend tokens, not storefront session tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, reg Registration) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
	GetCurrentUser(ctx context.Context, token string) (*User, error)
	ResetPassword(ctx context.Context, email string) (bool, error)
	ResendVerification(ctx context.Context, token string) (string, error)
}
