package identity

import (
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/identity"
)

// LoginInput contains the input for customer login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterInput contains the sign-up form
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"required,max=100"`
	Phone    string `json:"phone" binding:"required,max=20,ke_phone"`
}

// Registration converts the form
func (r RegisterInput) Registration() identity.Registration {
	return identity.Registration{Email: r.Email, Password: r.Password, FullName: r.FullName, Phone: r.Phone}
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordInput asks for a reset link
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// LogoutInput identifies the login being ended
type LogoutInput struct {
	UserID    string
	SessionID string
	TokenJTI  string
	// TokenTTL is the access token's remaining lifetime
	TokenTTL time.Duration
}

// UserInfo is the customer returned to the storefront
type UserInfo struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	FullName      string     `json:"full_name"`
	Role          string     `json:"role,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// LoginResult contains the storefront tokens and the signed-in customer
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenResult contains a fresh token pair
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// MessageResult is a plain confirmation message
type MessageResult struct {
	Message string `json:"message"`
}

// ToUserInfo converts a backend user
func ToUserInfo(u *identity.User) UserInfo {
	info := UserInfo{
		ID:            u.ID,
		Email:         u.Email,
		Phone:         u.Phone,
		FullName:      u.FullName,
		Role:          u.Role,
		EmailVerified: u.IsEmailVerified(),
	}
	if !u.CreatedAt.IsZero() {
		created := u.CreatedAt
		info.CreatedAt = &created
	}
	return info
}
