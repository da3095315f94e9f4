package laravel

import (
	"context"
	"errors"
	"net/http"

	"github.com/maxwelladwale/coltech/internal/domain/identity"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"go.uber.org/zap"
)

var _ identity.AuthService = (*AuthService)(nil)

// AuthService authenticates customers against Laravel Sanctum endpoints
type AuthService struct {
	client *Client
}

// NewAuthService creates an AuthService
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*identity.AuthResult, error) {
	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := s.client.send(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		if errors.Is(err, shared.ErrUnauthorized) {
			return nil, identity.ErrInvalidCredentials
		}
		return nil, err
	}
	return &identity.AuthResult{User: resp.User.toDomain(), Token: resp.AccessToken}, nil
}

func (s *AuthService) Register(ctx context.Context, reg identity.Registration) (*identity.AuthResult, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	body := map[string]string{
		"email":                 reg.Email,
		"password":              reg.Password,
		"password_confirmation": reg.Password,
		"full_name":             reg.FullName,
		"phone":                 reg.Phone,
	}
	var resp authResponse
	if err := s.client.send(ctx, http.MethodPost, "/auth/signup", body, &resp); err != nil {
		return nil, err
	}
	return &identity.AuthResult{User: resp.User.toDomain(), Token: resp.AccessToken}, nil
}

// Logout revokes the token upstream. Failures are logged and swallowed.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx = identity.WithBackendToken(ctx, token)
	if err := s.client.send(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		s.client.logger.Warn("Backend logout failed", zap.Error(err))
	}
	return nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, token string) (*identity.User, error) {
	var resp struct {
		User userDTO `json:"user"`
	}
	if err := s.client.get(identity.WithBackendToken(ctx, token), "/auth/profile", nil, &resp); err != nil {
		return nil, err
	}
	u := resp.User.toDomain()
	return &u, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email string) (bool, error) {
	if err := s.client.send(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email}, nil); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) ResendVerification(ctx context.Context, token string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := s.client.send(identity.WithBackendToken(ctx, token), http.MethodPost, "/auth/resend-verification", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
