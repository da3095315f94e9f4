package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/maxwelladwale/coltech/internal/domain/identity"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/infrastructure/auth"
	"github.com/maxwelladwale/coltech/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// backendSession is what the storefront remembers about one login.
// The backend token never leaves the server.
type backendSession struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// AuthService issues storefront sessions on top of the backend's auth
type AuthService struct {
	backend    identity.AuthService
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	sessions   *cache.SessionStore
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. sessions should
// keep entries at least as long as refresh tokens live.
func NewAuthService(
	backend identity.AuthService,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	sessions *cache.SessionStore,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		backend:    backend,
		jwtService: jwtService,
		blacklist:  blacklist,
		sessions:   sessions,
		logger:     logger,
	}
}

// Login authenticates against the backend and returns storefront tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	s.logger.Info("Login attempt", zap.String("email", email))

	result, err := s.backend.Login(ctx, email, input.Password)
	if err != nil {
		s.logger.Warn("Login failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return s.startSession(ctx, result)
}

// Register creates the backend account and signs the customer in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	reg := input.Registration()
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	result, err := s.backend.Register(ctx, reg)
	if err != nil {
		s.logger.Warn("Registration failed", zap.String("email", reg.Email), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Customer registered", zap.String("user_id", result.User.ID))
	return s.startSession(ctx, result)
}

func (s *AuthService) startSession(ctx context.Context, result *identity.AuthResult) (*LoginResult, error) {
	sessionID := uuid.New().String()
	if err := s.sessions.Save(ctx, sessionID, backendSession{
		UserID: result.User.ID,
		Email:  result.User.Email,
		Token:  result.Token,
	}); err != nil {
		s.logger.Error("Failed to store backend session", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start session")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:    result.User.ID,
		Email:     result.User.Email,
		FullName:  result.User.FullName,
		SessionID: sessionID,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("Customer signed in",
		zap.String("user_id", result.User.ID),
		zap.String("sid", sessionID),
	)
	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserInfo(&result.User),
	}, nil
}

// Authenticate validates an access token and checks it has not been revoked
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// BackendToken returns the backend token stored for a login session
func (s *AuthService) BackendToken(ctx context.Context, sessionID string) (string, error) {
	var sess backendSession
	found, err := s.sessions.Load(ctx, sessionID, &sess)
	if err != nil {
		return "", err
	}
	if !found {
		return "", shared.NewDomainError("SESSION_EXPIRED", "Your session has expired. Please log in again")
	}
	return sess.Token, nil
}

// RefreshToken rotates the token pair. The old refresh token is revoked.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	if _, err := s.BackendToken(ctx, claims.SessionID); err != nil {
		return nil, err
	}

	pair, _, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, tokenError(err)
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke rotated refresh token", zap.Error(err))
	}

	s.logger.Info("Token refreshed", zap.String("user_id", claims.UserID))
	return &RefreshTokenResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

// Logout revokes the storefront session and tells the backend. Backend
// failures are logged; the local logout still succeeds.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("Customer logout",
		zap.String("user_id", input.UserID),
		zap.String("sid", input.SessionID),
	)

	if input.TokenJTI != "" {
		if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			return err
		}
	}
	if err := s.blacklist.RevokeSession(ctx, input.SessionID, s.jwtService.RefreshTokenExpiration()); err != nil {
		return err
	}

	token, err := s.BackendToken(ctx, input.SessionID)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, input.SessionID); err != nil {
		s.logger.Warn("Failed to drop backend session", zap.Error(err))
	}
	if err := s.backend.Logout(ctx, token); err != nil {
		s.logger.Warn("Backend logout failed", zap.String("user_id", input.UserID), zap.Error(err))
	}
	return nil
}

// GetCurrentUser asks the backend who the session belongs to
func (s *AuthService) GetCurrentUser(ctx context.Context, sessionID string) (*UserInfo, error) {
	token, err := s.BackendToken(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	user, err := s.backend.GetCurrentUser(identity.WithBackendToken(ctx, token), token)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// ForgotPassword requests a reset link. The reply never reveals whether
// the email has an account.
func (s *AuthService) ForgotPassword(ctx context.Context, input ForgotPasswordInput) (*MessageResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.backend.ResetPassword(ctx, email); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	return &MessageResult{Message: "If an account exists for " + email + ", a reset link has been sent"}, nil
}

// ResendVerification re-sends the email verification link
func (s *AuthService) ResendVerification(ctx context.Context, sessionID string) (*MessageResult, error) {
	token, err := s.BackendToken(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	msg, err := s.backend.ResendVerification(identity.WithBackendToken(ctx, token), token)
	if err != nil {
		return nil, err
	}
	return &MessageResult{Message: msg}, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return err
	}
	if !revoked {
		revoked, err = s.blacklist.IsSessionRevoked(ctx, claims.SessionID)
		if err != nil {
			return err
		}
	}
	if revoked {
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}
	return nil
}

// tokenError maps JWT errors to domain errors
func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrInvalidTokenType):
		return shared.NewDomainError("TOKEN_INVALID", "Wrong token type")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	}
}
