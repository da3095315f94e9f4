package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maxwelladwale/coltech/internal/domain/identity"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/infrastructure/auth"
	"github.com/maxwelladwale/coltech/internal/infrastructure/logger"
	"github.com/maxwelladwale/coltech/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey    = "jwt_claims"
	JWTUserIDKey    = "jwt_user_id"
	JWTSessionIDKey = "jwt_sid"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
)

// Authenticator validates access tokens and resolves the backend token of
// a login session
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error)
	BackendToken(ctx context.Context, sessionID string) (string, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	Authenticator Authenticator
	// Optional marks authentication as optional: a missing or bad token
	// lets the request through as a guest
	Optional bool
	Logger   *zap.Logger
}

// JWTAuth requires a valid access token
func JWTAuth(authenticator Authenticator, log *zap.Logger) gin.HandlerFunc {
	return JWTAuthWithConfig(JWTMiddlewareConfig{Authenticator: authenticator, Logger: log})
}

// OptionalJWTAuth attaches the customer when a valid token is present
func OptionalJWTAuth(authenticator Authenticator, log *zap.Logger) gin.HandlerFunc {
	return JWTAuthWithConfig(JWTMiddlewareConfig{Authenticator: authenticator, Optional: true, Logger: log})
}

// JWTAuthWithConfig creates JWT authentication middleware with custom config
func JWTAuthWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			if cfg.Optional {
				c.Next()
				return
			}
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		ctx := c.Request.Context()
		claims, err := cfg.Authenticator.Authenticate(ctx, tokenString)
		if err != nil {
			if cfg.Optional {
				c.Next()
				return
			}
			cfg.Logger.Warn("JWT authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			handleAuthError(c, err)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTSessionIDKey, claims.SessionID)

		ctx = logger.WithUserID(ctx, claims.UserID)
		if token, err := cfg.Authenticator.BackendToken(ctx, claims.SessionID); err == nil && token != "" {
			ctx = identity.WithBackendToken(ctx, token)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

// handleAuthError answers with the token error's code, always as 401
func handleAuthError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		abortUnauthorized(c, domainErr.Code, domainErr.Message)
		return
	}
	abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTSessionID retrieves the login session id from JWT claims in context
func GetJWTSessionID(c *gin.Context) string {
	return c.GetString(JWTSessionIDKey)
}
