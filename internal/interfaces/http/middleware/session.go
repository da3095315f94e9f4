package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maxwelladwale/coltech/internal/infrastructure/config"
	"github.com/maxwelladwale/coltech/internal/infrastructure/logger"
)

// Session context keys and defaults
const (
	SessionIDKey  = "session_id"
	SessionCookie = "coltech_session"
	SessionHeader = "X-Session-ID"
)

// sessionIDPattern accepts the ids this middleware mints and other opaque
// ids a client might keep, never anything that could smuggle a cache key
var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{16,64}$`)

// SessionConfig holds the session cookie settings
type SessionConfig struct {
	CookieName string
	HeaderName string
	TTL        time.Duration
	Domain     string
	Path       string
	Secure     bool
	SameSite   http.SameSite
}

// DefaultSessionConfig returns an HttpOnly, SameSite=Lax cookie living 7 days
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		CookieName: SessionCookie,
		HeaderName: SessionHeader,
		TTL:        7 * 24 * time.Hour,
		Path:       "/",
		SameSite:   http.SameSiteLaxMode,
	}
}

// SessionConfigFrom builds the middleware config from application config
func SessionConfigFrom(cfg config.SessionConfig) SessionConfig {
	out := DefaultSessionConfig()
	if cfg.CookieName != "" {
		out.CookieName = cfg.CookieName
	}
	if cfg.HeaderName != "" {
		out.HeaderName = cfg.HeaderName
	}
	if cfg.TTL > 0 {
		out.TTL = cfg.TTL
	}
	if cfg.Path != "" {
		out.Path = cfg.Path
	}
	out.Domain = cfg.Domain
	out.Secure = cfg.Secure
	switch strings.ToLower(cfg.SameSite) {
	case "strict":
		out.SameSite = http.SameSiteStrictMode
	case "none":
		out.SameSite = http.SameSiteNoneMode
	}
	return out
}

// Session resolves the anonymous storefront session that keys the cart and
// the checkout and verification wizards. The id comes from the header, then
// the cookie; a fresh one is minted when neither holds a valid id. The
// cookie is refreshed on every request so the session slides.
func Session(cfg SessionConfig) gin.HandlerFunc {
	maxAge := int(cfg.TTL.Seconds())
	return func(c *gin.Context) {
		sessionID := c.GetHeader(cfg.HeaderName)
		if !sessionIDPattern.MatchString(sessionID) {
			sessionID, _ = c.Cookie(cfg.CookieName)
		}
		if !sessionIDPattern.MatchString(sessionID) {
			sessionID = strings.ReplaceAll(uuid.NewString(), "-", "")
		}

		c.Set(SessionIDKey, sessionID)
		c.Request = c.Request.WithContext(logger.WithSessionID(c.Request.Context(), sessionID))

		c.SetSameSite(cfg.SameSite)
		c.SetCookie(cfg.CookieName, sessionID, maxAge, cfg.Path, cfg.Domain, cfg.Secure, true)
		c.Writer.Header().Set(cfg.HeaderName, sessionID)

		c.Next()
	}
}

// GetSessionID returns the session id set by Session
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
