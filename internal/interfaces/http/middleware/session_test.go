package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxwelladwale/coltech/internal/infrastructure/config"
	"github.com/maxwelladwale/coltech/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRouter(cfg SessionConfig) (*gin.Engine, *string) {
	var seen string
	router := gin.New()
	router.Use(Session(cfg))
	router.GET("/cart", func(c *gin.Context) {
		seen = GetSessionID(c)
		c.String(http.StatusOK, logger.SessionID(c.Request.Context()))
	})
	return router, &seen
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}

func TestSession(t *testing.T) {
	router, seen := newSessionRouter(DefaultSessionConfig())

	t.Run("mints an id when none is sent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/cart", nil))

		assert.Len(t, *seen, 32)
		assert.Equal(t, *seen, w.Body.String())
		assert.Equal(t, *seen, w.Header().Get(SessionHeader))

		cookie := sessionCookie(w)
		require.NotNil(t, cookie)
		assert.Equal(t, *seen, cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)
	})

	t.Run("reuses the cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cart", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "0123456789abcdef0123"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "0123456789abcdef0123", *seen)
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cart", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-session-0000"})
		req.Header.Set(SessionHeader, "header-session-0000")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "header-session-0000", *seen)
	})

	t.Run("rejects malformed ids", func(t *testing.T) {
		for _, bad := range []string{"short", "cart:other-session-key", "has spaces in the id value"} {
			req := httptest.NewRequest("GET", "/cart", nil)
			req.Header.Set(SessionHeader, bad)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.NotEqual(t, bad, *seen)
			assert.Len(t, *seen, 32)
		}
	})
}

func TestSessionConfigFrom(t *testing.T) {
	cfg := SessionConfigFrom(config.SessionConfig{
		CookieName: "sid",
		TTL:        time.Hour,
		Secure:     true,
		SameSite:   "strict",
	})
	assert.Equal(t, "sid", cfg.CookieName)
	assert.Equal(t, SessionHeader, cfg.HeaderName)
	assert.Equal(t, time.Hour, cfg.TTL)
	assert.Equal(t, "/", cfg.Path)
	assert.True(t, cfg.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cfg.SameSite)
}
