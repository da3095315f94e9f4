package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/maxwelladwale/coltech/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	var apiHits int
	r := NewRouter(engine, WithAPIMiddleware(func(c *gin.Context) {
		apiHits++
		c.Next()
	}))

	r.Register(NewDomainGroup("test", "/test").GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	}))
	r.Setup()
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, apiHits)
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("cart", "/cart")
		assert.Equal(t, "cart", g.Name())
		assert.Equal(t, "/cart", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		NewDomainGroup("items", "/items").
			GET("", ok).POST("", ok).PUT("/:id", ok).PATCH("/:id", ok).DELETE("/:id", ok).
			RegisterRoutes(engine.Group("/api/v1"))

		for _, tc := range []struct{ method, path string }{
			{http.MethodGet, "/api/v1/items"},
			{http.MethodPost, "/api/v1/items"},
			{http.MethodPut, "/api/v1/items/1"},
			{http.MethodPatch, "/api/v1/items/1"},
			{http.MethodDelete, "/api/v1/items/1"},
		} {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, http.StatusOK, w.Code, tc.method)
			assert.Equal(t, tc.method, w.Body.String())
		}
	})

	t.Run("subgroups inherit middleware", func(t *testing.T) {
		engine := gin.New()
		var order []string
		mark := func(name string) gin.HandlerFunc {
			return func(c *gin.Context) {
				order = append(order, name)
				c.Next()
			}
		}
		parent := NewDomainGroup("auth", "/auth").Use(mark("parent"))
		parent.Group("session", "").Use(mark("child")).GET("/me", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		parent.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"parent", "child"}, order)
	})
}

func emptyHandlers() Handlers {
	return Handlers{
		Catalog:      &handler.CatalogHandler{},
		Cart:         &handler.CartHandler{},
		Checkout:     &handler.CheckoutHandler{},
		Order:        &handler.OrderHandler{},
		Installation: &handler.InstallationHandler{},
		Licensing:    &handler.LicensingHandler{},
		Verification: &handler.VerificationHandler{},
		Auth:         &handler.AuthHandler{},
		Content:      &handler.ContentHandler{},
		System:       handler.NewSystemHandler("coltech", "test", "mock"),
	}
}

func TestStorefrontGroups_RouteTable(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(StorefrontGroups(emptyHandlers(), Guards{})...).Setup()

	registered := map[string]bool{}
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	expected := []string{
		"GET /api/v1/products",
		"GET /api/v1/products/search",
		"GET /api/v1/products/mdvrs",
		"GET /api/v1/products/cameras",
		"GET /api/v1/products/:id",
		"GET /api/v1/products/:id/stock",
		"GET /api/v1/packages",
		"POST /api/v1/packages/custom",
		"GET /api/v1/cart",
		"POST /api/v1/cart/items",
		"PUT /api/v1/cart/items/:productId",
		"DELETE /api/v1/cart/items/:productId",
		"DELETE /api/v1/cart",
		"GET /api/v1/checkout",
		"POST /api/v1/checkout/start",
		"POST /api/v1/checkout/shipping",
		"POST /api/v1/checkout/installation",
		"POST /api/v1/checkout/back",
		"POST /api/v1/checkout/payment",
		"DELETE /api/v1/checkout",
		"GET /api/v1/orders/:id/confirmation",
		"POST /api/v1/orders/track",
		"GET /api/v1/orders/mine",
		"GET /api/v1/orders/:id/payment",
		"POST /api/v1/orders/:id/invoice",
		"PATCH /api/v1/orders/:id/status",
		"GET /api/v1/garages",
		"GET /api/v1/garages/:id",
		"GET /api/v1/garages/:id/slots",
		"POST /api/v1/appointments",
		"GET /api/v1/licenses/vehicle/:reg",
		"GET /api/v1/licenses/check/:reg",
		"GET /api/v1/licenses/renewal-price",
		"GET /api/v1/licenses/mine",
		"POST /api/v1/licenses/activate",
		"POST /api/v1/licenses/:id/renew",
		"POST /api/v1/certificates",
		"GET /api/v1/verification",
		"POST /api/v1/verification/details",
		"POST /api/v1/verification/otp",
		"POST /api/v1/verification/qr",
		"DELETE /api/v1/verification",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/refresh",
		"POST /api/v1/auth/logout",
		"POST /api/v1/auth/forgot-password",
		"GET /api/v1/auth/me",
		"POST /api/v1/auth/resend-verification",
		"GET /api/v1/blog/posts",
		"GET /api/v1/blog/posts/recent",
		"GET /api/v1/blog/posts/:slug",
		"POST /api/v1/contact",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestStorefrontGroups_ProtectedRoutes(t *testing.T) {
	engine := gin.New()
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	limited := func(c *gin.Context) { c.AbortWithStatus(http.StatusTooManyRequests) }
	NewRouter(engine).Register(StorefrontGroups(emptyHandlers(), Guards{
		RequireAuth:   deny,
		AuthRateLimit: limited,
	})...).Setup()

	for _, tc := range []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/api/v1/orders/mine", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/orders/guest", http.StatusUnauthorized},
		{http.MethodPatch, "/api/v1/orders/o-1/status", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/licenses/mine", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/auth/me", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/auth/logout", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/auth/resend-verification", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/auth/login", http.StatusTooManyRequests},
		{http.MethodPost, "/api/v1/auth/forgot-password", http.StatusTooManyRequests},
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		require.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
	}
}
