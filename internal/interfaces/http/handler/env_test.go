package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/maxwelladwale/coltech/internal/application/cart"
	catalogapp "github.com/maxwelladwale/coltech/internal/application/catalog"
	"github.com/maxwelladwale/coltech/internal/application/checkout"
	"github.com/maxwelladwale/coltech/internal/application/contact"
	identityapp "github.com/maxwelladwale/coltech/internal/application/identity"
	licensingapp "github.com/maxwelladwale/coltech/internal/application/licensing"
	orderapp "github.com/maxwelladwale/coltech/internal/application/order"
	"github.com/maxwelladwale/coltech/internal/application/verification"
	"github.com/maxwelladwale/coltech/internal/infrastructure/auth"
	"github.com/maxwelladwale/coltech/internal/infrastructure/backend/mock"
	"github.com/maxwelladwale/coltech/internal/infrastructure/cache"
	"github.com/maxwelladwale/coltech/internal/infrastructure/config"
	"github.com/maxwelladwale/coltech/internal/infrastructure/notification"
	"github.com/maxwelladwale/coltech/internal/infrastructure/persistence"
	"github.com/maxwelladwale/coltech/internal/infrastructure/printing"
	"github.com/maxwelladwale/coltech/internal/infrastructure/storage"
	"github.com/maxwelladwale/coltech/internal/interfaces/http/dto"
	"github.com/maxwelladwale/coltech/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testOTP = "482913"

// recordingPublisher keeps published notification events
type recordingPublisher struct {
	mu     sync.Mutex
	events []notification.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event notification.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// testEnv serves every storefront handler over the mock backend
type testEnv struct {
	engine    *gin.Engine
	orders    *mock.OrderService
	licenses  *mock.LicenseService
	published *recordingPublisher
	loc       *time.Location
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:       "sqlite",
		SQLitePath:   ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	mem := cache.NewMemoryStore(0)
	t.Cleanup(func() { _ = mem.Close() })

	log := zap.NewNop()
	loc := time.FixedZone("EAT", 3*60*60)
	env := &testEnv{published: &recordingPublisher{}, loc: loc}

	catalog := mock.NewCatalog()
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	env.orders = mock.NewOrderService(orderRepo, catalog, log)
	env.licenses = mock.NewLicenseService(orderRepo, catalog)
	payments := mock.NewPaymentService(
		mock.DefaultPaymentConfig(),
		persistence.NewGormTransactionRepository(db.DB),
		log,
		mock.WithOrderRepository(orderRepo),
		mock.WithoutDelay(),
		mock.WithRandom(func() float64 { return 0 }),
	)
	installations := mock.NewInstallationService()
	certificates := mock.NewCertificateService(orderRepo, log,
		mock.WithOTPGenerator(func() (string, error) { return testOTP, nil }),
	)
	notifier := notification.NewService(env.published, env.orders, log)

	products := catalogapp.NewProductService(catalog, mock.NewCartService(catalog),
		catalogapp.WithCache(mem, time.Minute), catalogapp.WithLogger(log))
	carts := cartapp.NewService(cache.NewCartStore(mem, time.Hour), catalog, log)
	orders := orderapp.NewService(env.orders, payments,
		storage.NewStubObjectStorage("https://files.coltech.test"),
		printing.NewInvoiceRenderer(nil, log),
		orderapp.Config{
			Company:    orderapp.CompanyInfo{Name: "COLTECH LIMITED", KRAPIN: "P051234567X"},
			DueDays:    14,
			LinkExpiry: time.Hour,
		}, log)

	wizard := checkout.NewWizard(cache.NewSessionStore(mem, "checkout", time.Hour),
		carts, env.orders, payments, installations, log)
	wizard.SetNotifier(notifier)
	wizard.SetIdempotencyStore(cache.NewIdempotencyStore(mem, "idem:"), time.Minute)

	licenseService := licensingapp.NewService(env.licenses, certificates, notifier, log)
	licenseService.SetWarningStore(cache.NewIdempotencyStore(mem, "warned:"))

	authService := identityapp.NewAuthService(
		mock.NewAuthService(4),
		auth.NewJWTService(config.JWTConfig{
			Secret:                 "handler-test-secret-32-characters",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "coltech-test",
		}),
		auth.NewStoreTokenBlacklist(mem),
		cache.NewSessionStore(mem, "auth", 24*time.Hour),
		log,
	)

	catalogH := NewCatalogHandler(products)
	cartH := NewCartHandler(carts)
	checkoutH := NewCheckoutHandler(wizard, loc)
	orderH := NewOrderHandler(orders)
	installH := NewInstallationHandler(installations, loc)
	licenseH := NewLicensingHandler(licenseService)
	verifyH := NewVerificationHandler(verification.NewWizard(
		cache.NewSessionStore(mem, "verification", time.Hour), certificates, log))
	authH := NewAuthHandler(authService)
	contentH := NewContentHandler(mock.NewBlogService(), contact.NewService(notifier, log))
	requireAuth := middleware.JWTAuth(authService, log)

	engine := gin.New()
	engine.Use(middleware.Session(middleware.DefaultSessionConfig()))
	api := engine.Group("/api/v1")

	api.GET("/products", catalogH.List)
	api.GET("/products/search", catalogH.Search)
	api.GET("/products/mdvrs", catalogH.MDVRs)
	api.GET("/products/cameras", catalogH.Cameras)
	api.GET("/products/:id", catalogH.Get)
	api.GET("/products/:id/stock", catalogH.Stock)
	api.GET("/packages", catalogH.Packages)
	api.POST("/packages/custom", catalogH.BuildCustomPackage)

	api.GET("/cart", cartH.Get)
	api.DELETE("/cart", cartH.Clear)
	api.POST("/cart/items", cartH.AddItem)
	api.PUT("/cart/items/:productId", cartH.UpdateItem)
	api.DELETE("/cart/items/:productId", cartH.RemoveItem)

	co := api.Group("/checkout", middleware.OptionalJWTAuth(authService, log))
	co.GET("", checkoutH.State)
	co.DELETE("", checkoutH.Reset)
	co.POST("/start", checkoutH.Start)
	co.POST("/shipping", checkoutH.SubmitShipping)
	co.POST("/installation", checkoutH.SubmitInstallation)
	co.POST("/back", checkoutH.Back)
	co.POST("/payment", checkoutH.SubmitPayment)

	api.POST("/orders/track", orderH.Track)
	api.GET("/orders/mine", requireAuth, orderH.Mine)
	api.GET("/orders/guest", requireAuth, orderH.GuestOrders)
	api.GET("/orders/:id/confirmation", orderH.Confirmation)
	api.GET("/orders/:id/payment", orderH.PaymentStatus)
	api.POST("/orders/:id/invoice", orderH.GenerateInvoice)
	api.PATCH("/orders/:id/status", requireAuth, orderH.UpdateStatus)

	api.GET("/garages", installH.ListGarages)
	api.GET("/garages/:id", installH.GetGarage)
	api.GET("/garages/:id/slots", installH.Slots)
	api.POST("/appointments", installH.ScheduleAppointment)

	api.GET("/licenses/vehicle/:reg", licenseH.ByVehicle)
	api.GET("/licenses/check/:reg", licenseH.CheckStatus)
	api.GET("/licenses/renewal-price", licenseH.RenewalPrice)
	api.GET("/licenses/mine", requireAuth, licenseH.Mine)
	api.POST("/licenses/activate", licenseH.Activate)
	api.POST("/licenses/:id/renew", licenseH.Renew)
	api.POST("/certificates", licenseH.IssueCertificate)

	api.GET("/verification", verifyH.State)
	api.DELETE("/verification", verifyH.Reset)
	api.POST("/verification/details", verifyH.SubmitDetails)
	api.POST("/verification/otp", verifyH.SubmitOTP)
	api.POST("/verification/qr", verifyH.SubmitQRCode)

	api.POST("/auth/login", authH.Login)
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/refresh", authH.RefreshToken)
	api.POST("/auth/forgot-password", authH.ForgotPassword)
	api.POST("/auth/logout", requireAuth, authH.Logout)
	api.GET("/auth/me", requireAuth, authH.Me)
	api.POST("/auth/resend-verification", requireAuth, authH.ResendVerification)

	api.GET("/blog/posts", contentH.ListPosts)
	api.GET("/blog/posts/recent", contentH.RecentPosts)
	api.GET("/blog/posts/:slug", contentH.GetPost)
	api.POST("/contact", contentH.SubmitContact)

	env.engine = engine
	return env
}

type requestOption func(*http.Request)

func withSession(id string) requestOption {
	return func(r *http.Request) { r.Header.Set("X-Session-ID", id) }
}

func withBearer(token string) requestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func (e *testEnv) do(t *testing.T, method, path string, body any, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a success envelope into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.True(t, envelope.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// errorCode returns the error code of a failure envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}
