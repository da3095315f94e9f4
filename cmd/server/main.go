package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	cartapp "github.com/maxwelladwale/coltech/internal/application/cart"
	catalogapp "github.com/maxwelladwale/coltech/internal/application/catalog"
	"github.com/maxwelladwale/coltech/internal/application/checkout"
	"github.com/maxwelladwale/coltech/internal/application/contact"
	identityapp "github.com/maxwelladwale/coltech/internal/application/identity"
	licensingapp "github.com/maxwelladwale/coltech/internal/application/licensing"
	orderapp "github.com/maxwelladwale/coltech/internal/application/order"
	"github.com/maxwelladwale/coltech/internal/application/verification"
	"github.com/maxwelladwale/coltech/internal/infrastructure/auth"
	"github.com/maxwelladwale/coltech/internal/infrastructure/backend"
	"github.com/maxwelladwale/coltech/internal/infrastructure/cache"
	"github.com/maxwelladwale/coltech/internal/infrastructure/config"
	"github.com/maxwelladwale/coltech/internal/infrastructure/logger"
	"github.com/maxwelladwale/coltech/internal/infrastructure/migration"
	"github.com/maxwelladwale/coltech/internal/infrastructure/notification"
	"github.com/maxwelladwale/coltech/internal/infrastructure/persistence"
	"github.com/maxwelladwale/coltech/internal/infrastructure/printing"
	"github.com/maxwelladwale/coltech/internal/infrastructure/storage"
	"github.com/maxwelladwale/coltech/internal/infrastructure/telemetry"
	"github.com/maxwelladwale/coltech/internal/interfaces/http/handler"
	"github.com/maxwelladwale/coltech/internal/interfaces/http/middleware"
	"github.com/maxwelladwale/coltech/internal/interfaces/http/router"
	"github.com/maxwelladwale/coltech/migrations"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			COLTECH Storefront API
//	@version		1.0
//	@description	Storefront backend for COLTECH vehicle telematics: catalog, cart, checkout, licensing and certificate verification.

//	@contact.name	COLTECH Sales
//	@contact.email	sales@coltech.co.ke

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting COLTECH storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("backend", cfg.Backend.Type),
		zap.String("version", version),
	)

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal("Invalid time zone", zap.Error(err))
	}

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Order store
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := migrateOrderStore(&cfg.Database, db, log); err != nil {
		log.Fatal("Failed to prepare order store", zap.Error(err))
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfigFrom(cfg.Telemetry, cfg.Database), log)
		if err := plugin.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Database tracing disabled", zap.Error(err))
		}
	}
	log.Info("Order store ready", zap.String("driver", db.Driver))

	// Key-value store for sessions, carts, catalog cache and token revocation
	store, err := cache.NewStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer func() {
		_ = store.Close()
	}()

	// Commerce backend
	registry, err := backend.NewRegistry(cfg, backend.Dependencies{DB: db.DB, Logger: log})
	if err != nil {
		log.Fatal("Failed to select commerce backend", zap.Error(err))
	}
	services, err := resolveBackend(registry)
	if err != nil {
		log.Fatal("Commerce backend is not usable", zap.String("type", registry.Kind()), zap.Error(err))
	}

	// Notifications
	publisher := notification.NewPublisher(cfg.Messaging, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Error closing notification publisher", zap.Error(err))
		}
	}()
	notifier := notification.NewService(publisher, services.orders, log)

	// Invoices
	documents, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize document storage", zap.Error(err))
	}
	var rendererOpts []printing.InvoiceRendererOption
	if cfg.Invoice.PDFEnabled {
		rendererOpts = append(rendererOpts, printing.WithPDFRenderer(printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Invoice.RenderTimeout,
			RemoteURL:      cfg.Invoice.ChromeRemoteURL,
			NoSandbox:      true,
			Logger:         log,
		})))
	}
	invoiceRenderer := printing.NewInvoiceRenderer(nil, log, rendererOpts...)
	defer func() {
		_ = invoiceRenderer.Close()
	}()

	// Application services
	catalogOpts := []catalogapp.ServiceOption{catalogapp.WithLogger(log)}
	if cfg.Cache.Enabled {
		catalogOpts = append(catalogOpts, catalogapp.WithCache(store, cfg.Cache.CatalogTTL))
	}
	productService := catalogapp.NewProductService(services.products, services.carts, catalogOpts...)
	cartService := cartapp.NewService(cache.NewCartStore(store, cfg.Session.TTL), services.products, log)
	orderService := orderapp.NewService(services.orders, services.payments, documents, invoiceRenderer,
		orderapp.Config{
			Company: orderapp.CompanyInfo{
				Name:    cfg.Invoice.CompanyName,
				Address: cfg.Invoice.CompanyAddress,
				Phone:   cfg.Invoice.CompanyPhone,
				Email:   cfg.Invoice.CompanyEmail,
				KRAPIN:  cfg.Invoice.CompanyKRAPIN,
				Website: cfg.App.PublicURL,
			},
			DueDays:    cfg.Invoice.DueDays,
			LinkExpiry: cfg.Storage.PresignExpiration,
		}, log)

	wizard := checkout.NewWizard(cache.NewSessionStore(store, "checkout", cfg.Session.TTL),
		cartService, services.orders, services.payments, services.installations, log)
	wizard.SetNotifier(notifier)
	wizard.SetIdempotencyStore(cache.NewIdempotencyStore(store, "checkout:idem:"), cfg.Payment.IdempotencyTTL)

	licenseService := licensingapp.NewService(services.licenses, services.certificates, notifier, log)
	licenseService.SetWarningStore(cache.NewIdempotencyStore(store, "license:warned:"))

	verificationWizard := verification.NewWizard(
		cache.NewSessionStore(store, "verification", cfg.Session.TTL), services.certificates, log)

	jwtConfig := cfg.JWT
	if jwtConfig.Secret == "" {
		jwtConfig.Secret = uuid.NewString() + uuid.NewString()
		log.Warn("jwt.secret is not set; tokens are signed with a per-process key and die with restarts")
	}
	authService := identityapp.NewAuthService(
		services.auth,
		auth.NewJWTService(jwtConfig),
		auth.NewStoreTokenBlacklist(store),
		cache.NewSessionStore(store, "auth", cfg.JWT.RefreshTokenExpiration),
		log,
	)

	// HTTP
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, registry.Kind())
	systemHandler.AddCheck("database", db)
	systemHandler.AddCheck("cache", store)

	handlers := router.Handlers{
		Catalog:      handler.NewCatalogHandler(productService),
		Cart:         handler.NewCartHandler(cartService),
		Checkout:     handler.NewCheckoutHandler(wizard, loc),
		Order:        handler.NewOrderHandler(orderService),
		Installation: handler.NewInstallationHandler(services.installations, loc),
		Licensing:    handler.NewLicensingHandler(licenseService),
		Verification: handler.NewVerificationHandler(verificationWizard),
		Auth:         handler.NewAuthHandler(authService),
		Content:      handler.NewContentHandler(services.blog, contact.NewService(notifier, log)),
		System:       systemHandler,
	}
	guards := router.Guards{
		RequireAuth:  middleware.JWTAuth(authService, log),
		OptionalAuth: middleware.OptionalJWTAuth(authService, log),
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-Session-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.MetricsEnabled {
		metrics := middleware.NewHTTPMetrics(middleware.DefaultHTTPMetricsConfig())
		engine.Use(metrics.Middleware())
		engine.GET("/metrics", metrics.Handler())
	}

	engine.GET("/health", systemHandler.Health)

	var apiMiddleware []gin.HandlerFunc
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		guards.AuthRateLimit = middleware.AuthRateLimit(authLimiter)
	}
	apiMiddleware = append(apiMiddleware,
		middleware.Session(middleware.SessionConfigFrom(cfg.Session)),
		middleware.SpanEnricher(),
	)

	router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAPIMiddleware(apiMiddleware...),
	).Register(router.StorefrontGroups(handlers, guards)...).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// migrateOrderStore applies the versioned schema on Postgres and lets GORM
// create the tables on sqlite
func migrateOrderStore(cfg *config.DatabaseConfig, db *persistence.Database, log *zap.Logger) error {
	if db.Driver != "postgres" {
		return db.AutoMigrate()
	}
	// The migrator closes its connection, so it gets its own pool.
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	m, err := migration.New(sqlDB, migrations.FS, log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Error closing migrator", zap.Error(err))
		}
	}()
	return m.Up()
}
