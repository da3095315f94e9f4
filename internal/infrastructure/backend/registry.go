// Package backend selects the commerce backend the storefront talks to.
package backend

import (
	"fmt"
	"net/http"

	"github.com/maxwelladwale/coltech/internal/domain/cart"
	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/maxwelladwale/coltech/internal/domain/content"
	"github.com/maxwelladwale/coltech/internal/domain/identity"
	"github.com/maxwelladwale/coltech/internal/domain/installation"
	"github.com/maxwelladwale/coltech/internal/domain/licensing"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/maxwelladwale/coltech/internal/infrastructure/backend/laravel"
	"github.com/maxwelladwale/coltech/internal/infrastructure/backend/mock"
	"github.com/maxwelladwale/coltech/internal/infrastructure/config"
	"github.com/maxwelladwale/coltech/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrOdooNotImplemented is returned by every getter of the odoo backend
var ErrOdooNotImplemented = shared.NewDomainError(shared.ErrNotImplemented.Code, "Odoo backend not yet implemented")

// Dependencies are the shared resources backends are built from
type Dependencies struct {
	// DB stores payment attempts and, for the mock backend, orders
	DB         *gorm.DB
	Logger     *zap.Logger
	HTTPClient *http.Client // optional, replaces the traced default client
	BcryptCost int          // mock auth; zero means bcrypt.DefaultCost
}

// Registry holds one implementation of every backend service
type Registry struct {
	kind string
	err  error

	products      catalog.ProductService
	carts         cart.CartService
	orders        trade.OrderService
	payments      trade.PaymentService
	installations installation.InstallationService
	licenses      licensing.LicenseService
	certificates  licensing.CertificateService
	auth          identity.AuthService
	blog          content.BlogService
}

// NewRegistry builds the services for cfg.Backend.Type. Unknown types fail.
func NewRegistry(cfg *config.Config, deps Dependencies) (*Registry, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	r := &Registry{kind: cfg.Backend.Type}

	switch cfg.Backend.Type {
	case config.BackendMock, "":
		r.kind = config.BackendMock
		if deps.DB == nil {
			return nil, fmt.Errorf("mock backend requires a database")
		}
		r.buildMock(cfg, deps)
	case config.BackendLaravel:
		if deps.DB == nil {
			return nil, fmt.Errorf("laravel backend requires a database for payment records")
		}
		r.buildLaravel(cfg, deps)
	case config.BackendOdoo:
		r.err = ErrOdooNotImplemented
	default:
		return nil, fmt.Errorf("unknown backend type %q", cfg.Backend.Type)
	}

	deps.Logger.Info("Commerce backend selected",
		zap.String("type", r.kind),
		zap.String("base_url", cfg.Backend.BaseURL),
	)
	return r, nil
}

func paymentConfig(cfg config.PaymentConfig) mock.PaymentConfig {
	pc := mock.DefaultPaymentConfig()
	if cfg.MpesaDelay > 0 {
		pc.MpesaDelay = cfg.MpesaDelay
	}
	if cfg.CardDelay > 0 {
		pc.CardDelay = cfg.CardDelay
	}
	if cfg.MpesaSuccessRate > 0 {
		pc.MpesaSuccessRate = cfg.MpesaSuccessRate
	}
	if cfg.CardSuccessRate > 0 {
		pc.CardSuccessRate = cfg.CardSuccessRate
	}
	return pc
}

func (r *Registry) buildMock(cfg *config.Config, deps Dependencies) {
	orderRepo := persistence.NewGormOrderRepository(deps.DB)
	txRepo := persistence.NewGormTransactionRepository(deps.DB)
	cat := mock.NewCatalog()

	cost := deps.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	r.products = cat
	r.carts = mock.NewCartService(cat)
	r.orders = mock.NewOrderService(orderRepo, cat, deps.Logger)
	r.payments = mock.NewPaymentService(paymentConfig(cfg.Payment), txRepo, deps.Logger,
		mock.WithOrderRepository(orderRepo))
	r.installations = mock.NewInstallationService()
	r.licenses = mock.NewLicenseService(orderRepo, cat)
	r.certificates = mock.NewCertificateService(orderRepo, deps.Logger)
	r.auth = mock.NewAuthService(cost)
	r.blog = mock.NewBlogService()
}

func (r *Registry) buildLaravel(cfg *config.Config, deps Dependencies) {
	var opts []laravel.ClientOption
	if deps.HTTPClient != nil {
		opts = append(opts, laravel.WithHTTPClient(deps.HTTPClient))
	}
	client := laravel.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, deps.Logger, opts...)
	products := laravel.NewProductService(client)

	r.products = products
	r.carts = mock.NewCartService(products)
	r.orders = laravel.NewOrderService(client)
	r.payments = mock.NewPaymentService(paymentConfig(cfg.Payment),
		persistence.NewGormTransactionRepository(deps.DB), deps.Logger)
	r.installations = laravel.NewInstallationService(client)
	r.licenses = laravel.NewLicenseService(client)
	r.certificates = laravel.NewCertificateService(client)
	r.auth = laravel.NewAuthService(client)
	r.blog = laravel.BlogService{}
}

// Kind returns the selected backend type
func (r *Registry) Kind() string {
	return r.kind
}

// Products returns the catalog service
func (r *Registry) Products() (catalog.ProductService, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.products, nil
}

// Carts returns the cart service
func (r *Registry) Carts() (cart.CartService, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.carts, nil
}

// Orders returns the order service
func (r *Registry) Orders() (trade.OrderService, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.orders, nil
}

// Payments returns the payment service
func (r *Registry) Payments() (trade.PaymentService, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.payments, nil
}

// Installations returns the garage and appointment service
func (r *Registry) Installations() (installation.InstallationService, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.installations, nil
}

// Licenses returns the license service
func (r *Registry) Licenses() (licensing.LicenseService, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.licenses, nil
}

// Certificates returns the certificate and OTP service
func (r *Registry) Certificates() (licensing.CertificateService, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.certificates, nil
}

// Auth returns the backend authentication service
func (r *Registry) Auth() (identity.AuthService, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.auth, nil
}

// Blog returns the blog service
func (r *Registry) Blog() (content.BlogService, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.blog, nil
}
