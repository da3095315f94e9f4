package main

import (
	"github.com/maxwelladwale/coltech/internal/domain/cart"
	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/maxwelladwale/coltech/internal/domain/content"
	"github.com/maxwelladwale/coltech/internal/domain/identity"
	"github.com/maxwelladwale/coltech/internal/domain/installation"
	"github.com/maxwelladwale/coltech/internal/domain/licensing"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/maxwelladwale/coltech/internal/infrastructure/backend"
)

// backendServices are the registry's services resolved once at startup
type backendServices struct {
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

// resolveBackend fetches every service. A backend that cannot serve one of
// them (odoo) stops the server before it accepts traffic.
func resolveBackend(r *backend.Registry) (*backendServices, error) {
	var (
		s   backendServices
		err error
	)
	if s.products, err = r.Products(); err != nil {
		return nil, err
	}
	if s.carts, err = r.Carts(); err != nil {
		return nil, err
	}
	if s.orders, err = r.Orders(); err != nil {
		return nil, err
	}
	if s.payments, err = r.Payments(); err != nil {
		return nil, err
	}
	if s.installations, err = r.Installations(); err != nil {
		return nil, err
	}
	if s.licenses, err = r.Licenses(); err != nil {
		return nil, err
	}
	if s.certificates, err = r.Certificates(); err != nil {
		return nil, err
	}
	if s.auth, err = r.Auth(); err != nil {
		return nil, err
	}
	if s.blog, err = r.Blog(); err != nil {
		return nil, err
	}
	return &s, nil
}
