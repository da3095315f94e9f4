package router

import (
	"github.com/gin-gonic/gin"
	"github.com/maxwelladwale/coltech/internal/interfaces/http/handler"
)

// Handlers are the storefront API handlers
type Handlers struct {
	Catalog      *handler.CatalogHandler
	Cart         *handler.CartHandler
	Checkout     *handler.CheckoutHandler
	Order        *handler.OrderHandler
	Installation *handler.InstallationHandler
	Licensing    *handler.LicensingHandler
	Verification *handler.VerificationHandler
	Auth         *handler.AuthHandler
	Content      *handler.ContentHandler
	System       *handler.SystemHandler
}

// Guards are the per-route middleware
type Guards struct {
	// RequireAuth rejects requests without a valid access token
	RequireAuth gin.HandlerFunc
	// OptionalAuth attaches the customer when a valid token is sent
	OptionalAuth gin.HandlerFunc
	// AuthRateLimit throttles credential endpoints
	AuthRateLimit gin.HandlerFunc
}

func (g Guards) withDefaults() Guards {
	pass := func(c *gin.Context) { c.Next() }
	if g.RequireAuth == nil {
		g.RequireAuth = pass
	}
	if g.OptionalAuth == nil {
		g.OptionalAuth = pass
	}
	if g.AuthRateLimit == nil {
		g.AuthRateLimit = pass
	}
	return g
}

// StorefrontGroups returns the /api/v1 route groups
func StorefrontGroups(h Handlers, guards Guards) []RouteRegistrar {
	g := guards.withDefaults()

	products := NewDomainGroup("catalog", "/products").
		GET("", h.Catalog.List).
		GET("/search", h.Catalog.Search).
		GET("/mdvrs", h.Catalog.MDVRs).
		GET("/cameras", h.Catalog.Cameras).
		GET("/:id", h.Catalog.Get).
		GET("/:id/stock", h.Catalog.Stock)

	packages := NewDomainGroup("packages", "/packages").
		GET("", h.Catalog.Packages).
		POST("/custom", h.Catalog.BuildCustomPackage)

	cart := NewDomainGroup("cart", "/cart").
		GET("", h.Cart.Get).
		DELETE("", h.Cart.Clear).
		POST("/items", h.Cart.AddItem).
		PUT("/items/:productId", h.Cart.UpdateItem).
		DELETE("/items/:productId", h.Cart.RemoveItem)

	checkout := NewDomainGroup("checkout", "/checkout").
		Use(g.OptionalAuth).
		GET("", h.Checkout.State).
		DELETE("", h.Checkout.Reset).
		POST("/start", h.Checkout.Start).
		POST("/shipping", h.Checkout.SubmitShipping).
		POST("/installation", h.Checkout.SubmitInstallation).
		POST("/back", h.Checkout.Back).
		POST("/payment", h.Checkout.SubmitPayment)

	orders := NewDomainGroup("orders", "/orders").
		POST("/track", h.Order.Track).
		GET("/mine", g.RequireAuth, h.Order.Mine).
		GET("/guest", g.RequireAuth, h.Order.GuestOrders).
		GET("/:id/confirmation", h.Order.Confirmation).
		GET("/:id/payment", h.Order.PaymentStatus).
		POST("/:id/invoice", h.Order.GenerateInvoice).
		PATCH("/:id/status", g.RequireAuth, h.Order.UpdateStatus)

	garages := NewDomainGroup("garages", "/garages").
		GET("", h.Installation.ListGarages).
		GET("/:id", h.Installation.GetGarage).
		GET("/:id/slots", h.Installation.Slots)

	appointments := NewDomainGroup("appointments", "/appointments").
		POST("", h.Installation.ScheduleAppointment)

	licenses := NewDomainGroup("licenses", "/licenses").
		GET("/vehicle/:reg", h.Licensing.ByVehicle).
		GET("/check/:reg", h.Licensing.CheckStatus).
		GET("/renewal-price", h.Licensing.RenewalPrice).
		GET("/mine", g.RequireAuth, h.Licensing.Mine).
		POST("/activate", h.Licensing.Activate).
		POST("/:id/renew", h.Licensing.Renew)

	certificates := NewDomainGroup("certificates", "/certificates").
		POST("", h.Licensing.IssueCertificate)

	verification := NewDomainGroup("verification", "/verification").
		GET("", h.Verification.State).
		DELETE("", h.Verification.Reset).
		POST("/details", h.Verification.SubmitDetails).
		POST("/otp", h.Verification.SubmitOTP).
		POST("/qr", h.Verification.SubmitQRCode)

	auth := NewDomainGroup("auth", "/auth")
	auth.Group("credentials", "").
		Use(g.AuthRateLimit).
		POST("/login", h.Auth.Login).
		POST("/register", h.Auth.Register).
		POST("/refresh", h.Auth.RefreshToken).
		POST("/forgot-password", h.Auth.ForgotPassword)
	auth.Group("session", "").
		Use(g.RequireAuth).
		POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.Me).
		POST("/resend-verification", h.Auth.ResendVerification)

	blog := NewDomainGroup("blog", "/blog").
		GET("/posts", h.Content.ListPosts).
		GET("/posts/recent", h.Content.RecentPosts).
		GET("/posts/:slug", h.Content.GetPost)

	contact := NewDomainGroup("contact", "/contact").
		POST("", h.Content.SubmitContact)

	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo).
		GET("/ping", h.System.Ping)

	return []RouteRegistrar{
		products, packages, cart, checkout, orders, garages, appointments,
		licenses, certificates, verification, auth, blog, contact, system,
	}
}
