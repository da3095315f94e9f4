package backend

import (
	"context"
	"testing"

	"github.com/maxwelladwale/coltech/internal/domain/content"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/infrastructure/backend/laravel"
	"github.com/maxwelladwale/coltech/internal/infrastructure/backend/mock"
	"github.com/maxwelladwale/coltech/internal/infrastructure/config"
	"github.com/maxwelladwale/coltech/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testDeps(t *testing.T) Dependencies {
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
	return Dependencies{DB: db.DB, Logger: zap.NewNop(), BcryptCost: bcrypt.MinCost}
}

func TestNewRegistry_Mock(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendConfig{Type: config.BackendMock}}
	reg, err := NewRegistry(cfg, testDeps(t))
	require.NoError(t, err)
	assert.Equal(t, config.BackendMock, reg.Kind())

	products, err := reg.Products()
	require.NoError(t, err)
	assert.IsType(t, &mock.Catalog{}, products)

	mdvrs, err := products.GetMDVRProducts(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, mdvrs)

	orders, err := reg.Orders()
	require.NoError(t, err)
	assert.NotNil(t, orders)
	payments, err := reg.Payments()
	require.NoError(t, err)
	assert.NotNil(t, payments)
}

func TestNewRegistry_Laravel(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendConfig{Type: config.BackendLaravel, BaseURL: "http://api.test/api"}}
	reg, err := NewRegistry(cfg, testDeps(t))
	require.NoError(t, err)

	products, err := reg.Products()
	require.NoError(t, err)
	assert.IsType(t, &laravel.ProductService{}, products)

	carts, err := reg.Carts()
	require.NoError(t, err)
	assert.IsType(t, &mock.CartService{}, carts)

	blog, err := reg.Blog()
	require.NoError(t, err)
	posts, err := blog.GetPosts(context.Background(), content.PostFilter{})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestNewRegistry_Odoo(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendConfig{Type: config.BackendOdoo}}
	reg, err := NewRegistry(cfg, Dependencies{})
	require.NoError(t, err)

	getters := map[string]func() error{
		"products":      func() error { _, err := reg.Products(); return err },
		"carts":         func() error { _, err := reg.Carts(); return err },
		"orders":        func() error { _, err := reg.Orders(); return err },
		"payments":      func() error { _, err := reg.Payments(); return err },
		"installations": func() error { _, err := reg.Installations(); return err },
		"licenses":      func() error { _, err := reg.Licenses(); return err },
		"certificates":  func() error { _, err := reg.Certificates(); return err },
		"auth":          func() error { _, err := reg.Auth(); return err },
		"blog":          func() error { _, err := reg.Blog(); return err },
	}
	for name, get := range getters {
		t.Run(name, func(t *testing.T) {
			err := get()
			assert.ErrorIs(t, err, shared.ErrNotImplemented)
			assert.EqualError(t, err, "Odoo backend not yet implemented")
		})
	}
}

func TestNewRegistry_Unknown(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendConfig{Type: "magento"}}
	_, err := NewRegistry(cfg, testDeps(t))
	assert.Error(t, err)
}

func TestPaymentConfig_Overrides(t *testing.T) {
	pc := paymentConfig(config.PaymentConfig{MpesaSuccessRate: 0.5})
	assert.Equal(t, 0.5, pc.MpesaSuccessRate)
	assert.Equal(t, mock.DefaultPaymentConfig().CardSuccessRate, pc.CardSuccessRate)
}
