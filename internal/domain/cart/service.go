package cart

import (
	"context"

	"github.com/maxwelladwale/coltech/internal/domain/catalog"
)

// CustomPackageRequest selects the products for a custom package
type CustomPackageRequest struct {
	MDVRID       string
	CameraIDs    []string
	AccessoryIDs []string
}

// CartService is the backend contract for carts owned by the backend.
// userID may be empty for guest carts.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*Cart, error)
	AddToCart(ctx context.Context, userID string, item Item) (*Cart, error)
	UpdateCartItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error)
	RemoveFromCart(ctx context.Context, userID, productID string) (*Cart, error)
	ClearCart(ctx context.Context, userID string) error
	BuildCustomPackage(ctx context.Context, req CustomPackageRequest) (*catalog.CustomPackage, error)
}
