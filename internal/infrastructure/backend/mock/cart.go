package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/maxwelladwale/coltech/internal/domain/cart"
	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
)

const guestCartKey = "guest"

// CartService keeps backend-side carts in memory and builds custom packages
// from whatever ProductService it is given.
type CartService struct {
	products catalog.ProductService

	mu    sync.Mutex
	carts map[string]*cart.Cart
}

var _ cart.CartService = (*CartService)(nil)

// NewCartService creates a CartService
func NewCartService(products catalog.ProductService) *CartService {
	return &CartService{
		products: products,
		carts:    make(map[string]*cart.Cart),
	}
}

func cartKey(userID string) string {
	if userID == "" {
		return guestCartKey
	}
	return userID
}

// cartFor returns the cart for userID, creating it. Callers hold s.mu.
func (s *CartService) cartFor(userID string) *cart.Cart {
	key := cartKey(userID)
	c, ok := s.carts[key]
	if !ok {
		c = cart.New()
		c.UserID = userID
		s.carts[key] = c
	}
	return c
}

func snapshot(c *cart.Cart) *cart.Cart {
	cp := *c
	cp.Items = append([]cart.Item(nil), c.Items...)
	return &cp
}

// GetCart returns the user's cart
func (s *CartService) GetCart(_ context.Context, userID string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.cartFor(userID)), nil
}

// AddToCart prices the item from the catalog and adds it
func (s *CartService) AddToCart(ctx context.Context, userID string, item cart.Item) (*cart.Cart, error) {
	product, err := s.products.GetProductByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsPurchasable() {
		return nil, shared.NewDomainError(shared.ErrInsufficientStock.Code, product.Name+" is out of stock")
	}
	item.Name = product.Name
	item.Price = product.Price
	item.ImageURL = product.ImageURL
	item.Category = string(product.Category)

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartFor(userID)
	if err := c.Add(item); err != nil {
		return nil, err
	}
	return snapshot(c), nil
}

// UpdateCartItem sets a line quantity
func (s *CartService) UpdateCartItem(_ context.Context, userID, productID string, quantity int) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartFor(userID)
	c.Update(productID, quantity)
	return snapshot(c), nil
}

// RemoveFromCart drops a line
func (s *CartService) RemoveFromCart(_ context.Context, userID, productID string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartFor(userID)
	c.Remove(productID)
	return snapshot(c), nil
}

// ClearCart empties the cart
func (s *CartService) ClearCart(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartKey(userID))
	return nil
}

// BuildCustomPackage assembles a package around one MDVR
func (s *CartService) BuildCustomPackage(ctx context.Context, req cart.CustomPackageRequest) (*catalog.CustomPackage, error) {
	mdvr, err := s.findMDVR(ctx, req.MDVRID)
	if err != nil {
		return nil, err
	}

	cameras, err := s.lookup(ctx, req.CameraIDs, func(p *catalog.Product) bool {
		return p.Category == catalog.CategoryCamera
	})
	if err != nil {
		return nil, err
	}
	accessories, err := s.lookup(ctx, req.AccessoryIDs, func(p *catalog.Product) bool {
		return p.Category == catalog.CategoryCable || p.Category == catalog.CategoryAccessory
	})
	if err != nil {
		return nil, err
	}

	return catalog.NewCustomPackage(*mdvr, cameras, accessories)
}

func (s *CartService) findMDVR(ctx context.Context, id string) (*catalog.MDVRProduct, error) {
	if id == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "An MDVR must be selected")
	}
	mdvrs, err := s.products.GetMDVRProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range mdvrs {
		if mdvrs[i].ID == id {
			return &mdvrs[i], nil
		}
	}
	return nil, shared.NewDomainError(shared.ErrNotFound.Code, "MDVR "+id+" not found")
}

func (s *CartService) lookup(ctx context.Context, ids []string, allowed func(*catalog.Product) bool) ([]catalog.Product, error) {
	products := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.products.GetProductByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError(shared.ErrNotFound.Code, "Product "+id+" not found")
			}
			return nil, err
		}
		if !allowed(p) {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, p.Name+" cannot be used in this slot of a custom package")
		}
		products = append(products, *p)
	}
	return products, nil
}
