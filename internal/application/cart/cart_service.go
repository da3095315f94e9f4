package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/maxwelladwale/coltech/internal/domain/cart"
	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/shared/valueobject"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"go.uber.org/zap"
)

// Summary is a cart with its computed totals
type Summary struct {
	Cart  *cart.Cart
	Total valueobject.Money
	Count int
}

// Service manages the session cart
type Service struct {
	store    cart.Store
	products catalog.ProductService
	logger   *zap.Logger
}

// NewService creates a new cart Service
func NewService(store cart.Store, products catalog.ProductService, logger *zap.Logger) *Service {
	return &Service{store: store, products: products, logger: logger}
}

// Get returns the session's cart, an empty one when none is stored. A cart
// that no longer decodes is dropped and replaced with an empty one.
func (s *Service) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, err := s.store.Load(ctx, sessionID)
	if errors.Is(err, cart.ErrCorrupt) {
		s.logger.Warn("Discarding unreadable cart", zap.String("session_id", sessionID), zap.Error(err))
		if err := s.store.Delete(ctx, sessionID); err != nil {
			s.logger.Warn("Failed to delete unreadable cart", zap.String("session_id", sessionID), zap.Error(err))
		}
		return cart.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if c == nil {
		c = cart.New()
	}
	return c, nil
}

// Add snapshots the product into the cart. Unknown products and products
// that cannot be sold are rejected.
func (s *Service) Add(ctx context.Context, sessionID, productID string, quantity int) (*cart.Cart, error) {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsPurchasable() {
		return nil, shared.NewDomainError(shared.ErrInsufficientStock.Code, product.Name+" is out of stock")
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if quantity == 0 {
		quantity = 1
	}
	if product.StockQuantity != nil {
		existing, _ := c.Get(productID)
		if existing.Quantity+quantity > *product.StockQuantity {
			return nil, shared.NewDomainError(shared.ErrInsufficientStock.Code,
				fmt.Sprintf("Only %d of %s available", *product.StockQuantity, product.Name))
		}
	}

	if err := c.Add(cart.Item{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		ImageURL:  product.ImageURL,
		Category:  string(product.Category),
	}); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.logger.Debug("Cart item added",
		zap.String("session_id", sessionID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
	)
	return c, nil
}

// Update sets a line's quantity; zero or less removes the line
func (s *Service) Update(ctx context.Context, sessionID, productID string, quantity int) (*cart.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, ok := c.Get(productID); !ok {
		return nil, shared.NewDomainError(shared.ErrNotFound.Code, "Product is not in the cart")
	}
	c.Update(productID, quantity)
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return c, nil
}

// Remove drops a line from the cart
func (s *Service) Remove(ctx context.Context, sessionID, productID string) (*cart.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return c, nil
}

// Clear deletes the session's cart
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Summary returns the cart with its total and unit count
func (s *Service) Summary(ctx context.Context, sessionID string) (*Summary, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Summary{Cart: c, Total: c.Total(), Count: c.Count()}, nil
}

// Lines converts a cart into order lines
func Lines(c *cart.Cart) []trade.CartLine {
	lines := make([]trade.CartLine, len(c.Items))
	for i, item := range c.Items {
		lines[i] = trade.CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return lines
}
