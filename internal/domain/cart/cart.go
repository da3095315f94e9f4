package cart

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Item is one line in a cart. Name and price are snapshotted when the
// product is added so the cart can be rendered without the catalog.
type Item struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	ImageURL       string          `json:"image_url,omitempty"`
	Category       string          `json:"category,omitempty"`
	Customizations map[string]any  `json:"customizations,omitempty"`
}

// LineTotal returns price * quantity
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the session-owned shopping cart
type Cart struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an empty cart
func New() *Cart {
	now := time.Now()
	return &Cart{
		ID:        uuid.New().String(),
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Add puts an item in the cart. A missing quantity counts as one; adding a
// product that is already present increases its quantity.
func (c *Cart) Add(item Item) error {
	if strings.TrimSpace(item.ProductID) == "" {
		return shared.NewDomainError("INVALID_CART_ITEM", "Product ID cannot be empty")
	}
	if item.Quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}

	if idx := c.indexOf(item.ProductID); idx >= 0 {
		c.Items[idx].Quantity += item.Quantity
	} else {
		c.Items = append(c.Items, item)
	}
	c.touch()
	return nil
}

// Remove drops a product from the cart
func (c *Cart) Remove(productID string) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.touch()
}

// Update sets the quantity of a product; zero or less removes it
func (c *Cart) Update(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	c.Items[idx].Quantity = quantity
	c.touch()
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.touch()
}

// Get returns the line for a product
func (c *Cart) Get(productID string) (Item, bool) {
	if idx := c.indexOf(productID); idx >= 0 {
		return c.Items[idx], true
	}
	return Item{}, false
}

// Total returns the sum of price * quantity over all lines
func (c *Cart) Total() valueobject.Money {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return valueobject.NewMoneyKES(total)
}

// Count returns the number of units in the cart
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Fingerprint identifies the cart contents. Two carts with the same lines at
// the same prices share a fingerprint regardless of line order.
func (c *Cart) Fingerprint() string {
	lines := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, fmt.Sprintf("%s:%d:%s", item.ProductID, item.Quantity, item.Price.String()))
	}
	sort.Strings(lines)
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}

// ErrCorrupt is returned by Store.Load when the stored cart cannot be decoded
var ErrCorrupt = errors.New("cart: stored cart is corrupt")

// Store persists carts by session key
type Store interface {
	// Load returns the cart for key, or nil when there is none
	Load(ctx context.Context, key string) (*Cart, error)
	Save(ctx context.Context, key string, cart *Cart) error
	Delete(ctx context.Context, key string) error
}
