package cart

import (
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds a product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=100"`
}

// UpdateItemRequest sets a line quantity; zero removes the line
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0,max=100"`
}

// ItemResponse is one cart line
type ItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	ImageURL  string          `json:"image_url,omitempty"`
	Category  string          `json:"category,omitempty"`
}

// Response is the cart with its totals
type Response struct {
	ID        string          `json:"id"`
	Items     []ItemResponse  `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	ItemCount int             `json:"item_count"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToResponse converts a cart
func ToResponse(c *cart.Cart) Response {
	items := make([]ItemResponse, len(c.Items))
	for i, it := range c.Items {
		items[i] = ItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
			ImageURL:  it.ImageURL,
			Category:  it.Category,
		}
	}
	total := c.Total()
	return Response{
		ID:        c.ID,
		Items:     items,
		Total:     total.Amount(),
		Currency:  string(total.Currency()),
		ItemCount: c.Count(),
		UpdatedAt: c.UpdatedAt,
	}
}
