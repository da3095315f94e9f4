package order

import (
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// TrackOrderRequest looks up a guest order
type TrackOrderRequest struct {
	OrderNumber string `json:"order_number" binding:"required,max=50"`
	Email       string `json:"email" binding:"required,email"`
}

// UpdateStatusRequest moves an order to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed processing shipped delivered cancelled"`
}

// ListByEmailQuery lists guest orders by email
type ListByEmailQuery struct {
	Email string `form:"email" binding:"required,email"`
}

// OrderItemResponse is one order line in API responses
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                  string                     `json:"id"`
	OrderNumber         string                     `json:"order_number"`
	UserID              string                     `json:"user_id,omitempty"`
	Items               []OrderItemResponse        `json:"items"`
	Subtotal            decimal.Decimal            `json:"subtotal"`
	Tax                 *decimal.Decimal           `json:"tax,omitempty"`
	Shipping            *decimal.Decimal           `json:"shipping,omitempty"`
	Total               decimal.Decimal            `json:"total"`
	Status              string                     `json:"status"`
	ShippingAddress     trade.ShippingAddress      `json:"shipping_address"`
	InstallationDetails *trade.InstallationDetails `json:"installation_details,omitempty"`
	PaymentMethod       string                     `json:"payment_method"`
	PaymentStatus       string                     `json:"payment_status"`
	InvoiceURL          string                     `json:"invoice_url,omitempty"`
	InvoiceQRCode       string                     `json:"invoice_qr_code,omitempty"`
	CreatedAt           time.Time                  `json:"created_at"`
	UpdatedAt           time.Time                  `json:"updated_at"`
}

// ConfirmationResponse is the order confirmation page payload
type ConfirmationResponse struct {
	Order     OrderResponse `json:"order"`
	NextSteps []string      `json:"next_steps"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	OrderID       string          `json:"order_id"`
	QRCode        string          `json:"qr_code"`
	DownloadURL   string          `json:"download_url"`
	ContentType   string          `json:"content_type,omitempty"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	Total         decimal.Decimal `json:"total"`
}

// PaymentStatusResponse is the payment state of an order
type PaymentStatusResponse struct {
	OrderID       string     `json:"order_id"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transaction_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

// ToOrderResponse converts a domain order to a response
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		}
	}
	return OrderResponse{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		UserID:              o.UserID,
		Items:               items,
		Subtotal:            o.Subtotal,
		Tax:                 o.Tax,
		Shipping:            o.Shipping,
		Total:               o.Total,
		Status:              string(o.Status),
		ShippingAddress:     o.ShippingAddress,
		InstallationDetails: o.InstallationDetails,
		PaymentMethod:       o.PaymentMethod,
		PaymentStatus:       string(o.PaymentStatus),
		InvoiceURL:          o.InvoiceURL,
		InvoiceQRCode:       o.InvoiceQRCode,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

// ToOrderResponses converts a list of orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

// ToConfirmationResponse converts a confirmation
func ToConfirmationResponse(c *Confirmation) ConfirmationResponse {
	return ConfirmationResponse{Order: ToOrderResponse(c.Order), NextSteps: c.NextSteps}
}

// ToInvoiceResponse converts a domain invoice
func ToInvoiceResponse(inv *trade.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		OrderID:       inv.OrderID,
		QRCode:        inv.QRCode,
		DownloadURL:   inv.DownloadURL,
		ContentType:   inv.ContentType,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Total:         inv.Total,
	}
}

// ToPaymentStatusResponse converts an order payment status
func ToPaymentStatusResponse(orderID string, s *trade.OrderPaymentStatus) PaymentStatusResponse {
	return PaymentStatusResponse{
		OrderID:       orderID,
		Status:        string(s.Status),
		TransactionID: s.TransactionID,
		PaidAt:        s.PaidAt,
	}
}
