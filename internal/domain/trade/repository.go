package trade

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderRepository persists orders for backends that keep them locally.
// Finders return shared.ErrNotFound when nothing matches.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByUser(ctx context.Context, userID string) ([]Order, error)
	FindByEmail(ctx context.Context, email string) ([]Order, error)
	FindByNumberAndEmail(ctx context.Context, orderNumber, email string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error
	UpdatePaymentMethod(ctx context.Context, id string, method PaymentMethod) error
	UpdateInvoice(ctx context.Context, id, invoiceURL, qrCode string) error
}

// PaymentTransaction records one payment attempt against an order
type PaymentTransaction struct {
	ID          string
	OrderID     string
	Method      PaymentMethod
	Amount      decimal.Decimal
	Status      TransactionStatus
	Reference   string
	Message     string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// TransactionRepository persists payment attempts
type TransactionRepository interface {
	Save(ctx context.Context, tx *PaymentTransaction) error
	FindByID(ctx context.Context, id string) (*PaymentTransaction, error)
	// FindLatestByOrder returns the most recent attempt for the order
	FindLatestByOrder(ctx context.Context, orderID string) (*PaymentTransaction, error)
}
