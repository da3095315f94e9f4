package trade

import "context"

// OrderService is the backend contract for orders
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	GetOrdersByUser(ctx context.Context, userID string) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) (*Order, error)
	GenerateInvoice(ctx context.Context, orderID string) (*Invoice, error)
	// FindOrderByNumberAndEmail returns nil without error when no order matches
	FindOrderByNumberAndEmail(ctx context.Context, orderNumber, email string) (*Order, error)
	GetOrdersByEmail(ctx context.Context, email string) ([]Order, error)
}

// PaymentService processes storefront payments
type PaymentService interface {
	InitiateMpesaPayment(ctx context.Context, req MpesaPaymentRequest) (*PaymentResult, error)
	ProcessCardPayment(ctx context.Context, req CardPaymentRequest) (*PaymentResult, error)
	GenerateBankTransferReference(ctx context.Context, req BankTransferRequest) (*BankTransferReference, error)
	VerifyPayment(ctx context.Context, transactionID string) (*PaymentVerification, error)
	CheckPaymentStatus(ctx context.Context, orderID string) (*OrderPaymentStatus, error)
}
