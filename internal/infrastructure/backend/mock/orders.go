package mock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	orderapp "github.com/maxwelladwale/coltech/internal/application/order"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Pricing rules of the mock backend
var (
	VATRate          = decimal.NewFromFloat(0.16)
	FlatShippingRate = decimal.NewFromInt(500)
)

// OrderService creates and reads orders through an OrderRepository, pricing
// them from the mock catalog.
type OrderService struct {
	repo    trade.OrderRepository
	catalog *Catalog
	logger  *zap.Logger
	now     func() time.Time
}

var (
	_ trade.OrderService             = (*OrderService)(nil)
	_ orderapp.InvoiceRecorder       = (*OrderService)(nil)
	_ orderapp.PaymentMethodRecorder = (*OrderService)(nil)
)

// NewOrderService creates an OrderService
func NewOrderService(repo trade.OrderRepository, catalog *Catalog, logger *zap.Logger) *OrderService {
	return &OrderService{repo: repo, catalog: catalog, logger: logger, now: time.Now}
}

// NewOrderNumber formats CT-YYYYMMDD-XXXXXX
func NewOrderNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return trade.OrderNumberPrefix + at.Format("20060102") + "-" + suffix
}

// CreateOrder prices the cart lines, reserves stock and stores the order
func (s *OrderService) CreateOrder(ctx context.Context, req trade.CreateOrderRequest) (*trade.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	items, err := s.catalog.Reserve(req.CartItems)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	tax := subtotal.Mul(VATRate).Round(2)
	shipping := FlatShippingRate
	if req.InstallationDetails != nil && req.InstallationDetails.Method == trade.InstallationTechnician {
		shipping = decimal.Zero
	}

	now := s.now()
	order := &trade.Order{
		ID:                  uuid.NewString(),
		OrderNumber:         NewOrderNumber(now),
		UserID:              req.UserID,
		Items:               items,
		Subtotal:            subtotal,
		Tax:                 &tax,
		Shipping:            &shipping,
		Total:               subtotal.Add(tax).Add(shipping),
		Status:              trade.OrderStatusPending,
		ShippingAddress:     req.ShippingAddress,
		InstallationDetails: req.InstallationDetails,
		PaymentMethod:       string(req.PaymentMethod),
		PaymentStatus:       trade.PaymentStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		s.catalog.Release(items)
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}

// GetOrderByID returns an order or shared.ErrNotFound
func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (*trade.Order, error) {
	return s.repo.FindByID(ctx, orderID)
}

// GetOrdersByUser lists a user's orders
func (s *OrderService) GetOrdersByUser(ctx context.Context, userID string) ([]trade.Order, error) {
	return s.repo.FindByUser(ctx, userID)
}

// UpdateOrderStatus moves the order along its lifecycle
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status trade.OrderStatus) (*trade.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code,
			"Cannot change order status from "+string(order.Status)+" to "+string(status))
	}
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	if status == trade.OrderStatusCancelled {
		s.catalog.Release(order.Items)
	}
	return s.repo.FindByID(ctx, orderID)
}

// GenerateInvoice returns the invoice header; the document itself is
// rendered by the storefront
func (s *OrderService) GenerateInvoice(ctx context.Context, orderID string) (*trade.Invoice, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return trade.NewInvoice(order, s.now(), 0), nil
}

// RecordInvoice stores the invoice link on the order
func (s *OrderService) RecordInvoice(ctx context.Context, orderID, url, qrCode string) error {
	return s.repo.UpdateInvoice(ctx, orderID, url, qrCode)
}

// RecordPaymentMethod switches the payment method of an order that is still
// awaiting payment
func (s *OrderService) RecordPaymentMethod(ctx context.Context, orderID string, method trade.PaymentMethod) error {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != trade.OrderStatusPending {
		return shared.NewDomainError(shared.ErrInvalidState.Code, "Only pending orders can change payment method")
	}
	return s.repo.UpdatePaymentMethod(ctx, orderID, method)
}

// FindOrderByNumberAndEmail returns nil when no order matches
func (s *OrderService) FindOrderByNumberAndEmail(ctx context.Context, orderNumber, email string) (*trade.Order, error) {
	order, err := s.repo.FindByNumberAndEmail(ctx, orderNumber, email)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return order, err
}

// GetOrdersByEmail lists guest orders placed with the email
func (s *OrderService) GetOrdersByEmail(ctx context.Context, email string) ([]trade.Order, error) {
	return s.repo.FindByEmail(ctx, email)
}
