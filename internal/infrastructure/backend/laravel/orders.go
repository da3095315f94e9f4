package laravel

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
)

var _ trade.OrderService = (*OrderService)(nil)

// OrderService manages orders through the Laravel API
type OrderService struct {
	client *Client
	now    func() time.Time
}

// NewOrderService creates an OrderService
func NewOrderService(client *Client) *OrderService {
	return &OrderService{client: client, now: time.Now}
}

// CreateOrder posts the cart lines; the backend prices them
func (s *OrderService) CreateOrder(ctx context.Context, req trade.CreateOrderRequest) (*trade.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var dto orderDTO
	if err := s.client.send(ctx, http.MethodPost, "/orders", newCreateOrderBody(req), &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

// GetOrderByID returns an order or shared.ErrNotFound
func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (*trade.Order, error) {
	var dto orderDTO
	if err := s.client.get(ctx, "/orders/"+url.PathEscape(orderID), nil, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

// GetOrdersByUser lists a user's orders
func (s *OrderService) GetOrdersByUser(ctx context.Context, userID string) ([]trade.Order, error) {
	return s.list(ctx, url.Values{"userId": {userID}})
}

// GetOrdersByEmail lists guest orders placed with the email
func (s *OrderService) GetOrdersByEmail(ctx context.Context, email string) ([]trade.Order, error) {
	return s.list(ctx, url.Values{"guestEmail": {email}})
}

func (s *OrderService) list(ctx context.Context, query url.Values) ([]trade.Order, error) {
	var dtos []orderDTO
	if err := s.client.get(ctx, "/orders", query, &dtos); err != nil {
		return nil, err
	}
	out := make([]trade.Order, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, *d.toDomain())
	}
	return out, nil
}

// UpdateOrderStatus checks the transition against the current order before
// asking the backend to apply it
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status trade.OrderStatus) (*trade.Order, error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Unknown order status: "+string(status))
	}
	current, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code,
			"Cannot change order status from "+string(current.Status)+" to "+string(status))
	}
	var dto orderDTO
	body := map[string]string{"status": string(status)}
	if err := s.client.send(ctx, http.MethodPatch, "/orders/"+url.PathEscape(orderID)+"/status", body, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

// GenerateInvoice builds the invoice header locally from the stored order
func (s *OrderService) GenerateInvoice(ctx context.Context, orderID string) (*trade.Invoice, error) {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return trade.NewInvoice(order, s.now(), 0), nil
}

// FindOrderByNumberAndEmail returns nil when no order matches
func (s *OrderService) FindOrderByNumberAndEmail(ctx context.Context, orderNumber, email string) (*trade.Order, error) {
	var dto orderDTO
	body := map[string]string{"orderNumber": orderNumber, "email": email}
	if err := s.client.send(ctx, http.MethodPost, "/orders/track", body, &dto); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dto.toDomain(), nil
}
