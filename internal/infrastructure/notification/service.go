package notification

import (
	"context"
	"fmt"

	notifydomain "github.com/maxwelladwale/coltech/internal/domain/notification"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/maxwelladwale/coltech/internal/infrastructure/logger"
	"go.uber.org/zap"
)

var _ notifydomain.NotificationService = (*Service)(nil)

// OrderLookup loads orders to enrich order notifications
type OrderLookup interface {
	GetOrderByID(ctx context.Context, orderID string) (*trade.Order, error)
}

// Service turns storefront notifications into broker events
type Service struct {
	publisher Publisher
	orders    OrderLookup
	logger    *zap.Logger
}

// NewService creates a notification service. orders may be nil, in which
// case order events carry only the order id.
func NewService(publisher Publisher, orders OrderLookup, logger *zap.Logger) *Service {
	return &Service{publisher: publisher, orders: orders, logger: logger}
}

// NotifySalesTeam tells sales that an order was placed
func (s *Service) NotifySalesTeam(ctx context.Context, orderID string) error {
	return s.publish(ctx, notifydomain.EventSalesOrder, s.orderPayload(ctx, orderID))
}

// SendOrderConfirmation asks for the confirmation email to the customer
func (s *Service) SendOrderConfirmation(ctx context.Context, orderID string) error {
	return s.publish(ctx, notifydomain.EventOrderConfirmation, s.orderPayload(ctx, orderID))
}

// SendAppointmentReminder asks for a reminder about a garage appointment
func (s *Service) SendAppointmentReminder(ctx context.Context, appointmentID string) error {
	if appointmentID == "" {
		return fmt.Errorf("appointment id is required")
	}
	return s.publish(ctx, notifydomain.EventAppointmentRemind, map[string]any{
		"appointment_id": appointmentID,
	})
}

// SendLicenseExpiryWarning warns a customer that a license runs out soon
func (s *Service) SendLicenseExpiryWarning(ctx context.Context, licenseID string, daysRemaining int) error {
	if licenseID == "" {
		return fmt.Errorf("license id is required")
	}
	return s.publish(ctx, notifydomain.EventLicenseExpiry, map[string]any{
		"license_id":     licenseID,
		"days_remaining": daysRemaining,
	})
}

// SubmitContactMessage forwards a contact form message to sales
func (s *Service) SubmitContactMessage(ctx context.Context, msg notifydomain.ContactMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	return s.publish(ctx, notifydomain.EventContactMessage, map[string]any{
		"name":    msg.Name,
		"email":   msg.Email,
		"subject": msg.Subject,
		"message": msg.Message,
	})
}

func (s *Service) orderPayload(ctx context.Context, orderID string) map[string]any {
	payload := map[string]any{"order_id": orderID}
	if s.orders == nil {
		return payload
	}

	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil || order == nil {
		logger.L(ctx).Warn("Could not load order for notification",
			zap.String("order_id", orderID),
			zap.Error(err))
		return payload
	}

	payload["order_number"] = order.OrderNumber
	payload["customer_name"] = order.ShippingAddress.FullName
	payload["customer_email"] = order.ShippingAddress.Email
	payload["customer_phone"] = order.ShippingAddress.Phone
	payload["total"] = order.Total.StringFixed(2)
	payload["payment_method"] = order.PaymentMethod
	payload["payment_status"] = string(order.PaymentStatus)
	payload["needs_technician"] = order.NeedsTechnician()
	return payload
}

func (s *Service) publish(ctx context.Context, eventType string, payload map[string]any) error {
	event := NewEvent(eventType, payload)
	event.RequestID = logger.RequestID(ctx)

	if err := s.publisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	s.logger.Debug("Notification published",
		zap.String("event_type", eventType),
		zap.String("event_id", event.ID))
	return nil
}
