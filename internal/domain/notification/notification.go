package notification

import (
	"context"
	"strings"

	"github.com/maxwelladwale/coltech/internal/domain/shared"
)

// ContactMessage is submitted from the contact form
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Validate checks every field is filled in
func (m ContactMessage) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Subject) == "" || strings.TrimSpace(m.Message) == "" {
		return shared.NewDomainError("INVALID_CONTACT_MESSAGE", "Name, subject and message are required")
	}
	if !strings.Contains(m.Email, "@") {
		return shared.NewDomainError("INVALID_CONTACT_MESSAGE", "A valid email address is required")
	}
	return nil
}

// Event types published by the notification service
const (
	EventSalesOrder        = "sales.order_placed"
	EventOrderConfirmation = "customer.order_confirmation"
	EventAppointmentRemind = "customer.appointment_reminder"
	EventLicenseExpiry     = "customer.license_expiry_warning"
	EventContactMessage    = "sales.contact_message"
)

// NotificationService notifies the sales team and customers
type NotificationService interface {
	NotifySalesTeam(ctx context.Context, orderID string) error
	SendOrderConfirmation(ctx context.Context, orderID string) error
	SendAppointmentReminder(ctx context.Context, appointmentID string) error
	SendLicenseExpiryWarning(ctx context.Context, licenseID string, daysRemaining int) error
	SubmitContactMessage(ctx context.Context, msg ContactMessage) error
}
