package trade

import (
	"strings"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is known
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// allowedTransitions lists the statuses reachable from each status
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransitionTo reports whether the status may move to next
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// InstallationMethod is how the hardware gets fitted to the vehicle
type InstallationMethod string

const (
	InstallationSelf       InstallationMethod = "self"
	InstallationTechnician InstallationMethod = "technician"
)

// IsValid checks if the method is known
func (m InstallationMethod) IsValid() bool {
	return m == InstallationSelf || m == InstallationTechnician
}

// ShippingAddress is where the order is delivered
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	County     string `json:"county"`
	PostalCode string `json:"postal_code,omitempty"`
}

// Validate checks that every required field is present
func (a ShippingAddress) Validate() error {
	required := map[string]string{
		"full name": a.FullName,
		"phone":     a.Phone,
		"email":     a.Email,
		"address":   a.Address,
		"city":      a.City,
		"county":    a.County,
	}
	for _, field := range []string{"full name", "phone", "email", "address", "city", "county"} {
		if strings.TrimSpace(required[field]) == "" {
			return shared.NewDomainError("INVALID_SHIPPING_ADDRESS", "Shipping "+field+" is required")
		}
	}
	if !strings.Contains(a.Email, "@") {
		return shared.NewDomainError("INVALID_SHIPPING_ADDRESS", "Shipping email is invalid")
	}
	return nil
}

// InstallationDetails describes how and where installation happens
type InstallationDetails struct {
	Method              InstallationMethod `json:"method"`
	GarageID            string             `json:"garage_id,omitempty"`
	AppointmentDate     *time.Time         `json:"appointment_date,omitempty"`
	AppointmentTime     string             `json:"appointment_time,omitempty"`
	VehicleRegistration string             `json:"vehicle_registration,omitempty"`
	VehicleMake         string             `json:"vehicle_make,omitempty"`
	VehicleModel        string             `json:"vehicle_model,omitempty"`
}

// Validate checks the details against the chosen method. Technician
// installs need a garage, a future appointment and the vehicle registration.
func (d InstallationDetails) Validate(now time.Time) error {
	if !d.Method.IsValid() {
		return shared.NewDomainError("INVALID_INSTALLATION", "Installation method must be self or technician")
	}
	if d.Method == InstallationSelf {
		return nil
	}
	if strings.TrimSpace(d.GarageID) == "" {
		return shared.NewDomainError("INVALID_INSTALLATION", "A partner garage is required for technician installation")
	}
	if d.AppointmentDate == nil {
		return shared.NewDomainError("INVALID_INSTALLATION", "Appointment date is required for technician installation")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.AppointmentDate.Before(today) {
		return shared.NewDomainError("INVALID_INSTALLATION", "Appointment date cannot be in the past")
	}
	if strings.TrimSpace(d.AppointmentTime) == "" {
		return shared.NewDomainError("INVALID_INSTALLATION", "Appointment time is required for technician installation")
	}
	if strings.TrimSpace(d.VehicleRegistration) == "" {
		return shared.NewDomainError("INVALID_INSTALLATION", "Vehicle registration is required for technician installation")
	}
	return nil
}

// OrderItem is one line on an order
type OrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Order is owned by the backend once created
type Order struct {
	ID                  string
	OrderNumber         string
	UserID              string
	Items               []OrderItem
	Subtotal            decimal.Decimal
	Tax                 *decimal.Decimal
	Shipping            *decimal.Decimal
	Total               decimal.Decimal
	Status              OrderStatus
	ShippingAddress     ShippingAddress
	InstallationDetails *InstallationDetails
	PaymentMethod       string
	PaymentStatus       PaymentStatus
	InvoiceURL          string
	InvoiceQRCode       string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NeedsTechnician reports whether a partner garage installs the hardware
func (o *Order) NeedsTechnician() bool {
	return o.InstallationDetails != nil && o.InstallationDetails.Method == InstallationTechnician
}

// BelongsTo reports whether the order was placed by the user or with the email
func (o *Order) BelongsTo(userID, email string) bool {
	if userID != "" && o.UserID == userID {
		return true
	}
	return email != "" && strings.EqualFold(o.ShippingAddress.Email, email)
}

// CartLine is the minimal cart line the backend needs to price an order
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest carries everything captured by the checkout wizard
type CreateOrderRequest struct {
	UserID              string
	CartID              string
	CartItems           []CartLine
	ShippingAddress     ShippingAddress
	InstallationDetails *InstallationDetails
	PaymentMethod       PaymentMethod
}

// Validate checks the request before it is sent to the backend
func (r CreateOrderRequest) Validate() error {
	if len(r.CartItems) == 0 {
		return shared.NewDomainError("EMPTY_CART", "Cannot create an order from an empty cart")
	}
	for _, line := range r.CartItems {
		if line.Quantity <= 0 {
			return shared.NewDomainError("INVALID_QUANTITY", "Order quantities must be positive")
		}
	}
	if err := r.ShippingAddress.Validate(); err != nil {
		return err
	}
	if !r.PaymentMethod.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be mpesa, card or bank")
	}
	return nil
}

// Invoice is a billing document for an order
type Invoice struct {
	ID            string
	InvoiceNumber string
	OrderID       string
	QRCode        string
	DownloadURL   string
	ContentType   string
	IssueDate     time.Time
	DueDate       *time.Time
	Total         decimal.Decimal
}
