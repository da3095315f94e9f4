package trade

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer pays
type PaymentMethod string

const (
	PaymentMethodMpesa PaymentMethod = "mpesa"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodBank  PaymentMethod = "bank"
)

// IsValid checks if the method is known
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodMpesa || m == PaymentMethodCard || m == PaymentMethodBank
}

// TransactionStatus is the state of a single payment attempt
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// MpesaPaymentRequest starts an M-PESA STK push
type MpesaPaymentRequest struct {
	OrderID     string
	Amount      decimal.Decimal
	PhoneNumber string
}

// CardDetails are the card fields captured at checkout. They are never stored.
type CardDetails struct {
	CardNumber string
	ExpiryDate string
	CVV        string
}

// CardPaymentRequest charges a card
type CardPaymentRequest struct {
	OrderID string
	Amount  decimal.Decimal
	Card    CardDetails
}

// PaymentResult is the outcome of an M-PESA or card payment
type PaymentResult struct {
	Success       bool
	TransactionID string
	Message       string
}

// BankDetails is where bank transfers are sent
type BankDetails struct {
	BankName      string
	AccountNumber string
	AccountName   string
}

// BankTransferRequest asks for a transfer reference
type BankTransferRequest struct {
	OrderID string
	Amount  decimal.Decimal
}

// BankTransferReference is returned for bank transfers; payment stays pending
type BankTransferReference struct {
	ReferenceNumber string
	BankDetails     BankDetails
}

// PaymentVerification is the result of looking up a transaction
type PaymentVerification struct {
	Verified bool
	Status   TransactionStatus
	Amount   *decimal.Decimal
}

// OrderPaymentStatus is the payment state of an order
type OrderPaymentStatus struct {
	Status        PaymentStatus
	TransactionID string
	PaidAt        *time.Time
}
