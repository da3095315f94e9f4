package trade

import (
	"fmt"
	"strings"
	"time"
)

// OrderNumberPrefix starts every storefront order number (CT-YYYYMMDD-XXXXXX)
const OrderNumberPrefix = "CT-"

// InvoiceNumberFor derives the invoice number from the order number
func InvoiceNumberFor(o *Order) string {
	suffix := strings.TrimPrefix(o.OrderNumber, OrderNumberPrefix)
	if suffix == "" {
		suffix = o.ID
	}
	return "INV-" + suffix
}

// InvoiceQRPayload is the text encoded in the invoice verification QR code
func InvoiceQRPayload(invoiceNumber, orderID string) string {
	return fmt.Sprintf("COLTECH-INV:%s:%s", invoiceNumber, orderID)
}

// NewInvoice builds the invoice header for an order. dueDays <= 0 leaves
// the due date unset.
func NewInvoice(o *Order, issuedAt time.Time, dueDays int) *Invoice {
	number := InvoiceNumberFor(o)
	inv := &Invoice{
		ID:            "inv-" + o.ID,
		InvoiceNumber: number,
		OrderID:       o.ID,
		QRCode:        InvoiceQRPayload(number, o.ID),
		IssueDate:     issuedAt,
		Total:         o.Total,
	}
	if dueDays > 0 {
		due := issuedAt.AddDate(0, 0, dueDays)
		inv.DueDate = &due
	}
	return inv
}
