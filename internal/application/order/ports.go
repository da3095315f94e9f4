package order

import (
	"context"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/trade"
)

// DocumentStorage keeps rendered invoices
type DocumentStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// GenerateDownloadURL returns a link valid for expiresIn (<= 0 uses the default)
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
	ObjectExists(ctx context.Context, key string) (bool, error)
	DeleteObject(ctx context.Context, key string) error
}

// CompanyInfo is printed in the invoice header
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	KRAPIN  string
	Website string
}

// InvoiceData is everything an invoice template needs
type InvoiceData struct {
	Invoice trade.Invoice
	Order   trade.Order
	Company CompanyInfo
}

// RenderedDocument is a rendered invoice ready to upload
type RenderedDocument struct {
	Data        []byte
	ContentType string
	Extension   string
}

// InvoiceRenderer turns invoice data into a document
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, data *InvoiceData) (*RenderedDocument, error)
}

// InvoiceRecorder is implemented by order backends that can remember the
// invoice link on the order itself
type InvoiceRecorder interface {
	RecordInvoice(ctx context.Context, orderID, url, qrCode string) error
}

// PaymentMethodRecorder is implemented by order backends that can change the
// payment method of a pending order
type PaymentMethodRecorder interface {
	RecordPaymentMethod(ctx context.Context, orderID string, method trade.PaymentMethod) error
}
