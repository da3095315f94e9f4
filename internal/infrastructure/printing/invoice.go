package printing

import (
	"context"

	orderapp "github.com/maxwelladwale/coltech/internal/application/order"
	"go.uber.org/zap"
)

var _ orderapp.InvoiceRenderer = (*InvoiceRenderer)(nil)

// InvoiceRenderer renders invoices to PDF, or to HTML when no PDF
// renderer is available.
type InvoiceRenderer struct {
	engine   *TemplateEngine
	pdf      PDFRenderer
	template string
	logger   *zap.Logger
}

// InvoiceRendererOption configures InvoiceRenderer
type InvoiceRendererOption func(*InvoiceRenderer)

// WithPDFRenderer enables PDF output
func WithPDFRenderer(pdf PDFRenderer) InvoiceRendererOption {
	return func(r *InvoiceRenderer) {
		r.pdf = pdf
	}
}

// WithTemplate replaces the built-in layout
func WithTemplate(content string) InvoiceRendererOption {
	return func(r *InvoiceRenderer) {
		r.template = content
	}
}

// NewInvoiceRenderer creates an invoice renderer
func NewInvoiceRenderer(engine *TemplateEngine, logger *zap.Logger, opts ...InvoiceRendererOption) *InvoiceRenderer {
	if engine == nil {
		engine = NewTemplateEngine()
	}
	r := &InvoiceRenderer{
		engine:   engine,
		template: InvoiceTemplate,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderInvoice executes the template and prints it. A PDF failure falls
// back to the HTML document.
func (r *InvoiceRenderer) RenderInvoice(ctx context.Context, data *orderapp.InvoiceData) (*orderapp.RenderedDocument, error) {
	if data == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "invoice data is nil", nil)
	}

	htmlDoc, err := r.engine.RenderString("invoice", r.template, data)
	if err != nil {
		return nil, err
	}

	htmlResult := &orderapp.RenderedDocument{
		Data:        []byte(htmlDoc),
		ContentType: "text/html; charset=utf-8",
		Extension:   "html",
	}
	if r.pdf == nil {
		return htmlResult, nil
	}

	result, err := r.pdf.Render(ctx, &RenderRequest{
		HTML:       htmlDoc,
		PaperSize:  PaperSizeA4,
		Margins:    DefaultMargins(),
		Title:      "Invoice " + data.Invoice.InvoiceNumber,
		FooterHTML: `<div style="font-size:8px;width:100%;text-align:center;"><span class="pageNumber"></span> / <span class="totalPages"></span></div>`,
	})
	if err != nil {
		r.logger.Warn("PDF rendering failed, serving HTML invoice",
			zap.String("invoice_number", data.Invoice.InvoiceNumber),
			zap.Error(err))
		return htmlResult, nil
	}

	return &orderapp.RenderedDocument{
		Data:        result.PDFData,
		ContentType: "application/pdf",
		Extension:   "pdf",
	}, nil
}

// Close releases the PDF renderer
func (r *InvoiceRenderer) Close() error {
	if r.pdf == nil {
		return nil
	}
	return r.pdf.Close()
}
