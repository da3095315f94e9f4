// Package printing renders storefront invoices.
//
// Invoices are produced in two stages: TemplateEngine executes an
// html/template with formatting helpers, then an optional PDFRenderer
// (ChromedpRenderer, backed by headless Chrome) prints the HTML to PDF.
// InvoiceRenderer ties both together and falls back to HTML when no PDF
// renderer is configured or printing fails.
package printing
