package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"go.uber.org/zap"
)

// Config holds invoice settings for the order Service
type Config struct {
	Company CompanyInfo
	// DueDays sets the invoice due date; zero leaves it empty
	DueDays int
	// LinkExpiry is how long invoice download links stay valid
	LinkExpiry time.Duration
}

// Confirmation is an order with the follow-up steps shown to the customer
type Confirmation struct {
	Order     *trade.Order
	NextSteps []string
}

// Service handles order confirmation, tracking and invoicing
type Service struct {
	orders   trade.OrderService
	payments trade.PaymentService
	storage  DocumentStorage
	renderer InvoiceRenderer
	cfg      Config
	logger   *zap.Logger
}

// NewService creates a new order Service
func NewService(
	orders trade.OrderService,
	payments trade.PaymentService,
	storage DocumentStorage,
	renderer InvoiceRenderer,
	cfg Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		orders:   orders,
		payments: payments,
		storage:  storage,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
	}
}

// NextSteps lists what happens after an order is placed
func NextSteps(o *trade.Order) []string {
	steps := []string{
		"You will receive an order confirmation email at " + o.ShippingAddress.Email,
		"Our team will contact you within 24 hours to confirm details",
	}
	if o.NeedsTechnician() {
		steps = append(steps, "We will schedule your installation at a nearby partner garage")
	}
	return append(steps, "Your license will be activated after installation")
}

// GetConfirmation returns the order and its next steps
func (s *Service) GetConfirmation(ctx context.Context, orderID string) (*Confirmation, error) {
	o, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &Confirmation{Order: o, NextSteps: NextSteps(o)}, nil
}

// ListMine returns the signed-in user's orders
func (s *Service) ListMine(ctx context.Context, userID string) ([]trade.Order, error) {
	if userID == "" {
		return nil, shared.ErrUnauthorized
	}
	return s.orders.GetOrdersByUser(ctx, userID)
}

// ListByEmail returns guest orders placed with email
func (s *Service) ListByEmail(ctx context.Context, email string) ([]trade.Order, error) {
	return s.orders.GetOrdersByEmail(ctx, strings.TrimSpace(email))
}

// Track finds an order by its number and the email it was placed with
func (s *Service) Track(ctx context.Context, orderNumber, email string) (*trade.Order, error) {
	o, err := s.orders.FindOrderByNumberAndEmail(ctx, strings.TrimSpace(orderNumber), strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, shared.NewDomainError(shared.ErrNotFound.Code, "No order matches that order number and email")
	}
	return o, nil
}

// UpdateStatus moves an order to status
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status trade.OrderStatus) (*trade.Order, error) {
	o, err := s.orders.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("status", string(status)),
	)
	return o, nil
}

// PaymentStatus reports the latest payment state of an order
func (s *Service) PaymentStatus(ctx context.Context, orderID string) (*trade.OrderPaymentStatus, error) {
	return s.payments.CheckPaymentStatus(ctx, orderID)
}

// GenerateInvoice renders the order's invoice, uploads it and returns it
// with a download link. Backends that implement InvoiceRecorder remember
// the link on the order.
func (s *Service) GenerateInvoice(ctx context.Context, orderID string) (*trade.Invoice, error) {
	o, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	invoice, err := s.orders.GenerateInvoice(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if s.cfg.DueDays > 0 && invoice.DueDate == nil {
		due := invoice.IssueDate.AddDate(0, 0, s.cfg.DueDays)
		invoice.DueDate = &due
	}

	doc, err := s.renderer.RenderInvoice(ctx, &InvoiceData{Invoice: *invoice, Order: *o, Company: s.cfg.Company})
	if err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}

	name := o.OrderNumber
	if name == "" {
		name = o.ID
	}
	key := "invoices/" + name + "." + doc.Extension
	if err := s.storage.Upload(ctx, key, doc.Data, doc.ContentType); err != nil {
		return nil, fmt.Errorf("upload invoice: %w", err)
	}
	link, _, err := s.storage.GenerateDownloadURL(ctx, key, s.cfg.LinkExpiry)
	if err != nil {
		return nil, fmt.Errorf("invoice download link: %w", err)
	}
	invoice.DownloadURL = link
	invoice.ContentType = doc.ContentType

	if recorder, ok := s.orders.(InvoiceRecorder); ok {
		if err := recorder.RecordInvoice(ctx, o.ID, link, invoice.QRCode); err != nil {
			s.logger.Warn("Failed to record invoice on order", zap.String("order_id", o.ID), zap.Error(err))
		}
	}

	s.logger.Info("Invoice generated",
		zap.String("order_id", o.ID),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("content_type", doc.ContentType),
	)
	return invoice, nil
}
