package mock

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"go.uber.org/zap"
)

// DefaultBankDetails is the account bank transfers are paid into
var DefaultBankDetails = trade.BankDetails{
	BankName:      "KCB Bank Kenya",
	AccountNumber: "1234567890",
	AccountName:   "COLTECH LIMITED",
}

// PaymentConfig tunes the payment simulation
type PaymentConfig struct {
	MpesaDelay       time.Duration
	CardDelay        time.Duration
	MpesaSuccessRate float64
	CardSuccessRate  float64
}

// DefaultPaymentConfig returns the simulation defaults
func DefaultPaymentConfig() PaymentConfig {
	return PaymentConfig{
		MpesaDelay:       time.Second,
		CardDelay:        2 * time.Second,
		MpesaSuccessRate: 0.9,
		CardSuccessRate:  0.95,
	}
}

// PaymentService simulates M-PESA, card and bank transfer payments.
// Every attempt is stored in a TransactionRepository; when an
// OrderRepository is set the order's payment status follows the outcome.
type PaymentService struct {
	cfg          PaymentConfig
	transactions trade.TransactionRepository
	orders       trade.OrderRepository
	logger       *zap.Logger

	random func() float64
	sleep  func(ctx context.Context, d time.Duration) error
	now    func() time.Time
}

var _ trade.PaymentService = (*PaymentService)(nil)

// PaymentOption configures a PaymentService
type PaymentOption func(*PaymentService)

// WithOrderRepository makes payments update the order's payment status
func WithOrderRepository(orders trade.OrderRepository) PaymentOption {
	return func(s *PaymentService) {
		s.orders = orders
	}
}

// WithRandom replaces the success roll; a roll below the success rate succeeds
func WithRandom(fn func() float64) PaymentOption {
	return func(s *PaymentService) {
		s.random = fn
	}
}

// WithClock replaces time.Now
func WithClock(fn func() time.Time) PaymentOption {
	return func(s *PaymentService) {
		s.now = fn
	}
}

// WithoutDelay skips the simulated gateway latency
func WithoutDelay() PaymentOption {
	return func(s *PaymentService) {
		s.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	}
}

// NewPaymentService creates a PaymentService
func NewPaymentService(cfg PaymentConfig, transactions trade.TransactionRepository, logger *zap.Logger, opts ...PaymentOption) *PaymentService {
	s := &PaymentService{
		cfg:          cfg,
		transactions: transactions,
		logger:       logger,
		random:       rand.Float64,
		sleep:        sleepContext,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// InitiateMpesaPayment simulates an STK push
func (s *PaymentService) InitiateMpesaPayment(ctx context.Context, req trade.MpesaPaymentRequest) (*trade.PaymentResult, error) {
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Phone number is required for M-PESA payments")
	}
	s.logger.Info("Initiating M-PESA payment",
		zap.String("order_id", req.OrderID),
		zap.String("amount", req.Amount.StringFixed(2)),
	)

	if err := s.sleep(ctx, s.cfg.MpesaDelay); err != nil {
		return nil, err
	}

	now := s.now()
	tx := &trade.PaymentTransaction{
		ID:        fmt.Sprintf("MPESA%d", now.UnixMilli()),
		OrderID:   req.OrderID,
		Method:    trade.PaymentMethodMpesa,
		Amount:    req.Amount,
		CreatedAt: now,
	}
	if s.random() < s.cfg.MpesaSuccessRate {
		tx.Message = "M-PESA payment initiated. Please check your phone for the prompt."
		return s.complete(ctx, tx)
	}
	tx.Message = "Payment failed. Please try again or use a different payment method."
	return s.fail(ctx, tx)
}

// ProcessCardPayment simulates a card charge
func (s *PaymentService) ProcessCardPayment(ctx context.Context, req trade.CardPaymentRequest) (*trade.PaymentResult, error) {
	s.logger.Info("Processing card payment",
		zap.String("order_id", req.OrderID),
		zap.String("amount", req.Amount.StringFixed(2)),
	)

	number := strings.Join(strings.Fields(req.Card.CardNumber), "")
	if len(number) < 13 || len(number) > 19 {
		return &trade.PaymentResult{Success: false, Message: "Invalid card number"}, nil
	}

	if err := s.sleep(ctx, s.cfg.CardDelay); err != nil {
		return nil, err
	}

	now := s.now()
	tx := &trade.PaymentTransaction{
		ID:        fmt.Sprintf("CARD%d", now.UnixMilli()),
		OrderID:   req.OrderID,
		Method:    trade.PaymentMethodCard,
		Amount:    req.Amount,
		CreatedAt: now,
	}
	if s.random() < s.cfg.CardSuccessRate {
		tx.Message = "Card payment processed successfully"
		return s.complete(ctx, tx)
	}
	tx.Message = "Card payment declined. Please check your card details or try another card."
	return s.fail(ctx, tx)
}

func (s *PaymentService) complete(ctx context.Context, tx *trade.PaymentTransaction) (*trade.PaymentResult, error) {
	completed := tx.CreatedAt
	tx.Status = trade.TransactionCompleted
	tx.CompletedAt = &completed
	if err := s.record(ctx, tx, trade.PaymentStatusPaid); err != nil {
		return nil, err
	}
	return &trade.PaymentResult{Success: true, TransactionID: tx.ID, Message: tx.Message}, nil
}

func (s *PaymentService) fail(ctx context.Context, tx *trade.PaymentTransaction) (*trade.PaymentResult, error) {
	tx.Status = trade.TransactionFailed
	if err := s.record(ctx, tx, trade.PaymentStatusFailed); err != nil {
		return nil, err
	}
	s.logger.Warn("Simulated payment failed",
		zap.String("order_id", tx.OrderID),
		zap.String("method", string(tx.Method)),
	)
	return &trade.PaymentResult{Success: false, Message: tx.Message}, nil
}

func (s *PaymentService) record(ctx context.Context, tx *trade.PaymentTransaction, status trade.PaymentStatus) error {
	if err := s.transactions.Save(ctx, tx); err != nil {
		return err
	}
	if s.orders == nil {
		return nil
	}
	if err := s.orders.UpdatePaymentStatus(ctx, tx.OrderID, status); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	return nil
}

// GenerateBankTransferReference issues a reference; the payment stays pending
func (s *PaymentService) GenerateBankTransferReference(ctx context.Context, req trade.BankTransferRequest) (*trade.BankTransferReference, error) {
	now := s.now()
	ref := BankReference(req.OrderID, now)

	tx := &trade.PaymentTransaction{
		ID:        ref,
		OrderID:   req.OrderID,
		Method:    trade.PaymentMethodBank,
		Amount:    req.Amount,
		Status:    trade.TransactionPending,
		Reference: ref,
		Message:   "Awaiting bank transfer",
		CreatedAt: now,
	}
	if err := s.transactions.Save(ctx, tx); err != nil {
		return nil, err
	}

	return &trade.BankTransferReference{
		ReferenceNumber: ref,
		BankDetails:     DefaultBankDetails,
	}, nil
}

// BankReference builds REF + first 8 characters of the order id upper-cased
// + the last 6 digits of the unix-milli timestamp
func BankReference(orderID string, at time.Time) string {
	prefix := orderID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	millis := strconv.FormatInt(at.UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return "REF" + strings.ToUpper(prefix) + millis
}

// VerifyPayment looks up a transaction id
func (s *PaymentService) VerifyPayment(ctx context.Context, transactionID string) (*trade.PaymentVerification, error) {
	tx, err := s.transactions.FindByID(ctx, transactionID)
	if errors.Is(err, shared.ErrNotFound) {
		return &trade.PaymentVerification{Verified: false, Status: trade.TransactionFailed}, nil
	}
	if err != nil {
		return nil, err
	}
	amount := tx.Amount
	return &trade.PaymentVerification{Verified: true, Status: tx.Status, Amount: &amount}, nil
}

// CheckPaymentStatus reports the payment state of the order's latest attempt
func (s *PaymentService) CheckPaymentStatus(ctx context.Context, orderID string) (*trade.OrderPaymentStatus, error) {
	tx, err := s.transactions.FindLatestByOrder(ctx, orderID)
	if errors.Is(err, shared.ErrNotFound) {
		return &trade.OrderPaymentStatus{Status: trade.PaymentStatusPending}, nil
	}
	if err != nil {
		return nil, err
	}

	status := trade.PaymentStatusPending
	switch tx.Status {
	case trade.TransactionCompleted:
		status = trade.PaymentStatusPaid
	case trade.TransactionFailed:
		status = trade.PaymentStatusFailed
	}
	result := &trade.OrderPaymentStatus{Status: status, PaidAt: tx.CompletedAt}
	if tx.Method != trade.PaymentMethodBank {
		result.TransactionID = tx.ID
	}
	return result, nil
}
