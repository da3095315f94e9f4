package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	cartapp "github.com/maxwelladwale/coltech/internal/application/cart"
	orderapp "github.com/maxwelladwale/coltech/internal/application/order"
	"github.com/maxwelladwale/coltech/internal/domain/installation"
	"github.com/maxwelladwale/coltech/internal/domain/notification"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/maxwelladwale/coltech/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// Step is a checkout wizard step
type Step string

const (
	StepShipping     Step = "shipping"
	StepInstallation Step = "installation"
	StepPayment      Step = "payment"
	StepComplete     Step = "complete"
)

// defaultPaymentClaimTTL bounds a payment submit claim when none is configured
const defaultPaymentClaimTTL = 30 * time.Second

// previous maps each step to the one Back returns to
var previous = map[Step]Step{
	StepShipping:     StepShipping,
	StepInstallation: StepShipping,
	StepPayment:      StepInstallation,
}

// State is the checkout progress of one session
type State struct {
	Step            Step                       `json:"step"`
	ShippingAddress *trade.ShippingAddress     `json:"shipping_address,omitempty"`
	Installation    *trade.InstallationDetails `json:"installation,omitempty"`
	PaymentMethod   trade.PaymentMethod        `json:"payment_method,omitempty"`
	PhoneNumber     string                     `json:"phone_number,omitempty"`
	// OrderID is set once the order exists so a failed payment can be retried on it
	OrderID string `json:"order_id,omitempty"`
	// CartFingerprint is the cart the order was placed from
	CartFingerprint string `json:"cart_fingerprint,omitempty"`
}

// PaymentInput is what the customer submits on the payment step
type PaymentInput struct {
	Method      trade.PaymentMethod
	PhoneNumber string
	Card        *trade.CardDetails
}

// Result is returned once the order is placed
type Result struct {
	Order        *trade.Order
	Payment      *trade.PaymentResult
	BankTransfer *trade.BankTransferReference
	Appointment  *installation.AppointmentConfirmation
	NextSteps    []string
}

// Wizard drives the shipping -> installation -> payment checkout flow.
// State lives in the session store; the order is created on the payment step.
type Wizard struct {
	sessions      *cache.SessionStore
	carts         *cartapp.Service
	orders        trade.OrderService
	payments      trade.PaymentService
	installations installation.InstallationService
	logger        *zap.Logger
	now           func() time.Time

	notifier       notification.NotificationService
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
}

// NewWizard creates a checkout Wizard
func NewWizard(
	sessions *cache.SessionStore,
	carts *cartapp.Service,
	orders trade.OrderService,
	payments trade.PaymentService,
	installations installation.InstallationService,
	logger *zap.Logger,
) *Wizard {
	return &Wizard{
		sessions:       sessions,
		carts:          carts,
		orders:         orders,
		payments:       payments,
		installations:  installations,
		logger:         logger,
		now:            time.Now,
		idempotencyTTL: defaultPaymentClaimTTL,
	}
}

// SetNotifier sets the service told about placed orders
func (w *Wizard) SetNotifier(notifier notification.NotificationService) {
	w.notifier = notifier
}

// SetIdempotencyStore guards payment submission against double submits
func (w *Wizard) SetIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) {
	w.idempotency = store
	if ttl > 0 {
		w.idempotencyTTL = ttl
	}
}

// State returns the session's checkout state; a session that never started
// checkout is on the shipping step
func (w *Wizard) State(ctx context.Context, sessionID string) (*State, error) {
	st, found, err := w.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return &State{Step: StepShipping}, nil
	}
	return st, nil
}

// Start begins checkout for a non-empty cart
func (w *Wizard) Start(ctx context.Context, sessionID string) (*State, error) {
	c, err := w.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, errEmptyCart
	}
	st := &State{Step: StepShipping}
	if err := w.save(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SubmitShipping stores the delivery address and moves to installation
func (w *Wizard) SubmitShipping(ctx context.Context, sessionID string, address trade.ShippingAddress) (*State, error) {
	st, err := w.require(ctx, sessionID, StepShipping)
	if err != nil {
		return nil, err
	}
	if err := address.Validate(); err != nil {
		return nil, err
	}
	st.ShippingAddress = &address
	w.dropOrder(ctx, st)
	st.Step = StepInstallation
	if err := w.save(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SubmitInstallation stores the installation choice and moves to payment
func (w *Wizard) SubmitInstallation(ctx context.Context, sessionID string, details trade.InstallationDetails) (*State, error) {
	st, err := w.require(ctx, sessionID, StepInstallation)
	if err != nil {
		return nil, err
	}
	if err := details.Validate(w.now()); err != nil {
		return nil, err
	}
	if details.Method == trade.InstallationSelf {
		details = trade.InstallationDetails{Method: trade.InstallationSelf}
	}
	st.Installation = &details
	w.dropOrder(ctx, st)
	st.Step = StepPayment
	if err := w.save(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Back moves one step back; it never goes before shipping
func (w *Wizard) Back(ctx context.Context, sessionID string) (*State, error) {
	st, found, err := w.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errNotStarted
	}
	prev, ok := previous[st.Step]
	if !ok {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code, "The order has already been placed")
	}
	st.Step = prev
	if err := w.save(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Reset discards the session's checkout state
func (w *Wizard) Reset(ctx context.Context, sessionID string) error {
	if err := w.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("reset checkout: %w", err)
	}
	return nil
}

// SubmitPayment places the order and pays for it. A failed payment leaves
// the wizard on the payment step with the order kept for the next attempt.
func (w *Wizard) SubmitPayment(ctx context.Context, sessionID, userID string, input PaymentInput) (*Result, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if w.idempotency != nil {
		key := "checkout:payment:" + sessionID
		claimed, err := w.idempotency.MarkProcessed(ctx, key, w.idempotencyTTL)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, shared.NewDomainError(shared.ErrDuplicateRequest.Code, "A payment for this checkout is already in progress")
		}
		defer func() {
			if err := w.idempotency.Release(context.WithoutCancel(ctx), key); err != nil {
				w.logger.Warn("Failed to release payment claim", zap.String("session_id", sessionID), zap.Error(err))
			}
		}()
	}

	st, err := w.require(ctx, sessionID, StepPayment)
	if err != nil {
		return nil, err
	}
	if st.ShippingAddress == nil || st.Installation == nil {
		return nil, errNotStarted
	}
	phone := strings.TrimSpace(input.PhoneNumber)
	if phone == "" {
		phone = st.ShippingAddress.Phone
	}

	order, err := w.placeOrder(ctx, sessionID, userID, st, input.Method)
	if err != nil {
		return nil, err
	}
	st.OrderID = order.ID
	st.PaymentMethod = input.Method
	st.PhoneNumber = phone
	if err := w.save(ctx, sessionID, st); err != nil {
		return nil, err
	}

	result := &Result{}
	switch input.Method {
	case trade.PaymentMethodMpesa:
		result.Payment, err = w.payments.InitiateMpesaPayment(ctx, trade.MpesaPaymentRequest{
			OrderID:     order.ID,
			Amount:      order.Total,
			PhoneNumber: phone,
		})
	case trade.PaymentMethodCard:
		result.Payment, err = w.payments.ProcessCardPayment(ctx, trade.CardPaymentRequest{
			OrderID: order.ID,
			Amount:  order.Total,
			Card:    *input.Card,
		})
	case trade.PaymentMethodBank:
		result.BankTransfer, err = w.payments.GenerateBankTransferReference(ctx, trade.BankTransferRequest{
			OrderID: order.ID,
			Amount:  order.Total,
		})
	}
	if err != nil {
		return nil, err
	}
	if result.Payment != nil && !result.Payment.Success {
		w.logger.Info("Checkout payment failed",
			zap.String("order_id", order.ID),
			zap.String("method", string(input.Method)),
		)
		msg := result.Payment.Message
		if msg == "" {
			msg = "Payment failed. Please try again or use a different payment method."
		}
		return nil, shared.NewDomainError(shared.ErrPaymentFailed.Code, msg)
	}

	if result.Payment != nil {
		if _, err := w.orders.UpdateOrderStatus(ctx, order.ID, trade.OrderStatusConfirmed); err != nil {
			return nil, fmt.Errorf("confirm order: %w", err)
		}
	}
	if order.NeedsTechnician() {
		result.Appointment = w.scheduleInstallation(ctx, order)
	}

	if err := w.carts.Clear(ctx, sessionID); err != nil {
		w.logger.Warn("Failed to clear cart after checkout", zap.String("session_id", sessionID), zap.Error(err))
	}
	w.notify(ctx, order.ID, result.Appointment)

	st.Step = StepComplete
	if err := w.save(ctx, sessionID, st); err != nil {
		return nil, err
	}

	if result.Order, err = w.orders.GetOrderByID(ctx, order.ID); err != nil {
		return nil, err
	}
	result.NextSteps = orderapp.NextSteps(result.Order)

	w.logger.Info("Checkout completed",
		zap.String("order_id", order.ID),
		zap.String("order_number", result.Order.OrderNumber),
		zap.String("method", string(input.Method)),
	)
	return result, nil
}

// placeOrder reuses the order of an earlier failed attempt while the cart is
// unchanged, or creates one from the cart
func (w *Wizard) placeOrder(ctx context.Context, sessionID, userID string, st *State, method trade.PaymentMethod) (*trade.Order, error) {
	c, err := w.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fingerprint := c.Fingerprint()

	if st.OrderID != "" {
		if st.CartFingerprint == fingerprint {
			order, ok, err := w.reuseOrder(ctx, st.OrderID, method)
			if err != nil {
				return nil, err
			}
			if ok {
				return order, nil
			}
		}
		w.dropOrder(ctx, st)
		if err := w.save(ctx, sessionID, st); err != nil {
			return nil, err
		}
	}

	if c.IsEmpty() {
		return nil, errEmptyCart
	}
	order, err := w.orders.CreateOrder(ctx, trade.CreateOrderRequest{
		UserID:              userID,
		CartID:              c.ID,
		CartItems:           cartapp.Lines(c),
		ShippingAddress:     *st.ShippingAddress,
		InstallationDetails: st.Installation,
		PaymentMethod:       method,
	})
	if err != nil {
		return nil, err
	}
	st.CartFingerprint = fingerprint
	w.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}

// reuseOrder loads a pending order and switches it to method. It reports
// false when the order is gone, no longer pending, or the backend cannot
// change its payment method.
func (w *Wizard) reuseOrder(ctx context.Context, orderID string, method trade.PaymentMethod) (*trade.Order, bool, error) {
	order, err := w.orders.GetOrderByID(ctx, orderID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if order.Status != trade.OrderStatusPending {
		return nil, false, nil
	}
	if order.PaymentMethod == string(method) {
		return order, true, nil
	}
	recorder, ok := w.orders.(orderapp.PaymentMethodRecorder)
	if !ok {
		return nil, false, nil
	}
	if err := recorder.RecordPaymentMethod(ctx, orderID, method); err != nil {
		return nil, false, err
	}
	order.PaymentMethod = string(method)
	return order, true, nil
}

// dropOrder cancels the order of an earlier attempt and forgets it
func (w *Wizard) dropOrder(ctx context.Context, st *State) {
	if st.OrderID == "" {
		return
	}
	if _, err := w.orders.UpdateOrderStatus(ctx, st.OrderID, trade.OrderStatusCancelled); err != nil {
		w.logger.Warn("Failed to cancel abandoned order", zap.String("order_id", st.OrderID), zap.Error(err))
	} else {
		w.logger.Info("Abandoned order cancelled", zap.String("order_id", st.OrderID))
	}
	st.OrderID = ""
	st.CartFingerprint = ""
}

func (w *Wizard) scheduleInstallation(ctx context.Context, order *trade.Order) *installation.AppointmentConfirmation {
	d := order.InstallationDetails
	req := installation.AppointmentRequest{
		OrderID:         order.ID,
		GarageID:        d.GarageID,
		AppointmentTime: d.AppointmentTime,
		Vehicle: installation.Vehicle{
			Registration: d.VehicleRegistration,
			Make:         d.VehicleMake,
			Model:        d.VehicleModel,
		},
	}
	if d.AppointmentDate != nil {
		req.AppointmentDate = *d.AppointmentDate
	}
	confirmation, err := w.installations.ScheduleAppointment(ctx, req)
	if err != nil {
		w.logger.Warn("Failed to schedule installation",
			zap.String("order_id", order.ID),
			zap.String("garage_id", d.GarageID),
			zap.Error(err),
		)
		return nil
	}
	return confirmation
}

func (w *Wizard) notify(ctx context.Context, orderID string, appointment *installation.AppointmentConfirmation) {
	if w.notifier == nil {
		return
	}
	if err := w.notifier.NotifySalesTeam(ctx, orderID); err != nil {
		w.logger.Warn("Failed to notify sales team", zap.String("order_id", orderID), zap.Error(err))
	}
	if err := w.notifier.SendOrderConfirmation(ctx, orderID); err != nil {
		w.logger.Warn("Failed to send order confirmation", zap.String("order_id", orderID), zap.Error(err))
	}
	if appointment == nil {
		return
	}
	if err := w.notifier.SendAppointmentReminder(ctx, appointment.AppointmentID); err != nil {
		w.logger.Warn("Failed to send appointment reminder", zap.String("appointment_id", appointment.AppointmentID), zap.Error(err))
	}
}

func (w *Wizard) require(ctx context.Context, sessionID string, step Step) (*State, error) {
	st, found, err := w.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errNotStarted
	}
	if st.Step != step {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("Checkout is on the %s step, not %s", st.Step, step))
	}
	return st, nil
}

func (w *Wizard) load(ctx context.Context, sessionID string) (*State, bool, error) {
	var st State
	found, err := w.sessions.Load(ctx, sessionID, &st)
	if err != nil {
		return nil, false, fmt.Errorf("load checkout: %w", err)
	}
	return &st, found, nil
}

func (w *Wizard) save(ctx context.Context, sessionID string, st *State) error {
	if err := w.sessions.Save(ctx, sessionID, st); err != nil {
		return fmt.Errorf("save checkout: %w", err)
	}
	return nil
}

var (
	errEmptyCart  = shared.NewDomainError("EMPTY_CART", "Your cart is empty")
	errNotStarted = shared.NewDomainError(shared.ErrInvalidState.Code, "Checkout has not been started")
)

func (in PaymentInput) validate() error {
	switch in.Method {
	case trade.PaymentMethodMpesa, trade.PaymentMethodBank:
		return nil
	case trade.PaymentMethodCard:
		if in.Card == nil || strings.TrimSpace(in.Card.CardNumber) == "" {
			return shared.NewDomainError(shared.ErrInvalidInput.Code, "Card details are required for card payments")
		}
		return nil
	}
	return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be mpesa, card or bank")
}
