package mock

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/maxwelladwale/coltech/internal/infrastructure/config"
	"github.com/maxwelladwale/coltech/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDatabase(t *testing.T) *persistence.Database {
	t.Helper()
	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:       "sqlite",
		SQLitePath:   ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func orderRequest(method trade.InstallationMethod) trade.CreateOrderRequest {
	req := trade.CreateOrderRequest{
		UserID:    "user-1",
		CartItems: []trade.CartLine{{ProductID: "mdvr-4ch-ai", Quantity: 1}, {ProductID: "cam-hd-1080p", Quantity: 2}},
		ShippingAddress: trade.ShippingAddress{
			FullName: "Achieng Otieno",
			Phone:    "+254722000111",
			Email:    "achieng@example.com",
			Address:  "Oginga Odinga St",
			City:     "Kisumu",
			County:   "Kisumu",
		},
		PaymentMethod: trade.PaymentMethodMpesa,
	}
	if method == trade.InstallationTechnician {
		date := time.Now().AddDate(0, 0, 3)
		req.InstallationDetails = &trade.InstallationDetails{
			Method:              trade.InstallationTechnician,
			GarageID:            "garage-ksm-1",
			AppointmentDate:     &date,
			AppointmentTime:     "10:00",
			VehicleRegistration: "KDB 456B",
		}
	} else {
		req.InstallationDetails = &trade.InstallationDetails{Method: trade.InstallationSelf}
	}
	return req
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	svc := NewOrderService(persistence.NewGormOrderRepository(db.DB), NewCatalog(), zap.NewNop())

	t.Run("self install pays flat shipping", func(t *testing.T) {
		order, err := svc.CreateOrder(ctx, orderRequest(trade.InstallationSelf))
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^CT-\d{8}-[0-9A-F]{6}$`), order.OrderNumber)
		assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(55000)))
		assert.True(t, order.Tax.Equal(decimal.NewFromInt(8800)))
		assert.True(t, order.Shipping.Equal(decimal.NewFromInt(500)))
		assert.True(t, order.Total.Equal(decimal.NewFromInt(64300)))
		assert.Equal(t, trade.OrderStatusPending, order.Status)
		assert.Equal(t, trade.PaymentStatusPending, order.PaymentStatus)

		stored, err := svc.GetOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.OrderNumber, stored.OrderNumber)
		assert.Len(t, stored.Items, 2)
	})

	t.Run("technician install ships free", func(t *testing.T) {
		order, err := svc.CreateOrder(ctx, orderRequest(trade.InstallationTechnician))
		require.NoError(t, err)
		assert.True(t, order.Shipping.IsZero())
		assert.True(t, order.Total.Equal(decimal.NewFromInt(63800)))
		assert.True(t, order.NeedsTechnician())
	})

	t.Run("invalid request is rejected before pricing", func(t *testing.T) {
		req := orderRequest(trade.InstallationSelf)
		req.CartItems = nil
		_, err := svc.CreateOrder(ctx, req)
		require.Error(t, err)
	})
}

func TestOrderService_StatusTrackingAndInvoice(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	svc := NewOrderService(persistence.NewGormOrderRepository(db.DB), NewCatalog(), zap.NewNop())

	order, err := svc.CreateOrder(ctx, orderRequest(trade.InstallationSelf))
	require.NoError(t, err)

	t.Run("valid transition", func(t *testing.T) {
		updated, err := svc.UpdateOrderStatus(ctx, order.ID, trade.OrderStatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, trade.OrderStatusConfirmed, updated.Status)
	})

	t.Run("invalid transition", func(t *testing.T) {
		_, err := svc.UpdateOrderStatus(ctx, order.ID, trade.OrderStatusDelivered)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("track by number and email", func(t *testing.T) {
		found, err := svc.FindOrderByNumberAndEmail(ctx, order.OrderNumber, "ACHIENG@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, order.ID, found.ID)

		missing, err := svc.FindOrderByNumberAndEmail(ctx, order.OrderNumber, "someone@else.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("invoice header and recording", func(t *testing.T) {
		inv, err := svc.GenerateInvoice(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "INV-"+order.OrderNumber[3:], inv.InvoiceNumber)
		assert.True(t, inv.Total.Equal(order.Total))

		require.NoError(t, svc.RecordInvoice(ctx, order.ID, "https://files/inv.pdf", inv.QRCode))
		stored, err := svc.GetOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://files/inv.pdf", stored.InvoiceURL)
		assert.Equal(t, inv.QRCode, stored.InvoiceQRCode)
	})
}

type failingOrderRepository struct {
	trade.OrderRepository
}

func (failingOrderRepository) Create(context.Context, *trade.Order) error {
	return errors.New("database is locked")
}

func TestOrderService_StockReservation(t *testing.T) {
	ctx := context.Background()

	stockOf := func(t *testing.T, c *Catalog, id string) int {
		t.Helper()
		status, err := c.CheckStock(ctx, id)
		require.NoError(t, err)
		return status.Quantity
	}

	t.Run("cancelling an order returns its stock", func(t *testing.T) {
		c := NewCatalog()
		svc := NewOrderService(persistence.NewGormOrderRepository(newTestDatabase(t).DB), c, zap.NewNop())

		order, err := svc.CreateOrder(ctx, orderRequest(trade.InstallationSelf))
		require.NoError(t, err)
		assert.Equal(t, 9, stockOf(t, c, "mdvr-4ch-ai"))
		assert.Equal(t, 48, stockOf(t, c, "cam-hd-1080p"))

		_, err = svc.UpdateOrderStatus(ctx, order.ID, trade.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, 10, stockOf(t, c, "mdvr-4ch-ai"))
		assert.Equal(t, 50, stockOf(t, c, "cam-hd-1080p"))
	})

	t.Run("failed save leaves stock untouched", func(t *testing.T) {
		c := NewCatalog()
		svc := NewOrderService(failingOrderRepository{}, c, zap.NewNop())

		_, err := svc.CreateOrder(ctx, orderRequest(trade.InstallationSelf))
		require.Error(t, err)
		assert.Equal(t, 10, stockOf(t, c, "mdvr-4ch-ai"))
		assert.Equal(t, 50, stockOf(t, c, "cam-hd-1080p"))
	})
}

func newTestPaymentService(t *testing.T, roll float64, at time.Time) (*PaymentService, *persistence.GormOrderRepository) {
	t.Helper()
	db := newTestDatabase(t)
	orders := persistence.NewGormOrderRepository(db.DB)
	svc := NewPaymentService(DefaultPaymentConfig(), persistence.NewGormTransactionRepository(db.DB), zap.NewNop(),
		WithOrderRepository(orders),
		WithRandom(func() float64 { return roll }),
		WithClock(func() time.Time { return at }),
		WithoutDelay(),
	)
	return svc, orders
}

func TestPaymentService_Mpesa(t *testing.T) {
	ctx := context.Background()
	at := time.UnixMilli(1740823200123)

	t.Run("success records a completed transaction", func(t *testing.T) {
		svc, _ := newTestPaymentService(t, 0.5, at)
		result, err := svc.InitiateMpesaPayment(ctx, trade.MpesaPaymentRequest{OrderID: "o-1", Amount: decimal.NewFromInt(1000), PhoneNumber: "0712345678"})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "MPESA1740823200123", result.TransactionID)

		verification, err := svc.VerifyPayment(ctx, result.TransactionID)
		require.NoError(t, err)
		assert.True(t, verification.Verified)
		assert.Equal(t, trade.TransactionCompleted, verification.Status)

		status, err := svc.CheckPaymentStatus(ctx, "o-1")
		require.NoError(t, err)
		assert.Equal(t, trade.PaymentStatusPaid, status.Status)
		assert.Equal(t, result.TransactionID, status.TransactionID)
		assert.NotNil(t, status.PaidAt)
	})

	t.Run("roll above the success rate fails", func(t *testing.T) {
		svc, _ := newTestPaymentService(t, 0.95, at)
		result, err := svc.InitiateMpesaPayment(ctx, trade.MpesaPaymentRequest{OrderID: "o-2", Amount: decimal.NewFromInt(1000), PhoneNumber: "0712345678"})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Empty(t, result.TransactionID)

		status, err := svc.CheckPaymentStatus(ctx, "o-2")
		require.NoError(t, err)
		assert.Equal(t, trade.PaymentStatusFailed, status.Status)
	})

	t.Run("requires a phone number", func(t *testing.T) {
		svc, _ := newTestPaymentService(t, 0, at)
		_, err := svc.InitiateMpesaPayment(ctx, trade.MpesaPaymentRequest{OrderID: "o-3"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestPaymentService_Card(t *testing.T) {
	ctx := context.Background()
	at := time.UnixMilli(1740823200999)

	tests := []struct {
		name    string
		number  string
		roll    float64
		success bool
		message string
	}{
		{"accepts spaced 16 digits", "4111 1111 1111 1111", 0.1, true, "Card payment processed successfully"},
		{"too short", "4111 1111", 0.1, false, "Invalid card number"},
		{"too long", "41111111111111111111", 0.1, false, "Invalid card number"},
		{"declined", "4111111111111111", 0.99, false, "Card payment declined. Please check your card details or try another card."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestPaymentService(t, tt.roll, at)
			result, err := svc.ProcessCardPayment(ctx, trade.CardPaymentRequest{
				OrderID: "o-card",
				Amount:  decimal.NewFromInt(5000),
				Card:    trade.CardDetails{CardNumber: tt.number, ExpiryDate: "12/30", CVV: "123"},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.success, result.Success)
			assert.Equal(t, tt.message, result.Message)
		})
	}
}

func TestPaymentService_BankTransfer(t *testing.T) {
	ctx := context.Background()
	at := time.UnixMilli(1740823200456)
	svc, _ := newTestPaymentService(t, 0, at)

	ref, err := svc.GenerateBankTransferReference(ctx, trade.BankTransferRequest{OrderID: "abcdef12-3456", Amount: decimal.NewFromInt(64300)})
	require.NoError(t, err)
	assert.Equal(t, "REFABCDEF12200456", ref.ReferenceNumber)
	assert.Equal(t, DefaultBankDetails, ref.BankDetails)

	status, err := svc.CheckPaymentStatus(ctx, "abcdef12-3456")
	require.NoError(t, err)
	assert.Equal(t, trade.PaymentStatusPending, status.Status)
	assert.Empty(t, status.TransactionID)

	unknown, err := svc.VerifyPayment(ctx, "MPESA0")
	require.NoError(t, err)
	assert.False(t, unknown.Verified)
	assert.Equal(t, trade.TransactionFailed, unknown.Status)
}

func TestPaymentService_UpdatesOrderPaymentStatus(t *testing.T) {
	ctx := context.Background()
	svc, orders := newTestPaymentService(t, 0, time.Now())
	orderSvc := NewOrderService(orders, NewCatalog(), zap.NewNop())

	order, err := orderSvc.CreateOrder(ctx, orderRequest(trade.InstallationSelf))
	require.NoError(t, err)

	_, err = svc.InitiateMpesaPayment(ctx, trade.MpesaPaymentRequest{OrderID: order.ID, Amount: order.Total, PhoneNumber: "0712345678"})
	require.NoError(t, err)

	stored, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.PaymentStatusPaid, stored.PaymentStatus)
}

func TestPaymentService_CancelledContext(t *testing.T) {
	db := newTestDatabase(t)
	svc := NewPaymentService(DefaultPaymentConfig(), persistence.NewGormTransactionRepository(db.DB), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.InitiateMpesaPayment(ctx, trade.MpesaPaymentRequest{OrderID: "o", PhoneNumber: "0712345678"})
	assert.ErrorIs(t, err, context.Canceled)
}
