package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/maxwelladwale/coltech/internal/application/checkout"
	orderapp "github.com/maxwelladwale/coltech/internal/application/order"
	notifydomain "github.com/maxwelladwale/coltech/internal/domain/notification"
	"github.com/maxwelladwale/coltech/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shippingForm(f *gofakeit.Faker) gin.H {
	return gin.H{
		"full_name": f.Name(),
		"phone":     "+2547" + f.Numerify("########"),
		"email":     strings.ToLower(f.Email()),
		"address":   f.Street(),
		"city":      "Nairobi",
		"county":    "Nairobi",
	}
}

// checkoutToPayment fills the cart and walks the wizard to the payment step
func checkoutToPayment(t *testing.T, env *testEnv, opts []requestOption, shipping, installation gin.H) {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "mdvr-4ch-ai", "quantity": 1}, opts...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = env.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "cam-hd-1080p", "quantity": 2}, opts...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var st checkout.StateResponse
	w = env.do(t, http.MethodPost, "/api/v1/checkout/start", nil, opts...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &st)
	require.Equal(t, "shipping", st.Step)

	w = env.do(t, http.MethodPost, "/api/v1/checkout/shipping", shipping, opts...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &st)
	require.Equal(t, "installation", st.Step)

	w = env.do(t, http.MethodPost, "/api/v1/checkout/installation", installation, opts...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &st)
	require.Equal(t, "payment", st.Step)
}

func TestCheckoutHandler_MpesaFlow(t *testing.T) {
	env := newTestEnv(t)
	faker := gofakeit.New(7)
	session := []requestOption{withSession("checkout-session-mpesa-01")}
	shipping := shippingForm(faker)

	checkoutToPayment(t, env, session, shipping, gin.H{"method": "self"})

	w := env.do(t, http.MethodPost, "/api/v1/checkout/payment", gin.H{
		"method":       "mpesa",
		"phone_number": "0712345678",
	}, session...)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result checkout.ResultResponse
	decodeData(t, w, &result)
	require.NotNil(t, result.Payment)
	assert.True(t, result.Payment.Success)
	assert.NotEmpty(t, result.Payment.TransactionID)
	assert.Equal(t, "55000", result.Order.Subtotal.String())
	assert.Equal(t, shipping["email"], result.Order.ShippingAddress.Email)
	assert.NotEmpty(t, result.NextSteps)
	assert.Empty(t, result.AppointmentID)
	assert.Contains(t, env.published.types(), notifydomain.EventSalesOrder)
	assert.Contains(t, env.published.types(), notifydomain.EventOrderConfirmation)

	t.Run("cart is emptied", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/cart", nil, session...)
		var cart struct {
			Items []any `json:"items"`
		}
		decodeData(t, w, &cart)
		assert.Empty(t, cart.Items)
	})

	t.Run("state is complete", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/checkout", nil, session...)
		var st checkout.StateResponse
		decodeData(t, w, &st)
		assert.Equal(t, "complete", st.Step)
		assert.Equal(t, result.Order.ID, st.OrderID)
	})

	t.Run("confirmation", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/orders/"+result.Order.ID+"/confirmation", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var conf orderapp.ConfirmationResponse
		decodeData(t, w, &conf)
		assert.Equal(t, result.Order.OrderNumber, conf.Order.OrderNumber)
		assert.Contains(t, conf.NextSteps[0], shipping["email"])
	})

	t.Run("payment status", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/orders/"+result.Order.ID+"/payment", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var status orderapp.PaymentStatusResponse
		decodeData(t, w, &status)
		assert.Equal(t, "paid", status.Status)
		assert.Equal(t, result.Payment.TransactionID, status.TransactionID)
	})

	t.Run("track by number and email", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/orders/track", gin.H{
			"order_number": result.Order.OrderNumber,
			"email":        shipping["email"],
		})
		require.Equal(t, http.StatusOK, w.Code)
		var o orderapp.OrderResponse
		decodeData(t, w, &o)
		assert.Equal(t, result.Order.ID, o.ID)

		w = env.do(t, http.MethodPost, "/api/v1/orders/track", gin.H{
			"order_number": result.Order.OrderNumber,
			"email":        "someone.else@example.com",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invoice", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/orders/"+result.Order.ID+"/invoice", nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var inv orderapp.InvoiceResponse
		decodeData(t, w, &inv)
		assert.Equal(t, result.Order.ID, inv.OrderID)
		assert.NotEmpty(t, inv.InvoiceNumber)
		assert.True(t, strings.HasPrefix(inv.DownloadURL, "https://files.coltech.test/"), inv.DownloadURL)
		assert.NotEmpty(t, inv.QRCode)
	})
}

func TestCheckoutHandler_TechnicianInstallation(t *testing.T) {
	env := newTestEnv(t)
	session := []requestOption{withSession("checkout-session-tech-001")}
	date := time.Now().In(env.loc).AddDate(0, 0, 3).Format("2006-01-02")

	checkoutToPayment(t, env, session, shippingForm(gofakeit.New(11)), gin.H{
		"method":               "technician",
		"garage_id":            "garage-nbi-1",
		"appointment_date":     date,
		"appointment_time":     "10:00",
		"vehicle_registration": "KDA 123B",
	})

	w := env.do(t, http.MethodPost, "/api/v1/checkout/payment", gin.H{"method": "bank"}, session...)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result checkout.ResultResponse
	decodeData(t, w, &result)
	require.NotNil(t, result.BankTransfer)
	assert.NotEmpty(t, result.BankTransfer.ReferenceNumber)
	assert.NotEmpty(t, result.AppointmentID)
	assert.Equal(t, "pending", result.Order.PaymentStatus)
	assert.Contains(t, env.published.types(), notifydomain.EventAppointmentRemind)

	w = env.do(t, http.MethodGet, "/api/v1/garages/garage-nbi-1/slots?date="+date, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var slots SlotsResponse
	decodeData(t, w, &slots)
	for _, s := range slots.Slots {
		assert.NotEqual(t, 10, s.Hour(), "booked slot still offered")
	}
}

func TestCheckoutHandler_Validation(t *testing.T) {
	env := newTestEnv(t)

	t.Run("start with empty cart", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/checkout/start", nil, withSession("checkout-empty-cart-0001"))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeEmptyCart, errorCode(t, w))
	})

	t.Run("shipping before start", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/checkout/shipping", shippingForm(gofakeit.New(3)), withSession("checkout-not-started-01"))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, errorCode(t, w))
	})

	t.Run("foreign phone number", func(t *testing.T) {
		form := shippingForm(gofakeit.New(5))
		form["phone"] = "+1 415 555 0100"
		w := env.do(t, http.MethodPost, "/api/v1/checkout/shipping", form, withSession("checkout-bad-phone-0001"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
	})

	t.Run("card payment without card", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/checkout/payment", gin.H{"method": "card"}, withSession("checkout-no-card-000001"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCheckoutHandler_BackAndReset(t *testing.T) {
	env := newTestEnv(t)
	session := []requestOption{withSession("checkout-back-reset-001")}
	checkoutToPayment(t, env, session, shippingForm(gofakeit.New(9)), gin.H{"method": "self"})

	w := env.do(t, http.MethodPost, "/api/v1/checkout/back", nil, session...)
	require.Equal(t, http.StatusOK, w.Code)
	var st checkout.StateResponse
	decodeData(t, w, &st)
	assert.Equal(t, "installation", st.Step)
	assert.NotNil(t, st.ShippingAddress)

	w = env.do(t, http.MethodDelete, "/api/v1/checkout", nil, session...)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/checkout", nil, session...)
	require.Equal(t, http.StatusOK, w.Code)
	var fresh checkout.StateResponse
	decodeData(t, w, &fresh)
	assert.Equal(t, "shipping", fresh.Step)
	assert.Nil(t, fresh.ShippingAddress)
	assert.Nil(t, fresh.Installation)
}

func TestOrderHandler_CustomerOrders(t *testing.T) {
	env := newTestEnv(t)
	faker := gofakeit.New(21)
	tokens := registerCustomer(t, env, faker)
	opts := []requestOption{withSession("orders-mine-session-001"), withBearer(tokens.AccessToken)}

	shipping := shippingForm(faker)
	shipping["email"] = tokens.User.Email
	checkoutToPayment(t, env, opts, shipping, gin.H{"method": "self"})
	w := env.do(t, http.MethodPost, "/api/v1/checkout/payment", gin.H{"method": "mpesa", "phone_number": "0722000111"}, opts...)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var result checkout.ResultResponse
	decodeData(t, w, &result)
	assert.Equal(t, tokens.User.ID, result.Order.UserID)
	assert.Equal(t, "confirmed", result.Order.Status)

	w = env.do(t, http.MethodGet, "/api/v1/orders/mine", nil, opts...)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []orderapp.OrderResponse
	decodeData(t, w, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, result.Order.ID, mine[0].ID)

	w = env.do(t, http.MethodGet, "/api/v1/orders/guest", nil, opts...)
	require.Equal(t, http.StatusOK, w.Code)
	var byEmail []orderapp.OrderResponse
	decodeData(t, w, &byEmail)
	assert.Len(t, byEmail, 1)

	t.Run("status transitions", func(t *testing.T) {
		path := "/api/v1/orders/" + result.Order.ID + "/status"
		w := env.do(t, http.MethodPatch, path, gin.H{"status": "delivered"}, opts...)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		w = env.do(t, http.MethodPatch, path, gin.H{"status": "processing"}, opts...)
		require.Equal(t, http.StatusOK, w.Code)
		var o orderapp.OrderResponse
		decodeData(t, w, &o)
		assert.Equal(t, "processing", o.Status)
	})

	t.Run("requires a token", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/orders/mine", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
