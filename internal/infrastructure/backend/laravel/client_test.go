package laravel

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/maxwelladwale/coltech/internal/domain/identity"
	"github.com/maxwelladwale/coltech/internal/domain/installation"
	"github.com/maxwelladwale/coltech/internal/domain/licensing"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", time.Second, zap.NewNop(), WithHTTPClient(srv.Client()))
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		message string
	}{
		{"not found", http.StatusNotFound, `{"message":"Product not found"}`, shared.ErrNotFound, "Product not found"},
		{"unauthorized", http.StatusUnauthorized, `{}`, shared.ErrUnauthorized, shared.ErrUnauthorized.Message},
		{"forbidden", http.StatusForbidden, `{"error":"nope"}`, shared.ErrForbidden, "nope"},
		{"validation", http.StatusUnprocessableEntity, `{"message":"The email field is required."}`, shared.ErrInvalidInput, "The email field is required."},
		{"server error", http.StatusInternalServerError, `oops`, shared.ErrBackendRequest, "Backend request failed with HTTP 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			_, err := NewProductService(client).GetProductByID(context.Background(), "x")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.message, de.Message)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1/api", 200*time.Millisecond, zap.NewNop())
	_, err := NewProductService(client).GetProducts(context.Background(), catalog.ProductFilter{})
	assert.ErrorIs(t, err, shared.ErrBackendUnavailable)
}

func TestClient_ForwardsBackendToken(t *testing.T) {
	var auth, accept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		accept = r.Header.Get("Accept")
		writeJSON(w, http.StatusOK, `[]`)
	})
	ctx := identity.WithBackendToken(context.Background(), "tok-1")
	_, err := NewLicenseService(client).GetLicensesByUser(ctx, "ignored")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", auth)
	assert.Equal(t, "application/json", accept)
}

func TestProductService(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products":
			assert.Equal(t, "camera", r.URL.Query().Get("category"))
			assert.Equal(t, "true", r.URL.Query().Get("inStock"))
			writeJSON(w, http.StatusOK, `[{"id":7,"name":"IR Camera","category":"camera","price":"6500.00","inStock":true,"stockQuantity":3}]`)
		case "/api/products/mdvrs":
			writeJSON(w, http.StatusOK, `[{"id":"m1","name":"MDVR","category":"mdvr","price":45000,"inStock":true,"channels":4,"licenseType":"ai","storageOptions":["hdd","sd_card"]}]`)
		case "/api/products/m1/stock":
			writeJSON(w, http.StatusOK, `{"available":true,"quantity":9}`)
		case "/api/packages":
			writeJSON(w, http.StatusOK, `[{"id":1,"name":"Starter","totalPrice":55200,"discountedPrice":52000,"items":[{"productId":"m1","quantity":1}]}]`)
		default:
			http.NotFound(w, r)
		}
	})
	svc := NewProductService(client)
	ctx := context.Background()

	inStock := true
	products, err := svc.GetProducts(ctx, catalog.ProductFilter{Category: catalog.CategoryCamera, InStock: &inStock})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "7", products[0].ID)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(6500)))
	assert.Equal(t, 3, *products[0].StockQuantity)

	mdvrs, err := svc.GetMDVRProducts(ctx)
	require.NoError(t, err)
	require.Len(t, mdvrs, 1)
	assert.Equal(t, 4, mdvrs[0].Channels)
	assert.Equal(t, catalog.LicenseTypeAI, mdvrs[0].LicenseType)
	assert.Equal(t, []catalog.StorageOption{catalog.StorageHDD, catalog.StorageSDCard}, mdvrs[0].StorageOptions)

	stock, err := svc.CheckStock(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 9, stock.Quantity)

	packages, err := svc.GetRecommendedPackages(ctx)
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "1", packages[0].ID)
	assert.True(t, packages[0].EffectivePrice().Equal(decimal.NewFromInt(52000)))
}

const orderJSON = `{
	"id": 42, "order_number": "CT-20250301-ABC123", "user_id": null,
	"items": [{"product_id": 7, "product_name": "IR Camera", "quantity": 2, "unit_price": "6500.00", "total_price": "13000.00"}],
	"subtotal": "13000.00", "tax": "2080.00", "shipping": "500.00", "total": "15580.00",
	"status": "pending", "shipping_name": "Wanjiku Kamau", "shipping_phone": "0712345678",
	"shipping_email": "wanjiku@example.com", "shipping_address": "Moi Avenue", "shipping_city": "Nairobi",
	"shipping_county": "Nairobi", "installation_method": "technician", "garage_id": 3,
	"appointment_date": "2025-03-10", "appointment_time": "10:00", "vehicle_registration": "KDA 123A",
	"payment_method": "mpesa", "payment_status": "pending", "created_at": "2025-03-01T08:00:00.000000Z"
}`

func TestOrderService(t *testing.T) {
	var created map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/orders":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			writeJSON(w, http.StatusCreated, orderJSON)
		case r.Method == http.MethodGet && r.URL.Path == "/api/orders/42":
			writeJSON(w, http.StatusOK, orderJSON)
		case r.Method == http.MethodPost && r.URL.Path == "/api/orders/track":
			writeJSON(w, http.StatusNotFound, `{"message":"Order not found"}`)
		default:
			http.NotFound(w, r)
		}
	})
	svc := NewOrderService(client)
	svc.now = func() time.Time { return time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	appointment := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	order, err := svc.CreateOrder(ctx, trade.CreateOrderRequest{
		CartItems: []trade.CartLine{{ProductID: "7", Quantity: 2}},
		ShippingAddress: trade.ShippingAddress{
			FullName: "Wanjiku Kamau", Phone: "0712345678", Email: "wanjiku@example.com",
			Address: "Moi Avenue", City: "Nairobi", County: "Nairobi",
		},
		InstallationDetails: &trade.InstallationDetails{
			Method: trade.InstallationTechnician, GarageID: "3",
			AppointmentDate: &appointment, AppointmentTime: "10:00", VehicleRegistration: "KDA 123A",
		},
		PaymentMethod: trade.PaymentMethodMpesa,
	})
	require.NoError(t, err)

	assert.Equal(t, "mpesa", created["paymentMethod"])
	address := created["shippingAddress"].(map[string]any)
	assert.Equal(t, "Wanjiku Kamau", address["fullName"])
	details := created["installationDetails"].(map[string]any)
	assert.Equal(t, "2025-03-10", details["appointmentDate"])

	assert.Equal(t, "42", order.ID)
	assert.Empty(t, order.UserID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "7", order.Items[0].ProductID)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("15580")))
	require.NotNil(t, order.Tax)
	assert.True(t, order.Tax.Equal(decimal.NewFromInt(2080)))
	require.NotNil(t, order.InstallationDetails)
	assert.Equal(t, "3", order.InstallationDetails.GarageID)
	assert.Equal(t, appointment, *order.InstallationDetails.AppointmentDate)
	assert.Equal(t, 2025, order.CreatedAt.Year())

	t.Run("invoice is derived from the order", func(t *testing.T) {
		invoice, err := svc.GenerateInvoice(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, "INV-20250301-ABC123", invoice.InvoiceNumber)
		assert.Equal(t, "42", invoice.OrderID)
	})

	t.Run("unknown tracking returns nil", func(t *testing.T) {
		found, err := svc.FindOrderByNumberAndEmail(ctx, "CT-X", "a@b.co")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("invalid request never reaches the api", func(t *testing.T) {
		_, err := svc.CreateOrder(ctx, trade.CreateOrderRequest{PaymentMethod: trade.PaymentMethodCard})
		assert.Error(t, err)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	var patched []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/orders/42":
			writeJSON(w, http.StatusOK, orderJSON)
		case r.Method == http.MethodPatch && r.URL.Path == "/api/orders/42/status":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			patched = append(patched, body["status"])
			writeJSON(w, http.StatusOK, strings.Replace(orderJSON, `"status": "pending"`, `"status": "`+body["status"]+`"`, 1))
		default:
			http.NotFound(w, r)
		}
	})
	svc := NewOrderService(client)
	ctx := context.Background()

	tests := []struct {
		name        string
		status      trade.OrderStatus
		wantErr     error
		wantPatched bool
	}{
		{"allowed transition is sent", trade.OrderStatusConfirmed, nil, true},
		{"skipping ahead is refused locally", trade.OrderStatusDelivered, shared.ErrInvalidState, false},
		{"same status is a no-op", trade.OrderStatusPending, nil, false},
		{"unknown status", trade.OrderStatus("lost"), shared.ErrInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patched = nil
			order, err := svc.UpdateOrderStatus(ctx, "42", tt.status)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.status, order.Status)
			}
			assert.Equal(t, tt.wantPatched, len(patched) == 1)
		})
	}
}

func TestAuthService(t *testing.T) {
	var signup map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeJSON(w, http.StatusUnauthorized, `{"message":"Invalid credentials"}`)
		case "/api/auth/signup":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&signup))
			writeJSON(w, http.StatusCreated, `{"access_token":"1|abc","user":{"id":5,"email":"a@b.co","full_name":"Achieng","role":"customer","email_verified_at":null,"created_at":"2025-03-01 10:00:00"}}`)
		case "/api/auth/profile":
			assert.Equal(t, "Bearer 1|abc", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, `{"user":{"id":5,"email":"a@b.co","full_name":"Achieng","email_verified_at":"2025-03-02 09:00:00"}}`)
		default:
			http.NotFound(w, r)
		}
	})
	svc := NewAuthService(client)
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@b.co", "wrong")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)

	result, err := svc.Register(ctx, identity.Registration{Email: "a@b.co", Password: "secret123", FullName: "Achieng", Phone: "0700000000"})
	require.NoError(t, err)
	assert.Equal(t, "1|abc", result.Token)
	assert.Equal(t, "5", result.User.ID)
	assert.False(t, result.User.IsEmailVerified())
	assert.Equal(t, "secret123", signup["password_confirmation"])
	assert.Equal(t, "Achieng", signup["full_name"])

	user, err := svc.GetCurrentUser(ctx, "1|abc")
	require.NoError(t, err)
	assert.True(t, user.IsEmailVerified())

	assert.NoError(t, svc.Logout(ctx, "1|abc"))
}

func TestCertificateService(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/certificates/verify-otp":
			writeJSON(w, http.StatusBadRequest, `{"message":"expired"}`)
		case "/api/certificates/verify-qr":
			writeJSON(w, http.StatusForbidden, `{"message":"Phone not verified"}`)
		case "/api/certificates/generate":
			writeJSON(w, http.StatusOK, `{"id":1,"certificateNumber":"CERT-INS-1","type":"installation","qrCode":"COLTECH-CERT:CERT-INS-1","issuedTo":"Acme","issuedDate":"2025-03-01"}`)
		default:
			http.NotFound(w, r)
		}
	})
	svc := NewCertificateService(client)
	ctx := context.Background()

	ok, err := svc.VerifyOTP(ctx, "0712", "123456")
	require.NoError(t, err)
	assert.False(t, ok)

	result, err := svc.VerifyQRCode(ctx, licensing.VerificationRequest{QRCode: "x"})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.False(t, result.Verified)
	assert.Equal(t, "Phone not verified", result.Message)

	cert, err := svc.GenerateCertificate(ctx, licensing.GenerateCertificateRequest{Type: licensing.CertificateInstallation, OrderID: "42"})
	require.NoError(t, err)
	assert.Equal(t, "CERT-INS-1", cert.CertificateNumber)
	assert.Nil(t, cert.ExpiryDate)
}

func TestLicenseAndInstallationServices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/licenses/check/KDA123A":
			writeJSON(w, http.StatusOK, `{"isActive":true,"expiryDate":"2026-03-01","daysRemaining":12}`)
		case "/api/licenses/renewal-price":
			assert.Equal(t, "non-ai", r.URL.Query().Get("type"))
			writeJSON(w, http.StatusOK, `{"price":6000}`)
		case "/api/garages":
			writeJSON(w, http.StatusOK, `[{"id":3,"name":"Westlands Auto","county":"Nairobi","rating":4.5}]`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	licenses := NewLicenseService(client)
	status, err := licenses.CheckLicenseStatus(ctx, "KDA123A")
	require.NoError(t, err)
	assert.True(t, status.IsActive)
	assert.True(t, status.NeedsExpiryWarning())

	price, err := licenses.GetRenewalPrice(ctx, catalog.LicenseTypeNonAI)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(6000)))

	_, err = licenses.RenewLicense(ctx, "1", 0)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	garages := NewInstallationService(client)
	list, err := garages.GetPartnerGarages(ctx, installation.GarageFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "3", list[0].ID)
	assert.Equal(t, 4.5, *list[0].Rating)

	slots, err := garages.GetAvailableSlots(ctx, "3", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, slots, 8)
}
