package laravel

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/maxwelladwale/coltech/internal/domain/identity"
	"github.com/maxwelladwale/coltech/internal/domain/installation"
	"github.com/maxwelladwale/coltech/internal/domain/licensing"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// flexID accepts ids encoded as JSON strings or numbers
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTime accepts the date formats Laravel serializes
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseTimePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := parseTime(*s)
	if !ok {
		return nil
	}
	return &t
}

// catalog

type productDTO struct {
	ID               flexID          `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"shortDescription"`
	Price            decimal.Decimal `json:"price"`
	ImageURL         string          `json:"imageUrl"`
	VideoURL         string          `json:"videoUrl"`
	Specifications   map[string]any  `json:"specifications"`
	InStock          bool            `json:"inStock"`
	StockQuantity    *int            `json:"stockQuantity"`
}

func (d productDTO) toDomain() catalog.Product {
	return catalog.Product{
		ID:               string(d.ID),
		Name:             d.Name,
		Category:         catalog.ProductCategory(d.Category),
		Description:      d.Description,
		ShortDescription: d.ShortDescription,
		Price:            d.Price,
		ImageURL:         d.ImageURL,
		VideoURL:         d.VideoURL,
		Specifications:   d.Specifications,
		InStock:          d.InStock,
		StockQuantity:    d.StockQuantity,
	}
}

func storageOptions(in []string) []catalog.StorageOption {
	out := make([]catalog.StorageOption, 0, len(in))
	for _, s := range in {
		out = append(out, catalog.StorageOption(s))
	}
	return out
}

type mdvrDTO struct {
	productDTO
	IncludesFreeLicense   bool     `json:"includesFreeLicense"`
	LicenseType           string   `json:"licenseType"`
	LicenseDurationMonths int      `json:"licenseDurationMonths"`
	Channels              int      `json:"channels"`
	StorageOptions        []string `json:"storageOptions"`
	Features              []string `json:"features"`
}

func (d mdvrDTO) toDomain() catalog.MDVRProduct {
	return catalog.MDVRProduct{
		Product:               d.productDTO.toDomain(),
		IncludesFreeLicense:   d.IncludesFreeLicense,
		LicenseType:           catalog.LicenseType(d.LicenseType),
		LicenseDurationMonths: d.LicenseDurationMonths,
		Channels:              d.Channels,
		StorageOptions:        storageOptions(d.StorageOptions),
		Features:              d.Features,
	}
}

type cameraDTO struct {
	productDTO
	Channels       int      `json:"channels"`
	StorageOptions []string `json:"storageOptions"`
	Features       []string `json:"features"`
}

func (d cameraDTO) toDomain() catalog.Camera {
	return catalog.Camera{
		Product:        d.productDTO.toDomain(),
		Channels:       d.Channels,
		StorageOptions: storageOptions(d.StorageOptions),
		Features:       d.Features,
	}
}

type packageDTO struct {
	ID              flexID           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	RecommendedFor  string           `json:"recommendedFor"`
	TotalPrice      decimal.Decimal  `json:"totalPrice"`
	DiscountedPrice *decimal.Decimal `json:"discountedPrice"`
	Items           []struct {
		ProductID flexID `json:"productId"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
}

func (d packageDTO) toDomain() catalog.Package {
	pkg := catalog.Package{
		ID:              string(d.ID),
		Name:            d.Name,
		Description:     d.Description,
		RecommendedFor:  d.RecommendedFor,
		TotalPrice:      d.TotalPrice,
		DiscountedPrice: d.DiscountedPrice,
		Items:           make([]catalog.PackageItem, 0, len(d.Items)),
	}
	for _, item := range d.Items {
		pkg.Items = append(pkg.Items, catalog.PackageItem{ProductID: string(item.ProductID), Quantity: item.Quantity})
	}
	return pkg
}

// orders arrive snake_case

type orderItemDTO struct {
	ProductID   flexID          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type orderDTO struct {
	ID                  flexID           `json:"id"`
	OrderNumber         string           `json:"order_number"`
	UserID              flexID           `json:"user_id"`
	Items               []orderItemDTO   `json:"items"`
	Subtotal            decimal.Decimal  `json:"subtotal"`
	Tax                 *decimal.Decimal `json:"tax"`
	Shipping            *decimal.Decimal `json:"shipping"`
	Total               decimal.Decimal  `json:"total"`
	Status              string           `json:"status"`
	ShippingName        string           `json:"shipping_name"`
	ShippingPhone       string           `json:"shipping_phone"`
	ShippingEmail       string           `json:"shipping_email"`
	ShippingAddress     string           `json:"shipping_address"`
	ShippingCity        string           `json:"shipping_city"`
	ShippingCounty      string           `json:"shipping_county"`
	ShippingPostalCode  string           `json:"shipping_postal_code"`
	InstallationMethod  string           `json:"installation_method"`
	GarageID            flexID           `json:"garage_id"`
	AppointmentDate     *string          `json:"appointment_date"`
	AppointmentTime     string           `json:"appointment_time"`
	VehicleRegistration string           `json:"vehicle_registration"`
	VehicleMake         string           `json:"vehicle_make"`
	VehicleModel        string           `json:"vehicle_model"`
	PaymentMethod       string           `json:"payment_method"`
	PaymentStatus       string           `json:"payment_status"`
	InvoiceURL          string           `json:"invoice_url"`
	InvoiceQRCode       string           `json:"invoice_qr_code"`
	CreatedAt           string           `json:"created_at"`
	UpdatedAt           string           `json:"updated_at"`
}

func (d orderDTO) toDomain() *trade.Order {
	o := &trade.Order{
		ID:          string(d.ID),
		OrderNumber: d.OrderNumber,
		UserID:      string(d.UserID),
		Items:       make([]trade.OrderItem, 0, len(d.Items)),
		Subtotal:    d.Subtotal,
		Tax:         d.Tax,
		Shipping:    d.Shipping,
		Total:       d.Total,
		Status:      trade.OrderStatus(d.Status),
		ShippingAddress: trade.ShippingAddress{
			FullName:   d.ShippingName,
			Phone:      d.ShippingPhone,
			Email:      d.ShippingEmail,
			Address:    d.ShippingAddress,
			City:       d.ShippingCity,
			County:     d.ShippingCounty,
			PostalCode: d.ShippingPostalCode,
		},
		PaymentMethod: d.PaymentMethod,
		PaymentStatus: trade.PaymentStatus(d.PaymentStatus),
		InvoiceURL:    d.InvoiceURL,
		InvoiceQRCode: d.InvoiceQRCode,
	}
	for _, item := range d.Items {
		o.Items = append(o.Items, trade.OrderItem{
			ProductID:   string(item.ProductID),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	if d.InstallationMethod != "" {
		o.InstallationDetails = &trade.InstallationDetails{
			Method:              trade.InstallationMethod(d.InstallationMethod),
			GarageID:            string(d.GarageID),
			AppointmentDate:     parseTimePtr(d.AppointmentDate),
			AppointmentTime:     d.AppointmentTime,
			VehicleRegistration: d.VehicleRegistration,
			VehicleMake:         d.VehicleMake,
			VehicleModel:        d.VehicleModel,
		}
	}
	if t, ok := parseTime(d.CreatedAt); ok {
		o.CreatedAt = t
	}
	if t, ok := parseTime(d.UpdatedAt); ok {
		o.UpdatedAt = t
	}
	return o
}

// order requests are sent camelCase

type shippingAddressBody struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	County     string `json:"county"`
	PostalCode string `json:"postalCode,omitempty"`
}

type installationBody struct {
	Method              string `json:"method"`
	GarageID            string `json:"garageId,omitempty"`
	AppointmentDate     string `json:"appointmentDate,omitempty"`
	AppointmentTime     string `json:"appointmentTime,omitempty"`
	VehicleRegistration string `json:"vehicleRegistration,omitempty"`
	VehicleMake         string `json:"vehicleMake,omitempty"`
	VehicleModel        string `json:"vehicleModel,omitempty"`
}

type createOrderBody struct {
	CartItems           []trade.CartLine    `json:"cartItems"`
	ShippingAddress     shippingAddressBody `json:"shippingAddress"`
	InstallationDetails *installationBody   `json:"installationDetails,omitempty"`
	PaymentMethod       string              `json:"paymentMethod"`
}

func newCreateOrderBody(req trade.CreateOrderRequest) createOrderBody {
	a := req.ShippingAddress
	body := createOrderBody{
		CartItems: req.CartItems,
		ShippingAddress: shippingAddressBody{
			FullName:   a.FullName,
			Phone:      a.Phone,
			Email:      a.Email,
			Address:    a.Address,
			City:       a.City,
			County:     a.County,
			PostalCode: a.PostalCode,
		},
		PaymentMethod: string(req.PaymentMethod),
	}
	if d := req.InstallationDetails; d != nil {
		body.InstallationDetails = &installationBody{
			Method:              string(d.Method),
			GarageID:            d.GarageID,
			AppointmentTime:     d.AppointmentTime,
			VehicleRegistration: d.VehicleRegistration,
			VehicleMake:         d.VehicleMake,
			VehicleModel:        d.VehicleModel,
		}
		if d.AppointmentDate != nil {
			body.InstallationDetails.AppointmentDate = d.AppointmentDate.Format("2006-01-02")
		}
	}
	return body
}

// auth

type userDTO struct {
	ID              flexID  `json:"id"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	FullName        string  `json:"full_name"`
	Role            string  `json:"role"`
	EmailVerifiedAt *string `json:"email_verified_at"`
	CreatedAt       string  `json:"created_at"`
}

func (d userDTO) toDomain() identity.User {
	u := identity.User{
		ID:              string(d.ID),
		Email:           d.Email,
		Phone:           d.Phone,
		FullName:        d.FullName,
		Role:            d.Role,
		EmailVerifiedAt: parseTimePtr(d.EmailVerifiedAt),
	}
	if t, ok := parseTime(d.CreatedAt); ok {
		u.CreatedAt = t
	}
	return u
}

type authResponse struct {
	AccessToken string  `json:"access_token"`
	User        userDTO `json:"user"`
}

// garages

type garageDTO struct {
	ID             flexID   `json:"id"`
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	County         string   `json:"county"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Rating         *float64 `json:"rating"`
	AvailableSlots []string `json:"availableSlots"`
}

func (d garageDTO) toDomain() installation.PartnerGarage {
	g := installation.PartnerGarage{
		ID:       string(d.ID),
		Name:     d.Name,
		Location: d.Location,
		County:   d.County,
		Phone:    d.Phone,
		Email:    d.Email,
		Rating:   d.Rating,
	}
	for _, s := range d.AvailableSlots {
		if t, ok := parseTime(s); ok {
			g.AvailableSlots = append(g.AvailableSlots, t)
		}
	}
	return g
}

// licensing

type licenseDTO struct {
	ID                  flexID          `json:"id"`
	LicenseKey          string          `json:"licenseKey"`
	MDVRSerialNumber    string          `json:"mdvrSerialNumber"`
	VehicleRegistration string          `json:"vehicleRegistration"`
	Type                string          `json:"type"`
	Status              string          `json:"status"`
	ActivationDate      string          `json:"activationDate"`
	ExpiryDate          string          `json:"expiryDate"`
	RenewalPrice        decimal.Decimal `json:"renewalPrice"`
	OrderID             flexID          `json:"orderId"`
}

func (d licenseDTO) toDomain() licensing.License {
	l := licensing.License{
		ID:                  string(d.ID),
		LicenseKey:          d.LicenseKey,
		MDVRSerialNumber:    d.MDVRSerialNumber,
		VehicleRegistration: d.VehicleRegistration,
		Type:                catalog.LicenseType(d.Type),
		Status:              licensing.LicenseStatus(d.Status),
		RenewalPrice:        d.RenewalPrice,
		OrderID:             string(d.OrderID),
	}
	if t, ok := parseTime(d.ActivationDate); ok {
		l.ActivationDate = t
	}
	if t, ok := parseTime(d.ExpiryDate); ok {
		l.ExpiryDate = t
	}
	return l
}

type licenseStatusDTO struct {
	IsActive      bool    `json:"isActive"`
	ExpiryDate    *string `json:"expiryDate"`
	DaysRemaining *int    `json:"daysRemaining"`
}

type certificateDTO struct {
	ID                flexID         `json:"id"`
	CertificateNumber string         `json:"certificateNumber"`
	Type              string         `json:"type"`
	QRCode            string         `json:"qrCode"`
	IssuedTo          string         `json:"issuedTo"`
	IssuedDate        string         `json:"issuedDate"`
	ExpiryDate        *string        `json:"expiryDate"`
	Details           map[string]any `json:"details"`
}

func (d certificateDTO) toDomain() *licensing.Certificate {
	c := &licensing.Certificate{
		ID:                string(d.ID),
		CertificateNumber: d.CertificateNumber,
		Type:              licensing.CertificateType(d.Type),
		QRCode:            d.QRCode,
		IssuedTo:          d.IssuedTo,
		ExpiryDate:        parseTimePtr(d.ExpiryDate),
		Details:           d.Details,
	}
	if t, ok := parseTime(d.IssuedDate); ok {
		c.IssuedDate = t
	}
	return c
}

type verificationResultDTO struct {
	IsValid     bool            `json:"isValid"`
	Verified    bool            `json:"verified"`
	Message     string          `json:"message"`
	Certificate *certificateDTO `json:"certificate"`
}
