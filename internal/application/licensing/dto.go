package licensing

import (
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/licensing"
	"github.com/shopspring/decimal"
)

// ActivateRequest activates the license bundled with an order
type ActivateRequest struct {
	OrderID             string `json:"order_id" binding:"required"`
	MDVRSerialNumber    string `json:"mdvr_serial_number" binding:"required,max=50"`
	VehicleRegistration string `json:"vehicle_registration" binding:"required,max=20"`
}

// ActivationRequest converts the form
func (r ActivateRequest) ActivationRequest() licensing.ActivationRequest {
	return licensing.ActivationRequest{
		OrderID:             r.OrderID,
		MDVRSerialNumber:    r.MDVRSerialNumber,
		VehicleRegistration: r.VehicleRegistration,
	}
}

// RenewRequest extends a license
type RenewRequest struct {
	DurationMonths int `json:"duration_months" binding:"required,min=1,max=60"`
}

// RenewalPriceQuery selects the license type to price
type RenewalPriceQuery struct {
	Type string `form:"type" binding:"required,oneof=ai non-ai"`
}

// CertificateRequest asks for a certificate
type CertificateRequest struct {
	Type    string         `json:"type" binding:"required,oneof=installation license product"`
	OrderID string         `json:"order_id" binding:"required"`
	Details map[string]any `json:"details"`
}

// GenerateRequest converts the form
func (r CertificateRequest) GenerateRequest() licensing.GenerateCertificateRequest {
	return licensing.GenerateCertificateRequest{
		Type:    licensing.CertificateType(r.Type),
		OrderID: r.OrderID,
		Details: r.Details,
	}
}

// LicenseResponse represents a license in API responses
type LicenseResponse struct {
	ID                  string          `json:"id"`
	LicenseKey          string          `json:"license_key"`
	MDVRSerialNumber    string          `json:"mdvr_serial_number"`
	VehicleRegistration string          `json:"vehicle_registration"`
	Type                string          `json:"type"`
	Status              string          `json:"status"`
	ActivationDate      time.Time       `json:"activation_date"`
	ExpiryDate          time.Time       `json:"expiry_date"`
	RenewalPrice        decimal.Decimal `json:"renewal_price"`
	OrderID             string          `json:"order_id,omitempty"`
}

// StatusResponse answers whether a vehicle is licensed
type StatusResponse struct {
	IsActive      bool       `json:"is_active"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	DaysRemaining *int       `json:"days_remaining,omitempty"`
	ExpiringSoon  bool       `json:"expiring_soon"`
}

// RenewalPriceResponse is the annual price of a license type
type RenewalPriceResponse struct {
	Type  string          `json:"type"`
	Price decimal.Decimal `json:"price"`
}

// CertificateResponse represents an issued certificate
type CertificateResponse struct {
	ID                string         `json:"id"`
	CertificateNumber string         `json:"certificate_number"`
	Type              string         `json:"type"`
	QRCode            string         `json:"qr_code"`
	IssuedTo          string         `json:"issued_to"`
	IssuedDate        time.Time      `json:"issued_date"`
	ExpiryDate        *time.Time     `json:"expiry_date,omitempty"`
	Details           map[string]any `json:"details,omitempty"`
}

// ToLicenseResponse converts a license
func ToLicenseResponse(l *licensing.License) LicenseResponse {
	return LicenseResponse{
		ID:                  l.ID,
		LicenseKey:          l.LicenseKey,
		MDVRSerialNumber:    l.MDVRSerialNumber,
		VehicleRegistration: l.VehicleRegistration,
		Type:                string(l.Type),
		Status:              string(l.Status),
		ActivationDate:      l.ActivationDate,
		ExpiryDate:          l.ExpiryDate,
		RenewalPrice:        l.RenewalPrice,
		OrderID:             l.OrderID,
	}
}

// ToLicenseResponses converts a list of licenses
func ToLicenseResponses(ls []licensing.License) []LicenseResponse {
	out := make([]LicenseResponse, len(ls))
	for i := range ls {
		out[i] = ToLicenseResponse(&ls[i])
	}
	return out
}

// ToStatusResponse converts a status check
func ToStatusResponse(s *licensing.StatusCheck) StatusResponse {
	return StatusResponse{
		IsActive:      s.IsActive,
		ExpiryDate:    s.ExpiryDate,
		DaysRemaining: s.DaysRemaining,
		ExpiringSoon:  s.NeedsExpiryWarning(),
	}
}

// ToCertificateResponse converts a certificate
func ToCertificateResponse(c *licensing.Certificate) CertificateResponse {
	return CertificateResponse{
		ID:                c.ID,
		CertificateNumber: c.CertificateNumber,
		Type:              string(c.Type),
		QRCode:            c.QRCode,
		IssuedTo:          c.IssuedTo,
		IssuedDate:        c.IssuedDate,
		ExpiryDate:        c.ExpiryDate,
		Details:           c.Details,
	}
}
