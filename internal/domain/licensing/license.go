package licensing

import (
	"math"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ExpiryWarningDays is how close to expiry a license triggers a warning
const ExpiryWarningDays = 30

// LicenseStatus is the lifecycle state of a platform license
type LicenseStatus string

const (
	LicenseActive    LicenseStatus = "active"
	LicenseExpired   LicenseStatus = "expired"
	LicenseSuspended LicenseStatus = "suspended"
)

// License entitles one vehicle's MDVR to the telematics platform
type License struct {
	ID                  string
	LicenseKey          string
	MDVRSerialNumber    string
	VehicleRegistration string
	Type                catalog.LicenseType
	Status              LicenseStatus
	ActivationDate      time.Time
	ExpiryDate          time.Time
	RenewalPrice        decimal.Decimal
	OrderID             string
}

// StatusAt evaluates the license at the given instant
func (l *License) StatusAt(now time.Time) StatusCheck {
	active := l.Status == LicenseActive && now.Before(l.ExpiryDate)
	expiry := l.ExpiryDate
	days := DaysBetween(now, l.ExpiryDate)
	if days < 0 {
		days = 0
	}
	return StatusCheck{
		IsActive:      active,
		ExpiryDate:    &expiry,
		DaysRemaining: &days,
	}
}

// Renew extends the license by months from the later of now and the current expiry
func (l *License) Renew(months int, now time.Time) {
	base := l.ExpiryDate
	if now.After(base) {
		base = now
	}
	l.ExpiryDate = base.AddDate(0, months, 0)
	l.Status = LicenseActive
}

// StatusCheck is the answer to "is this vehicle licensed"
type StatusCheck struct {
	IsActive      bool
	ExpiryDate    *time.Time
	DaysRemaining *int
}

// NeedsExpiryWarning reports whether the license is active and close to expiry
func (s StatusCheck) NeedsExpiryWarning() bool {
	return s.IsActive && s.DaysRemaining != nil && *s.DaysRemaining <= ExpiryWarningDays
}

// ActivationRequest activates the license bundled with an order
type ActivationRequest struct {
	OrderID             string `json:"orderId"`
	MDVRSerialNumber    string `json:"mdvrSerialNumber"`
	VehicleRegistration string `json:"vehicleRegistration"`
}

// DaysBetween returns whole days from a to b, rounded up
func DaysBetween(a, b time.Time) int {
	return int(math.Ceil(b.Sub(a).Hours() / 24))
}
