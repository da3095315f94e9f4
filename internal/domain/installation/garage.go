package installation

import (
	"context"
	"strings"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/shared"
)

// First and last bookable hour at a partner garage
const (
	FirstSlotHour = 9
	LastSlotHour  = 16
)

// PartnerGarage is a garage that installs COLTECH hardware
type PartnerGarage struct {
	ID             string
	Name           string
	Location       string
	County         string
	Phone          string
	Email          string
	Rating         *float64
	AvailableSlots []time.Time
}

// GarageFilter narrows the garage listing
type GarageFilter struct {
	County string
}

// Matches reports whether a garage passes the filter
func (f GarageFilter) Matches(g *PartnerGarage) bool {
	return f.County == "" || strings.EqualFold(g.County, f.County)
}

// Vehicle identifies the vehicle being fitted
type Vehicle struct {
	Registration string
	Make         string
	Model        string
}

// AppointmentRequest books an installation slot
type AppointmentRequest struct {
	OrderID         string
	GarageID        string
	AppointmentDate time.Time
	AppointmentTime string
	Vehicle         Vehicle
}

// Validate checks the booking request
func (r AppointmentRequest) Validate() error {
	if strings.TrimSpace(r.OrderID) == "" || strings.TrimSpace(r.GarageID) == "" {
		return shared.NewDomainError("INVALID_APPOINTMENT", "Order and garage are required")
	}
	if r.AppointmentDate.IsZero() || strings.TrimSpace(r.AppointmentTime) == "" {
		return shared.NewDomainError("INVALID_APPOINTMENT", "Appointment date and time are required")
	}
	if strings.TrimSpace(r.Vehicle.Registration) == "" {
		return shared.NewDomainError("INVALID_APPOINTMENT", "Vehicle registration is required")
	}
	return nil
}

// AppointmentConfirmation is returned once a slot is booked
type AppointmentConfirmation struct {
	AppointmentID string
	Confirmed     bool
}

// DailySlots returns hourly slots from FirstSlotHour to LastSlotHour on the
// calendar day of date, in date's location.
func DailySlots(date time.Time) []time.Time {
	slots := make([]time.Time, 0, LastSlotHour-FirstSlotHour+1)
	for h := FirstSlotHour; h <= LastSlotHour; h++ {
		slots = append(slots, time.Date(date.Year(), date.Month(), date.Day(), h, 0, 0, 0, date.Location()))
	}
	return slots
}

// InstallationService is the backend contract for garages and appointments
type InstallationService interface {
	GetPartnerGarages(ctx context.Context, filter GarageFilter) ([]PartnerGarage, error)
	GetGarageByID(ctx context.Context, garageID string) (*PartnerGarage, error)
	GetAvailableSlots(ctx context.Context, garageID string, date time.Time) ([]time.Time, error)
	ScheduleAppointment(ctx context.Context, req AppointmentRequest) (*AppointmentConfirmation, error)
}
