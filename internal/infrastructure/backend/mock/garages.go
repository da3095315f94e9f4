package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maxwelladwale/coltech/internal/domain/installation"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
)

// appointmentTimeLayouts are the accepted AppointmentTime formats
var appointmentTimeLayouts = []string{"15:04", "3:04 PM", "3:04PM", "3PM"}

// InstallationService serves seeded partner garages and books hourly slots
type InstallationService struct {
	garages []installation.PartnerGarage

	mu     sync.Mutex
	booked map[string]map[time.Time]string // garage -> UTC slot -> appointment id
}

var _ installation.InstallationService = (*InstallationService)(nil)

// NewInstallationService creates an InstallationService
func NewInstallationService() *InstallationService {
	return &InstallationService{
		garages: seedGarages(),
		booked:  make(map[string]map[time.Time]string),
	}
}

// GetPartnerGarages lists garages, optionally by county
func (s *InstallationService) GetPartnerGarages(_ context.Context, filter installation.GarageFilter) ([]installation.PartnerGarage, error) {
	result := make([]installation.PartnerGarage, 0, len(s.garages))
	for i := range s.garages {
		if filter.Matches(&s.garages[i]) {
			result = append(result, s.garages[i])
		}
	}
	return result, nil
}

// GetGarageByID returns a garage or shared.ErrNotFound
func (s *InstallationService) GetGarageByID(_ context.Context, garageID string) (*installation.PartnerGarage, error) {
	for _, g := range s.garages {
		if g.ID == garageID {
			return &g, nil
		}
	}
	return nil, shared.ErrNotFound
}

// GetAvailableSlots returns the day's hourly slots that are not booked
func (s *InstallationService) GetAvailableSlots(ctx context.Context, garageID string, date time.Time) ([]time.Time, error) {
	if _, err := s.GetGarageByID(ctx, garageID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := s.booked[garageID]
	slots := installation.DailySlots(date)
	free := slots[:0]
	for _, slot := range slots {
		if _, ok := taken[slot.UTC()]; !ok {
			free = append(free, slot)
		}
	}
	return free, nil
}

// ParseAppointmentSlot combines a date and a time-of-day string
func ParseAppointmentSlot(date time.Time, clock string) (time.Time, bool) {
	clock = strings.ToUpper(strings.TrimSpace(clock))
	for _, layout := range appointmentTimeLayouts {
		t, err := time.Parse(layout, clock)
		if err == nil {
			return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), true
		}
	}
	return time.Time{}, false
}

// ScheduleAppointment books a slot. Requests for an already booked slot fail
// with an invalid state error.
func (s *InstallationService) ScheduleAppointment(ctx context.Context, req installation.AppointmentRequest) (*installation.AppointmentConfirmation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetGarageByID(ctx, req.GarageID); err != nil {
		return nil, err
	}

	slot, ok := ParseAppointmentSlot(req.AppointmentDate, req.AppointmentTime)
	if !ok {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Appointment time must look like 14:00")
	}
	if slot.Hour() < installation.FirstSlotHour || slot.Hour() > installation.LastSlotHour {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Appointments run from 09:00 to 16:00")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	taken, ok := s.booked[req.GarageID]
	if !ok {
		taken = make(map[time.Time]string)
		s.booked[req.GarageID] = taken
	}
	if _, busy := taken[slot.UTC()]; busy {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code, "That slot is already booked")
	}

	id := "apt-" + uuid.NewString()[:8]
	taken[slot.UTC()] = id
	return &installation.AppointmentConfirmation{AppointmentID: id, Confirmed: true}, nil
}
