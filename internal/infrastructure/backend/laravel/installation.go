package laravel

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/installation"
)

var _ installation.InstallationService = (*InstallationService)(nil)

// InstallationService reads partner garages from the Laravel API. The API has
// no booking endpoints, so slots and confirmations are produced locally.
type InstallationService struct {
	client *Client
	now    func() time.Time
}

// NewInstallationService creates an InstallationService
func NewInstallationService(client *Client) *InstallationService {
	return &InstallationService{client: client, now: time.Now}
}

func (s *InstallationService) GetPartnerGarages(ctx context.Context, filter installation.GarageFilter) ([]installation.PartnerGarage, error) {
	query := url.Values{}
	if filter.County != "" {
		query.Set("county", filter.County)
	}
	var dtos []garageDTO
	if err := s.client.get(ctx, "/garages", query, &dtos); err != nil {
		return nil, err
	}
	out := make([]installation.PartnerGarage, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *InstallationService) GetGarageByID(ctx context.Context, garageID string) (*installation.PartnerGarage, error) {
	var dto garageDTO
	if err := s.client.get(ctx, "/garages/"+url.PathEscape(garageID), nil, &dto); err != nil {
		return nil, err
	}
	g := dto.toDomain()
	return &g, nil
}

// GetAvailableSlots returns every hourly slot of the day
func (s *InstallationService) GetAvailableSlots(_ context.Context, _ string, date time.Time) ([]time.Time, error) {
	return installation.DailySlots(date), nil
}

func (s *InstallationService) ScheduleAppointment(_ context.Context, req installation.AppointmentRequest) (*installation.AppointmentConfirmation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &installation.AppointmentConfirmation{
		AppointmentID: fmt.Sprintf("apt-%d", s.now().UnixMilli()),
		Confirmed:     true,
	}, nil
}
