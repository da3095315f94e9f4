package laravel

import (
	"context"
	"net/http"
	"net/url"

	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/maxwelladwale/coltech/internal/domain/licensing"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var _ licensing.LicenseService = (*LicenseService)(nil)

// LicenseService manages platform licenses through the Laravel API
type LicenseService struct {
	client *Client
}

// NewLicenseService creates a LicenseService
func NewLicenseService(client *Client) *LicenseService {
	return &LicenseService{client: client}
}

func (s *LicenseService) GetLicenseByVehicle(ctx context.Context, vehicleRegistration string) (*licensing.License, error) {
	var dto licenseDTO
	if err := s.client.get(ctx, "/licenses/vehicle/"+url.PathEscape(vehicleRegistration), nil, &dto); err != nil {
		return nil, err
	}
	l := dto.toDomain()
	return &l, nil
}

// GetLicensesByUser lists the licenses of the bearer token's owner. The API
// resolves the user from the token, so userID is not sent.
func (s *LicenseService) GetLicensesByUser(ctx context.Context, _ string) ([]licensing.License, error) {
	var dtos []licenseDTO
	if err := s.client.get(ctx, "/my-licenses", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]licensing.License, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *LicenseService) ActivateLicense(ctx context.Context, req licensing.ActivationRequest) (*licensing.License, error) {
	var dto licenseDTO
	if err := s.client.send(ctx, http.MethodPost, "/licenses/activate", req, &dto); err != nil {
		return nil, err
	}
	l := dto.toDomain()
	return &l, nil
}

func (s *LicenseService) RenewLicense(ctx context.Context, licenseID string, durationMonths int) (*licensing.License, error) {
	if durationMonths <= 0 {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Renewal duration must be positive")
	}
	var dto licenseDTO
	body := map[string]int{"duration": durationMonths}
	if err := s.client.send(ctx, http.MethodPost, "/licenses/"+url.PathEscape(licenseID)+"/renew", body, &dto); err != nil {
		return nil, err
	}
	l := dto.toDomain()
	return &l, nil
}

func (s *LicenseService) CheckLicenseStatus(ctx context.Context, vehicleRegistration string) (*licensing.StatusCheck, error) {
	var dto licenseStatusDTO
	if err := s.client.get(ctx, "/licenses/check/"+url.PathEscape(vehicleRegistration), nil, &dto); err != nil {
		return nil, err
	}
	return &licensing.StatusCheck{
		IsActive:      dto.IsActive,
		ExpiryDate:    parseTimePtr(dto.ExpiryDate),
		DaysRemaining: dto.DaysRemaining,
	}, nil
}

func (s *LicenseService) GetRenewalPrice(ctx context.Context, licenseType catalog.LicenseType) (decimal.Decimal, error) {
	if !licenseType.IsValid() {
		return decimal.Zero, shared.NewDomainError(shared.ErrInvalidInput.Code, "Unknown license type: "+string(licenseType))
	}
	var resp struct {
		Price decimal.Decimal `json:"price"`
	}
	if err := s.client.get(ctx, "/licenses/renewal-price", url.Values{"type": {string(licenseType)}}, &resp); err != nil {
		return decimal.Zero, err
	}
	return resp.Price, nil
}
