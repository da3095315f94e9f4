package licensing

import (
	"context"
	"strings"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/maxwelladwale/coltech/internal/domain/licensing"
	"github.com/maxwelladwale/coltech/internal/domain/notification"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// expiryWarningInterval limits expiry warnings to one per license per day
const expiryWarningInterval = 24 * time.Hour

// Service handles license lookups, activation, renewal and certificates
type Service struct {
	licenses     licensing.LicenseService
	certificates licensing.CertificateService
	notifier     notification.NotificationService
	logger       *zap.Logger

	warned shared.IdempotencyStore
}

// NewService creates a licensing Service
func NewService(
	licenses licensing.LicenseService,
	certificates licensing.CertificateService,
	notifier notification.NotificationService,
	logger *zap.Logger,
) *Service {
	return &Service{licenses: licenses, certificates: certificates, notifier: notifier, logger: logger}
}

// SetWarningStore remembers sent expiry warnings so repeated status checks
// do not notify the customer again within a day
func (s *Service) SetWarningStore(store shared.IdempotencyStore) {
	s.warned = store
}

// ByVehicle returns the license fitted to a vehicle
func (s *Service) ByVehicle(ctx context.Context, registration string) (*licensing.License, error) {
	return s.licenses.GetLicenseByVehicle(ctx, strings.TrimSpace(registration))
}

// Mine lists the signed-in customer's licenses
func (s *Service) Mine(ctx context.Context, userID string) ([]licensing.License, error) {
	if userID == "" {
		return nil, shared.ErrUnauthorized
	}
	return s.licenses.GetLicensesByUser(ctx, userID)
}

// CheckStatus reports whether a vehicle is licensed. Active licenses within
// ExpiryWarningDays of expiry trigger a warning to the customer.
func (s *Service) CheckStatus(ctx context.Context, registration string) (*licensing.StatusCheck, error) {
	registration = strings.TrimSpace(registration)
	status, err := s.licenses.CheckLicenseStatus(ctx, registration)
	if err != nil {
		return nil, err
	}
	if status.NeedsExpiryWarning() {
		s.warnExpiry(ctx, registration, *status.DaysRemaining)
	}
	return status, nil
}

func (s *Service) warnExpiry(ctx context.Context, registration string, days int) {
	license, err := s.licenses.GetLicenseByVehicle(ctx, registration)
	if err != nil {
		s.logger.Warn("Failed to load license for expiry warning", zap.String("vehicle", registration), zap.Error(err))
		return
	}
	if s.warned != nil {
		fresh, err := s.warned.MarkProcessed(ctx, "license-expiry:"+license.ID, expiryWarningInterval)
		if err != nil {
			s.logger.Warn("Failed to record expiry warning", zap.String("license_id", license.ID), zap.Error(err))
		} else if !fresh {
			return
		}
	}
	if err := s.notifier.SendLicenseExpiryWarning(ctx, license.ID, days); err != nil {
		s.logger.Warn("Failed to send expiry warning", zap.String("license_id", license.ID), zap.Error(err))
		return
	}
	s.logger.Info("License expiry warning sent",
		zap.String("license_id", license.ID),
		zap.Int("days_remaining", days),
	)
}

// RenewalPrice returns the annual renewal price for a license type
func (s *Service) RenewalPrice(ctx context.Context, licenseType catalog.LicenseType) (decimal.Decimal, error) {
	return s.licenses.GetRenewalPrice(ctx, licenseType)
}

// Activate activates the license bundled with an order
func (s *Service) Activate(ctx context.Context, req licensing.ActivationRequest) (*licensing.License, error) {
	license, err := s.licenses.ActivateLicense(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("License activated",
		zap.String("license_id", license.ID),
		zap.String("order_id", req.OrderID),
		zap.String("type", string(license.Type)),
	)
	return license, nil
}

// Renew extends a license by months
func (s *Service) Renew(ctx context.Context, licenseID string, months int) (*licensing.License, error) {
	license, err := s.licenses.RenewLicense(ctx, licenseID, months)
	if err != nil {
		return nil, err
	}
	s.logger.Info("License renewed",
		zap.String("license_id", licenseID),
		zap.Int("months", months),
		zap.Time("expiry_date", license.ExpiryDate),
	)
	return license, nil
}

// IssueCertificate asks the backend for a certificate
func (s *Service) IssueCertificate(ctx context.Context, req licensing.GenerateCertificateRequest) (*licensing.Certificate, error) {
	cert, err := s.certificates.GenerateCertificate(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Certificate issued",
		zap.String("certificate_number", cert.CertificateNumber),
		zap.String("order_id", req.OrderID),
	)
	return cert, nil
}
