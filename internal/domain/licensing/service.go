package licensing

import (
	"context"

	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// LicenseService is the backend contract for platform licenses
type LicenseService interface {
	GetLicenseByVehicle(ctx context.Context, vehicleRegistration string) (*License, error)
	GetLicensesByUser(ctx context.Context, userID string) ([]License, error)
	ActivateLicense(ctx context.Context, req ActivationRequest) (*License, error)
	RenewLicense(ctx context.Context, licenseID string, durationMonths int) (*License, error)
	CheckLicenseStatus(ctx context.Context, vehicleRegistration string) (*StatusCheck, error)
	GetRenewalPrice(ctx context.Context, licenseType catalog.LicenseType) (decimal.Decimal, error)
}

// CertificateService is the backend contract for OTPs and certificates.
// VerifyOTP and VerifyQRCode report backend rejections in their result
// rather than as errors.
type CertificateService interface {
	SendOTP(ctx context.Context, phone, email string) (*OTPDispatch, error)
	VerifyOTP(ctx context.Context, phone, otp string) (bool, error)
	VerifyQRCode(ctx context.Context, req VerificationRequest) (*VerificationResult, error)
	GenerateCertificate(ctx context.Context, req GenerateCertificateRequest) (*Certificate, error)
}
