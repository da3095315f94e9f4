package licensing

import (
	"regexp"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/shared"
)

// OTPLength is the number of digits in a verification code
const OTPLength = 6

var otpPattern = regexp.MustCompile(`^[0-9]{6}$`)

// CertificateType is what a certificate attests
type CertificateType string

const (
	CertificateInstallation CertificateType = "installation"
	CertificateLicense      CertificateType = "license"
	CertificateProduct      CertificateType = "product"
)

// IsValid checks if the type is known
func (t CertificateType) IsValid() bool {
	return t == CertificateInstallation || t == CertificateLicense || t == CertificateProduct
}

// Certificate is a verifiable document issued by the backend
type Certificate struct {
	ID                string
	CertificateNumber string
	Type              CertificateType
	QRCode            string
	IssuedTo          string
	IssuedDate        time.Time
	ExpiryDate        *time.Time
	Details           map[string]any
}

// PersonalDetails identify the person verifying a certificate
type PersonalDetails struct {
	FullName string `json:"fullName"`
	IDNumber string `json:"idNumber"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
}

// VerificationRequest checks a certificate QR code
type VerificationRequest struct {
	QRCode          string          `json:"qrCode"`
	PersonalDetails PersonalDetails `json:"personalDetails"`
	OTP             string          `json:"otp"`
}

// VerificationResult is the outcome of a QR verification
type VerificationResult struct {
	IsValid     bool
	Verified    bool
	Message     string
	Certificate *Certificate
}

// OTPDispatch reports an OTP send
type OTPDispatch struct {
	Sent      bool
	ExpiresIn int
}

// GenerateCertificateRequest asks the backend to issue a certificate
type GenerateCertificateRequest struct {
	Type    CertificateType
	OrderID string
	Details map[string]any
}

// ValidateOTP checks the shape of a one-time password
func ValidateOTP(code string) error {
	if !otpPattern.MatchString(code) {
		return shared.NewDomainError("INVALID_OTP", "Verification code must be 6 digits")
	}
	return nil
}
