package mock

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maxwelladwale/coltech/internal/domain/licensing"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"go.uber.org/zap"
)

// OTP lifetimes
const (
	OTPExpiry           = 300 * time.Second
	VerifiedPhoneWindow = 10 * time.Minute
)

type pendingOTP struct {
	code      string
	expiresAt time.Time
}

// CertificateService simulates OTP delivery and certificate verification
type CertificateService struct {
	orders trade.OrderRepository
	logger *zap.Logger
	now    func() time.Time
	code   func() (string, error)

	mu           sync.Mutex
	otps         map[string]pendingOTP
	verified     map[string]time.Time // phone -> verified until
	certificates map[string]*licensing.Certificate
}

var _ licensing.CertificateService = (*CertificateService)(nil)

// CertificateOption configures a CertificateService
type CertificateOption func(*CertificateService)

// WithOTPGenerator replaces the random code generator
func WithOTPGenerator(fn func() (string, error)) CertificateOption {
	return func(s *CertificateService) {
		s.code = fn
	}
}

// WithCertificateClock replaces time.Now
func WithCertificateClock(fn func() time.Time) CertificateOption {
	return func(s *CertificateService) {
		s.now = fn
	}
}

// NewCertificateService creates a CertificateService seeded with demo
// certificates. orders may be nil.
func NewCertificateService(orders trade.OrderRepository, logger *zap.Logger, opts ...CertificateOption) *CertificateService {
	s := &CertificateService{
		orders:       orders,
		logger:       logger,
		now:          time.Now,
		code:         randomOTP,
		otps:         make(map[string]pendingOTP),
		verified:     make(map[string]time.Time),
		certificates: make(map[string]*licensing.Certificate),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, c := range seedCertificates(s.now()) {
		s.certificates[c.QRCode] = &c
	}
	return s
}

func randomOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

// SendOTP issues a fresh code for the phone, replacing any earlier one
func (s *CertificateService) SendOTP(_ context.Context, phone, _ string) (*licensing.OTPDispatch, error) {
	phone = normalizePhone(phone)
	if phone == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Phone number is required")
	}
	code, err := s.code()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	s.mu.Lock()
	s.otps[phone] = pendingOTP{code: code, expiresAt: s.now().Add(OTPExpiry)}
	s.mu.Unlock()

	s.logger.Debug("Mock OTP issued", zap.String("phone", phone), zap.String("otp", code))
	return &licensing.OTPDispatch{Sent: true, ExpiresIn: int(OTPExpiry.Seconds())}, nil
}

// VerifyOTP consumes the code when it matches and has not expired
func (s *CertificateService) VerifyOTP(_ context.Context, phone, otp string) (bool, error) {
	phone = normalizePhone(phone)
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.otps[phone]
	now := s.now()
	if !ok || now.After(pending.expiresAt) || pending.code != otp {
		return false, nil
	}
	delete(s.otps, phone)
	s.verified[phone] = now.Add(VerifiedPhoneWindow)
	return true, nil
}

// VerifyQRCode checks a certificate QR code for a phone that recently
// passed OTP verification
func (s *CertificateService) VerifyQRCode(_ context.Context, req licensing.VerificationRequest) (*licensing.VerificationResult, error) {
	phone := normalizePhone(req.PersonalDetails.Phone)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	until, ok := s.verified[phone]
	if !ok || now.After(until) {
		return &licensing.VerificationResult{
			IsValid:  false,
			Verified: false,
			Message:  "Phone number has not been verified. Request a new code.",
		}, nil
	}

	cert, ok := s.certificates[strings.TrimSpace(req.QRCode)]
	if !ok {
		return &licensing.VerificationResult{
			IsValid:  false,
			Verified: true,
			Message:  "Certificate not found. This QR code was not issued by COLTECH.",
		}, nil
	}
	cp := *cert
	if cert.ExpiryDate != nil && now.After(*cert.ExpiryDate) {
		return &licensing.VerificationResult{
			IsValid:     false,
			Verified:    true,
			Message:     "Certificate has expired",
			Certificate: &cp,
		}, nil
	}
	return &licensing.VerificationResult{
		IsValid:     true,
		Verified:    true,
		Message:     "Certificate is valid",
		Certificate: &cp,
	}, nil
}

var certificatePrefixes = map[licensing.CertificateType]string{
	licensing.CertificateInstallation: "INS",
	licensing.CertificateLicense:      "LIC",
	licensing.CertificateProduct:      "PRD",
}

// GenerateCertificate issues a certificate for an order. License
// certificates expire after ActivationMonths.
func (s *CertificateService) GenerateCertificate(ctx context.Context, req licensing.GenerateCertificateRequest) (*licensing.Certificate, error) {
	if !req.Type.IsValid() {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Certificate type must be installation, license or product")
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Order is required")
	}

	issuedTo, _ := req.Details["issuedTo"].(string)
	if s.orders != nil {
		order, err := s.orders.FindByID(ctx, req.OrderID)
		if err != nil {
			return nil, err
		}
		if issuedTo == "" {
			issuedTo = order.ShippingAddress.FullName
		}
	}

	now := s.now()
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	number := fmt.Sprintf("CERT-%s-%s-%s", certificatePrefixes[req.Type], now.Format("20060102"), suffix)
	details := make(map[string]any, len(req.Details)+1)
	for k, v := range req.Details {
		details[k] = v
	}
	details["orderId"] = req.OrderID

	cert := &licensing.Certificate{
		ID:                uuid.NewString(),
		CertificateNumber: number,
		Type:              req.Type,
		QRCode:            "COLTECH-CERT:" + number,
		IssuedTo:          issuedTo,
		IssuedDate:        now,
		Details:           details,
	}
	if req.Type == licensing.CertificateLicense {
		expiry := now.AddDate(0, ActivationMonths, 0)
		cert.ExpiryDate = &expiry
	}

	s.mu.Lock()
	s.certificates[cert.QRCode] = cert
	s.mu.Unlock()

	cp := *cert
	return &cp, nil
}
