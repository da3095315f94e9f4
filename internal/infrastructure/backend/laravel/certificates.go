package laravel

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/maxwelladwale/coltech/internal/domain/licensing"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
)

var _ licensing.CertificateService = (*CertificateService)(nil)

// CertificateService runs OTP and certificate flows through the Laravel API
type CertificateService struct {
	client *Client
}

// NewCertificateService creates a CertificateService
func NewCertificateService(client *Client) *CertificateService {
	return &CertificateService{client: client}
}

func (s *CertificateService) SendOTP(ctx context.Context, phone, email string) (*licensing.OTPDispatch, error) {
	body := map[string]string{"phone": phone}
	if email != "" {
		body["email"] = email
	}
	var resp struct {
		Sent      bool `json:"sent"`
		ExpiresIn int  `json:"expiresIn"`
	}
	if err := s.client.send(ctx, http.MethodPost, "/certificates/send-otp", body, &resp); err != nil {
		return nil, err
	}
	return &licensing.OTPDispatch{Sent: resp.Sent, ExpiresIn: resp.ExpiresIn}, nil
}

// VerifyOTP reports any non-2xx answer as an invalid code
func (s *CertificateService) VerifyOTP(ctx context.Context, phone, otp string) (bool, error) {
	raw, err := s.client.request(ctx, http.MethodPost, "/certificates/verify-otp", nil, map[string]string{"phone": phone, "otp": otp})
	if err != nil {
		return false, err
	}
	if raw.status >= 400 {
		return false, nil
	}
	var resp struct {
		Valid bool `json:"valid"`
	}
	if err := json.Unmarshal(raw.body, &resp); err != nil {
		return false, shared.NewDomainError(shared.ErrBackendRequest.Code, "Malformed OTP verification response")
	}
	return resp.Valid, nil
}

// VerifyQRCode reports a non-2xx answer as an unverified, invalid result
// carrying the backend's message
func (s *CertificateService) VerifyQRCode(ctx context.Context, req licensing.VerificationRequest) (*licensing.VerificationResult, error) {
	raw, err := s.client.request(ctx, http.MethodPost, "/certificates/verify-qr", nil, req)
	if err != nil {
		return nil, err
	}
	if raw.status >= 400 {
		msg := "Verification failed"
		var eb errorBody
		if json.Unmarshal(raw.body, &eb) == nil && eb.Message != "" {
			msg = eb.Message
		}
		return &licensing.VerificationResult{IsValid: false, Verified: false, Message: msg}, nil
	}
	var dto verificationResultDTO
	if err := json.Unmarshal(raw.body, &dto); err != nil {
		return nil, shared.NewDomainError(shared.ErrBackendRequest.Code, "Malformed QR verification response")
	}
	result := &licensing.VerificationResult{IsValid: dto.IsValid, Verified: dto.Verified, Message: dto.Message}
	if dto.Certificate != nil {
		result.Certificate = dto.Certificate.toDomain()
	}
	return result, nil
}

func (s *CertificateService) GenerateCertificate(ctx context.Context, req licensing.GenerateCertificateRequest) (*licensing.Certificate, error) {
	if !req.Type.IsValid() {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Unknown certificate type: "+string(req.Type))
	}
	body := struct {
		Type    licensing.CertificateType `json:"type"`
		OrderID string                    `json:"orderId"`
		Details map[string]any            `json:"details"`
	}{req.Type, req.OrderID, req.Details}
	var dto certificateDTO
	if err := s.client.send(ctx, http.MethodPost, "/certificates/generate", body, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}
