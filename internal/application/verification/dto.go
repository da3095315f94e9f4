package verification

import (
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/licensing"
)

// DetailsRequest is the first step form
type DetailsRequest struct {
	FullName string `json:"full_name" binding:"required,max=100"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"required,max=20,ke_phone"`
	IDNumber string `json:"id_number" binding:"required,max=20"`
}

// PersonalDetails converts the form
func (r DetailsRequest) PersonalDetails() licensing.PersonalDetails {
	return licensing.PersonalDetails{FullName: r.FullName, Email: r.Email, Phone: r.Phone, IDNumber: r.IDNumber}
}

// OTPRequest carries the code sent by SMS
type OTPRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// QRCodeRequest carries the scanned certificate code
type QRCodeRequest struct {
	QRCode string `json:"qr_code" binding:"required,max=200"`
}

// CertificateResponse is a verified certificate
type CertificateResponse struct {
	CertificateNumber string         `json:"certificate_number"`
	Type              string         `json:"type"`
	IssuedTo          string         `json:"issued_to"`
	IssuedDate        time.Time      `json:"issued_date"`
	ExpiryDate        *time.Time     `json:"expiry_date,omitempty"`
	Details           map[string]any `json:"details,omitempty"`
}

// ResultResponse is the verification outcome
type ResultResponse struct {
	IsValid     bool                 `json:"is_valid"`
	Verified    bool                 `json:"verified"`
	Message     string               `json:"message"`
	Certificate *CertificateResponse `json:"certificate,omitempty"`
}

// StateResponse is the wizard state in API responses. The OTP is never echoed.
type StateResponse struct {
	Step              int             `json:"step"`
	FullName          string          `json:"full_name,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	OTPExpiresIn      int             `json:"otp_expires_in,omitempty"`
	AttemptsRemaining int             `json:"attempts_remaining"`
	Status            string          `json:"status,omitempty"`
	Result            *ResultResponse `json:"result,omitempty"`
	Error             string          `json:"error,omitempty"`
}

// ToStateResponse converts the wizard state
func ToStateResponse(st *State) StateResponse {
	resp := StateResponse{
		Step:              st.Step,
		FullName:          st.Details.FullName,
		Phone:             st.Details.Phone,
		OTPExpiresIn:      st.OTPExpiresIn,
		AttemptsRemaining: st.AttemptsRemaining(),
		Status:            st.Status,
		Error:             st.Error,
	}
	if r := st.Result; r != nil {
		resp.Result = &ResultResponse{IsValid: r.IsValid, Verified: r.Verified, Message: r.Message}
		if c := r.Certificate; c != nil {
			resp.Result.Certificate = &CertificateResponse{
				CertificateNumber: c.CertificateNumber,
				Type:              string(c.Type),
				IssuedTo:          c.IssuedTo,
				IssuedDate:        c.IssuedDate,
				ExpiryDate:        c.ExpiryDate,
				Details:           c.Details,
			}
		}
	}
	return resp
}
