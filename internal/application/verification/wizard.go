package verification

import (
	"context"
	"fmt"
	"strings"

	"github.com/maxwelladwale/coltech/internal/domain/licensing"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// Wizard steps
const (
	StepDetails = 1
	StepOTP     = 2
	StepQRCode  = 3
	StepResult  = 4
)

// MaxOTPAttempts is how many wrong codes restart the flow
const MaxOTPAttempts = 5

// Result statuses
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// State is one session's progress through certificate verification
type State struct {
	Step         int                       `json:"step"`
	Details      licensing.PersonalDetails `json:"details"`
	OTPExpiresIn int                       `json:"otp_expires_in,omitempty"`
	Attempts     int                       `json:"attempts"`
	// OTP is kept after it passes since the QR check sends it along
	OTP    string                        `json:"otp,omitempty"`
	Status string                        `json:"status,omitempty"`
	Result *licensing.VerificationResult `json:"result,omitempty"`
	Error  string                        `json:"error,omitempty"`
}

// AttemptsRemaining is how many OTP tries are left
func (s *State) AttemptsRemaining() int {
	return MaxOTPAttempts - s.Attempts
}

var (
	ErrTooManyAttempts = shared.NewDomainError("OTP_ATTEMPTS_EXCEEDED", "Too many incorrect codes. Please start again.")
	errWrongStep       = shared.NewDomainError(shared.ErrInvalidState.Code, "Verification is not on that step")
)

// Wizard walks a visitor through details -> OTP -> QR code -> result
type Wizard struct {
	sessions     *cache.SessionStore
	certificates licensing.CertificateService
	logger       *zap.Logger
}

// NewWizard creates a verification Wizard
func NewWizard(sessions *cache.SessionStore, certificates licensing.CertificateService, logger *zap.Logger) *Wizard {
	return &Wizard{sessions: sessions, certificates: certificates, logger: logger}
}

// State returns the session's progress; new sessions start on the details step
func (w *Wizard) State(ctx context.Context, sessionID string) (*State, error) {
	var st State
	found, err := w.sessions.Load(ctx, sessionID, &st)
	if err != nil {
		return nil, fmt.Errorf("load verification: %w", err)
	}
	if !found {
		return &State{Step: StepDetails}, nil
	}
	return &st, nil
}

// SubmitDetails records who is verifying and sends them a code.
// It may be called from any step and restarts the flow.
func (w *Wizard) SubmitDetails(ctx context.Context, sessionID string, details licensing.PersonalDetails) (*State, error) {
	details.FullName = strings.TrimSpace(details.FullName)
	details.IDNumber = strings.TrimSpace(details.IDNumber)
	details.Phone = strings.TrimSpace(details.Phone)
	details.Email = strings.TrimSpace(details.Email)
	if details.FullName == "" || details.IDNumber == "" || details.Phone == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Full name, ID number and phone are required")
	}

	dispatch, err := w.certificates.SendOTP(ctx, details.Phone, details.Email)
	if err != nil {
		return nil, err
	}
	if !dispatch.Sent {
		return nil, shared.NewDomainError(shared.ErrBackendRequest.Code, "Could not send a verification code. Please try again.")
	}

	st := &State{Step: StepOTP, Details: details, OTPExpiresIn: dispatch.ExpiresIn}
	if err := w.save(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SubmitOTP checks the code. A wrong code keeps the step and counts an
// attempt; after MaxOTPAttempts the flow is reset.
func (w *Wizard) SubmitOTP(ctx context.Context, sessionID, code string) (*State, error) {
	st, err := w.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if st.Step != StepOTP {
		return nil, errWrongStep
	}
	code = strings.TrimSpace(code)
	if err := licensing.ValidateOTP(code); err != nil {
		return nil, err
	}

	ok, err := w.certificates.VerifyOTP(ctx, st.Details.Phone, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		st.Attempts++
		if st.Attempts >= MaxOTPAttempts {
			w.logger.Warn("Verification OTP attempts exhausted", zap.String("session_id", sessionID))
			if err := w.Reset(ctx, sessionID); err != nil {
				return nil, err
			}
			return nil, ErrTooManyAttempts
		}
		st.Error = fmt.Sprintf("Invalid verification code. %d attempts remaining.", st.AttemptsRemaining())
		if err := w.save(ctx, sessionID, st); err != nil {
			return nil, err
		}
		return st, shared.NewDomainError("INVALID_OTP", st.Error)
	}

	st.Step = StepQRCode
	st.OTP = code
	st.Error = ""
	if err := w.save(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SubmitQRCode verifies the scanned certificate code and records the outcome
func (w *Wizard) SubmitQRCode(ctx context.Context, sessionID, qrCode string) (*State, error) {
	st, err := w.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if st.Step != StepQRCode {
		return nil, errWrongStep
	}
	qrCode = strings.TrimSpace(qrCode)
	if qrCode == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "QR code is required")
	}

	result, err := w.certificates.VerifyQRCode(ctx, licensing.VerificationRequest{
		QRCode:          qrCode,
		PersonalDetails: st.Details,
		OTP:             st.OTP,
	})
	if err != nil {
		return nil, err
	}

	st.Step = StepResult
	st.Result = result
	st.Status = StatusFailure
	if result.IsValid && result.Verified {
		st.Status = StatusSuccess
	}
	if err := w.save(ctx, sessionID, st); err != nil {
		return nil, err
	}

	w.logger.Info("Certificate verification finished",
		zap.String("session_id", sessionID),
		zap.String("status", st.Status),
	)
	return st, nil
}

// Reset restarts verification for the session
func (w *Wizard) Reset(ctx context.Context, sessionID string) error {
	if err := w.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("reset verification: %w", err)
	}
	return nil
}

func (w *Wizard) save(ctx context.Context, sessionID string, st *State) error {
	if err := w.sessions.Save(ctx, sessionID, st); err != nil {
		return fmt.Errorf("save verification: %w", err)
	}
	return nil
}
