package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxwelladwale/coltech/internal/application/verification"
)

// VerificationHandler drives the certificate verification wizard
type VerificationHandler struct {
	BaseHandler
	wizard *verification.Wizard
}

// NewVerificationHandler creates a new VerificationHandler
func NewVerificationHandler(wizard *verification.Wizard) *VerificationHandler {
	return &VerificationHandler{wizard: wizard}
}

// State returns the current step
func (h *VerificationHandler) State(c *gin.Context) {
	st, err := h.wizard.State(c.Request.Context(), getSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, verification.ToStateResponse(st))
}

// SubmitDetails godoc
// @Summary      Submit personal details and receive an OTP
// @Tags         verification
// @Accept       json
// @Produce      json
// @Param        request body verification.DetailsRequest true "Name, phone and ID number"
// @Success      200 {object} dto.Response{data=verification.StateResponse}
// @Router       /verification/details [post]
func (h *VerificationHandler) SubmitDetails(c *gin.Context) {
	var req verification.DetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	st, err := h.wizard.SubmitDetails(c.Request.Context(), getSessionID(c), req.PersonalDetails())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, verification.ToStateResponse(st))
}

// SubmitOTP godoc
// @Summary      Confirm the OTP
// @Description  A wrong code keeps the wizard on the OTP step with an error; too many wrong codes restart it
// @Tags         verification
// @Accept       json
// @Produce      json
// @Param        request body verification.OTPRequest true "Six digit code"
// @Success      200 {object} dto.Response{data=verification.StateResponse}
// @Router       /verification/otp [post]
func (h *VerificationHandler) SubmitOTP(c *gin.Context) {
	var req verification.OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	st, err := h.wizard.SubmitOTP(c.Request.Context(), getSessionID(c), req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, verification.ToStateResponse(st))
}

// SubmitQRCode verifies the scanned certificate
func (h *VerificationHandler) SubmitQRCode(c *gin.Context) {
	var req verification.QRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	st, err := h.wizard.SubmitQRCode(c.Request.Context(), getSessionID(c), req.QRCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, verification.ToStateResponse(st))
}

// Reset starts over
func (h *VerificationHandler) Reset(c *gin.Context) {
	if err := h.wizard.Reset(c.Request.Context(), getSessionID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
