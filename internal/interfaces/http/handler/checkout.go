package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxwelladwale/coltech/internal/application/checkout"
)

// CheckoutHandler drives the checkout wizard for the session
type CheckoutHandler struct {
	BaseHandler
	wizard *checkout.Wizard
	loc    *time.Location
}

// NewCheckoutHandler creates a new CheckoutHandler. Appointment dates are
// parsed in loc; nil means the server's local zone.
func NewCheckoutHandler(wizard *checkout.Wizard, loc *time.Location) *CheckoutHandler {
	if loc == nil {
		loc = time.Local
	}
	return &CheckoutHandler{wizard: wizard, loc: loc}
}

// State godoc
// @Summary      Current checkout step
// @Tags         checkout
// @Produce      json
// @Success      200 {object} dto.Response{data=checkout.StateResponse}
// @Router       /checkout [get]
func (h *CheckoutHandler) State(c *gin.Context) {
	st, err := h.wizard.State(c.Request.Context(), getSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checkout.ToStateResponse(st))
}

// Start godoc
// @Summary      Begin checkout
// @Tags         checkout
// @Produce      json
// @Success      200 {object} dto.Response{data=checkout.StateResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo} "Cart is empty"
// @Router       /checkout/start [post]
func (h *CheckoutHandler) Start(c *gin.Context) {
	st, err := h.wizard.Start(c.Request.Context(), getSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checkout.ToStateResponse(st))
}

// SubmitShipping stores the delivery address
func (h *CheckoutHandler) SubmitShipping(c *gin.Context) {
	var req checkout.ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	st, err := h.wizard.SubmitShipping(c.Request.Context(), getSessionID(c), req.ToAddress())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checkout.ToStateResponse(st))
}

// SubmitInstallation stores self or technician installation
func (h *CheckoutHandler) SubmitInstallation(c *gin.Context) {
	var req checkout.InstallationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	details, err := req.Details(h.loc)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	st, err := h.wizard.SubmitInstallation(c.Request.Context(), getSessionID(c), details)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checkout.ToStateResponse(st))
}

// Back returns to the previous step
func (h *CheckoutHandler) Back(c *gin.Context) {
	st, err := h.wizard.Back(c.Request.Context(), getSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checkout.ToStateResponse(st))
}

// SubmitPayment godoc
// @Summary      Place and pay for the order
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkout.PaymentRequest true "Payment method"
// @Success      201 {object} dto.Response{data=checkout.ResultResponse}
// @Failure      402 {object} dto.Response{error=dto.ErrorInfo} "Payment declined; retry with another method"
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo} "Payment already in progress"
// @Router       /checkout/payment [post]
func (h *CheckoutHandler) SubmitPayment(c *gin.Context) {
	var req checkout.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.wizard.SubmitPayment(c.Request.Context(), getSessionID(c), getUserID(c), req.Input())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, checkout.ToResultResponse(result))
}

// Reset abandons checkout
func (h *CheckoutHandler) Reset(c *gin.Context) {
	if err := h.wizard.Reset(c.Request.Context(), getSessionID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
