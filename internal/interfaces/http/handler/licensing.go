package handler

import (
	"github.com/gin-gonic/gin"
	licensingapp "github.com/maxwelladwale/coltech/internal/application/licensing"
	"github.com/maxwelladwale/coltech/internal/domain/catalog"
)

// LicensingHandler handles licenses and certificates
type LicensingHandler struct {
	BaseHandler
	licenseService *licensingapp.Service
}

// NewLicensingHandler creates a new LicensingHandler
func NewLicensingHandler(licenseService *licensingapp.Service) *LicensingHandler {
	return &LicensingHandler{licenseService: licenseService}
}

// ByVehicle godoc
// @Summary      License fitted to a vehicle
// @Tags         licensing
// @Produce      json
// @Param        reg path string true "Vehicle registration"
// @Success      200 {object} dto.Response{data=licensingapp.LicenseResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /licenses/vehicle/{reg} [get]
func (h *LicensingHandler) ByVehicle(c *gin.Context) {
	license, err := h.licenseService.ByVehicle(c.Request.Context(), c.Param("reg"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, licensingapp.ToLicenseResponse(license))
}

// CheckStatus godoc
// @Summary      Is the vehicle licensed
// @Description  Licenses close to expiry also trigger a reminder to the customer
// @Tags         licensing
// @Produce      json
// @Param        reg path string true "Vehicle registration"
// @Success      200 {object} dto.Response{data=licensingapp.StatusResponse}
// @Router       /licenses/check/{reg} [get]
func (h *LicensingHandler) CheckStatus(c *gin.Context) {
	status, err := h.licenseService.CheckStatus(c.Request.Context(), c.Param("reg"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, licensingapp.ToStatusResponse(status))
}

// RenewalPrice returns the yearly price for a license type
func (h *LicensingHandler) RenewalPrice(c *gin.Context) {
	var query licensingapp.RenewalPriceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	price, err := h.licenseService.RenewalPrice(c.Request.Context(), catalog.LicenseType(query.Type))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, licensingapp.RenewalPriceResponse{Type: query.Type, Price: price})
}

// Mine lists the signed-in customer's licenses
func (h *LicensingHandler) Mine(c *gin.Context) {
	licenses, err := h.licenseService.Mine(c.Request.Context(), getUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, licensingapp.ToLicenseResponses(licenses))
}

// Activate godoc
// @Summary      Activate the license bundled with an order
// @Tags         licensing
// @Accept       json
// @Produce      json
// @Param        request body licensingapp.ActivateRequest true "Order, MDVR serial and vehicle"
// @Success      201 {object} dto.Response{data=licensingapp.LicenseResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /licenses/activate [post]
func (h *LicensingHandler) Activate(c *gin.Context) {
	var req licensingapp.ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	license, err := h.licenseService.Activate(c.Request.Context(), req.ActivationRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, licensingapp.ToLicenseResponse(license))
}

// Renew extends a license
func (h *LicensingHandler) Renew(c *gin.Context) {
	var req licensingapp.RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	license, err := h.licenseService.Renew(c.Request.Context(), c.Param("id"), req.DurationMonths)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, licensingapp.ToLicenseResponse(license))
}

// IssueCertificate issues an installation, license or product certificate
func (h *LicensingHandler) IssueCertificate(c *gin.Context) {
	var req licensingapp.CertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cert, err := h.licenseService.IssueCertificate(c.Request.Context(), req.GenerateRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, licensingapp.ToCertificateResponse(cert))
}
