package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxwelladwale/coltech/internal/domain/installation"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
)

// InstallationHandler handles partner garages and appointments
type InstallationHandler struct {
	BaseHandler
	installations installation.InstallationService
	loc           *time.Location
	now           func() time.Time
}

// NewInstallationHandler creates a new InstallationHandler
func NewInstallationHandler(installations installation.InstallationService, loc *time.Location) *InstallationHandler {
	if loc == nil {
		loc = time.Local
	}
	return &InstallationHandler{installations: installations, loc: loc, now: time.Now}
}

// ListGarages godoc
// @Summary      List partner garages
// @Tags         installation
// @Produce      json
// @Param        county query string false "County"
// @Success      200 {object} dto.Response{data=[]GarageResponse}
// @Router       /garages [get]
func (h *InstallationHandler) ListGarages(c *gin.Context) {
	var query ListGaragesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	garages, err := h.installations.GetPartnerGarages(c.Request.Context(), installation.GarageFilter{County: query.County})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]GarageResponse, len(garages))
	for i := range garages {
		out[i] = toGarageResponse(&garages[i])
	}
	h.Success(c, out)
}

// GetGarage returns one garage
func (h *InstallationHandler) GetGarage(c *gin.Context) {
	garage, err := h.installations.GetGarageByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toGarageResponse(garage))
}

// Slots godoc
// @Summary      Bookable slots at a garage
// @Tags         installation
// @Produce      json
// @Param        id   path  string true "Garage ID"
// @Param        date query string true "Day as YYYY-MM-DD"
// @Success      200 {object} dto.Response{data=SlotsResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /garages/{id}/slots [get]
func (h *InstallationHandler) Slots(c *gin.Context) {
	var query SlotsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	date, err := h.parseDate(query.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	garageID := c.Param("id")
	slots, err := h.installations.GetAvailableSlots(c.Request.Context(), garageID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if slots == nil {
		slots = []time.Time{}
	}
	h.Success(c, SlotsResponse{GarageID: garageID, Date: query.Date, Slots: slots})
}

// ScheduleAppointment books an installation slot for a placed order
func (h *InstallationHandler) ScheduleAppointment(c *gin.Context) {
	var req ScheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	date, err := h.parseDate(req.AppointmentDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	now := h.now().In(h.loc)
	if date.Before(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)) {
		h.ErrorWithCode(c, "INVALID_APPOINTMENT", "Appointment date cannot be in the past")
		return
	}

	conf, err := h.installations.ScheduleAppointment(c.Request.Context(), installation.AppointmentRequest{
		OrderID:         req.OrderID,
		GarageID:        req.GarageID,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		Vehicle: installation.Vehicle{
			Registration: req.VehicleRegistration,
			Make:         req.VehicleMake,
			Model:        req.VehicleModel,
		},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, AppointmentResponse{AppointmentID: conf.AppointmentID, Confirmed: conf.Confirmed})
}

func (h *InstallationHandler) parseDate(s string) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", s, h.loc)
	if err != nil {
		return time.Time{}, shared.NewDomainError(shared.ErrInvalidInput.Code, "Date must look like 2025-06-30")
	}
	return date, nil
}
