package handler

import (
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/installation"
)

// ListGaragesQuery filters partner garages
type ListGaragesQuery struct {
	County string `form:"county" binding:"omitempty,max=100"`
}

// SlotsQuery selects the day to list slots for
type SlotsQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// ScheduleAppointmentRequest books a garage slot for an existing order
type ScheduleAppointmentRequest struct {
	OrderID             string `json:"order_id" binding:"required"`
	GarageID            string `json:"garage_id" binding:"required"`
	AppointmentDate     string `json:"appointment_date" binding:"required,datetime=2006-01-02"`
	AppointmentTime     string `json:"appointment_time" binding:"required,max=10"`
	VehicleRegistration string `json:"vehicle_registration" binding:"required,max=20"`
	VehicleMake         string `json:"vehicle_make" binding:"omitempty,max=50"`
	VehicleModel        string `json:"vehicle_model" binding:"omitempty,max=50"`
}

// GarageResponse represents a partner garage in API responses
type GarageResponse struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Location       string      `json:"location"`
	County         string      `json:"county"`
	Phone          string      `json:"phone"`
	Email          string      `json:"email,omitempty"`
	Rating         *float64    `json:"rating,omitempty"`
	AvailableSlots []time.Time `json:"available_slots,omitempty"`
}

// SlotsResponse lists bookable times on one day
type SlotsResponse struct {
	GarageID string      `json:"garage_id"`
	Date     string      `json:"date"`
	Slots    []time.Time `json:"slots"`
}

// AppointmentResponse confirms a booking
type AppointmentResponse struct {
	AppointmentID string `json:"appointment_id"`
	Confirmed     bool   `json:"confirmed"`
}

func toGarageResponse(g *installation.PartnerGarage) GarageResponse {
	return GarageResponse{
		ID:             g.ID,
		Name:           g.Name,
		Location:       g.Location,
		County:         g.County,
		Phone:          g.Phone,
		Email:          g.Email,
		Rating:         g.Rating,
		AvailableSlots: g.AvailableSlots,
	}
}
