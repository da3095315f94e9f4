package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxwelladwale/coltech/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallationHandler_Garages(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"all", "", 5},
		{"nairobi", "?county=Nairobi", 2},
		{"case insensitive", "?county=mombasa", 1},
		{"no garages", "?county=Turkana", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/api/v1/garages"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)
			var garages []GarageResponse
			decodeData(t, w, &garages)
			assert.Len(t, garages, tt.count)
		})
	}

	w := env.do(t, http.MethodGet, "/api/v1/garages/garage-msa-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var garage GarageResponse
	decodeData(t, w, &garage)
	assert.Equal(t, "Changamwe Truck Centre", garage.Name)
	require.NotNil(t, garage.Rating)

	w = env.do(t, http.MethodGet, "/api/v1/garages/garage-none", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInstallationHandler_Slots(t *testing.T) {
	env := newTestEnv(t)
	date := time.Now().In(env.loc).AddDate(0, 0, 5).Format("2006-01-02")

	w := env.do(t, http.MethodGet, "/api/v1/garages/garage-nbi-2/slots?date="+date, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var slots SlotsResponse
	decodeData(t, w, &slots)
	assert.Equal(t, "garage-nbi-2", slots.GarageID)
	assert.Equal(t, date, slots.Date)
	require.Len(t, slots.Slots, 8)
	assert.Equal(t, 9, slots.Slots[0].Hour())
	assert.Equal(t, 16, slots.Slots[7].Hour())

	w = env.do(t, http.MethodGet, "/api/v1/garages/garage-nbi-2/slots", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/garages/garage-nbi-2/slots?date=31-12-2030", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/garages/garage-none/slots?date="+date, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInstallationHandler_ScheduleAppointment(t *testing.T) {
	env := newTestEnv(t)
	order := placeOrder(t, env, "", "mdvr-4ch-ai")
	tomorrow := time.Now().In(env.loc).AddDate(0, 0, 1).Format("2006-01-02")

	booking := func(date, clock string) gin.H {
		return gin.H{
			"order_id":             order.ID,
			"garage_id":            "garage-nbi-1",
			"appointment_date":     date,
			"appointment_time":     clock,
			"vehicle_registration": "KCB 456C",
		}
	}

	w := env.do(t, http.MethodPost, "/api/v1/appointments", booking(tomorrow, "2:00 PM"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var appointment AppointmentResponse
	decodeData(t, w, &appointment)
	assert.True(t, appointment.Confirmed)
	assert.NotEmpty(t, appointment.AppointmentID)

	w = env.do(t, http.MethodGet, "/api/v1/garages/garage-nbi-1/slots?date="+tomorrow, nil)
	var slots SlotsResponse
	decodeData(t, w, &slots)
	assert.Len(t, slots.Slots, 7)

	tests := []struct {
		name   string
		body   gin.H
		status int
		code   string
	}{
		{"slot taken", booking(tomorrow, "14:00"), http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"past date", booking("2020-01-06", "10:00"), http.StatusBadRequest, "ERR_INVALID_APPOINTMENT"},
		{"after hours", booking(tomorrow, "18:00"), http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"unreadable time", booking(tomorrow, "noon"), http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"missing vehicle", gin.H{"order_id": order.ID, "garage_id": "garage-nbi-1", "appointment_date": tomorrow, "appointment_time": "11:00"},
			http.StatusBadRequest, dto.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/appointments", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}
