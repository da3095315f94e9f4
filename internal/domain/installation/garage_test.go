package installation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailySlots(t *testing.T) {
	date := time.Date(2025, 6, 2, 13, 45, 0, 0, time.UTC)
	slots := DailySlots(date)

	assert.Len(t, slots, 8)
	assert.Equal(t, 9, slots[0].Hour())
	assert.Equal(t, 16, slots[len(slots)-1].Hour())
	for _, s := range slots {
		assert.Equal(t, 2, s.Day())
		assert.Equal(t, 0, s.Minute())
	}
}

func TestGarageFilter_Matches(t *testing.T) {
	g := &PartnerGarage{County: "Mombasa"}
	assert.True(t, GarageFilter{}.Matches(g))
	assert.True(t, GarageFilter{County: "mombasa"}.Matches(g))
	assert.False(t, GarageFilter{County: "Nairobi"}.Matches(g))
}

func TestAppointmentRequest_Validate(t *testing.T) {
	valid := AppointmentRequest{
		OrderID:         "o1",
		GarageID:        "g1",
		AppointmentDate: time.Now().AddDate(0, 0, 1),
		AppointmentTime: "10:00",
		Vehicle:         Vehicle{Registration: "KCA 001B"},
	}
	assert.NoError(t, valid.Validate())

	noVehicle := valid
	noVehicle.Vehicle.Registration = ""
	assert.Error(t, noVehicle.Validate())

	noGarage := valid
	noGarage.GarageID = ""
	assert.Error(t, noGarage.Validate())
}
