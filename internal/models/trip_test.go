package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTripIsActive(t *testing.T) {
	for status, active := range map[TripStatus]bool{
		TripStatusRequested:  false,
		TripStatusAccepted:   true,
		TripStatusInProgress: true,
		TripStatusCompleted:  false,
		TripStatusCancelled:  false,
	} {
		trip := &Trip{Status: status}
		assert.Equal(t, active, trip.IsActive(), "status %s", status)
	}
}

func TestTripParticipants(t *testing.T) {
	passengerID := primitive.NewObjectID()
	driverID := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	unassigned := &Trip{PassengerID: passengerID}
	assert.True(t, unassigned.IsParticipant(passengerID))
	assert.False(t, unassigned.IsParticipant(driverID))
	assert.Nil(t, unassigned.CounterpartID(passengerID))

	assigned := &Trip{PassengerID: passengerID, DriverID: &driverID}
	assert.True(t, assigned.IsParticipant(driverID))
	assert.False(t, assigned.IsParticipant(stranger))

	counterpart := assigned.CounterpartID(passengerID)
	assert.Equal(t, driverID, *counterpart)
	counterpart = assigned.CounterpartID(driverID)
	assert.Equal(t, passengerID, *counterpart)
}
