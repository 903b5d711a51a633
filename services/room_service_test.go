package services

import (
	"testing"

	"hotel-booking-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomValidation(t *testing.T) {
	env := newTestEnv(t)

	err := env.rooms.Create(&models.Room{
		RoomNumber:    " ",
		PricePerNight: decimal.Zero,
		MaxGuests:     0,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "room_number")
	assert.Contains(t, verr.Fields, "price_per_night")
	assert.Contains(t, verr.Fields, "max_guests")
}

func TestCreateRoomDuplicateNumber(t *testing.T) {
	env := newTestEnv(t)
	env.addRoom(t, "101", 100, 2)

	err := env.rooms.Create(&models.Room{
		RoomNumber:    "101",
		PricePerNight: decimal.NewFromInt(120),
		MaxGuests:     2,
	})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestRoomListActiveOnly(t *testing.T) {
	env := newTestEnv(t)
	env.addRoom(t, "101", 100, 2)
	inactive := env.addRoom(t, "102", 100, 2)
	inactive.Active = false
	require.NoError(t, env.rooms.Update(inactive))

	all, err := env.rooms.List(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := env.rooms.List(true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "101", active[0].RoomNumber)
}

func TestDeleteRoomHidesIt(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 100, 2)

	require.NoError(t, env.rooms.Delete(room.ID))

	_, err := env.rooms.GetByID(room.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	err = env.rooms.Delete(room.ID)
	require.ErrorAs(t, err, &nf)
}
