package services

import (
	"strconv"
	"testing"

	"hotel-booking-backend/models"
	"hotel-booking-backend/repositories"
	"hotel-booking-backend/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingSuccess(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 150, 2)

	req := validBookingRequest(room.ID)
	booking, err := env.bookings.CreateBooking(req)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, 3, booking.Nights)
	assert.True(t, booking.TotalAmount.Equal(decimal.NewFromInt(450)),
		"3 nights at 150, got %s", booking.TotalAmount)
	assert.True(t, booking.AmountDue.Equal(booking.TotalAmount))
	assert.True(t, utils.IsValidBookingReference(booking.BookingReference),
		"bad reference %q", booking.BookingReference)
	assert.Equal(t, room.ID, booking.Room.ID)

	// The committed row is readable by reference.
	found, err := env.bookings.GetByReference(booking.BookingReference)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, found.ID)
}

func TestCreateBookingValidation(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 150, 2)

	cases := []struct {
		name   string
		mutate func(*CreateBookingRequest)
		field  string
	}{
		{"missing guest name", func(r *CreateBookingRequest) { r.GuestName = "  " }, "guest_name"},
		{"missing email", func(r *CreateBookingRequest) { r.GuestEmail = "" }, "guest_email"},
		{"malformed email", func(r *CreateBookingRequest) { r.GuestEmail = "not-an-email" }, "guest_email"},
		{"missing phone", func(r *CreateBookingRequest) { r.GuestPhone = "" }, "guest_phone"},
		{"zero guests", func(r *CreateBookingRequest) { r.NumberOfGuests = 0 }, "number_of_guests"},
		{"bad check-in format", func(r *CreateBookingRequest) { r.CheckInDate = "2026/01/01" }, "check_in_date"},
		{"past check-in", func(r *CreateBookingRequest) { r.CheckInDate = dateStr(daysAhead(-1)) }, "check_in_date"},
		{"checkout equals check-in", func(r *CreateBookingRequest) {
			r.CheckInDate = dateStr(daysAhead(10))
			r.CheckOutDate = dateStr(daysAhead(10))
		}, "check_out_date"},
		{"checkout before check-in", func(r *CreateBookingRequest) {
			r.CheckInDate = dateStr(daysAhead(10))
			r.CheckOutDate = dateStr(daysAhead(8))
		}, "check_out_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validBookingRequest(room.ID)
			tc.mutate(&req)
			_, err := env.bookings.CreateBooking(req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestCreateBookingAdvanceWindow(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 150, 2)
	require.NoError(t, env.settings.Set(models.SettingMaxAdvanceBookingDays, "30"))

	req := validBookingRequest(room.ID)
	req.CheckInDate = dateStr(daysAhead(31))
	req.CheckOutDate = dateStr(daysAhead(33))

	_, err := env.bookings.CreateBooking(req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "check_in_date")

	// Exactly at the window edge is allowed.
	req.CheckInDate = dateStr(daysAhead(30))
	req.CheckOutDate = dateStr(daysAhead(32))
	_, err = env.bookings.CreateBooking(req)
	require.NoError(t, err)
}

func TestCreateBookingRoomChecks(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 150, 2)

	t.Run("unknown room", func(t *testing.T) {
		req := validBookingRequest(999)
		_, err := env.bookings.CreateBooking(req)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
	})

	t.Run("over capacity", func(t *testing.T) {
		req := validBookingRequest(room.ID)
		req.NumberOfGuests = 3
		_, err := env.bookings.CreateBooking(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "number_of_guests")
	})

	t.Run("inactive room", func(t *testing.T) {
		inactive := env.addRoom(t, "102", 150, 2)
		inactive.Active = false
		require.NoError(t, env.store.Rooms().Update(inactive))

		req := validBookingRequest(inactive.ID)
		_, err := env.bookings.CreateBooking(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "room_id")
	})
}

func TestCreateBookingConflict(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 150, 2)

	first := validBookingRequest(room.ID)
	_, err := env.bookings.CreateBooking(first)
	require.NoError(t, err)

	second := validBookingRequest(room.ID)
	second.GuestName = "Second Guest"
	_, err = env.bookings.CreateBooking(second)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	// No half-written row: only the first booking exists.
	all, err := env.bookings.ListBookings(repositories.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateBookingSameDayTurnover(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 150, 2)

	first := validBookingRequest(room.ID) // +10 to +13
	_, err := env.bookings.CreateBooking(first)
	require.NoError(t, err)

	// New guest checks in on the previous guest's checkout day.
	second := validBookingRequest(room.ID)
	second.CheckInDate = dateStr(daysAhead(13))
	second.CheckOutDate = dateStr(daysAhead(15))
	_, err = env.bookings.CreateBooking(second)
	require.NoError(t, err)
}

func TestBookingReferencesUnique(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 150, 2)

	seen := map[string]bool{}
	for i := 0; i < 25; i++ {
		req := validBookingRequest(room.ID)
		req.CheckInDate = dateStr(daysAhead(10 + 2*i))
		req.CheckOutDate = dateStr(daysAhead(11 + 2*i))
		req.GuestName = "Guest " + strconv.Itoa(i)

		booking, err := env.bookings.CreateBooking(req)
		require.NoError(t, err)
		assert.False(t, seen[booking.BookingReference], "duplicate reference %s", booking.BookingReference)
		seen[booking.BookingReference] = true
	}
}

func TestBookingReferencePrefixSetting(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 150, 2)
	require.NoError(t, env.settings.Set(models.SettingBookingRefPrefix, "SEA"))

	booking, err := env.bookings.CreateBooking(validBookingRequest(room.ID))
	require.NoError(t, err)
	assert.Equal(t, "SEA", booking.BookingReference[:3])
	assert.True(t, utils.IsValidBookingReference(booking.BookingReference))
}

func TestUpdateStatusWorkflow(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 150, 2)

	booking, err := env.bookings.CreateBooking(validBookingRequest(room.ID))
	require.NoError(t, err)

	updated, err := env.bookings.UpdateStatus(booking.ID, models.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, updated.Status)

	_, err = env.bookings.UpdateStatus(booking.ID, "nonsense")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = env.bookings.CancelBooking(booking.ID)
	require.NoError(t, err)

	// Cancelled is terminal.
	_, err = env.bookings.UpdateStatus(booking.ID, models.BookingStatusConfirmed)
	require.ErrorAs(t, err, &verr)
}

func TestCancelledBookingFreesDates(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 150, 2)

	booking, err := env.bookings.CreateBooking(validBookingRequest(room.ID))
	require.NoError(t, err)
	_, err = env.bookings.CancelBooking(booking.ID)
	require.NoError(t, err)

	rebook := validBookingRequest(room.ID)
	rebook.GuestName = "Replacement Guest"
	_, err = env.bookings.CreateBooking(rebook)
	require.NoError(t, err)
}

func TestListBookingsFilter(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 150, 2)
	other := env.addRoom(t, "102", 150, 2)

	env.addBooking(t, room.ID, "HTL20260001", models.BookingStatusConfirmed, daysAhead(5), daysAhead(8), 450)
	env.addBooking(t, room.ID, "HTL20260002", models.BookingStatusPending, daysAhead(20), daysAhead(22), 300)
	env.addBooking(t, other.ID, "HTL20260003", models.BookingStatusConfirmed, daysAhead(5), daysAhead(8), 450)

	byRoom, err := env.bookings.ListBookings(repositories.BookingFilter{RoomID: &room.ID})
	require.NoError(t, err)
	assert.Len(t, byRoom, 2)

	byStatus, err := env.bookings.ListBookings(repositories.BookingFilter{Status: models.BookingStatusConfirmed})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	from := daysAhead(10)
	inRange, err := env.bookings.ListBookings(repositories.BookingFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, "HTL20260002", inRange[0].BookingReference)

	_, err = env.bookings.ListBookings(repositories.BookingFilter{Status: "bogus"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
