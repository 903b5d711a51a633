package services

import (
	"testing"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/repositories"
	"hotel-booking-backend/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store        *repositories.MemoryStore
	settings     *SettingsService
	availability *AvailabilityService
	bookings     *BookingService
	blocked      *BlockedDateService
	payments     *PaymentService
	enquiries    *EnquiryService
	rooms        *RoomService
	auth         *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repositories.NewMemoryStore()
	settings := NewSettingsService(store)
	availability := NewAvailabilityService(store)
	return &testEnv{
		store:        store,
		settings:     settings,
		availability: availability,
		bookings:     NewBookingService(store, availability, settings),
		blocked:      NewBlockedDateService(store),
		payments:     NewPaymentService(store, settings),
		enquiries:    NewEnquiryService(store),
		rooms:        NewRoomService(store),
		auth:         NewAuthService(store),
	}
}

func (e *testEnv) addRoom(t *testing.T, number string, price int64, maxGuests int) *models.Room {
	t.Helper()
	room := &models.Room{
		RoomNumber:    number,
		Name:          "Room " + number,
		PricePerNight: decimal.NewFromInt(price),
		MaxGuests:     maxGuests,
		Active:        true,
	}
	require.NoError(t, e.store.Rooms().Create(room))
	return room
}

// addBooking inserts a booking directly, bypassing validation, for
// seeding conflict scenarios.
func (e *testEnv) addBooking(t *testing.T, roomID uint, ref, status string, checkIn, checkOut time.Time, total int64) *models.Booking {
	t.Helper()
	b := &models.Booking{
		RoomID:           roomID,
		BookingReference: ref,
		GuestName:        "Seed Guest",
		GuestEmail:       "seed@example.com",
		GuestPhone:       "+1000000",
		NumberOfGuests:   1,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		Nights:           utils.NightsBetween(checkIn, checkOut),
		Status:           status,
		TotalAmount:      decimal.NewFromInt(total),
		AmountDue:        decimal.NewFromInt(total),
	}
	require.NoError(t, e.store.Bookings().Create(b))
	return b
}

func (e *testEnv) addEnquiry(t *testing.T, ref string, total, deposit int64) *models.ConferenceEnquiry {
	t.Helper()
	enq := &models.ConferenceEnquiry{
		EnquiryReference: ref,
		ContactName:      "Seed Contact",
		ContactEmail:     "events@example.com",
		EventDate:        daysAhead(30),
		Status:           models.EnquiryStatusNew,
		TotalAmount:      decimal.NewFromInt(total),
		DepositRequired:  decimal.NewFromInt(deposit),
		AmountDue:        decimal.NewFromInt(total),
	}
	require.NoError(t, e.store.Enquiries().Create(enq))
	return enq
}

func daysAhead(n int) time.Time {
	return utils.Today().AddDate(0, 0, n)
}

func dateStr(t time.Time) string {
	return t.Format(utils.DateLayout)
}

func validBookingRequest(roomID uint) CreateBookingRequest {
	return CreateBookingRequest{
		RoomID:         roomID,
		GuestName:      "Ada Wong",
		GuestEmail:     "ada@example.com",
		GuestPhone:     "+44 20 7946 0000",
		NumberOfGuests: 2,
		CheckInDate:    dateStr(daysAhead(10)),
		CheckOutDate:   dateStr(daysAhead(13)),
	}
}
