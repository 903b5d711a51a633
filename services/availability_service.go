package services

import (
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/repositories"
)

// AvailabilityService decides whether a room is free for a half-open
// [checkIn, checkOut) range by combining active bookings with admin
// date blocks.
type AvailabilityService struct {
	store repositories.Store
}

func NewAvailabilityService(store repositories.Store) *AvailabilityService {
	return &AvailabilityService{store: store}
}

// IsAvailable reports whether the room has no conflicting active booking
// and no blocked date (room-specific or hotel-wide) within the range.
// A checkout on another booking's check-in day is not a conflict.
func (s *AvailabilityService) IsAvailable(roomID uint, checkIn, checkOut time.Time) (bool, error) {
	return s.isAvailable(s.store, roomID, checkIn, checkOut, false)
}

// isAvailable runs against the given store so booking creation can call
// it inside a transaction with locked overlap rows.
func (s *AvailabilityService) isAvailable(store repositories.Store, roomID uint, checkIn, checkOut time.Time, forUpdate bool) (bool, error) {
	var (
		conflicts []models.Booking
		err       error
	)
	if forUpdate {
		conflicts, err = store.Bookings().ActiveOverlappingForUpdate(roomID, checkIn, checkOut)
	} else {
		conflicts, err = store.Bookings().ActiveOverlapping(roomID, checkIn, checkOut)
	}
	if err != nil {
		return false, err
	}
	if len(conflicts) > 0 {
		return false, nil
	}

	blocked, err := store.BlockedDates().AnyForRoom(roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}

// Conflicts returns a diagnostic summary of every active booking that
// overlaps the requested range.
func (s *AvailabilityService) Conflicts(roomID uint, checkIn, checkOut time.Time) ([]models.BookingSummary, error) {
	bookings, err := s.store.Bookings().ActiveOverlapping(roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		summaries = append(summaries, models.BookingSummary{
			BookingReference: b.BookingReference,
			CheckInDate:      b.CheckInDate,
			CheckOutDate:     b.CheckOutDate,
			Status:           b.Status,
		})
	}
	return summaries, nil
}
