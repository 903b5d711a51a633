package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/repositories"
	"hotel-booking-backend/utils"

	"github.com/shopspring/decimal"
)

// referenceMaxAttempts bounds the generate-probe-retry loop for booking
// references. The 4-digit random space makes collisions rare; hitting
// the cap means something is badly wrong with the store.
const referenceMaxAttempts = 10

type CreateBookingRequest struct {
	RoomID          uint   `json:"room_id" binding:"required"`
	GuestName       string `json:"guest_name" binding:"required"`
	GuestEmail      string `json:"guest_email" binding:"required"`
	GuestPhone      string `json:"guest_phone" binding:"required"`
	GuestCountry    string `json:"guest_country"`
	GuestAddress    string `json:"guest_address"`
	NumberOfGuests  int    `json:"number_of_guests" binding:"required,min=1"`
	CheckInDate     string `json:"check_in_date" binding:"required,dateformat"`
	CheckOutDate    string `json:"check_out_date" binding:"required,dateformat"`
	SpecialRequests string `json:"special_requests"`
}

// BookingService validates reservation requests and commits bookings
// atomically. Availability is re-confirmed inside the commit transaction
// while the room row and any overlapping booking rows are locked, so two
// concurrent requests for the same dates cannot both succeed.
type BookingService struct {
	store        repositories.Store
	availability *AvailabilityService
	settings     *SettingsService
}

func NewBookingService(store repositories.Store, availability *AvailabilityService, settings *SettingsService) *BookingService {
	return &BookingService{store: store, availability: availability, settings: settings}
}

func (s *BookingService) validate(req CreateBookingRequest) (checkIn, checkOut time.Time, verr *ValidationError) {
	fields := map[string]string{}

	if req.RoomID == 0 {
		fields["room_id"] = "room is required"
	}
	if strings.TrimSpace(req.GuestName) == "" {
		fields["guest_name"] = "guest name is required"
	}
	if strings.TrimSpace(req.GuestPhone) == "" {
		fields["guest_phone"] = "guest phone is required"
	}
	email := strings.TrimSpace(req.GuestEmail)
	if email == "" {
		fields["guest_email"] = "guest email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields["guest_email"] = "guest email is not a valid address"
	}
	if req.NumberOfGuests < 1 {
		fields["number_of_guests"] = "at least one guest is required"
	}

	var err error
	if checkIn, err = utils.ParseDate(req.CheckInDate); err != nil {
		fields["check_in_date"] = err.Error()
	}
	if checkOut, err = utils.ParseDate(req.CheckOutDate); err != nil {
		fields["check_out_date"] = err.Error()
	}
	if len(fields) > 0 {
		return checkIn, checkOut, &ValidationError{Fields: fields}
	}

	today := utils.Today()
	if checkIn.Before(today) {
		fields["check_in_date"] = "check-in date cannot be in the past"
	}
	if !checkOut.After(checkIn) {
		fields["check_out_date"] = "check-out date must be after check-in date"
	}
	if len(fields) > 0 {
		return checkIn, checkOut, &ValidationError{Fields: fields}
	}

	maxAdvance := s.settings.GetInt(models.SettingMaxAdvanceBookingDays, 365)
	if checkIn.After(today.AddDate(0, 0, maxAdvance)) {
		fields["check_in_date"] = fmt.Sprintf("bookings can be made at most %d days in advance", maxAdvance)
		return checkIn, checkOut, &ValidationError{Fields: fields}
	}

	return checkIn, checkOut, nil
}

// CreateBooking runs the full validation sequence, then commits the
// booking in a single transaction. No booking row survives any
// validation, conflict or store failure.
func (s *BookingService) CreateBooking(req CreateBookingRequest) (*models.Booking, error) {
	checkIn, checkOut, verr := s.validate(req)
	if verr != nil {
		return nil, verr
	}

	room, err := s.store.Rooms().GetByID(req.RoomID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Resource: "room"}
		}
		return nil, err
	}
	if !room.Active {
		return nil, newValidationError("room_id", "room is not available for booking")
	}
	if req.NumberOfGuests > room.MaxGuests {
		return nil, newValidationError("number_of_guests",
			fmt.Sprintf("room sleeps at most %d guests", room.MaxGuests))
	}

	available, err := s.availability.IsAvailable(req.RoomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, &ConflictError{Message: "room is not available for the requested dates"}
	}

	nights := utils.NightsBetween(checkIn, checkOut)
	total := room.PricePerNight.Mul(decimal.NewFromInt(int64(nights)))

	booking := &models.Booking{
		RoomID:          room.ID,
		GuestName:       strings.TrimSpace(req.GuestName),
		GuestEmail:      strings.TrimSpace(req.GuestEmail),
		GuestPhone:      strings.TrimSpace(req.GuestPhone),
		GuestCountry:    strings.TrimSpace(req.GuestCountry),
		GuestAddress:    strings.TrimSpace(req.GuestAddress),
		NumberOfGuests:  req.NumberOfGuests,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Nights:          nights,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		Status:          models.BookingStatusPending,
		TotalAmount:     total,
		AmountDue:       total,
	}

	err = s.store.Transaction(func(tx repositories.Store) error {
		// Lock the room row first so concurrent creations for the same
		// room serialize here, then re-confirm availability with the
		// overlapping rows locked. This closes the gap between the check
		// above and the insert below.
		if _, err := tx.Rooms().GetForUpdate(room.ID); err != nil {
			return err
		}
		stillFree, err := s.availability.isAvailable(tx, room.ID, checkIn, checkOut, true)
		if err != nil {
			return err
		}
		if !stillFree {
			return &ConflictError{Message: "room is not available for the requested dates"}
		}

		ref, err := s.generateReference(tx)
		if err != nil {
			return err
		}
		booking.BookingReference = ref

		if err := tx.Bookings().Create(booking); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Room = *room
	return booking, nil
}

func (s *BookingService) generateReference(tx repositories.Store) (string, error) {
	prefix := s.settings.Get(models.SettingBookingRefPrefix, "HTL")
	for attempt := 0; attempt < referenceMaxAttempts; attempt++ {
		candidate, err := utils.GenerateBookingReference(prefix, time.Now())
		if err != nil {
			return "", err
		}
		exists, err := tx.Bookings().ReferenceExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique booking reference after %d attempts", referenceMaxAttempts)
}

func (s *BookingService) GetBooking(id uint) (*models.Booking, error) {
	booking, err := s.store.Bookings().GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Resource: "booking"}
	}
	return booking, err
}

func (s *BookingService) GetByReference(ref string) (*models.Booking, error) {
	booking, err := s.store.Bookings().GetByReference(strings.ToUpper(strings.TrimSpace(ref)))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Resource: "booking"}
	}
	return booking, err
}

func (s *BookingService) ListBookings(f repositories.BookingFilter) ([]models.Booking, error) {
	if f.Status != "" && !models.IsValidBookingStatus(f.Status) {
		return nil, newValidationError("status", "unknown booking status")
	}
	return s.store.Bookings().List(f)
}

// UpdateStatus applies the staff workflow's status changes. Cancelled is
// terminal; everything else is the staff's call.
func (s *BookingService) UpdateStatus(id uint, status string) (*models.Booking, error) {
	if !models.IsValidBookingStatus(status) {
		return nil, newValidationError("status", "unknown booking status")
	}

	var updated *models.Booking
	err := s.store.Transaction(func(tx repositories.Store) error {
		booking, err := tx.Bookings().GetForUpdate(id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return &NotFoundError{Resource: "booking"}
			}
			return err
		}
		if booking.Status == models.BookingStatusCancelled && status != models.BookingStatusCancelled {
			return newValidationError("status", "cancelled bookings cannot change status")
		}
		booking.Status = status
		if err := tx.Bookings().Update(booking); err != nil {
			return err
		}
		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *BookingService) CancelBooking(id uint) (*models.Booking, error) {
	return s.UpdateStatus(id, models.BookingStatusCancelled)
}
