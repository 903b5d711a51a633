package services

import (
	"errors"
	"strings"

	"hotel-booking-backend/models"
	"hotel-booking-backend/repositories"
)

// RoomService covers the catalog management the booking core depends on:
// rooms with a nightly price, a capacity and an active flag.
type RoomService struct {
	store repositories.Store
}

func NewRoomService(store repositories.Store) *RoomService {
	return &RoomService{store: store}
}

func (s *RoomService) Create(room *models.Room) error {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	fields := map[string]string{}
	if room.RoomNumber == "" {
		fields["room_number"] = "room number is required"
	}
	if !room.PricePerNight.IsPositive() {
		fields["price_per_night"] = "nightly price must be greater than zero"
	}
	if room.MaxGuests < 1 {
		fields["max_guests"] = "capacity must be at least one guest"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	if err := s.store.Rooms().Create(room); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return &ConflictError{Message: "room number already exists"}
		}
		return err
	}
	return nil
}

func (s *RoomService) List(activeOnly bool) ([]models.Room, error) {
	return s.store.Rooms().List(activeOnly)
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	room, err := s.store.Rooms().GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Resource: "room"}
	}
	return room, err
}

func (s *RoomService) Update(room *models.Room) error {
	if _, err := s.GetByID(room.ID); err != nil {
		return err
	}
	return s.store.Rooms().Update(room)
}

func (s *RoomService) Delete(id uint) error {
	err := s.store.Rooms().Delete(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return &NotFoundError{Resource: "room"}
	}
	return err
}
