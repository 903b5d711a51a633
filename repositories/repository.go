package repositories

import (
	"errors"
	"time"

	"hotel-booking-backend/models"
)

// ErrNotFound is returned by lookups when no row matches. Callers decide
// whether that is a 404 or an invariant violation.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint rejects a write
// (reference codes, room numbers, block dates).
var ErrDuplicate = errors.New("duplicate record")

// Store bundles every repository behind one injectable handle. All
// multi-step mutations run through Transaction, which hands the closure a
// Store bound to a single database transaction; returning an error rolls
// everything back.
type Store interface {
	Rooms() RoomRepository
	Bookings() BookingRepository
	Enquiries() EnquiryRepository
	Payments() PaymentRepository
	BlockedDates() BlockedDateRepository
	Settings() SettingRepository
	Admins() AdminRepository

	Transaction(fn func(Store) error) error
}

type RoomRepository interface {
	Create(room *models.Room) error
	GetByID(id uint) (*models.Room, error)
	// GetForUpdate locks the room row for the rest of the enclosing
	// transaction. Booking creation serializes on this lock per room.
	GetForUpdate(id uint) (*models.Room, error)
	List(activeOnly bool) ([]models.Room, error)
	Update(room *models.Room) error
	Delete(id uint) error
}

type BookingFilter struct {
	RoomID *uint
	Status string
	From   *time.Time
	To     *time.Time
}

type BookingRepository interface {
	Create(b *models.Booking) error
	GetByID(id uint) (*models.Booking, error)
	GetForUpdate(id uint) (*models.Booking, error)
	GetByReference(ref string) (*models.Booking, error)
	List(f BookingFilter) ([]models.Booking, error)
	// ActiveOverlapping returns bookings in an active status whose
	// [check_in, check_out) interval overlaps [checkIn, checkOut).
	ActiveOverlapping(roomID uint, checkIn, checkOut time.Time) ([]models.Booking, error)
	// ActiveOverlappingForUpdate is the same query with row locks held for
	// the rest of the enclosing transaction.
	ActiveOverlappingForUpdate(roomID uint, checkIn, checkOut time.Time) ([]models.Booking, error)
	ReferenceExists(ref string) (bool, error)
	Update(b *models.Booking) error
}

type EnquiryRepository interface {
	Create(e *models.ConferenceEnquiry) error
	GetByID(id uint) (*models.ConferenceEnquiry, error)
	GetForUpdate(id uint) (*models.ConferenceEnquiry, error)
	List() ([]models.ConferenceEnquiry, error)
	ReferenceExists(ref string) (bool, error)
	Update(e *models.ConferenceEnquiry) error
}

type PaymentRepository interface {
	Create(p *models.Payment) error
	// GetByID excludes soft-deleted rows.
	GetByID(id uint) (*models.Payment, error)
	ListByOwner(ownerType string, ownerID uint) ([]models.Payment, error)
	// CompletedByOwner returns the non-deleted, completed payments the
	// aggregate recompute sums over.
	CompletedByOwner(ownerType string, ownerID uint) ([]models.Payment, error)
	ReferenceExists(ref string) (bool, error)
	ReceiptNumberExists(receipt string) (bool, error)
	Update(p *models.Payment) error
	SoftDelete(id uint) error
}

type BlockedDateRepository interface {
	Create(b *models.BlockedDate) error
	// Delete removes the block for (roomID, date); nil roomID targets the
	// hotel-wide block. Returns false when no such block exists.
	Delete(roomID *uint, date time.Time) (bool, error)
	// List returns blocks with date in [from, to). Nil roomID lists every
	// block; otherwise only blocks for that room plus hotel-wide ones.
	List(roomID *uint, from, to time.Time) ([]models.BlockedDate, error)
	// AnyForRoom reports whether any block (room-specific or hotel-wide)
	// falls within [from, to) for the given room.
	AnyForRoom(roomID uint, from, to time.Time) (bool, error)
	Exists(roomID *uint, date time.Time) (bool, error)
}

type SettingRepository interface {
	// Get returns (value, found, error); absence is not an error.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	All() ([]models.Setting, error)
}

type AdminRepository interface {
	Create(a *models.Admin) error
	GetByID(id uint) (*models.Admin, error)
	GetByUsername(username string) (*models.Admin, error)
	Count() (int64, error)

	CreateRole(role *models.Role) error
	GetRoleByName(name string) (*models.Role, error)
	PermissionsForAdmin(adminID uint) ([]string, error)

	CreateToken(t *models.AuthToken) error
	// GetToken returns only unexpired tokens.
	GetToken(token string) (*models.AuthToken, error)
	DeleteToken(token string) error
}
