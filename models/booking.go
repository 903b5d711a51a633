package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking statuses. Bookings in an "active" status occupy their room for
// the whole [check_in_date, check_out_date) interval.
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCancelled  = "cancelled"
)

// ActiveBookingStatuses are the statuses that block a room's dates.
// Cancelled and checked-out bookings never conflict with new ones.
var ActiveBookingStatuses = []string{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCheckedIn,
}

func IsValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn,
		BookingStatusCheckedOut, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingReference string `gorm:"column:booking_reference;uniqueIndex;size:32" json:"booking_reference"`
	RoomID           uint   `gorm:"column:room_id;index;not null" json:"room_id"`

	GuestName    string `gorm:"column:guest_name;size:255" json:"guest_name"`
	GuestEmail   string `gorm:"column:guest_email;size:255" json:"guest_email"`
	GuestPhone   string `gorm:"column:guest_phone;size:50" json:"guest_phone"`
	GuestCountry string `gorm:"column:guest_country;size:100" json:"guest_country,omitempty"`
	GuestAddress string `gorm:"column:guest_address;type:text" json:"guest_address,omitempty"`

	NumberOfGuests  int       `gorm:"column:number_of_guests;default:1" json:"number_of_guests"`
	CheckInDate     time.Time `gorm:"column:check_in_date;type:date;index" json:"check_in_date"`
	CheckOutDate    time.Time `gorm:"column:check_out_date;type:date;index" json:"check_out_date"`
	Nights          int       `gorm:"column:nights" json:"nights"`
	SpecialRequests string    `gorm:"column:special_requests;type:text" json:"special_requests,omitempty"`

	Status string `gorm:"column:status;size:32;index;default:pending" json:"status"`

	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)" json:"total_amount"`

	// Payment aggregates. Derived by the payment ledger's recompute; never
	// written anywhere else.
	AmountPaid      decimal.Decimal `gorm:"column:amount_paid;type:decimal(12,2);default:0" json:"amount_paid"`
	AmountDue       decimal.Decimal `gorm:"column:amount_due;type:decimal(12,2);default:0" json:"amount_due"`
	VatRate         decimal.Decimal `gorm:"column:vat_rate;type:decimal(6,2);default:0" json:"vat_rate"`
	VatAmount       decimal.Decimal `gorm:"column:vat_amount;type:decimal(12,2);default:0" json:"vat_amount"`
	TotalWithVat    decimal.Decimal `gorm:"column:total_with_vat;type:decimal(12,2);default:0" json:"total_with_vat"`
	LastPaymentDate *time.Time      `gorm:"column:last_payment_date" json:"last_payment_date,omitempty"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

// BookingSummary is the diagnostic shape returned by conflict lookups.
type BookingSummary struct {
	BookingReference string    `json:"booking_reference"`
	CheckInDate      time.Time `json:"check_in_date"`
	CheckOutDate     time.Time `json:"check_out_date"`
	Status           string    `json:"status"`
}
