package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EnquiryStatusNew       = "new"
	EnquiryStatusQuoted    = "quoted"
	EnquiryStatusConfirmed = "confirmed"
	EnquiryStatusCompleted = "completed"
	EnquiryStatusCancelled = "cancelled"
)

// ConferenceEnquiry is the sibling owner type for the payment ledger:
// payments reference it with booking_type = "conference" and its aggregate
// fields are recomputed exactly like a room booking's, plus the deposit
// derivation.
type ConferenceEnquiry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	EnquiryReference string `gorm:"column:enquiry_reference;uniqueIndex;size:32" json:"enquiry_reference"`

	ContactName  string `gorm:"column:contact_name;size:255" json:"contact_name"`
	ContactEmail string `gorm:"column:contact_email;size:255" json:"contact_email"`
	ContactPhone string `gorm:"column:contact_phone;size:50" json:"contact_phone"`
	Company      string `gorm:"column:company;size:255" json:"company,omitempty"`

	EventDate         time.Time      `gorm:"column:event_date;type:date" json:"event_date"`
	ExpectedAttendees int            `gorm:"column:expected_attendees" json:"expected_attendees"`
	Equipment         datatypes.JSON `gorm:"column:equipment" json:"equipment,omitempty"`
	Notes             string         `gorm:"column:notes;type:text" json:"notes,omitempty"`

	Status string `gorm:"column:status;size:32;default:new" json:"status"`

	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);default:0" json:"total_amount"`
	DepositRequired decimal.Decimal `gorm:"column:deposit_required;type:decimal(12,2);default:0" json:"deposit_required"`

	// Aggregates, recompute-owned (see Booking).
	DepositPaid     decimal.Decimal `gorm:"column:deposit_paid;type:decimal(12,2);default:0" json:"deposit_paid"`
	AmountPaid      decimal.Decimal `gorm:"column:amount_paid;type:decimal(12,2);default:0" json:"amount_paid"`
	AmountDue       decimal.Decimal `gorm:"column:amount_due;type:decimal(12,2);default:0" json:"amount_due"`
	VatRate         decimal.Decimal `gorm:"column:vat_rate;type:decimal(6,2);default:0" json:"vat_rate"`
	VatAmount       decimal.Decimal `gorm:"column:vat_amount;type:decimal(12,2);default:0" json:"vat_amount"`
	TotalWithVat    decimal.Decimal `gorm:"column:total_with_vat;type:decimal(12,2);default:0" json:"total_with_vat"`
	LastPaymentDate *time.Time      `gorm:"column:last_payment_date" json:"last_payment_date,omitempty"`
}
