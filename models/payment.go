package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentOwnerRoom       = "room"
	PaymentOwnerConference = "conference"
)

const (
	PaymentStatusPending           = "pending"
	PaymentStatusCompleted         = "completed"
	PaymentStatusFailed            = "failed"
	PaymentStatusRefunded          = "refunded"
	PaymentStatusPartiallyRefunded = "partially_refunded"
)

const (
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodOnline       = "online"
)

func IsValidPaymentOwnerType(s string) bool {
	return s == PaymentOwnerRoom || s == PaymentOwnerConference
}

func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed,
		PaymentStatusRefunded, PaymentStatusPartiallyRefunded:
		return true
	}
	return false
}

func IsValidPaymentMethod(s string) bool {
	switch s {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodOnline:
		return true
	}
	return false
}

// Payment is one ledger entry against a room booking or conference
// enquiry. Rows are only ever soft-deleted; aggregates are derived from
// the set of non-deleted completed rows.
type Payment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PaymentReference string `gorm:"column:payment_reference;uniqueIndex;size:32" json:"payment_reference"`

	BookingType string `gorm:"column:booking_type;size:16;index:idx_payment_owner;not null" json:"booking_type"`
	BookingID   uint   `gorm:"column:booking_id;index:idx_payment_owner;not null" json:"booking_id"`

	PaymentDate time.Time `gorm:"column:payment_date;type:date" json:"payment_date"`

	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	VatRate   decimal.Decimal `gorm:"column:vat_rate;type:decimal(6,2);default:0" json:"vat_rate"`
	VatAmount decimal.Decimal `gorm:"column:vat_amount;type:decimal(12,2);default:0" json:"vat_amount"`
	Total     decimal.Decimal `gorm:"column:total;type:decimal(12,2);not null" json:"total"`

	PaymentMethod  string  `gorm:"column:payment_method;size:32" json:"payment_method"`
	Status         string  `gorm:"column:status;size:32;index" json:"status"`
	TransactionRef string  `gorm:"column:transaction_ref;size:128" json:"transaction_ref,omitempty"`
	ReceiptNumber  *string `gorm:"column:receipt_number;uniqueIndex;size:32" json:"receipt_number,omitempty"`
	Notes          string  `gorm:"column:notes;type:text" json:"notes,omitempty"`
}
