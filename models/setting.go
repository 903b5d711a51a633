package models

import "time"

// Setting keys the core reads, with their defaults applied by the
// settings service when the row is absent.
const (
	SettingMaxAdvanceBookingDays = "max_advance_booking_days"
	SettingVatEnabled            = "vat_enabled"
	SettingVatRate               = "vat_rate"
	SettingCurrencySymbol        = "currency_symbol"
	SettingCurrencyCode          = "currency_code"
	SettingBookingRefPrefix      = "booking_ref_prefix"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;uniqueIndex;size:100;not null" json:"key"`
	Value     string    `gorm:"column:setting_value;size:255" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
