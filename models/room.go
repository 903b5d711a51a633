package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	RoomNumber  string `json:"room_number" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Name        string `json:"name" gorm:"size:255"`
	Description string `json:"description" gorm:"type:text"`

	PricePerNight decimal.Decimal `json:"price_per_night" gorm:"column:price_per_night;type:decimal(12,2);not null"`
	MaxGuests     int             `json:"max_guests" gorm:"column:max_guests;default:2"`
	Active        bool            `json:"active" gorm:"default:true"`
}
