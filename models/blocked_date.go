package models

import "time"

const (
	BlockTypeMaintenance = "maintenance"
	BlockTypeEvent       = "event"
	BlockTypeManual      = "manual"
	BlockTypeFull        = "full"
)

func IsValidBlockType(s string) bool {
	switch s {
	case BlockTypeMaintenance, BlockTypeEvent, BlockTypeManual, BlockTypeFull:
		return true
	}
	return false
}

// BlockedDate is an admin-declared exclusion for one date. A nil RoomID
// means the block applies hotel-wide and is consulted for every room.
type BlockedDate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    *uint     `gorm:"column:room_id;uniqueIndex:idx_room_block_date" json:"room_id,omitempty"`
	Date      time.Time `gorm:"column:date;type:date;uniqueIndex:idx_room_block_date;not null" json:"date"`
	BlockType string    `gorm:"column:block_type;size:32;default:manual" json:"block_type"`
	Reason    string    `gorm:"column:reason;size:255" json:"reason,omitempty"`
	CreatedBy string    `gorm:"column:created_by;size:150" json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
