package models

import (
	"time"

	"gorm.io/gorm"
)

type Admin struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:255" json:"full_name"`
	Username string `gorm:"uniqueIndex;size:150" json:"username"`
	Password string `gorm:"size:255" json:"-"` // bcrypt hash, never returned
	RoleID   *uint  `gorm:"column:role_id;index" json:"role_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Role *Role `gorm:"foreignKey:RoleID;references:ID" json:"role,omitempty"`
}

// AuthToken is an opaque session token handed out by login.
type AuthToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AdminID   uint      `gorm:"column:admin_id;index;not null" json:"admin_id"`
	Token     string    `gorm:"uniqueIndex;size:128;not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
