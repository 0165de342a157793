package models

import (
	"time"
)

// Admin is a staff account allowed to sign in to the dashboard.
type Admin struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;size:150;not null"`
	Password  string `gorm:"size:255;not null"` // bcrypt hash
	IsActive  bool   `gorm:"not null;default:true"`
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthToken is the opaque key handed out at login. One per admin.
type AuthToken struct {
	Key       string `gorm:"primaryKey;size:40"`
	AdminID   uint   `gorm:"uniqueIndex;not null"`
	Admin     Admin  `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time
}
