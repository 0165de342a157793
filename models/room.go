package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Room struct {
	ID uint `gorm:"primaryKey"`

	Title       *string         `gorm:"column:title;size:200"`
	Size        string          `gorm:"column:size;size:100;not null"`
	Guests      string          `gorm:"column:guests;size:100;not null"`
	Bed         string          `gorm:"column:bed;size:100;not null"`
	View        string          `gorm:"column:view;size:100;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
	Description string          `gorm:"column:description;type:text;not null"`

	// Storage reference, not a URL. Empty means no main image.
	MainImage *string `gorm:"column:main_image;size:255"`

	Images []RoomImage `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMainImage reports whether the main image slot holds a reference.
func (r *Room) HasMainImage() bool {
	return r.MainImage != nil && *r.MainImage != ""
}

// RoomImage is one gallery photo. Rooms own their images exclusively.
type RoomImage struct {
	ID     uint   `gorm:"primaryKey"`
	RoomID uint   `gorm:"column:room_id;not null;index"`
	Image  string `gorm:"column:image;size:255;not null"`

	CreatedAt time.Time
}
