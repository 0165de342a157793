package models

import (
	"time"

	"gorm.io/datatypes"
)

type Testimonial struct {
	ID uint `gorm:"primaryKey"`

	Name    string         `gorm:"column:name;size:100;not null"`
	Role    string         `gorm:"column:role;size:100;not null"`
	Rating  int            `gorm:"column:rating;not null"`
	Comment string         `gorm:"column:comment;type:text;not null"`
	Date    datatypes.Date `gorm:"column:date;not null"`
	Avatar  *string        `gorm:"column:avatar;size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewTestimonial() *Testimonial {
	return &Testimonial{
		Name:   "Anonymous",
		Rating: 5,
		Date:   Today(),
	}
}
