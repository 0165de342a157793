package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserProfile is a registered guest account as shown in the admin panel.
type UserProfile struct {
	ID uint `gorm:"primaryKey"`

	Name      string          `gorm:"column:name;size:100;not null"`
	Email     string          `gorm:"column:email;size:254;not null;uniqueIndex"`
	Phone     string          `gorm:"column:phone;size:20;not null"`
	JoinDate  datatypes.Date  `gorm:"column:join_date;not null"`
	LastLogin *datatypes.Date `gorm:"column:last_login"`
	Status    string          `gorm:"column:status;size:20;not null"`
	Bookings  int             `gorm:"column:bookings;not null"`
	Avatar    *string         `gorm:"column:avatar;size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewUserProfile() *UserProfile {
	return &UserProfile{
		Name:     "User",
		Phone:    "0000000000",
		JoinDate: Today(),
		Status:   "Active",
	}
}
