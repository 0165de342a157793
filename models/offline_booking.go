package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OfflineBooking is a walk-in or phone reservation entered by staff.
type OfflineBooking struct {
	ID uint `gorm:"primaryKey"`

	GuestName string `gorm:"column:guest_name;size:100;not null"`
	Email     string `gorm:"column:email;size:254;not null"`
	Phone     string `gorm:"column:phone;size:20;not null"`
	RoomType  string `gorm:"column:room_type;size:100;not null"`

	CheckIn     datatypes.Date `gorm:"column:check_in;not null"`
	CheckOut    datatypes.Date `gorm:"column:check_out;not null"`
	BookingDate datatypes.Date `gorm:"column:booking_date;not null"`

	Guests          int             `gorm:"column:guests;not null"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null"`
	Status          string          `gorm:"column:status;size:50;not null"`
	BookingType     string          `gorm:"column:booking_type;size:20;not null"`
	CreatedBy       string          `gorm:"column:created_by;size:100;not null"`
	PaymentMethod   string          `gorm:"column:payment_method;size:50;not null"`
	IDVerified      bool            `gorm:"column:id_verified;not null"`
	SpecialRequests string          `gorm:"column:special_requests;type:text;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewOfflineBooking() *OfflineBooking {
	today := Today()
	return &OfflineBooking{
		GuestName:     "Guest",
		Phone:         "0000000000",
		RoomType:      "Standard Room",
		CheckIn:       today,
		CheckOut:      today,
		BookingDate:   today,
		Guests:        1,
		TotalAmount:   decimal.Zero,
		Status:        "Confirmed",
		BookingType:   "Walk-in",
		CreatedBy:     "Admin",
		PaymentMethod: "Cash",
	}
}
