package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type BookingRequest struct {
	ID uint `gorm:"primaryKey"`

	GuestName string `gorm:"column:guest_name;size:100;not null"`
	Email     string `gorm:"column:email;size:254;not null"`
	Phone     string `gorm:"column:phone;size:20;not null"`
	RoomType  string `gorm:"column:room_type;size:100;not null"`

	CheckIn     datatypes.Date `gorm:"column:check_in;not null"`
	CheckOut    datatypes.Date `gorm:"column:check_out;not null"`
	RequestDate datatypes.Date `gorm:"column:request_date;not null"`

	Guests           int              `gorm:"column:guests;not null"`
	EstimatedAmount  decimal.Decimal  `gorm:"column:estimated_amount;type:decimal(10,2);not null"`
	Status           string           `gorm:"column:status;size:50;not null"`
	Priority         string           `gorm:"column:priority;size:20;not null"`
	Source           string           `gorm:"column:source;size:50;not null"`
	ResponseDeadline *datatypes.Date  `gorm:"column:response_deadline"`
	SpecialRequests  string           `gorm:"column:special_requests;type:text;not null"`
	GuestNotes       string           `gorm:"column:guest_notes;type:text;not null"`
	AdminNotes       string           `gorm:"column:admin_notes;type:text;not null"`
	AssignedTo       string           `gorm:"column:assigned_to;size:100;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBookingRequest() *BookingRequest {
	today := Today()
	return &BookingRequest{
		GuestName:       "Guest",
		Email:           "guest@example.com",
		Phone:           "0000000000",
		RoomType:        "Standard Room",
		CheckIn:         today,
		CheckOut:        today,
		RequestDate:     today,
		Guests:          1,
		EstimatedAmount: decimal.Zero,
		Status:          "Pending",
		Priority:        "Normal",
		Source:          "Website",
		AssignedTo:      "Unassigned",
	}
}
