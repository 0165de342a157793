package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var BookingStatuses = []string{"Pending", "Confirmed", "Checked-in", "Checked-out", "Cancelled"}

const BookingStatusConfirmed = "Confirmed"

type Booking struct {
	ID uint `gorm:"primaryKey"`

	GuestName string `gorm:"column:guest_name;size:100;not null"`
	Name      string `gorm:"column:name;size:100;not null"`
	Email     string `gorm:"column:email;size:254;not null"`
	Phone     string `gorm:"column:phone;size:20;not null"`

	RoomType   string  `gorm:"column:room_type;size:100;not null"`
	RoomID     *uint   `gorm:"column:room_id;index"`
	Room       *Room   `gorm:"foreignKey:RoomID;constraint:OnDelete:SET NULL;"`
	RoomNumber *string `gorm:"column:room_number;size:10"`

	CheckIn  datatypes.Date  `gorm:"column:check_in;not null"`
	CheckOut datatypes.Date  `gorm:"column:check_out;not null"`
	Checkin  *datatypes.Date `gorm:"column:checkin"`
	Checkout *datatypes.Date `gorm:"column:checkout"`

	Guests      int             `gorm:"column:guests;not null"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null"`
	Status      string          `gorm:"column:status;size:50;not null"`

	BookingDate     datatypes.Date `gorm:"column:booking_date;not null"`
	SpecialRequests string         `gorm:"column:special_requests;type:text;not null"`
	IDNumber        *string        `gorm:"column:id_number;size:50"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBooking() *Booking {
	today := Today()
	return &Booking{
		GuestName:   "Guest",
		Email:       "guest@example.com",
		Phone:       "0000000000",
		RoomType:    "Standard Room",
		CheckIn:     today,
		CheckOut:    today,
		Guests:      1,
		TotalAmount: decimal.Zero,
		Status:      "Pending",
		BookingDate: today,
	}
}

// BeforeSave keeps the two name fields and the two date pairs in step.
// Front-desk screens write checkin/checkout, the public site writes
// check_in/check_out.
func (b *Booking) BeforeSave(tx *gorm.DB) error {
	b.SyncFields()
	return nil
}

func (b *Booking) SyncFields() {
	if b.Name != "" && b.GuestName == "" {
		b.GuestName = b.Name
	} else if b.GuestName != "" && b.Name == "" {
		b.Name = b.GuestName
	}

	if b.Checkin != nil {
		b.CheckIn = *b.Checkin
	}
	if b.Checkout != nil {
		b.CheckOut = *b.Checkout
	}
	if b.Checkin == nil {
		d := b.CheckIn
		b.Checkin = &d
	}
	if b.Checkout == nil {
		d := b.CheckOut
		b.Checkout = &d
	}
}

// Days is the length of stay, preferring the front-desk dates.
func (b *Booking) Days() int {
	start, end := b.CheckIn, b.CheckOut
	if b.Checkin != nil {
		start = *b.Checkin
	}
	if b.Checkout != nil {
		end = *b.Checkout
	}
	return DaysBetween(start, end)
}
