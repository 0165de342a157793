package forms

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"lumarise-backend/models"
)

// Writable scalar fields per entity. File fields are declared next to the
// resource registry because they need a storage prefix.

var Room = Schema[models.Room]{
	NullableText("title", 200, func(r *models.Room, v *string) { r.Title = v }),
	Text("size", 100, func(r *models.Room, v string) { r.Size = v }),
	Text("guests", 100, func(r *models.Room, v string) { r.Guests = v }),
	Text("bed", 100, func(r *models.Room, v string) { r.Bed = v }),
	Text("view", 100, func(r *models.Room, v string) { r.View = v }),
	Money("price", func(r *models.Room, v decimal.Decimal) { r.Price = v }),
	Text("desc", 0, func(r *models.Room, v string) { r.Description = v }),
}

var Booking = Schema[models.Booking]{
	Text("guest_name", 100, func(b *models.Booking, v string) { b.GuestName = v }),
	Text("name", 100, func(b *models.Booking, v string) { b.Name = v }),
	Email("email", func(b *models.Booking, v string) { b.Email = v }),
	Text("phone", 20, func(b *models.Booking, v string) { b.Phone = v }),
	Text("room_type", 100, func(b *models.Booking, v string) { b.RoomType = v }),
	NullableID("room", func(b *models.Booking, v *uint) { b.RoomID = v; b.Room = nil }),
	NullableText("room_number", 10, func(b *models.Booking, v *string) { b.RoomNumber = v }),
	Date("check_in", func(b *models.Booking, v datatypes.Date) { b.CheckIn = v }),
	Date("check_out", func(b *models.Booking, v datatypes.Date) { b.CheckOut = v }),
	NullableDate("checkin", func(b *models.Booking, v *datatypes.Date) { b.Checkin = v }),
	NullableDate("checkout", func(b *models.Booking, v *datatypes.Date) { b.Checkout = v }),
	Int("guests", 0, func(b *models.Booking, v int) { b.Guests = v }),
	Money("total_amount", func(b *models.Booking, v decimal.Decimal) { b.TotalAmount = v }),
	Choice("status", models.BookingStatuses, func(b *models.Booking, v string) { b.Status = v }),
	Date("booking_date", func(b *models.Booking, v datatypes.Date) { b.BookingDate = v }),
	Text("special_requests", 0, func(b *models.Booking, v string) { b.SpecialRequests = v }),
	NullableText("id_number", 50, func(b *models.Booking, v *string) { b.IDNumber = v }),
}

var OfflineBooking = Schema[models.OfflineBooking]{
	Text("guest_name", 100, func(b *models.OfflineBooking, v string) { b.GuestName = v }),
	Text("email", 254, func(b *models.OfflineBooking, v string) { b.Email = v }),
	Text("phone", 20, func(b *models.OfflineBooking, v string) { b.Phone = v }),
	Text("room_type", 100, func(b *models.OfflineBooking, v string) { b.RoomType = v }),
	Date("check_in", func(b *models.OfflineBooking, v datatypes.Date) { b.CheckIn = v }),
	Date("check_out", func(b *models.OfflineBooking, v datatypes.Date) { b.CheckOut = v }),
	Date("booking_date", func(b *models.OfflineBooking, v datatypes.Date) { b.BookingDate = v }),
	Int("guests", 0, func(b *models.OfflineBooking, v int) { b.Guests = v }),
	Money("total_amount", func(b *models.OfflineBooking, v decimal.Decimal) { b.TotalAmount = v }),
	Text("status", 50, func(b *models.OfflineBooking, v string) { b.Status = v }),
	Text("booking_type", 20, func(b *models.OfflineBooking, v string) { b.BookingType = v }),
	Text("created_by", 100, func(b *models.OfflineBooking, v string) { b.CreatedBy = v }),
	Text("payment_method", 50, func(b *models.OfflineBooking, v string) { b.PaymentMethod = v }),
	Bool("id_verified", func(b *models.OfflineBooking, v bool) { b.IDVerified = v }),
	Text("special_requests", 0, func(b *models.OfflineBooking, v string) { b.SpecialRequests = v }),
}

var BookingRequest = Schema[models.BookingRequest]{
	Text("guest_name", 100, func(b *models.BookingRequest, v string) { b.GuestName = v }),
	Email("email", func(b *models.BookingRequest, v string) { b.Email = v }),
	Text("phone", 20, func(b *models.BookingRequest, v string) { b.Phone = v }),
	Text("room_type", 100, func(b *models.BookingRequest, v string) { b.RoomType = v }),
	Date("check_in", func(b *models.BookingRequest, v datatypes.Date) { b.CheckIn = v }),
	Date("check_out", func(b *models.BookingRequest, v datatypes.Date) { b.CheckOut = v }),
	Date("request_date", func(b *models.BookingRequest, v datatypes.Date) { b.RequestDate = v }),
	Int("guests", 0, func(b *models.BookingRequest, v int) { b.Guests = v }),
	Money("estimated_amount", func(b *models.BookingRequest, v decimal.Decimal) { b.EstimatedAmount = v }),
	Text("status", 50, func(b *models.BookingRequest, v string) { b.Status = v }),
	Text("priority", 20, func(b *models.BookingRequest, v string) { b.Priority = v }),
	Text("source", 50, func(b *models.BookingRequest, v string) { b.Source = v }),
	NullableDate("response_deadline", func(b *models.BookingRequest, v *datatypes.Date) { b.ResponseDeadline = v }),
	Text("special_requests", 0, func(b *models.BookingRequest, v string) { b.SpecialRequests = v }),
	Text("guest_notes", 0, func(b *models.BookingRequest, v string) { b.GuestNotes = v }),
	Text("admin_notes", 0, func(b *models.BookingRequest, v string) { b.AdminNotes = v }),
	Text("assigned_to", 100, func(b *models.BookingRequest, v string) { b.AssignedTo = v }),
}

var UserProfile = Schema[models.UserProfile]{
	Text("name", 100, func(u *models.UserProfile, v string) { u.Name = v }),
	Require(Email("email", func(u *models.UserProfile, v string) { u.Email = v })),
	Text("phone", 20, func(u *models.UserProfile, v string) { u.Phone = v }),
	Date("join_date", func(u *models.UserProfile, v datatypes.Date) { u.JoinDate = v }),
	NullableDate("last_login", func(u *models.UserProfile, v *datatypes.Date) { u.LastLogin = v }),
	Text("status", 20, func(u *models.UserProfile, v string) { u.Status = v }),
	Int("bookings", 0, func(u *models.UserProfile, v int) { u.Bookings = v }),
}

var Testimonial = Schema[models.Testimonial]{
	Text("name", 100, func(t *models.Testimonial, v string) { t.Name = v }),
	Text("role", 100, func(t *models.Testimonial, v string) { t.Role = v }),
	Int("rating", 0, func(t *models.Testimonial, v int) { t.Rating = v }),
	Text("comment", 0, func(t *models.Testimonial, v string) { t.Comment = v }),
	Date("date", func(t *models.Testimonial, v datatypes.Date) { t.Date = v }),
}

var VideoItem = Schema[models.VideoItem]{
	Text("title", 200, func(v *models.VideoItem, s string) { v.Title = s }),
	Text("category", 100, func(v *models.VideoItem, s string) { v.Category = s }),
	Date("upload_date", func(v *models.VideoItem, d datatypes.Date) { v.UploadDate = d }),
	Text("duration", 10, func(v *models.VideoItem, s string) { v.Duration = s }),
	Text("status", 20, func(v *models.VideoItem, s string) { v.Status = s }),
}

var MediaItem = Schema[models.MediaItem]{
	Require(Text("title", 100, func(m *models.MediaItem, v string) { m.Title = v })),
	Choice("media_type", models.MediaTypes, func(m *models.MediaItem, v string) { m.MediaType = v }),
}
