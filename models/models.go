package models

// All lists every table in parent-to-child order for AutoMigrate.
func All() []any {
	return []any{
		&Admin{},
		&AuthToken{},
		&Room{},
		&RoomImage{},
		&Booking{},
		&OfflineBooking{},
		&BookingRequest{},
		&UserProfile{},
		&Testimonial{},
		&VideoItem{},
		&MediaItem{},
	}
}
