package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lumarise-backend/apperrors"
	"lumarise-backend/forms"
	"lumarise-backend/models"
	"lumarise-backend/storage"
)

// Flat resource definitions. Search and ordering columns are database
// column names.

var Bookings = &Resource[models.Booking]{
	Name:   "bookings",
	Label:  "booking",
	Schema: forms.Booking,
	List: ListSpec{
		Search:   []string{"guest_name", "email", "phone", "room_type", "status"},
		Ordering: []string{"booking_date", "check_in", "check_out", "total_amount"},
		Default:  "-id",
	},
	New:   models.NewBooking,
	Check: checkBookingRoom,
}

var OfflineBookings = &Resource[models.OfflineBooking]{
	Name:   "offline-bookings",
	Label:  "offline booking",
	Schema: forms.OfflineBooking,
	List: ListSpec{
		Search:   []string{"guest_name", "phone", "room_type", "status", "booking_type", "created_by"},
		Ordering: []string{"booking_date", "check_in", "check_out", "total_amount"},
		Default:  "-id",
	},
	New: models.NewOfflineBooking,
}

var BookingRequests = &Resource[models.BookingRequest]{
	Name:   "booking-requests",
	Label:  "booking request",
	Schema: forms.BookingRequest,
	List: ListSpec{
		Search:   []string{"guest_name", "email", "status", "priority", "source"},
		Ordering: []string{"request_date", "response_deadline", "estimated_amount"},
		Default:  "-id",
	},
	New: models.NewBookingRequest,
}

var UserProfiles = &Resource[models.UserProfile]{
	Name:   "users",
	Label:  "user",
	Schema: forms.UserProfile,
	Files: []FileField[models.UserProfile]{
		{Name: "avatar", Prefix: storage.PrefixAvatars, Image: true, Set: func(u *models.UserProfile, ref string) { u.Avatar = &ref }},
	},
	List: ListSpec{
		Search:   []string{"name", "email", "phone", "status"},
		Ordering: []string{"join_date", "last_login", "bookings"},
		Default:  "-id",
	},
	New: models.NewUserProfile,
}

var Testimonials = &Resource[models.Testimonial]{
	Name:   "testimonials",
	Label:  "testimonial",
	Schema: forms.Testimonial,
	Files: []FileField[models.Testimonial]{
		{Name: "avatar", Prefix: storage.PrefixTestimonials, Image: true, Set: func(t *models.Testimonial, ref string) { t.Avatar = &ref }},
	},
	List: ListSpec{
		Search:   []string{"name", "role", "comment"},
		Ordering: []string{"date", "rating"},
		Default:  "-id",
	},
	New: models.NewTestimonial,
}

var VideoItems = &Resource[models.VideoItem]{
	Name:   "videos",
	Label:  "video",
	Schema: forms.VideoItem,
	Files: []FileField[models.VideoItem]{
		{Name: "file", Prefix: storage.PrefixVideos, Required: true, Set: func(v *models.VideoItem, ref string) { v.File = ref }},
		{Name: "thumbnail", Prefix: storage.PrefixVideoThumbnails, Image: true, Set: func(v *models.VideoItem, ref string) { v.Thumbnail = &ref }},
	},
	List: ListSpec{
		Search:   []string{"title", "category", "status"},
		Ordering: []string{"upload_date"},
		Default:  "-id",
	},
	New: models.NewVideoItem,
}

var MediaItems = &Resource[models.MediaItem]{
	Name:   "media",
	Label:  "media item",
	Schema: forms.MediaItem,
	Files: []FileField[models.MediaItem]{
		{Name: "image", Prefix: storage.PrefixGallery, Image: true, Set: func(m *models.MediaItem, ref string) { m.Image = &ref }},
		{Name: "video", Prefix: storage.PrefixVideos, Set: func(m *models.MediaItem, ref string) { m.Video = &ref }},
	},
	// No search fields; every column is orderable.
	List: ListSpec{
		Ordering: []string{"id", "title", "media_type", "image", "video", "uploaded_at"},
		Default:  "-uploaded_at",
	},
	New: models.NewMediaItem,
}

// checkBookingRoom rejects a room id that does not exist.
func checkBookingRoom(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	if b.RoomID == nil {
		return nil
	}
	var count int64
	if err := tx.WithContext(ctx).Model(&models.Room{}).Where("id = ?", *b.RoomID).Count(&count).Error; err != nil {
		return fmt.Errorf("check booking room: %w", err)
	}
	if count == 0 {
		return apperrors.New(apperrors.CodeValidation, "validation failed").WithDetails(map[string]string{
			"room": fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *b.RoomID),
		})
	}
	return nil
}
