package presenter

import (
	"time"

	"lumarise-backend/models"
)

type RoomImageView struct {
	ID    uint    `json:"id"`
	Image *string `json:"image"`
}

type RoomView struct {
	ID        uint            `json:"id"`
	Images    []RoomImageView `json:"images"`
	MainImage *string         `json:"main_image"`
	Title     *string         `json:"title"`
	Size      string          `json:"size"`
	Guests    string          `json:"guests"`
	Bed       string          `json:"bed"`
	View      string          `json:"view"`
	Price     string          `json:"price"`
	Desc      string          `json:"desc"`
}

func (m Media) Room(r *models.Room) RoomView {
	images := make([]RoomImageView, len(r.Images))
	for i, img := range r.Images {
		images[i] = RoomImageView{ID: img.ID, Image: m.URL(img.Image)}
	}
	return RoomView{
		ID:        r.ID,
		Images:    images,
		MainImage: m.OptURL(r.MainImage),
		Title:     r.Title,
		Size:      r.Size,
		Guests:    r.Guests,
		Bed:       r.Bed,
		View:      r.View,
		Price:     money(r.Price),
		Desc:      r.Description,
	}
}

type BookingView struct {
	ID              uint    `json:"id"`
	GuestName       string  `json:"guest_name"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	RoomType        string  `json:"room_type"`
	Room            *uint   `json:"room"`
	RoomNumber      *string `json:"room_number"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	Checkin         *string `json:"checkin"`
	Checkout        *string `json:"checkout"`
	Guests          int     `json:"guests"`
	TotalAmount     string  `json:"total_amount"`
	Status          string  `json:"status"`
	BookingDate     string  `json:"booking_date"`
	SpecialRequests string  `json:"special_requests"`
	IDNumber        *string `json:"id_number"`
	Days            int     `json:"days"`
}

func (m Media) Booking(b *models.Booking) BookingView {
	return BookingView{
		ID:              b.ID,
		GuestName:       b.GuestName,
		Name:            b.Name,
		Email:           b.Email,
		Phone:           b.Phone,
		RoomType:        b.RoomType,
		Room:            b.RoomID,
		RoomNumber:      b.RoomNumber,
		CheckIn:         models.FormatDate(b.CheckIn),
		CheckOut:        models.FormatDate(b.CheckOut),
		Checkin:         models.FormatOptionalDate(b.Checkin),
		Checkout:        models.FormatOptionalDate(b.Checkout),
		Guests:          b.Guests,
		TotalAmount:     money(b.TotalAmount),
		Status:          b.Status,
		BookingDate:     models.FormatDate(b.BookingDate),
		SpecialRequests: b.SpecialRequests,
		IDNumber:        b.IDNumber,
		Days:            b.Days(),
	}
}

type OfflineBookingView struct {
	ID              uint   `json:"id"`
	GuestName       string `json:"guest_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	RoomType        string `json:"room_type"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	BookingDate     string `json:"booking_date"`
	Guests          int    `json:"guests"`
	TotalAmount     string `json:"total_amount"`
	Status          string `json:"status"`
	BookingType     string `json:"booking_type"`
	CreatedBy       string `json:"created_by"`
	PaymentMethod   string `json:"payment_method"`
	IDVerified      bool   `json:"id_verified"`
	SpecialRequests string `json:"special_requests"`
}

func (m Media) OfflineBooking(b *models.OfflineBooking) OfflineBookingView {
	return OfflineBookingView{
		ID:              b.ID,
		GuestName:       b.GuestName,
		Email:           b.Email,
		Phone:           b.Phone,
		RoomType:        b.RoomType,
		CheckIn:         models.FormatDate(b.CheckIn),
		CheckOut:        models.FormatDate(b.CheckOut),
		BookingDate:     models.FormatDate(b.BookingDate),
		Guests:          b.Guests,
		TotalAmount:     money(b.TotalAmount),
		Status:          b.Status,
		BookingType:     b.BookingType,
		CreatedBy:       b.CreatedBy,
		PaymentMethod:   b.PaymentMethod,
		IDVerified:      b.IDVerified,
		SpecialRequests: b.SpecialRequests,
	}
}

type BookingRequestView struct {
	ID               uint    `json:"id"`
	GuestName        string  `json:"guest_name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	RoomType         string  `json:"room_type"`
	CheckIn          string  `json:"check_in"`
	CheckOut         string  `json:"check_out"`
	RequestDate      string  `json:"request_date"`
	Guests           int     `json:"guests"`
	EstimatedAmount  string  `json:"estimated_amount"`
	Status           string  `json:"status"`
	Priority         string  `json:"priority"`
	Source           string  `json:"source"`
	ResponseDeadline *string `json:"response_deadline"`
	SpecialRequests  string  `json:"special_requests"`
	GuestNotes       string  `json:"guest_notes"`
	AdminNotes       string  `json:"admin_notes"`
	AssignedTo       string  `json:"assigned_to"`
}

func (m Media) BookingRequest(b *models.BookingRequest) BookingRequestView {
	return BookingRequestView{
		ID:               b.ID,
		GuestName:        b.GuestName,
		Email:            b.Email,
		Phone:            b.Phone,
		RoomType:         b.RoomType,
		CheckIn:          models.FormatDate(b.CheckIn),
		CheckOut:         models.FormatDate(b.CheckOut),
		RequestDate:      models.FormatDate(b.RequestDate),
		Guests:           b.Guests,
		EstimatedAmount:  money(b.EstimatedAmount),
		Status:           b.Status,
		Priority:         b.Priority,
		Source:           b.Source,
		ResponseDeadline: models.FormatOptionalDate(b.ResponseDeadline),
		SpecialRequests:  b.SpecialRequests,
		GuestNotes:       b.GuestNotes,
		AdminNotes:       b.AdminNotes,
		AssignedTo:       b.AssignedTo,
	}
}

type UserProfileView struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	JoinDate  string  `json:"join_date"`
	LastLogin *string `json:"last_login"`
	Status    string  `json:"status"`
	Bookings  int     `json:"bookings"`
	Avatar    *string `json:"avatar"`
}

func (m Media) UserProfile(u *models.UserProfile) UserProfileView {
	return UserProfileView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		JoinDate:  models.FormatDate(u.JoinDate),
		LastLogin: models.FormatOptionalDate(u.LastLogin),
		Status:    u.Status,
		Bookings:  u.Bookings,
		Avatar:    m.OptURL(u.Avatar),
	}
}

type TestimonialView struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Role    string  `json:"role"`
	Rating  int     `json:"rating"`
	Comment string  `json:"comment"`
	Date    string  `json:"date"`
	Avatar  *string `json:"avatar"`
}

func (m Media) Testimonial(t *models.Testimonial) TestimonialView {
	return TestimonialView{
		ID:      t.ID,
		Name:    t.Name,
		Role:    t.Role,
		Rating:  t.Rating,
		Comment: t.Comment,
		Date:    models.FormatDate(t.Date),
		Avatar:  m.OptURL(t.Avatar),
	}
}

type VideoItemView struct {
	ID         uint    `json:"id"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	UploadDate string  `json:"upload_date"`
	Duration   string  `json:"duration"`
	Status     string  `json:"status"`
	File       *string `json:"file"`
	Thumbnail  *string `json:"thumbnail"`
}

func (m Media) VideoItem(v *models.VideoItem) VideoItemView {
	return VideoItemView{
		ID:         v.ID,
		Title:      v.Title,
		Category:   v.Category,
		UploadDate: models.FormatDate(v.UploadDate),
		Duration:   v.Duration,
		Status:     v.Status,
		File:       m.URL(v.File),
		Thumbnail:  m.OptURL(v.Thumbnail),
	}
}

type MediaItemView struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	MediaType  string    `json:"media_type"`
	Image      *string   `json:"image"`
	Video      *string   `json:"video"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func (m Media) MediaItem(item *models.MediaItem) MediaItemView {
	return MediaItemView{
		ID:         item.ID,
		Title:      item.Title,
		MediaType:  item.MediaType,
		Image:      m.OptURL(item.Image),
		Video:      m.OptURL(item.Video),
		UploadedAt: item.UploadedAt.UTC(),
	}
}
