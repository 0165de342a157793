package presenter

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumarise-backend/models"
	"lumarise-backend/storage"
)

func localBackend(t *testing.T) *storage.Local {
	t.Helper()
	local, err := storage.NewLocal(t.TempDir(), "/media/")
	require.NoError(t, err)
	return local
}

func sampleRoom() *models.Room {
	title := "Ocean View"
	main := "rooms/abc-front.webp"
	return &models.Room{
		ID:          5,
		Title:       &title,
		Size:        "32 m2",
		Price:       decimal.RequireFromString("199.9"),
		Description: "Balcony",
		MainImage:   &main,
		Images: []models.RoomImage{
			{ID: 11, RoomID: 5, Image: "rooms/gallery/a.webp"},
			{ID: 12, RoomID: 5, Image: "rooms/gallery/b.webp"},
		},
	}
}

func TestRoomURLsFollowTheOrigin(t *testing.T) {
	backend := localBackend(t)
	room := sampleRoom()

	a := NewMedia("https://hotel.example/", backend).Room(room)
	b := NewMedia("http://10.0.0.7:8080", backend).Room(room)

	require.NotNil(t, a.MainImage)
	require.NotNil(t, b.MainImage)
	assert.NotEqual(t, *a.MainImage, *b.MainImage)
	assert.Equal(t, "https://hotel.example/media/rooms/abc-front.webp", *a.MainImage)
	assert.Equal(t, "http://10.0.0.7:8080/media/rooms/abc-front.webp", *b.MainImage)

	require.Len(t, a.Images, 2)
	for i := range a.Images {
		assert.True(t, strings.HasPrefix(*a.Images[i].Image, "https://hotel.example/media/"))
		assert.True(t, strings.HasPrefix(*b.Images[i].Image, "http://10.0.0.7:8080/media/"))
		assert.Equal(t,
			strings.TrimPrefix(*a.Images[i].Image, "https://hotel.example"),
			strings.TrimPrefix(*b.Images[i].Image, "http://10.0.0.7:8080"))
	}
}

func TestRoomViewWireFields(t *testing.T) {
	room := sampleRoom()
	room.MainImage = nil
	room.Images = nil

	raw, err := json.Marshal(NewMedia("https://hotel.example", localBackend(t)).Room(room))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.ElementsMatch(t,
		[]string{"id", "images", "main_image", "title", "size", "guests", "bed", "view", "price", "desc"},
		keys(got))
	assert.Nil(t, got["main_image"])
	assert.Equal(t, []any{}, got["images"])
	assert.Equal(t, "199.90", got["price"])
	assert.Equal(t, "Balcony", got["desc"])
}

func TestAbsoluteReferencesPassThrough(t *testing.T) {
	m := NewMedia("https://hotel.example", localBackend(t))
	ref := "https://res.cloudinary.com/demo/image/upload/v1/lumarise/avatars/a.webp"
	assert.Equal(t, ref, *m.URL(ref))
	assert.Nil(t, m.URL(""))
	assert.Nil(t, m.OptURL(nil))
}

func TestBookingViewDates(t *testing.T) {
	b := models.NewBooking()
	in, _ := models.ParseDate("2026-05-01")
	out, _ := models.ParseDate("2026-05-04")
	b.CheckIn, b.CheckOut = in, out
	b.SyncFields()
	b.TotalAmount = decimal.NewFromInt(300)

	view := NewMedia("", localBackend(t)).Booking(b)
	assert.Equal(t, "2026-05-01", view.CheckIn)
	assert.Equal(t, "2026-05-04", *view.Checkout)
	assert.Equal(t, 3, view.Days)
	assert.Equal(t, "300.00", view.TotalAmount)
	assert.Nil(t, view.Room)
}

func TestPageLinks(t *testing.T) {
	m := NewMedia("https://hotel.example", localBackend(t))
	u, err := url.Parse("/api/rooms/?search=sea&page=2")
	require.NoError(t, err)

	next, prev := m.PageLinks(u, 2, true, true)
	require.NotNil(t, next)
	require.NotNil(t, prev)
	assert.Equal(t, "https://hotel.example/api/rooms/?page=3&search=sea", *next)
	assert.Equal(t, "https://hotel.example/api/rooms/?search=sea", *prev)

	next, prev = m.PageLinks(u, 1, false, false)
	assert.Nil(t, next)
	assert.Nil(t, prev)
}

func TestRender(t *testing.T) {
	items := []models.Testimonial{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Ben"}}
	views := Render(items, NewMedia("", localBackend(t)).Testimonial)
	require.Len(t, views, 2)
	assert.Equal(t, "Ben", views[1].Name)
	assert.Nil(t, views[0].Avatar)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
