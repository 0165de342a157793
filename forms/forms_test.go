package forms

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumarise-backend/apperrors"
	"lumarise-backend/models"
)

func TestFromJSONFlattensScalars(t *testing.T) {
	vals, err := FromJSON([]byte(`{"title":"Sea","price":199.9,"id_verified":true,"deleted_images":[1,2],"room":null}`))
	require.NoError(t, err)

	title, ok := vals.Get("title")
	assert.True(t, ok)
	assert.Equal(t, "Sea", title)

	price, _ := vals.Get("price")
	assert.Equal(t, "199.9", price)

	verified, _ := vals.Get("id_verified")
	assert.Equal(t, "true", verified)

	deleted, _ := vals.Get("deleted_images")
	assert.Equal(t, "[1,2]", deleted)

	room, present := vals["room"]
	assert.True(t, present)
	assert.Nil(t, room)
}

func TestFromJSONRejectsNonObject(t *testing.T) {
	_, err := FromJSON([]byte(`[1,2]`))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestFromJSONEmptyBody(t *testing.T) {
	vals, err := FromJSON([]byte("  "))
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestFromFormKeepsFirstValue(t *testing.T) {
	vals := FromForm(url.Values{"size": {"30 m2", "ignored"}, "empty": {}})
	size, _ := vals.Get("size")
	assert.Equal(t, "30 m2", size)
	_, ok := vals["empty"]
	assert.False(t, ok)
}

func TestRoomSchemaBindsPartialPatch(t *testing.T) {
	patch, err := Room.Bind(Values{
		"price": strPtr("120.50"),
		"desc":  strPtr("  Quiet room  "),
		"other": strPtr("ignored"),
	}, true)
	require.NoError(t, err)

	room := models.Room{Size: "20 m2"}
	patch.Apply(&room)

	assert.True(t, decimal.RequireFromString("120.5").Equal(room.Price))
	assert.Equal(t, "Quiet room", room.Description)
	assert.Equal(t, "20 m2", room.Size)
}

func TestSchemaCollectsAllFieldErrors(t *testing.T) {
	_, err := Room.Bind(Values{
		"price": strPtr("12.345"),
		"size":  nil,
		"title": strPtr(string(make([]byte, 201))),
	}, false)
	require.Error(t, err)

	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code())

	details, ok := appErr.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details["price"], "2 decimal places")
	assert.Contains(t, details["size"], "may not be null")
	assert.Contains(t, details["title"], "200 characters")
}

func TestRequiredFieldsOnlyOnFullWrites(t *testing.T) {
	_, err := UserProfile.Bind(Values{"name": strPtr("Ana")}, false)
	require.Error(t, err)
	details := apperrors.As(err).Details().(map[string]string)
	assert.Equal(t, "This field is required.", details["email"])

	_, err = UserProfile.Bind(Values{"name": strPtr("Ana")}, true)
	require.NoError(t, err)
}

func TestNullableTextClearsOnEmpty(t *testing.T) {
	room := models.Room{Title: strPtr("Old")}
	patch, err := Room.Bind(Values{"title": strPtr("")}, true)
	require.NoError(t, err)
	patch.Apply(&room)
	assert.Nil(t, room.Title)
}

func TestBookingFields(t *testing.T) {
	patch, err := Booking.Bind(Values{
		"email":    strPtr("guest@lumarise.example"),
		"room":     strPtr("7"),
		"checkin":  strPtr("2026-03-01"),
		"status":   strPtr("Checked-in"),
		"guests":   strPtr("3"),
		"check_in": strPtr("2026-02-28T10:00:00Z"),
	}, true)
	require.NoError(t, err)

	b := models.NewBooking()
	patch.Apply(b)
	require.NotNil(t, b.RoomID)
	assert.Equal(t, uint(7), *b.RoomID)
	assert.Equal(t, "2026-03-01", models.FormatDate(*b.Checkin))
	assert.Equal(t, "2026-02-28", models.FormatDate(b.CheckIn))
	assert.Equal(t, 3, b.Guests)
	assert.Equal(t, "Checked-in", b.Status)
}

func TestBookingFieldErrors(t *testing.T) {
	_, err := Booking.Bind(Values{
		"email":   strPtr("not-an-email"),
		"status":  strPtr("Lost"),
		"guests":  strPtr("-1"),
		"room":    strPtr("abc"),
		"checkin": strPtr("01/03/2026"),
	}, true)
	require.Error(t, err)

	details := apperrors.As(err).Details().(map[string]string)
	assert.Len(t, details, 5)
	assert.Contains(t, details["status"], "not a valid choice")
	assert.Contains(t, details["guests"], "greater than or equal to 0")
	assert.Contains(t, details["checkin"], "YYYY-MM-DD")
}

func TestBoolAcceptsFormValues(t *testing.T) {
	for raw, want := range map[string]bool{"on": true, "True": true, "0": false, "": false} {
		patch, err := OfflineBooking.Bind(Values{"id_verified": strPtr(raw)}, true)
		require.NoError(t, err, raw)
		b := models.NewOfflineBooking()
		patch.Apply(b)
		assert.Equal(t, want, b.IDVerified, raw)
	}

	_, err := OfflineBooking.Bind(Values{"id_verified": strPtr("maybe")}, true)
	require.Error(t, err)
}

func TestMoneyRejectsOverflow(t *testing.T) {
	_, err := Room.Bind(Values{"price": strPtr("100000000")}, true)
	require.Error(t, err)

	_, err = Room.Bind(Values{"price": strPtr("99999999.99")}, true)
	require.NoError(t, err)
}

func TestSchemaNames(t *testing.T) {
	assert.Equal(t, []string{"title", "size", "guests", "bed", "view", "price", "desc"}, Room.Names())
}

func strPtr(s string) *string { return &s }
