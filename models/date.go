package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format for every date-only column.
const DateLayout = "2006-01-02"

func Today() datatypes.Date {
	return DateOf(time.Now())
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate accepts YYYY-MM-DD and full RFC 3339 timestamps (the date part wins).
func ParseDate(raw string) (datatypes.Date, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return DateOf(t), nil
	}
	return datatypes.Date{}, fmt.Errorf("date has wrong format, use YYYY-MM-DD")
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// FormatOptionalDate renders nil as nil so views emit JSON null.
func FormatOptionalDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := FormatDate(*d)
	return &s
}

// DaysBetween counts whole calendar days from start to end.
func DaysBetween(start, end datatypes.Date) int {
	return int(time.Time(end).Sub(time.Time(start)).Hours() / 24)
}
