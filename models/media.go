package models

import (
	"time"

	"gorm.io/datatypes"
)

type VideoItem struct {
	ID uint `gorm:"primaryKey"`

	Title      string         `gorm:"column:title;size:200;not null"`
	Category   string         `gorm:"column:category;size:100;not null"`
	UploadDate datatypes.Date `gorm:"column:upload_date;not null"`
	Duration   string         `gorm:"column:duration;size:10;not null"`
	Status     string         `gorm:"column:status;size:20;not null"`
	File       string         `gorm:"column:file;size:255;not null"`
	Thumbnail  *string        `gorm:"column:thumbnail;size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewVideoItem() *VideoItem {
	return &VideoItem{
		Title:      "Untitled Video",
		Category:   "General",
		UploadDate: Today(),
		Status:     "Draft",
	}
}

var MediaTypes = []string{"image", "video"}

// MediaItem is one entry of the public photo/video gallery.
type MediaItem struct {
	ID uint `gorm:"primaryKey"`

	Title      string    `gorm:"column:title;size:100;not null"`
	MediaType  string    `gorm:"column:media_type;size:10;not null"`
	Image      *string   `gorm:"column:image;size:255"`
	Video      *string   `gorm:"column:video;size:255"`
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime;index"`
}

func NewMediaItem() *MediaItem {
	return &MediaItem{MediaType: "image"}
}
