package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lumarise-backend/apperrors"
	"lumarise-backend/forms"
	"lumarise-backend/models"
)

// RoomFields is a validated scalar patch for a room.
type RoomFields = forms.Patch[models.Room]

var RoomList = ListSpec{
	Search:   []string{"title", "price"},
	Ordering: []string{"price", "id"},
	Default:  "-id",
}

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func withGallery(db *gorm.DB) *gorm.DB {
	return db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

// Create inserts a room with defaults and the given scalar fields.
func (s *RoomService) Create(ctx context.Context, tx *gorm.DB, fields RoomFields) (*models.Room, error) {
	room := &models.Room{}
	fields.Apply(room)
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(room).Error; err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

// Update writes the provided scalar fields only.
func (s *RoomService) Update(ctx context.Context, tx *gorm.DB, room *models.Room, fields RoomFields) error {
	if len(fields) == 0 {
		return nil
	}
	fields.Apply(room)
	err := tx.WithContext(ctx).Model(room).Select(
		"title", "size", "guests", "bed", "view", "price", "description", "updated_at",
	).Updates(room).Error
	if err != nil {
		return fmt.Errorf("update room %d: %w", room.ID, err)
	}
	return nil
}

// SetMainImage replaces the main image reference unconditionally.
func (s *RoomService) SetMainImage(ctx context.Context, tx *gorm.DB, room *models.Room, ref string) error {
	if err := tx.WithContext(ctx).Model(room).Update("main_image", ref).Error; err != nil {
		return fmt.Errorf("set main image of room %d: %w", room.ID, err)
	}
	room.MainImage = &ref
	return nil
}

// Get loads a room with its gallery.
func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	return s.load(ctx, s.DB, id, false)
}

// load reads a room on db, optionally taking a row lock for the rest of
// the transaction.
func (s *RoomService) load(ctx context.Context, db *gorm.DB, id uint, lock bool) (*models.Room, error) {
	q := withGallery(db.WithContext(ctx))
	if lock && db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var room models.Room
	if err := q.First(&room, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("room")
		}
		return nil, fmt.Errorf("load room %d: %w", id, err)
	}
	return &room, nil
}

func (s *RoomService) List(ctx context.Context, q ListQuery) (*Page[models.Room], error) {
	return ListPage[models.Room](ctx, s.DB, RoomList, q, withGallery)
}

// Delete removes the room and its gallery rows and detaches bookings.
// Stored objects are left in place.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Room{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("find room %d: %w", id, err)
		}
		if count == 0 {
			return apperrors.NotFound("room")
		}
		detach := tx.Session(&gorm.Session{SkipHooks: true}).Model(&models.Booking{})
		if err := detach.Where("room_id = ?", id).Update("room_id", nil).Error; err != nil {
			return fmt.Errorf("detach bookings from room %d: %w", id, err)
		}
		if err := tx.Where("room_id = ?", id).Delete(&models.RoomImage{}).Error; err != nil {
			return fmt.Errorf("delete gallery of room %d: %w", id, err)
		}
		if err := tx.Delete(&models.Room{}, id).Error; err != nil {
			return fmt.Errorf("delete room %d: %w", id, err)
		}
		return nil
	})
}
