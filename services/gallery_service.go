package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lumarise-backend/models"
	"lumarise-backend/storage"
)

// GalleryService manages the image rows of one room. Every method takes the
// handle to run on so callers can pass their open transaction.
type GalleryService struct{}

func NewGalleryService() *GalleryService {
	return &GalleryService{}
}

// Add stores the file under the gallery prefix and appends a row.
func (s *GalleryService) Add(ctx context.Context, tx *gorm.DB, store storage.Backend, roomID uint, file Upload) (*models.RoomImage, error) {
	ref, err := store.Save(ctx, storage.PrefixRoomGallery, file.Filename, file.Data)
	if err != nil {
		return nil, fmt.Errorf("store gallery image %q: %w", file.Filename, err)
	}

	img := &models.RoomImage{RoomID: roomID, Image: ref}
	if err := tx.WithContext(ctx).Create(img).Error; err != nil {
		return nil, fmt.Errorf("insert gallery image: %w", err)
	}
	return img, nil
}

// DeleteByIDs removes the listed images that belong to roomID. Ids of other
// rooms or unknown ids are ignored.
func (s *GalleryService) DeleteByIDs(ctx context.Context, tx *gorm.DB, roomID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := tx.WithContext(ctx).
		Where("room_id = ? AND id IN ?", roomID, ids).
		Delete(&models.RoomImage{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete gallery images: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// List returns the gallery in insertion order.
func (s *GalleryService) List(ctx context.Context, db *gorm.DB, roomID uint) ([]models.RoomImage, error) {
	var images []models.RoomImage
	if err := db.WithContext(ctx).Where("room_id = ?", roomID).Order("id ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	return images, nil
}

// First returns the oldest gallery image, or nil when the gallery is empty.
func (s *GalleryService) First(ctx context.Context, db *gorm.DB, roomID uint) (*models.RoomImage, error) {
	var images []models.RoomImage
	if err := db.WithContext(ctx).Where("room_id = ?", roomID).Order("id ASC").Limit(1).Find(&images).Error; err != nil {
		return nil, fmt.Errorf("first gallery image: %w", err)
	}
	if len(images) == 0 {
		return nil, nil
	}
	return &images[0], nil
}
