package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"lumarise-backend/apperrors"
	"lumarise-backend/logger"
	"lumarise-backend/metrics"
	"lumarise-backend/models"
	"lumarise-backend/storage"
)

// RoomWrite is one create or update request after input validation.
type RoomWrite struct {
	Fields    RoomFields
	MainImage *Upload
	Gallery   []Upload

	// DeletedImages is the raw deleted_images value; nil when absent.
	DeletedImages *string
}

// RoomWriteService creates and updates a room together with its images in
// one transaction.
type RoomWriteService struct {
	tx      *Transactor
	rooms   *RoomService
	gallery *GalleryService
	images  *ImageService
	log     *logger.Logger
	metrics *metrics.Degradation
}

func NewRoomWriteService(tx *Transactor, rooms *RoomService, gallery *GalleryService, images *ImageService, logg *logger.Logger, m *metrics.Degradation) *RoomWriteService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &RoomWriteService{tx: tx, rooms: rooms, gallery: gallery, images: images, log: logg, metrics: m}
}

func (s *RoomWriteService) Create(ctx context.Context, w RoomWrite) (*models.Room, error) {
	var out *models.Room
	err := s.tx.WithTx(ctx, func(tx *gorm.DB, store storage.Backend) error {
		room, err := s.rooms.Create(ctx, tx, w.Fields)
		if err != nil {
			return err
		}
		if err := s.stageImages(ctx, tx, store, room, w); err != nil {
			return err
		}
		out, err = s.rooms.load(ctx, tx, room.ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(s.log.WithFields(ctx, map[string]any{
		"room_id": out.ID,
		"images":  len(out.Images),
	}), "room.created")
	return out, nil
}

func (s *RoomWriteService) Update(ctx context.Context, id uint, w RoomWrite) (*models.Room, error) {
	var out *models.Room
	err := s.tx.WithTx(ctx, func(tx *gorm.DB, store storage.Backend) error {
		room, err := s.rooms.load(ctx, tx, id, true)
		if err != nil {
			return err
		}

		if ids, ok := s.deletedImageIDs(ctx, room.ID, w.DeletedImages); ok && len(ids) > 0 {
			removed, err := s.gallery.DeleteByIDs(ctx, tx, room.ID, ids)
			if err != nil {
				return err
			}
			s.log.Debug(s.log.WithFields(ctx, map[string]any{
				"room_id":   room.ID,
				"requested": len(ids),
				"removed":   removed,
			}), "room.gallery.deleted")
		}

		if err := s.rooms.Update(ctx, tx, room, w.Fields); err != nil {
			return err
		}
		if err := s.stageImages(ctx, tx, store, room, w); err != nil {
			return err
		}
		out, err = s.rooms.load(ctx, tx, room.ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(s.log.WithFields(ctx, map[string]any{
		"room_id": out.ID,
		"images":  len(out.Images),
	}), "room.updated")
	return out, nil
}

// stageImages stores the new main image and gallery files, then applies the
// fallback: a room with gallery images but no main image takes the first
// gallery image's reference.
func (s *RoomWriteService) stageImages(ctx context.Context, tx *gorm.DB, store storage.Backend, room *models.Room, w RoomWrite) error {
	if w.MainImage != nil {
		file := s.images.Normalize(ctx, *w.MainImage)
		ref, err := store.Save(ctx, storage.PrefixRoomMain, file.Filename, file.Data)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeDependency, err, "Failed to store main image")
		}
		if err := s.rooms.SetMainImage(ctx, tx, room, ref); err != nil {
			return err
		}
	}

	for _, upload := range w.Gallery {
		file := s.images.Normalize(ctx, upload)
		if _, err := s.gallery.Add(ctx, tx, store, room.ID, file); err != nil {
			return apperrors.Wrap(apperrors.CodeDependency, err, "Failed to store gallery image")
		}
	}

	if room.HasMainImage() {
		return nil
	}
	first, err := s.gallery.First(ctx, tx, room.ID)
	if err != nil {
		return err
	}
	if first == nil {
		return nil
	}
	return s.rooms.SetMainImage(ctx, tx, room, first.Image)
}

// deletedImageIDs parses deleted_images. A malformed value is logged and
// counted, and the update goes on without deleting anything.
func (s *RoomWriteService) deletedImageIDs(ctx context.Context, roomID uint, raw *string) ([]uint, bool) {
	if raw == nil {
		return nil, false
	}
	ids, err := parseIDList(*raw)
	if err != nil {
		s.metrics.IncMalformedDeletes()
		ctx = s.log.WithFields(ctx, map[string]any{
			"room_id": roomID,
			"value":   truncate(*raw, 200),
		})
		s.log.Warn(ctx, "room.deleted_images.malformed", err)
		return nil, false
	}
	return ids, true
}

// imageID is a gallery id sent either as a JSON number or as a numeric
// string ("12").
type imageID uint

func (id *imageID) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid image id %s", b)
	}
	*id = imageID(n)
	return nil
}

// parseIDList accepts a JSON array of ids or a single id. Blank means none.
func parseIDList(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var parsed []imageID
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return nil, fmt.Errorf("deleted_images must be a JSON array of ids: %w", err)
		}
	} else {
		var id imageID
		if err := json.Unmarshal([]byte(raw), &id); err != nil {
			return nil, fmt.Errorf("deleted_images must be a JSON array of ids: %w", err)
		}
		parsed = []imageID{id}
	}

	ids := make([]uint, len(parsed))
	for i, id := range parsed {
		ids[i] = uint(id)
	}
	return ids, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
