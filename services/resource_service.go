// services/resource_service.go
package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lumarise-backend/apperrors"
	"lumarise-backend/forms"
	"lumarise-backend/logger"
	"lumarise-backend/storage"
)

// FileField is one uploadable column of a resource.
type FileField[T any] struct {
	Name     string
	Prefix   string
	Image    bool // normalize before storing
	Required bool // on create
	Set      func(*T, string)
}

// Resource describes a flat CRUD entity.
type Resource[T any] struct {
	Name   string
	Label  string
	Schema forms.Schema[T]
	Files  []FileField[T]
	List   ListSpec
	New    func() *T

	// Check runs inside the write transaction before the row is saved.
	Check func(ctx context.Context, tx *gorm.DB, item *T) error
}

// ResourceWrite is a validated create or update.
type ResourceWrite[T any] struct {
	Fields forms.Patch[T]
	Files  map[string]Upload
}

type ResourceService[T any] struct {
	Def    *Resource[T]
	tx     *Transactor
	images *ImageService
	log    *logger.Logger
}

func NewResourceService[T any](def *Resource[T], tx *Transactor, images *ImageService, logg *logger.Logger) *ResourceService[T] {
	if logg == nil {
		logg = logger.Nop()
	}
	return &ResourceService[T]{Def: def, tx: tx, images: images, log: logg}
}

func (s *ResourceService[T]) List(ctx context.Context, q ListQuery) (*Page[T], error) {
	return ListPage[T](ctx, s.tx.DB, s.Def.List, q)
}

func (s *ResourceService[T]) Get(ctx context.Context, id uint) (*T, error) {
	return s.find(ctx, s.tx.DB, id)
}

func (s *ResourceService[T]) find(ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	item := new(T)
	if err := db.WithContext(ctx).First(item, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound(s.Def.Label)
		}
		return nil, fmt.Errorf("load %s %d: %w", s.Def.Label, id, err)
	}
	return item, nil
}

func (s *ResourceService[T]) Create(ctx context.Context, w ResourceWrite[T]) (*T, error) {
	if err := s.requireFiles(w.Files); err != nil {
		return nil, err
	}

	item := s.Def.New()
	w.Fields.Apply(item)

	err := s.tx.WithTx(ctx, func(tx *gorm.DB, store storage.Backend) error {
		if err := s.storeFiles(ctx, store, item, w.Files); err != nil {
			return err
		}
		if s.Def.Check != nil {
			if err := s.Def.Check(ctx, tx, item); err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
			return s.writeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies a patch to an existing row. Whether the patch is partial
// was decided when it was bound.
func (s *ResourceService[T]) Update(ctx context.Context, id uint, w ResourceWrite[T]) (*T, error) {
	var out *T
	err := s.tx.WithTx(ctx, func(tx *gorm.DB, store storage.Backend) error {
		item, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}
		w.Fields.Apply(item)
		if err := s.storeFiles(ctx, store, item, w.Files); err != nil {
			return err
		}
		if s.Def.Check != nil {
			if err := s.Def.Check(ctx, tx, item); err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Save(item).Error; err != nil {
			return s.writeError(err)
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the row. Stored files are left in place.
func (s *ResourceService[T]) Delete(ctx context.Context, id uint) error {
	res := s.tx.DB.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return fmt.Errorf("delete %s %d: %w", s.Def.Label, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(s.Def.Label)
	}
	return nil
}

func (s *ResourceService[T]) requireFiles(files map[string]Upload) error {
	details := map[string]string{}
	for _, f := range s.Def.Files {
		if _, ok := files[f.Name]; f.Required && !ok {
			details[f.Name] = "No file was submitted."
		}
	}
	if len(details) > 0 {
		return apperrors.New(apperrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func (s *ResourceService[T]) storeFiles(ctx context.Context, store storage.Backend, item *T, files map[string]Upload) error {
	for _, f := range s.Def.Files {
		upload, ok := files[f.Name]
		if !ok {
			continue
		}
		if f.Image {
			upload = s.images.Normalize(ctx, upload)
		}
		ref, err := store.Save(ctx, f.Prefix, upload.Filename, upload.Data)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeDependency, err, "Failed to store "+f.Name)
		}
		f.Set(item, ref)
	}
	return nil
}

func (s *ResourceService[T]) writeError(err error) error {
	if isDuplicateKey(err) {
		return apperrors.Wrap(apperrors.CodeConflict, err, s.Def.Label+" already exists").
			WithDetails(map[string]string{"detail": "A record with the same unique value already exists."})
	}
	return fmt.Errorf("save %s: %w", s.Def.Label, err)
}
