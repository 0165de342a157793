package storage

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/google/uuid"

	"lumarise-backend/config"
)

// Logical prefixes for every kind of stored upload.
const (
	PrefixRoomMain        = "rooms"
	PrefixRoomGallery     = "rooms/gallery"
	PrefixAvatars         = "avatars"
	PrefixTestimonials    = "testimonials"
	PrefixVideos          = "videos"
	PrefixVideoThumbnails = "thumbnails"
	PrefixGallery         = "gallery"
)

// Backend saves bytes under a generated unique name and resolves the
// returned reference to a public URL.
type Backend interface {
	Save(ctx context.Context, prefix, filename string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
	URL(origin, ref string) string
}

// New builds the configured backend.
func New(ctx context.Context, cfg config.StorageConfig, media config.MediaConfig) (Backend, error) {
	switch cfg.Backend {
	case "", config.StorageLocal:
		return NewLocal(media.Root, media.URLPrefix)
	case config.StorageS3:
		return NewS3(ctx, cfg.S3)
	case config.StorageCloudinary:
		return NewCloudinary(cfg.Cloudinary)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9]+`)
	nonExtRun = regexp.MustCompile(`[^a-z0-9.]`)
)

const maxSlugLen = 50

// ObjectKey returns "<prefix>/<uuid>-<slug><ext>" for an uploaded filename.
func ObjectKey(prefix, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(base))
	ext = nonExtRun.ReplaceAllString(ext, "")
	if len(ext) > 10 {
		ext = ""
	}

	name := uuid.NewString()
	if slug := slugify(strings.TrimSuffix(base, filepath.Ext(base))); slug != "" {
		name += "-" + slug
	}
	return path.Join(strings.Trim(prefix, "/"), name+ext)
}

func slugify(value string) string {
	value = strings.ToLower(unidecode.Unidecode(value))
	value = strings.Trim(nonSlug.ReplaceAllString(value, "-"), "-")
	if len(value) > maxSlugLen {
		value = strings.TrimRight(value[:maxSlugLen], "-")
	}
	return value
}

// ContentType guesses from the extension first, then sniffs the bytes.
func ContentType(filename string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
