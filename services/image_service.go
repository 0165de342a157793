package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"
	_ "golang.org/x/image/webp"

	"lumarise-backend/logger"
	"lumarise-backend/metrics"
)

const (
	DefaultImageMaxWidth = 1600
	DefaultImageQuality  = 40
	// DefaultImageMaxPixels matches Pillow's decompression bomb threshold.
	DefaultImageMaxPixels = 89_478_485
)

// Upload is one file received from a client, fully read into memory.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ImageOptions struct {
	MaxWidth  int
	Quality   int
	MaxPixels int
}

// ImageService re-encodes uploaded photos to size-capped, metadata-free WebP.
type ImageService struct {
	opts    ImageOptions
	log     *logger.Logger
	metrics *metrics.Degradation
}

func NewImageService(opts ImageOptions, logg *logger.Logger, m *metrics.Degradation) *ImageService {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefaultImageMaxWidth
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultImageQuality
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = DefaultImageMaxPixels
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &ImageService{opts: opts, log: logg, metrics: m}
}

// Normalize never fails: when the upload cannot be decoded or encoded it is
// returned untouched so the write that carries it can still go through.
func (s *ImageService) Normalize(ctx context.Context, in Upload) Upload {
	// Headers are checked before decoding; a few hundred bytes can claim
	// dimensions that need gigabytes of pixels.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(in.Data))
	if err != nil {
		return s.fallback(ctx, in, "decode", err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > int64(s.opts.MaxPixels) {
		return s.fallback(ctx, in, "too_large", fmt.Errorf("image is %dx%d, over %d pixels", cfg.Width, cfg.Height, s.opts.MaxPixels))
	}

	img, err := imaging.Decode(bytes.NewReader(in.Data), imaging.AutoOrientation(true))
	if err != nil {
		return s.fallback(ctx, in, "decode", err)
	}

	img = flatten(img)
	if img.Bounds().Dx() > s.opts.MaxWidth {
		img = imaging.Resize(img, s.opts.MaxWidth, 0, imaging.Lanczos)
	}
	img = stripMetadata(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, webp.Options{Quality: s.opts.Quality}); err != nil {
		return s.fallback(ctx, in, "encode", err)
	}

	return Upload{
		Filename:    webpName(in.Filename),
		ContentType: "image/webp",
		Data:        buf.Bytes(),
	}
}

func (s *ImageService) fallback(ctx context.Context, in Upload, reason string, err error) Upload {
	s.metrics.IncNormalizeFallback(reason)
	ctx = s.log.WithFields(ctx, map[string]any{
		"filename": in.Filename,
		"bytes":    len(in.Data),
		"stage":    reason,
	})
	s.log.Warn(ctx, "image.normalize.fallback", err)
	return in
}

// flatten drops alpha and palette modes onto an opaque white canvas.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}

// stripMetadata copies pixel data only into a fresh canvas.
func stripMetadata(img image.Image) image.Image {
	return imaging.Clone(img)
}

func webpName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		base = "image"
	}
	return base + ".webp"
}
