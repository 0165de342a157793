package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"lumarise-backend/config"
)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Cloudinary uploads to a Cloudinary folder. References are the secure
// delivery URLs Cloudinary returns.
type Cloudinary struct {
	api    cloudinaryAPI
	folder string
}

func NewCloudinary(cfg config.CloudinaryConfig) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &Cloudinary{api: &cld.Upload, folder: strings.Trim(cfg.Folder, "/")}, nil
}

func (c *Cloudinary) Save(ctx context.Context, prefix, filename string, data []byte) (string, error) {
	key := ObjectKey(path.Join(c.folder, prefix), filename)
	publicID := strings.TrimSuffix(key, path.Ext(key))

	resp, err := c.api.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload %s: %s", publicID, resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (c *Cloudinary) Delete(ctx context.Context, ref string) error {
	resourceType, publicID, ok := parseDeliveryURL(ref)
	if !ok {
		return fmt.Errorf("cloudinary delete: unrecognised reference %q", ref)
	}
	resp, err := c.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, resp.Error.Message)
	}
	return nil
}

func (c *Cloudinary) URL(_ string, ref string) string {
	return ref
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// parseDeliveryURL splits https://res.cloudinary.com/<cloud>/<type>/upload/v123/<public id>.<ext>.
func parseDeliveryURL(ref string) (string, string, bool) {
	idx := strings.Index(ref, "/upload/")
	if idx < 0 {
		return "", "", false
	}
	head := ref[:idx]
	resourceType := head[strings.LastIndex(head, "/")+1:]

	parts := strings.Split(ref[idx+len("/upload/"):], "/")
	if len(parts) > 1 && versionSegment.MatchString(parts[0]) {
		parts = parts[1:]
	}
	publicID := strings.Join(parts, "/")
	publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	if publicID == "" || resourceType == "" {
		return "", "", false
	}
	return resourceType, publicID, true
}
