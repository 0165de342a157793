package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local writes uploads under a directory served by the API itself.
type Local struct {
	root      string
	urlPrefix string
}

func NewLocal(root, urlPrefix string) (*Local, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("local storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	prefix := "/" + strings.Trim(urlPrefix, "/") + "/"
	if prefix == "//" {
		prefix = "/"
	}
	return &Local{root: root, urlPrefix: prefix}, nil
}

// Root is the directory static file serving should expose.
func (l *Local) Root() string { return l.root }

// URLPrefix is the path the root is served under, with both slashes.
func (l *Local) URLPrefix() string { return l.urlPrefix }

func (l *Local) Save(ctx context.Context, prefix, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := ObjectKey(prefix, filename)
	full := l.path(key)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", filepath.Dir(full), err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	return key, nil
}

func (l *Local) Delete(_ context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	if err := os.Remove(l.path(ref)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", ref, err)
	}
	return nil
}

func (l *Local) URL(origin, ref string) string {
	return strings.TrimRight(origin, "/") + l.urlPrefix + strings.TrimLeft(ref, "/")
}

func (l *Local) path(ref string) string {
	clean := filepath.Clean("/" + filepath.FromSlash(ref))
	return filepath.Join(l.root, clean)
}
