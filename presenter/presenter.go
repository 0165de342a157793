package presenter

import (
	"strings"

	"github.com/shopspring/decimal"

	"lumarise-backend/storage"
)

// Media resolves stored references to absolute URLs for one request.
type Media struct {
	Origin  string
	Backend storage.Backend
}

func NewMedia(origin string, backend storage.Backend) Media {
	return Media{Origin: strings.TrimRight(origin, "/"), Backend: backend}
}

// URL returns nil for an empty reference so the field renders as null.
func (m Media) URL(ref string) *string {
	if ref == "" {
		return nil
	}
	if isAbsolute(ref) {
		return &ref
	}
	u := m.Backend.URL(m.Origin, ref)
	return &u
}

func (m Media) OptURL(ref *string) *string {
	if ref == nil {
		return nil
	}
	return m.URL(*ref)
}

func isAbsolute(ref string) bool {
	return strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://")
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
