package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lumarise-backend/config"
	"lumarise-backend/metrics"
	"lumarise-backend/storage"
)

// counterValue sums every series of the named counter family.
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	total := 0.0
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDatabase(config.DialectSQLite, ":memory:?_pragma=foreign_keys(1)", config.DBConfig{}, nil)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

var errInjected = errors.New("injected storage failure")

// memStorage keeps objects in memory. failOn makes the n-th Save (1-based)
// fail; zero never fails.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	saves   int
	failOn  int
	deleted []string
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) Save(_ context.Context, prefix, filename string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.failOn > 0 && m.saves == m.failOn {
		return "", errInjected
	}
	ref := storage.ObjectKey(prefix, filename)
	m.objects[ref] = append([]byte(nil), data...)
	return ref, nil
}

func (m *memStorage) Delete(_ context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, ref)
	m.deleted = append(m.deleted, ref)
	return nil
}

func (m *memStorage) URL(origin, ref string) string {
	return fmt.Sprintf("%s/media/%s", origin, ref)
}

func (m *memStorage) has(ref string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[ref]
	return ok
}

func (m *memStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type roomFixture struct {
	db      *gorm.DB
	store   *memStorage
	reg     *prometheus.Registry
	rooms   *RoomService
	gallery *GalleryService
	writer  *RoomWriteService
}

func newRoomFixture(t *testing.T) *roomFixture {
	t.Helper()
	db := newTestDB(t)
	store := newMemStorage()
	reg := prometheus.NewRegistry()
	m := metrics.NewDegradation(reg)

	rooms := NewRoomService(db)
	gallery := NewGalleryService()
	images := NewImageService(ImageOptions{MaxWidth: 64, Quality: 40}, nil, m)
	tx := NewTransactor(db, store, nil, m)

	return &roomFixture{
		db:      db,
		store:   store,
		reg:     reg,
		rooms:   rooms,
		gallery: gallery,
		writer:  NewRoomWriteService(tx, rooms, gallery, images, nil, m),
	}
}
