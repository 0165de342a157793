// services/tx.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"lumarise-backend/logger"
	"lumarise-backend/metrics"
	"lumarise-backend/storage"
)

// Transactor runs a unit of work in one DB transaction. Objects saved to
// storage through the staged backend it hands out are deleted again when
// the transaction does not commit.
type Transactor struct {
	DB      *gorm.DB
	Storage storage.Backend
	log     *logger.Logger
	metrics *metrics.Degradation
}

func NewTransactor(db *gorm.DB, backend storage.Backend, logg *logger.Logger, m *metrics.Degradation) *Transactor {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Transactor{DB: db, Storage: backend, log: logg, metrics: m}
}

// WithTx begins a transaction, rolls back on error or panic, commits otherwise.
func (t *Transactor) WithTx(ctx context.Context, fn func(tx *gorm.DB, store storage.Backend) error) (err error) {
	staged := &stagedBackend{Backend: t.Storage}

	tx := t.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			t.compensate(ctx, staged)
			panic(r)
		}
	}()

	if err := fn(tx, staged); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			t.log.Error(ctx, "tx.rollback_failed", rbErr)
		}
		t.compensate(ctx, staged)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		t.compensate(ctx, staged)
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// compensate removes objects written by a transaction that did not commit.
// Failures are logged and counted, the caller's error is returned unchanged.
func (t *Transactor) compensate(ctx context.Context, staged *stagedBackend) {
	if len(staged.saved) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	var errs error
	for _, ref := range staged.saved {
		errs = multierr.Append(errs, staged.Backend.Delete(ctx, ref))
	}
	t.metrics.IncCompensation(errs == nil)
	if errs != nil {
		ctx = t.log.WithFields(ctx, map[string]any{
			"objects": len(staged.saved),
			"failed":  len(multierr.Errors(errs)),
		})
		t.log.Error(ctx, "storage.compensation_failed", errs)
		return
	}
	t.log.Info(t.log.WithField(ctx, "objects", len(staged.saved)), "storage.compensated")
}

// stagedBackend records every reference it saves.
type stagedBackend struct {
	storage.Backend
	saved []string
}

func (s *stagedBackend) Save(ctx context.Context, prefix, filename string, data []byte) (string, error) {
	ref, err := s.Backend.Save(ctx, prefix, filename, data)
	if err != nil {
		return "", err
	}
	s.saved = append(s.saved, ref)
	return ref, nil
}

// ---------------------------
// Driver error helpers
// ---------------------------

// isDuplicateKey reports a unique constraint violation on any supported dialect.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
