// Package services implements the user, document and role operations:
// authorize, validate, call the store under a deadline, shape the payload.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"go-dms-backend/apperr"
	"go-dms-backend/config"
	"go-dms-backend/pagination"
)

// base carries what every service needs.
type base struct {
	db      *gorm.DB
	timeout time.Duration
	log     logrus.FieldLogger
}

func newBase(db *gorm.DB, cfg *config.Config, log logrus.FieldLogger) base {
	timeout := cfg.StoreTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return base{db: db, timeout: timeout, log: log}
}

// store returns a session bound to ctx with the store deadline applied.
func (b base) store(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	return b.db.WithContext(ctx), cancel
}

// storeError classifies a store failure. notFound is returned for missing
// rows, conflict for unique violations; anything else is Internal or Timeout.
func (b base) storeError(op string, err error, notFound, conflict string) error {
	var appErr *apperr.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != "":
		return apperr.NotFound(notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey) && conflict != "":
		return apperr.Conflict(conflict)
	case errors.Is(err, context.DeadlineExceeded):
		b.log.WithError(err).WithField("op", op).Warn("store call timed out")
		return apperr.Timeout(err)
	default:
		b.log.WithError(err).WithField("op", op).Error("store call failed")
		return apperr.Internal(err)
	}
}

// Page is a slice of results with its pagination metadata.
type Page[T any] struct {
	Pagination pagination.Result
	Items      []T
}

func newPage[T any](params pagination.Params, count int64, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Pagination: pagination.Paginate(params.Limit, params.Offset, int(count)),
		Items:      items,
	}
}

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE ?.
func likePattern(q string) string {
	return "%" + escapeLike(lower(q)) + "%"
}
