package scoped

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// OwnerColumn is the column every scoped table uses to record its owner.
const OwnerColumn = "user_id"

const defaultOrder = "id ASC"

// Option configures a GormStore.
type Option func(*storeOptions)

type storeOptions struct {
	order string
}

// WithOrder sets the ORDER BY clause used by List.
func WithOrder(order string) Option {
	return func(o *storeOptions) { o.order = order }
}

// GormStore is the GORM implementation of Store shared by all entity types.
// Every statement it issues carries a user_id predicate.
type GormStore[M any, C Creator[M], P Patcher] struct {
	db    *gorm.DB
	order string
}

// NewGormStore creates a GormStore over the table of M.
func NewGormStore[M any, C Creator[M], P Patcher](db *gorm.DB, opts ...Option) *GormStore[M, C, P] {
	o := storeOptions{order: defaultOrder}
	for _, opt := range opts {
		opt(&o)
	}
	return &GormStore[M, C, P]{db: db, order: o.order}
}

// DB exposes the underlying handle to stores that extend GormStore.
func (s *GormStore[M, C, P]) DB() *gorm.DB {
	return s.db
}

// List returns every record owned by ownerID in the configured order.
func (s *GormStore[M, C, P]) List(ctx context.Context, ownerID uint) ([]M, error) {
	rows := []M{}
	if err := s.db.WithContext(ctx).
		Where(OwnerColumn+" = ?", ownerID).
		Order(s.order).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create validates payload and inserts the record it describes with ownerID as owner.
func (s *GormStore[M, C, P]) Create(ctx context.Context, ownerID uint, payload C) (M, error) {
	var zero M
	if err := Validate(payload); err != nil {
		return zero, err
	}

	row := payload.NewRecord(ownerID)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return zero, err
	}
	return row, nil
}

// Update validates patch and applies it to the record at id owned by ownerID.
// The returned record is re-read after the write.
func (s *GormStore[M, C, P]) Update(ctx context.Context, id, ownerID uint, patch P) (M, error) {
	var zero M
	if err := Validate(patch); err != nil {
		return zero, err
	}

	var out M
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.findOwned(tx, id, ownerID, &out); err != nil {
			return err
		}

		changes := patch.Changes()
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(new(M)).
			Where("id = ? AND "+OwnerColumn+" = ?", id, ownerID).
			Updates(changes).Error; err != nil {
			return err
		}

		var fresh M
		if err := s.findOwned(tx, id, ownerID, &fresh); err != nil {
			return err
		}
		out = fresh
		return nil
	})
	if err != nil {
		return zero, err
	}
	return out, nil
}

// Delete removes the record at id when ownerID owns it. Zero affected rows is not an error.
func (s *GormStore[M, C, P]) Delete(ctx context.Context, id, ownerID uint) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND "+OwnerColumn+" = ?", id, ownerID).
		Delete(new(M)).Error
}

func (s *GormStore[M, C, P]) findOwned(tx *gorm.DB, id, ownerID uint, dst *M) error {
	err := tx.Where("id = ? AND "+OwnerColumn+" = ?", id, ownerID).First(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
