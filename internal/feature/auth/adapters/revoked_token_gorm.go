package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prep_tracker/internal/feature/auth/usecase"
)

// RevokedTokenModel is the GORM model for the revoked_tokens table.
type RevokedTokenModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (RevokedTokenModel) TableName() string {
	return "revoked_tokens"
}

// revokedTokenGorm is the SQL fallback for the TokenRevoker when Redis is not configured.
type revokedTokenGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.TokenRevoker = (*revokedTokenGorm)(nil)

// NewRevokedTokenGorm creates a new instance of revokedTokenGorm.
func NewRevokedTokenGorm(db *gorm.DB) *revokedTokenGorm {
	return &revokedTokenGorm{db: db, now: time.Now}
}

// Revoke records tokenID until expiresAt. Revoking the same id twice is a no-op.
func (r *revokedTokenGorm) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if !expiresAt.After(r.now()) {
		return nil
	}
	model := &RevokedTokenModel{ID: tokenID, ExpiresAt: expiresAt, CreatedAt: r.now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(model).Error
}

// IsRevoked reports whether tokenID is recorded and not yet past its expiry.
func (r *revokedTokenGorm) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RevokedTokenModel{}).
		Where("id = ? AND expires_at > ?", tokenID, r.now()).
		Count(&count).Error
	return count > 0, err
}

// DeleteExpired removes entries whose tokens have expired and returns how many were removed.
func (r *revokedTokenGorm) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", r.now()).
		Delete(&RevokedTokenModel{})
	return result.RowsAffected, result.Error
}
