// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "prep_tracker/internal/feature/auth/adapters"
	"prep_tracker/internal/feature/auth/usecase"
	"prep_tracker/internal/platform/revocation"
)

// NewTokenRevoker creates the TokenRevoker used by logout.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the revoked_tokens table.
func NewTokenRevoker(rdb *redis.Client, db *gorm.DB) usecase.TokenRevoker {
	if rdb != nil {
		return revocation.NewRevocationRedis(rdb, "revoked")
	}
	return authadapters.NewRevokedTokenGorm(db)
}

type expiredDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// RunRevocationSweeper purges expired rows from the SQL revocation list every interval
// until ctx is done. Redis expires its keys itself, so for that backend it returns at once.
func RunRevocationSweeper(ctx context.Context, revoker usecase.TokenRevoker, interval time.Duration) {
	d, ok := revoker.(expiredDeleter)
	if !ok || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := d.DeleteExpired(ctx)
			if err != nil {
				slog.Warn("revocation sweep failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("revocation sweep", "deleted", n)
			}
		}
	}
}
