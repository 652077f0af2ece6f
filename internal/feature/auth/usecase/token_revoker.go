package usecase

import (
	"context"
	"time"
)

// TokenRevoker remembers logged-out token ids until the tokens would have expired.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider.
type TokenRevoker interface {
	// Revoke marks tokenID as revoked until expiresAt.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether tokenID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
