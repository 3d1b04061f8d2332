package auth

import (
	"context"
	"time"
)

// RevokedTokenRepository remembers logged out access tokens until they
// expire on their own.
type RevokedTokenRepository interface {
	Revoke(ctx context.Context, token string, expiresAt int64) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	// PurgeExpired deletes entries whose token expired before now and returns
	// how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
