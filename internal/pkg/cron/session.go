package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
)

// SessionJobs keeps the access token revocation list small.
type SessionJobs struct {
	revokedTokens auth.RevokedTokenRepository
	now           func() time.Time
}

func NewSessionJobs(revokedTokens auth.RevokedTokenRepository) *SessionJobs {
	return &SessionJobs{revokedTokens: revokedTokens, now: time.Now}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_revoked_tokens", time.Hour, j.PurgeRevokedTokens)
}

// PurgeRevokedTokens drops revocations of tokens that have expired anyway.
func (j *SessionJobs) PurgeRevokedTokens(ctx context.Context) error {
	n, err := j.revokedTokens.PurgeExpired(ctx, j.now())
	if err != nil {
		return fmt.Errorf("failed to purge revoked tokens: %w", err)
	}
	if n > 0 {
		slog.Info("purged revoked tokens", "count", n)
	}
	return nil
}
