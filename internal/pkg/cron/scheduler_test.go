package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	var calls int32
	s.AddJob("ok", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	s.AddJob("broken", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: boom")
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
	// Stopping twice is a no-op.
	s.Stop()
}

func TestSessionJobs_PurgeRevokedTokens(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewStore()
	repo := store.RevokedTokenRepository()
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Revoke(ctx, "expired", now.Add(-time.Minute).Unix()))
	require.NoError(t, repo.Revoke(ctx, "live", now.Add(time.Hour).Unix()))

	jobs := NewSessionJobs(repo)
	jobs.now = func() time.Time { return now }
	s := NewScheduler()
	jobs.RegisterJobs(s)
	require.Len(t, s.Jobs(), 1)

	require.NoError(t, s.RunOnce(ctx))

	expired, err := repo.IsRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, expired)
	live, err := repo.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, live)
}
