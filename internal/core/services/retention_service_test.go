package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koyomi-app/koyomi/internal/core/domain"
	"github.com/koyomi-app/koyomi/internal/core/ports"
)

func TestSweepExpiredPurgesPastGracePeriod(t *testing.T) {
	pollRepo := newFakePollRepo()
	responseRepo := newFakeResponseRepo()
	responseSvc := NewResponseService(pollRepo, responseRepo)
	retentionSvc := NewRetentionService(pollRepo, responseRepo)
	ctx := context.Background()

	old := seedPoll(t, pollRepo, "2024-12-25", "2025-01-01")
	fresh := seedPoll(t, pollRepo, "2025-02-19", "2025-02-20")

	for _, poll := range []*domain.SchedulePoll{old, fresh} {
		coords, err := poll.Coordinates()
		require.NoError(t, err)
		_, err = responseSvc.Submit(ctx, ports.SubmitResponseInput{
			PollID: poll.ID, Respondent: "alice", Cells: domain.DefaultGrid(coords, nil),
		})
		require.NoError(t, err)
	}

	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.Local)
	purged, err := retentionSvc.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	_, err = pollRepo.GetByID(ctx, old.ID)
	assert.ErrorIs(t, err, domain.ErrPollNotFound)

	// The purge cascades to the stored responses.
	responses, err := responseRepo.GetByPoll(ctx, old.ID)
	require.NoError(t, err)
	assert.Empty(t, responses)

	kept, err := pollRepo.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, kept.ID)
}

func TestSweepExpiredWithinGracePeriod(t *testing.T) {
	pollRepo := newFakePollRepo()
	retentionSvc := NewRetentionService(pollRepo, newFakeResponseRepo())
	ctx := context.Background()

	poll := seedPoll(t, pollRepo, "2024-12-25", "2025-01-01")

	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)
	purged, err := retentionSvc.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, purged)

	_, err = pollRepo.GetByID(ctx, poll.ID)
	require.NoError(t, err)
}

func TestSweepExpiredIdempotent(t *testing.T) {
	pollRepo := newFakePollRepo()
	retentionSvc := NewRetentionService(pollRepo, newFakeResponseRepo())
	ctx := context.Background()

	seedPoll(t, pollRepo, "2024-12-25", "2025-01-01")

	now := time.Date(2025, 3, 2, 0, 0, 0, 0, time.Local)

	purged, err := retentionSvc.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	// Re-sweeping after everything is gone is a no-op, not an error.
	purged, err = retentionSvc.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, purged)
}
