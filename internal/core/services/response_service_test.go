package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koyomi-app/koyomi/internal/core/domain"
	"github.com/koyomi-app/koyomi/internal/core/ports"
)

func seedPoll(t *testing.T, repo *fakePollRepo, startDate, endDate string) *domain.SchedulePoll {
	t.Helper()
	poll := &domain.SchedulePoll{
		ID:        uuid.New(),
		Title:     "team offsite",
		OwnerName: "alice",
		OwnerID:   uuid.New(),
		StartDate: startDate,
		EndDate:   endDate,
		Deadline:  time.Now().Add(72 * time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Save(context.Background(), poll))
	return poll
}

func TestSubmitAndAggregate(t *testing.T) {
	pollRepo := newFakePollRepo()
	responseRepo := newFakeResponseRepo()
	svc := NewResponseService(pollRepo, responseRepo)
	ctx := context.Background()

	poll := seedPoll(t, pollRepo, "2025-12-01", "2025-12-02")
	coords, err := poll.Coordinates()
	require.NoError(t, err)

	slot := domain.SlotCoordinate{Date: "2025-12-01", Label: "10:00~"}

	for name, value := range map[string]domain.Availability{
		"alice": domain.Available,
		"bob":   domain.Maybe,
		"carol": domain.Available,
	} {
		cells := domain.DefaultGrid(coords, nil)
		cells[slot] = value
		_, err := svc.Submit(ctx, ports.SubmitResponseInput{
			PollID:     poll.ID,
			Respondent: name,
			Cells:      cells,
		})
		require.NoError(t, err)
	}

	summaries, err := svc.Aggregate(ctx, poll.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 24)

	for _, summary := range summaries {
		if summary.Coordinate != slot {
			continue
		}
		assert.Equal(t, domain.MergedMaybe, summary.Merged)
		assert.Equal(t, []domain.Contribution{
			{Respondent: "alice", Value: domain.Available},
			{Respondent: "bob", Value: domain.Maybe},
			{Respondent: "carol", Value: domain.Available},
		}, summary.Contributions)
	}
}

func TestSubmitOverwritesSameRespondent(t *testing.T) {
	pollRepo := newFakePollRepo()
	responseRepo := newFakeResponseRepo()
	svc := NewResponseService(pollRepo, responseRepo)
	ctx := context.Background()

	poll := seedPoll(t, pollRepo, "2025-12-01", "2025-12-01")
	coords, err := poll.Coordinates()
	require.NoError(t, err)

	first := domain.DefaultGrid(coords, nil)
	_, err = svc.Submit(ctx, ports.SubmitResponseInput{PollID: poll.ID, Respondent: "alice", Cells: first})
	require.NoError(t, err)

	second := domain.DefaultGrid(coords, domain.DefaultNightLabels())
	_, err = svc.Submit(ctx, ports.SubmitResponseInput{PollID: poll.ID, Respondent: "alice", Cells: second})
	require.NoError(t, err)

	snapshot, err := svc.Snapshot(ctx, poll.ID)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, second, snapshot["alice"])
}

func TestSubmitValidation(t *testing.T) {
	pollRepo := newFakePollRepo()
	svc := NewResponseService(pollRepo, newFakeResponseRepo())
	ctx := context.Background()

	poll := seedPoll(t, pollRepo, "2025-12-01", "2025-12-01")

	_, err := svc.Submit(ctx, ports.SubmitResponseInput{PollID: poll.ID, Respondent: ""})
	assert.ErrorIs(t, err, domain.ErrEmptyRespondent)

	_, err = svc.Submit(ctx, ports.SubmitResponseInput{PollID: uuid.New(), Respondent: "alice"})
	assert.ErrorIs(t, err, domain.ErrPollNotFound)

	outside := domain.GridCells{
		{Date: "2026-01-01", Label: "10:00~"}: domain.Available,
	}
	_, err = svc.Submit(ctx, ports.SubmitResponseInput{PollID: poll.ID, Respondent: "alice", Cells: outside})
	assert.ErrorIs(t, err, domain.ErrUnknownCoordinate)

	bogus := domain.GridCells{
		{Date: "2025-12-01", Label: "10:00~"}: domain.Availability("busy"),
	}
	_, err = svc.Submit(ctx, ports.SubmitResponseInput{PollID: poll.ID, Respondent: "alice", Cells: bogus})
	assert.Error(t, err)
}

func TestDeleteResponse(t *testing.T) {
	pollRepo := newFakePollRepo()
	responseRepo := newFakeResponseRepo()
	svc := NewResponseService(pollRepo, responseRepo)
	ctx := context.Background()

	poll := seedPoll(t, pollRepo, "2025-12-01", "2025-12-01")
	coords, err := poll.Coordinates()
	require.NoError(t, err)

	_, err = svc.Submit(ctx, ports.SubmitResponseInput{
		PollID: poll.ID, Respondent: "alice", Cells: domain.DefaultGrid(coords, nil),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, poll.ID, "alice"))

	snapshot, err := svc.Snapshot(ctx, poll.ID)
	require.NoError(t, err)
	assert.Empty(t, snapshot)

	assert.ErrorIs(t, svc.Delete(ctx, poll.ID, "alice"), domain.ErrResponseNotFound)
}

func TestBlankGrid(t *testing.T) {
	pollRepo := newFakePollRepo()
	svc := NewResponseService(pollRepo, newFakeResponseRepo())

	poll := seedPoll(t, pollRepo, "2025-12-01", "2025-12-01")

	cells, err := svc.BlankGrid(context.Background(), poll.ID)
	require.NoError(t, err)
	require.Len(t, cells, 12)

	var unavailable int
	for _, value := range cells {
		if value == domain.Unavailable {
			unavailable++
		}
	}
	assert.Equal(t, 5, unavailable)
}

func TestSubscribeReceivesFullSnapshots(t *testing.T) {
	pollRepo := newFakePollRepo()
	responseRepo := newFakeResponseRepo()
	svc := NewResponseService(pollRepo, responseRepo)
	ctx := context.Background()

	poll := seedPoll(t, pollRepo, "2025-12-01", "2025-12-01")
	coords, err := poll.Coordinates()
	require.NoError(t, err)

	var received []ports.ResponseSnapshot
	cancel := svc.Subscribe(poll.ID, func(snapshot ports.ResponseSnapshot) {
		received = append(received, snapshot)
	})

	_, err = svc.Submit(ctx, ports.SubmitResponseInput{
		PollID: poll.ID, Respondent: "alice", Cells: domain.DefaultGrid(coords, nil),
	})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, ports.SubmitResponseInput{
		PollID: poll.ID, Respondent: "bob", Cells: domain.DefaultGrid(coords, nil),
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, poll.ID, "alice"))

	require.Len(t, received, 3)
	assert.Len(t, received[0], 1)
	assert.Len(t, received[1], 2)
	require.Len(t, received[2], 1)
	assert.Contains(t, received[2], "bob")

	// After cancel, no further notifications.
	cancel()
	_, err = svc.Submit(ctx, ports.SubmitResponseInput{
		PollID: poll.ID, Respondent: "carol", Cells: domain.DefaultGrid(coords, nil),
	})
	require.NoError(t, err)
	assert.Len(t, received, 3)
}
