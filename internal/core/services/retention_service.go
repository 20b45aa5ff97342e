package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/koyomi-app/koyomi/internal/core/domain"
	"github.com/koyomi-app/koyomi/internal/core/ports"
)

type retentionService struct {
	pollRepo     ports.PollRepository
	responseRepo ports.ResponseRepository
}

func NewRetentionService(pollRepo ports.PollRepository, responseRepo ports.ResponseRepository) ports.RetentionService {
	return &retentionService{
		pollRepo:     pollRepo,
		responseRepo: responseRepo,
	}
}

// SweepExpired purges every poll whose grace period has lapsed, cascading
// removal of its stored responses. Re-sweeping an already-purged poll is a
// no-op, so the job can run on any schedule.
func (s *retentionService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	polls, err := s.pollRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch all polls: %w", err)
	}

	var expired []uuid.UUID
	for _, poll := range polls {
		if poll.Expired(now) {
			expired = append(expired, poll.ID)
		}
	}

	var wg sync.WaitGroup
	var purged atomic.Int64
	errChan := make(chan error, len(expired))

	for _, id := range expired {
		wg.Add(1)
		go func(pollID uuid.UUID) {
			defer wg.Done()
			if err := s.purge(ctx, pollID); err != nil {
				errChan <- fmt.Errorf("failed to purge poll %s: %w", pollID, err)
				return
			}
			purged.Add(1)
		}(id)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return int(purged.Load()), err
		}
	}

	return int(purged.Load()), nil
}

func (s *retentionService) purge(ctx context.Context, pollID uuid.UUID) error {
	if err := s.responseRepo.DeleteByPoll(ctx, pollID); err != nil {
		return err
	}
	if err := s.pollRepo.Delete(ctx, pollID); err != nil && !errors.Is(err, domain.ErrPollNotFound) {
		return err
	}
	return nil
}
