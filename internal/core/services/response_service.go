package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/koyomi-app/koyomi/internal/core/domain"
	"github.com/koyomi-app/koyomi/internal/core/ports"
)

type responseService struct {
	pollRepo     ports.PollRepository
	responseRepo ports.ResponseRepository

	mu          sync.Mutex
	nextSubID   int
	subscribers map[uuid.UUID]map[int]func(ports.ResponseSnapshot)
}

func NewResponseService(pollRepo ports.PollRepository, responseRepo ports.ResponseRepository) ports.ResponseService {
	return &responseService{
		pollRepo:     pollRepo,
		responseRepo: responseRepo,
		subscribers:  make(map[uuid.UUID]map[int]func(ports.ResponseSnapshot)),
	}
}

func (s *responseService) Submit(ctx context.Context, input ports.SubmitResponseInput) (*domain.ResponseGrid, error) {
	if input.Respondent == "" {
		return nil, domain.ErrEmptyRespondent
	}

	poll, err := s.pollRepo.GetByID(ctx, input.PollID)
	if err != nil {
		return nil, err
	}

	coords, err := poll.Coordinates()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate poll coordinates: %w", err)
	}

	valid := make(map[domain.SlotCoordinate]struct{}, len(coords))
	for _, coord := range coords {
		valid[coord] = struct{}{}
	}
	for coord, value := range input.Cells {
		if _, ok := valid[coord]; !ok {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrUnknownCoordinate, coord.Date, coord.Label)
		}
		if !value.Valid() {
			return nil, fmt.Errorf("invalid availability %q at %s %s", value, coord.Date, coord.Label)
		}
	}

	grid := &domain.ResponseGrid{
		PollID:      input.PollID,
		Respondent:  input.Respondent,
		Cells:       input.Cells,
		SubmittedAt: time.Now(),
	}

	// Overwrite semantics: a second submission under the same name replaces
	// the first. Two people sharing one display name race last-write-wins.
	if err := s.responseRepo.Upsert(ctx, grid); err != nil {
		return nil, fmt.Errorf("failed to store response: %w", err)
	}

	s.notify(ctx, input.PollID)
	return grid, nil
}

func (s *responseService) Delete(ctx context.Context, pollID uuid.UUID, respondent string) error {
	if respondent == "" {
		return domain.ErrEmptyRespondent
	}

	if err := s.responseRepo.Delete(ctx, pollID, respondent); err != nil {
		return err
	}

	s.notify(ctx, pollID)
	return nil
}

func (s *responseService) Snapshot(ctx context.Context, pollID uuid.UUID) (ports.ResponseSnapshot, error) {
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}
	return s.responseRepo.GetByPoll(ctx, pollID)
}

// Aggregate recomputes the consensus view from the full stored response set.
// Nothing is cached, so the view can never drift from the stored grids.
func (s *responseService) Aggregate(ctx context.Context, pollID uuid.UUID) ([]domain.SlotSummary, error) {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	coords, err := poll.Coordinates()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate poll coordinates: %w", err)
	}

	responses, err := s.responseRepo.GetByPoll(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	return domain.Aggregate(responses, coords), nil
}

func (s *responseService) BlankGrid(ctx context.Context, pollID uuid.UUID) (domain.GridCells, error) {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	coords, err := poll.Coordinates()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate poll coordinates: %w", err)
	}

	return domain.DefaultGrid(coords, domain.DefaultNightLabels()), nil
}

// Subscribe registers fn to receive the full current response set after every
// successful submit or delete on the poll. The returned cancel func removes
// the subscription.
func (s *responseService) Subscribe(pollID uuid.UUID, fn func(ports.ResponseSnapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++

	if s.subscribers[pollID] == nil {
		s.subscribers[pollID] = make(map[int]func(ports.ResponseSnapshot))
	}
	s.subscribers[pollID][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers[pollID], id)
		if len(s.subscribers[pollID]) == 0 {
			delete(s.subscribers, pollID)
		}
	}
}

func (s *responseService) notify(ctx context.Context, pollID uuid.UUID) {
	s.mu.Lock()
	fns := make([]func(ports.ResponseSnapshot), 0, len(s.subscribers[pollID]))
	for _, fn := range s.subscribers[pollID] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	if len(fns) == 0 {
		return
	}

	snapshot, err := s.responseRepo.GetByPoll(ctx, pollID)
	if err != nil {
		// Subscribers keep their last snapshot; the next change retries.
		return
	}

	for _, fn := range fns {
		fn(snapshot)
	}
}
