package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/koyomi-app/koyomi/internal/core/domain"
)

type fakePollRepo struct {
	mu    sync.Mutex
	polls map[uuid.UUID]*domain.SchedulePoll
}

func newFakePollRepo() *fakePollRepo {
	return &fakePollRepo{polls: make(map[uuid.UUID]*domain.SchedulePoll)}
}

func (r *fakePollRepo) Save(_ context.Context, poll *domain.SchedulePoll) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.polls[poll.ID] = poll
	return nil
}

func (r *fakePollRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.SchedulePoll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	poll, ok := r.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return poll, nil
}

func (r *fakePollRepo) GetAll(_ context.Context) ([]*domain.SchedulePoll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	polls := make([]*domain.SchedulePoll, 0, len(r.polls))
	for _, poll := range r.polls {
		polls = append(polls, poll)
	}
	return polls, nil
}

func (r *fakePollRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*domain.SchedulePoll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var polls []*domain.SchedulePoll
	for _, poll := range r.polls {
		if poll.OwnerID == ownerID {
			polls = append(polls, poll)
		}
	}
	return polls, nil
}

func (r *fakePollRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.polls, id)
	return nil
}

type fakeResponseRepo struct {
	mu    sync.Mutex
	grids map[uuid.UUID]map[string]domain.GridCells
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{grids: make(map[uuid.UUID]map[string]domain.GridCells)}
}

func (r *fakeResponseRepo) Upsert(_ context.Context, grid *domain.ResponseGrid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.grids[grid.PollID] == nil {
		r.grids[grid.PollID] = make(map[string]domain.GridCells)
	}
	r.grids[grid.PollID][grid.Respondent] = grid.Cells
	return nil
}

func (r *fakeResponseRepo) GetByPoll(_ context.Context, pollID uuid.UUID) (map[string]domain.GridCells, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]domain.GridCells, len(r.grids[pollID]))
	for name, cells := range r.grids[pollID] {
		out[name] = cells
	}
	return out, nil
}

func (r *fakeResponseRepo) Delete(_ context.Context, pollID uuid.UUID, respondent string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.grids[pollID][respondent]; !ok {
		return domain.ErrResponseNotFound
	}
	delete(r.grids[pollID], respondent)
	return nil
}

func (r *fakeResponseRepo) DeleteByPoll(_ context.Context, pollID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.grids, pollID)
	return nil
}
