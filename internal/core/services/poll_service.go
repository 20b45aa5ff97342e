package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/koyomi-app/koyomi/internal/core/domain"
	"github.com/koyomi-app/koyomi/internal/core/ports"
)

type pollService struct {
	repo ports.PollRepository
}

func NewPollService(repo ports.PollRepository) ports.PollService {
	return &pollService{
		repo: repo,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.SchedulePoll, error) {
	if input.Title == "" {
		return nil, errors.New("title is required")
	}
	if input.OwnerName == "" {
		return nil, errors.New("owner name is required")
	}

	// Validating the range up front means every later coordinate
	// enumeration for this poll is infallible.
	if _, err := domain.GenerateCoordinates(input.StartDate, input.EndDate, domain.DefaultDayPartition()); err != nil {
		return nil, err
	}

	poll := &domain.SchedulePoll{
		ID:        uuid.New(),
		Title:     input.Title,
		OwnerName: input.OwnerName,
		OwnerID:   input.OwnerID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Deadline:  input.Deadline,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, err
	}

	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.SchedulePoll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	return s.repo.GetByID(ctx, pollID)
}

func (s *pollService) ListPolls(ctx context.Context) ([]*domain.SchedulePoll, error) {
	return s.repo.GetAll(ctx)
}

func (s *pollService) ListOwnPolls(ctx context.Context, ownerID uuid.UUID) ([]*domain.SchedulePoll, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
