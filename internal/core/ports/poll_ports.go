package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/koyomi-app/koyomi/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.SchedulePoll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SchedulePoll, error)
	GetAll(ctx context.Context) ([]*domain.SchedulePoll, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.SchedulePoll, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatePollInput struct {
	Title     string
	OwnerName string
	OwnerID   uuid.UUID
	StartDate string
	EndDate   string
	Deadline  time.Time
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.SchedulePoll, error)
	GetPoll(ctx context.Context, id string) (*domain.SchedulePoll, error)
	ListPolls(ctx context.Context) ([]*domain.SchedulePoll, error)
	ListOwnPolls(ctx context.Context, ownerID uuid.UUID) ([]*domain.SchedulePoll, error)
}
