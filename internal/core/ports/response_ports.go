package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/koyomi-app/koyomi/internal/core/domain"
)

type ResponseRepository interface {
	Upsert(ctx context.Context, grid *domain.ResponseGrid) error
	GetByPoll(ctx context.Context, pollID uuid.UUID) (map[string]domain.GridCells, error)
	Delete(ctx context.Context, pollID uuid.UUID, respondent string) error
	DeleteByPoll(ctx context.Context, pollID uuid.UUID) error
}

type SubmitResponseInput struct {
	PollID     uuid.UUID
	Respondent string
	Cells      domain.GridCells
}

// ResponseSnapshot is what subscribers receive on every change: the full
// current response set for one poll, never a delta.
type ResponseSnapshot map[string]domain.GridCells

type ResponseService interface {
	Submit(ctx context.Context, input SubmitResponseInput) (*domain.ResponseGrid, error)
	Delete(ctx context.Context, pollID uuid.UUID, respondent string) error
	Snapshot(ctx context.Context, pollID uuid.UUID) (ResponseSnapshot, error)
	Aggregate(ctx context.Context, pollID uuid.UUID) ([]domain.SlotSummary, error)
	BlankGrid(ctx context.Context, pollID uuid.UUID) (domain.GridCells, error)
	Subscribe(pollID uuid.UUID, fn func(ResponseSnapshot)) (cancel func())
}
