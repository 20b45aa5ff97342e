package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/koyomi-app/koyomi/internal/core/domain"
)

type CategoryRepository interface {
	Save(ctx context.Context, category *domain.Category) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type CreateCategoryInput struct {
	OwnerID uuid.UUID
	Label   string
	Color   string
}

type CategoryService interface {
	Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
