package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/koyomi-app/koyomi/internal/core/domain"
	"github.com/koyomi-app/koyomi/internal/core/ports"
)

type categoryService struct {
	repo ports.CategoryRepository
}

func NewCategoryService(repo ports.CategoryRepository) ports.CategoryService {
	return &categoryService{
		repo: repo,
	}
}

func (s *categoryService) Create(ctx context.Context, input ports.CreateCategoryInput) (*domain.Category, error) {
	if input.Label == "" {
		return nil, errors.New("label is required")
	}
	if input.Color == "" {
		return nil, errors.New("color is required")
	}

	category := &domain.Category{
		ID:        uuid.New(),
		OwnerID:   input.OwnerID,
		Label:     input.Label,
		Color:     input.Color,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	return category, nil
}

// List returns the owner's stored categories, or the built-in defaults when
// none are stored yet.
func (s *categoryService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error) {
	categories, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if len(categories) == 0 {
		return domain.DefaultCategories(ownerID), nil
	}
	return categories, nil
}

func (s *categoryService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}
