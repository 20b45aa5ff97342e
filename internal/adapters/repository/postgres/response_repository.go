package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/koyomi-app/koyomi/internal/core/domain"
	"github.com/koyomi-app/koyomi/internal/core/ports"
)

type responseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) ports.ResponseRepository {
	return &responseRepository{
		db: db,
	}
}

// Upsert stores a respondent's full grid, replacing any prior submission
// under the same (poll, respondent) key.
func (r *responseRepository) Upsert(ctx context.Context, grid *domain.ResponseGrid) error {
	cells, err := json.Marshal(grid.Cells)
	if err != nil {
		return fmt.Errorf("failed to encode grid cells: %w", err)
	}

	query := `
		INSERT INTO poll_responses (poll_id, respondent, cells, submitted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (poll_id, respondent) DO UPDATE
		SET cells = EXCLUDED.cells,
		    submitted_at = EXCLUDED.submitted_at
	`
	if _, err := r.db.ExecContext(ctx, query, grid.PollID, grid.Respondent, cells, grid.SubmittedAt); err != nil {
		return fmt.Errorf("failed to upsert response: %w", err)
	}
	return nil
}

func (r *responseRepository) GetByPoll(ctx context.Context, pollID uuid.UUID) (map[string]domain.GridCells, error) {
	query := `
		SELECT respondent, cells
		FROM poll_responses
		WHERE poll_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}
	defer rows.Close()

	responses := make(map[string]domain.GridCells)
	for rows.Next() {
		var (
			respondent string
			raw        []byte
		)
		if err := rows.Scan(&respondent, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}

		var cells domain.GridCells
		if err := json.Unmarshal(raw, &cells); err != nil {
			return nil, fmt.Errorf("failed to decode grid cells for %q: %w", respondent, err)
		}
		responses[respondent] = cells
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responses: %w", err)
	}
	return responses, nil
}

func (r *responseRepository) Delete(ctx context.Context, pollID uuid.UUID, respondent string) error {
	query := `DELETE FROM poll_responses WHERE poll_id = $1 AND respondent = $2`
	result, err := r.db.ExecContext(ctx, query, pollID, respondent)
	if err != nil {
		return fmt.Errorf("failed to delete response: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrResponseNotFound
	}
	return nil
}

func (r *responseRepository) DeleteByPoll(ctx context.Context, pollID uuid.UUID) error {
	query := `DELETE FROM poll_responses WHERE poll_id = $1`
	if _, err := r.db.ExecContext(ctx, query, pollID); err != nil {
		return fmt.Errorf("failed to delete poll responses: %w", err)
	}
	return nil
}
