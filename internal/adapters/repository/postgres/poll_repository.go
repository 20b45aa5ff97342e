package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/koyomi-app/koyomi/internal/core/domain"
	"github.com/koyomi-app/koyomi/internal/core/ports"
)

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

func (r *pollRepository) Save(ctx context.Context, poll *domain.SchedulePoll) error {
	query := `
		INSERT INTO schedule_polls (id, title, owner_name, owner_id, start_date, end_date, deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		poll.ID, poll.Title, poll.OwnerName, poll.OwnerID, poll.StartDate, poll.EndDate, poll.Deadline,
	)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}
	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SchedulePoll, error) {
	query := `
		SELECT id, title, owner_name, owner_id, start_date, end_date, deadline, created_at
		FROM schedule_polls
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)
	poll, err := scanPoll(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	return poll, nil
}

func (r *pollRepository) GetAll(ctx context.Context) ([]*domain.SchedulePoll, error) {
	query := `
		SELECT id, title, owner_name, owner_id, start_date, end_date, deadline, created_at
		FROM schedule_polls
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all polls: %w", err)
	}
	defer rows.Close()

	return scanPolls(rows)
}

func (r *pollRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.SchedulePoll, error) {
	query := `
		SELECT id, title, owner_name, owner_id, start_date, end_date, deadline, created_at
		FROM schedule_polls
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls by owner: %w", err)
	}
	defer rows.Close()

	return scanPolls(rows)
}

func (r *pollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM schedule_polls WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoll(row rowScanner) (*domain.SchedulePoll, error) {
	var (
		poll       domain.SchedulePoll
		start, end time.Time
	)
	err := row.Scan(
		&poll.ID, &poll.Title, &poll.OwnerName, &poll.OwnerID,
		&start, &end, &poll.Deadline, &poll.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	poll.StartDate = start.Format(domain.DateLayout)
	poll.EndDate = end.Format(domain.DateLayout)
	return &poll, nil
}

func scanPolls(rows *sql.Rows) ([]*domain.SchedulePoll, error) {
	var polls []*domain.SchedulePoll
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}
	return polls, nil
}
