package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nattapongw/calendar-api/internal/model"
)

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		INSERT INTO events (
			id, date, time, type, location, uniform, details, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Date,
		event.Time,
		event.Type,
		event.Location,
		event.Uniform,
		event.Details,
		event.Notes,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *eventRepository) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	query := `
		SELECT id, date, time, type, location, uniform, details, notes,
			   created_at, updated_at
		FROM events
		WHERE id = $1
	`
	var event model.Event
	err := r.db.GetContext(ctx, &event, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	query := `
		UPDATE events
		SET date = $1, time = $2, type = $3, location = $4, uniform = $5,
			details = $6, notes = $7, updated_at = $8
		WHERE id = $9
	`
	event.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		event.Date,
		event.Time,
		event.Type,
		event.Location,
		event.Uniform,
		event.Details,
		event.Notes,
		event.UpdatedAt,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("event not found")
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM events
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (r *eventRepository) List(ctx context.Context, limit int) ([]*model.Event, error) {
	query := `
		SELECT id, date, time, type, location, uniform, details, notes,
			   created_at, updated_at
		FROM events
		ORDER BY date, time
		LIMIT $1
	`
	var events []*model.Event
	if err := r.db.SelectContext(ctx, &events, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) ListForMonth(ctx context.Context, month string) ([]*model.Event, error) {
	query := `
		SELECT id, date, time, type, location, uniform, details, notes,
			   created_at, updated_at
		FROM events
		WHERE substr(date, 1, 7) = $1
		ORDER BY date, time
	`
	var events []*model.Event
	if err := r.db.SelectContext(ctx, &events, query, month); err != nil {
		return nil, fmt.Errorf("failed to list events for month: %w", err)
	}
	return events, nil
}

func (r *eventRepository) ListForDate(ctx context.Context, date string) ([]*model.Event, error) {
	query := `
		SELECT id, date, time, type, location, uniform, details, notes,
			   created_at, updated_at
		FROM events
		WHERE date = $1
		ORDER BY time
	`
	var events []*model.Event
	if err := r.db.SelectContext(ctx, &events, query, date); err != nil {
		return nil, fmt.Errorf("failed to list events for date: %w", err)
	}
	return events, nil
}

func (r *eventRepository) CountForDate(ctx context.Context, date string) (int, error) {
	query := `SELECT COUNT(1) FROM events WHERE date = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, date); err != nil {
		return 0, fmt.Errorf("failed to count events for date: %w", err)
	}
	return count, nil
}

func (r *eventRepository) ListForRange(ctx context.Context, from, to string) ([]*model.Event, error) {
	query := `
		SELECT id, date, time, type, location, uniform, details, notes,
			   created_at, updated_at
		FROM events
		WHERE date >= $1 AND date < $2
		ORDER BY date, time
	`
	var events []*model.Event
	if err := r.db.SelectContext(ctx, &events, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to list events for range: %w", err)
	}
	return events, nil
}
