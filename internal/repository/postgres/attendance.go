package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/nattapongw/calendar-api/internal/model"
)

func (r *attendanceRepository) Upsert(ctx context.Context, att *model.Attendance) error {
	query := `
		INSERT INTO attendance (event_id, user_id, status, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, user_id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at
	`
	att.UpdatedAt = time.Now()

	if _, err := r.db.ExecContext(ctx, query,
		att.EventID,
		att.UserID,
		att.Status,
		att.UpdatedBy,
		att.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepository) ListForDateAndUser(ctx context.Context, date, userID string) ([]*model.AttendanceEntry, error) {
	query := `
		SELECT a.event_id, a.status,
			   e.date, e.time, e.type, e.location, e.uniform, e.details, e.notes
		FROM attendance a
		JOIN events e ON a.event_id = e.id
		WHERE e.date = $1 AND a.user_id = $2
		ORDER BY e.time
	`
	var entries []*model.AttendanceEntry
	if err := r.db.SelectContext(ctx, &entries, query, date, userID); err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return entries, nil
}
