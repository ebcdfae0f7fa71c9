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

func (r *notificationRepository) HasSent(ctx context.Context, eventID uuid.UUID, kind, target string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM sent_notifications
			WHERE event_id = $1 AND kind = $2 AND target = $3
		)
	`
	var sent bool
	if err := r.db.GetContext(ctx, &sent, query, eventID, kind, target); err != nil {
		return false, fmt.Errorf("failed to check sent notification: %w", err)
	}
	return sent, nil
}

// MarkSent records a delivery exactly once. The unique constraint on
// (event_id, kind, target) makes concurrent marks converge to one row;
// a conflicting insert is a silent no-op, not an error.
func (r *notificationRepository) MarkSent(ctx context.Context, eventID uuid.UUID, kind, target string, sentAt time.Time) error {
	query := `
		INSERT INTO sent_notifications (event_id, kind, target, sent_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, kind, target) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, eventID, kind, target, sentAt); err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}
	return nil
}

func (r *notificationRepository) GetSetting(ctx context.Context, eventType model.EventType) (*model.NotificationSetting, error) {
	query := `
		SELECT type, thresholds, updated_at
		FROM notification_settings
		WHERE type = $1
	`
	var setting model.NotificationSetting
	err := r.db.GetContext(ctx, &setting, query, eventType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification setting: %w", err)
	}
	return &setting, nil
}

func (r *notificationRepository) ListSettings(ctx context.Context) ([]*model.NotificationSetting, error) {
	query := `
		SELECT type, thresholds, updated_at
		FROM notification_settings
		ORDER BY type
	`
	var settings []*model.NotificationSetting
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, fmt.Errorf("failed to list notification settings: %w", err)
	}
	return settings, nil
}

func (r *notificationRepository) UpsertSetting(ctx context.Context, setting *model.NotificationSetting) error {
	query := `
		INSERT INTO notification_settings (type, thresholds, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (type) DO UPDATE SET
			thresholds = EXCLUDED.thresholds,
			updated_at = EXCLUDED.updated_at
	`
	setting.UpdatedAt = time.Now()

	if _, err := r.db.ExecContext(ctx, query,
		setting.Type,
		setting.Thresholds,
		setting.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to upsert notification setting: %w", err)
	}
	return nil
}
