package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nattapongw/calendar-api/internal/model"
)

// All repository interfaces in one file
type (
	EventRepository interface {
		Create(ctx context.Context, event *model.Event) error
		Get(ctx context.Context, id uuid.UUID) (*model.Event, error)
		Update(ctx context.Context, event *model.Event) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, limit int) ([]*model.Event, error)
		ListForMonth(ctx context.Context, month string) ([]*model.Event, error)
		ListForDate(ctx context.Context, date string) ([]*model.Event, error)
		CountForDate(ctx context.Context, date string) (int, error)
		ListForRange(ctx context.Context, from, to string) ([]*model.Event, error)
	}

	RoleRepository interface {
		Get(ctx context.Context, userID string) (*model.UserRole, error)
		Upsert(ctx context.Context, role *model.UserRole) error
		List(ctx context.Context) ([]*model.UserRole, error)
		ListByRole(ctx context.Context, role model.Role) ([]*model.UserRole, error)
	}

	AttendanceRepository interface {
		Upsert(ctx context.Context, att *model.Attendance) error
		ListForDateAndUser(ctx context.Context, date, userID string) ([]*model.AttendanceEntry, error)
	}

	AuditRepository interface {
		Create(ctx context.Context, log *model.AuditLog) error
		List(ctx context.Context, action string, limit int) ([]*model.AuditLog, error)
		ListRecentUsers(ctx context.Context, limit int) ([]*model.RecentUser, error)
		Cleanup(ctx context.Context, before time.Time) (int64, error)
	}

	// NotificationRepository owns the dedup ledger and the per-type
	// threshold overrides.
	NotificationRepository interface {
		HasSent(ctx context.Context, eventID uuid.UUID, kind, target string) (bool, error)
		MarkSent(ctx context.Context, eventID uuid.UUID, kind, target string, sentAt time.Time) error
		GetSetting(ctx context.Context, eventType model.EventType) (*model.NotificationSetting, error)
		ListSettings(ctx context.Context) ([]*model.NotificationSetting, error)
		UpsertSetting(ctx context.Context, setting *model.NotificationSetting) error
	}
)
