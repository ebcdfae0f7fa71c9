package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/internal/repository"
	"github.com/nattapongw/calendar-api/pkg/logger"
)

type Service struct {
	repo   repository.AuditRepository
	logger *logger.Logger
}

func NewService(repo repository.AuditRepository, logger *logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Log records an action in the audit trail. Failures are logged and swallowed
// so auditing never blocks the operation being audited.
func (s *Service) Log(ctx context.Context, actor, action, entity string, payload interface{}) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			s.logger.Error(err, "failed to marshal audit payload", "action", action)
			return
		}
		raw = b
	}

	entry := &model.AuditLog{
		ID:        uuid.New(),
		Actor:     actor,
		Action:    action,
		Entity:    entity,
		Payload:   raw,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error(err, "failed to write audit log", "action", action)
	}
}

func (s *Service) List(ctx context.Context, action string, limit int) ([]*model.AuditLog, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 500 {
		limit = 500
	}
	return s.repo.List(ctx, action, limit)
}

// ListRecentUsers returns users seen through auto-registration, newest first.
func (s *Service) ListRecentUsers(ctx context.Context, limit int) ([]*model.RecentUser, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}
	return s.repo.ListRecentUsers(ctx, limit)
}

// Cleanup deletes audit rows older than the retention period.
func (s *Service) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.Cleanup(ctx, time.Now().Add(-retention))
}
