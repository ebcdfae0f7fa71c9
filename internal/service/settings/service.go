package settings

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/internal/repository"
	"github.com/nattapongw/calendar-api/internal/service/audit"
	apperrors "github.com/nattapongw/calendar-api/pkg/errors"
)

type Service struct {
	repo  repository.NotificationRepository
	audit *audit.Service
}

func NewService(repo repository.NotificationRepository, auditSvc *audit.Service) *Service {
	return &Service{repo: repo, audit: auditSvc}
}

func (s *Service) List(ctx context.Context) ([]*model.NotificationSetting, error) {
	return s.repo.ListSettings(ctx)
}

// Update stores a per-type reminder threshold override. Unlike the dispatch
// path, which tolerates bad stored values, writes are validated strictly so
// a typo is rejected instead of silently narrowed.
func (s *Service) Update(ctx context.Context, actor string, req *model.UpdateSettingRequest) (*model.NotificationSetting, error) {
	eventType := model.EventType(req.Type)
	if !eventType.Valid() {
		return nil, apperrors.BadRequest("invalid event type: "+req.Type, nil)
	}
	normalized, err := normalize(req.Thresholds)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	setting := &model.NotificationSetting{
		Type:       eventType,
		Thresholds: normalized,
		UpdatedAt:  time.Now(),
	}
	if err := s.repo.UpsertSetting(ctx, setting); err != nil {
		return nil, err
	}
	s.audit.Log(ctx, actor, model.AuditActionUpdateSettings, "notification_setting", setting)
	return setting, nil
}

func normalize(csv string) (string, error) {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil {
			return "", &invalidTokenError{token}
		}
		if n < 0 || n > model.MaxThresholdMinutes {
			return "", &invalidTokenError{token}
		}
		out = append(out, strconv.Itoa(n))
	}
	if len(out) == 0 {
		return "", &invalidTokenError{csv}
	}
	return strings.Join(out, ","), nil
}

type invalidTokenError struct {
	token string
}

func (e *invalidTokenError) Error() string {
	return "invalid threshold value: " + e.token + " (must be minutes between 0 and 1440)"
}
