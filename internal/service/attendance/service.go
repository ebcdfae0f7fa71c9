package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/internal/repository"
	"github.com/nattapongw/calendar-api/internal/service/audit"
	apperrors "github.com/nattapongw/calendar-api/pkg/errors"
)

type Service struct {
	repo   repository.AttendanceRepository
	events repository.EventRepository
	audit  *audit.Service
}

func NewService(repo repository.AttendanceRepository, events repository.EventRepository, auditSvc *audit.Service) *Service {
	return &Service{repo: repo, events: events, audit: auditSvc}
}

// Set upserts a user's attendance for an event. Re-answering replaces the
// previous status.
func (s *Service) Set(ctx context.Context, actor string, req *model.SetAttendanceRequest) (*model.Attendance, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid event id", err)
	}
	status := model.AttendanceStatus(req.Status)
	if !status.Valid() {
		return nil, apperrors.BadRequest("invalid status: "+req.Status, nil)
	}
	if _, err := s.events.Get(ctx, eventID); err != nil {
		return nil, apperrors.NotFound("event", err)
	}

	att := &model.Attendance{
		EventID:   eventID,
		UserID:    req.UserID,
		Status:    status,
		UpdatedBy: actor,
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Upsert(ctx, att); err != nil {
		return nil, err
	}
	s.audit.Log(ctx, actor, model.AuditActionSetAttendance, "attendance", att)
	return att, nil
}

// ListForDate returns a user's attendance entries across a day's events.
func (s *Service) ListForDate(ctx context.Context, date, userID string) ([]*model.AttendanceEntry, error) {
	return s.repo.ListForDateAndUser(ctx, date, userID)
}
