package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/internal/repository"
	"github.com/nattapongw/calendar-api/internal/service/audit"
	apperrors "github.com/nattapongw/calendar-api/pkg/errors"
	"github.com/nattapongw/calendar-api/pkg/logger"
)

const defaultListLimit = 500

// Announcer pushes a one-off alert about a single event.
type Announcer interface {
	PushEventAlert(ctx context.Context, to, text string, event *model.Event) error
}

type Service struct {
	repo      repository.EventRepository
	roles     repository.RoleRepository
	audit     *audit.Service
	announcer Announcer
	logger    *logger.Logger
}

func NewService(
	repo repository.EventRepository,
	roles repository.RoleRepository,
	auditSvc *audit.Service,
	announcer Announcer,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:      repo,
		roles:     roles,
		audit:     auditSvc,
		announcer: announcer,
		logger:    logger,
	}
}

// Create validates and stores a new event. An event added for today is
// announced to every boss immediately, since its reminder windows may
// already be partly gone.
func (s *Service) Create(ctx context.Context, actor string, req *model.CreateEventRequest) (*model.Event, error) {
	now := time.Now()
	event := &model.Event{
		ID:        uuid.New(),
		Date:      req.Date,
		Time:      req.Time,
		Type:      model.EventType(req.Type),
		Location:  req.Location,
		Uniform:   req.Uniform,
		Details:   req.Details,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := event.Validate(); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	s.audit.Log(ctx, actor, model.AuditActionCreateEvent, "event", event)

	if event.Date == time.Now().In(model.Bangkok).Format(model.DateLayout) {
		s.announceToday(ctx, event)
	}
	return event, nil
}

func (s *Service) announceToday(ctx context.Context, event *model.Event) {
	if s.announcer == nil {
		return
	}
	bosses, err := s.roles.ListByRole(ctx, model.RoleBoss)
	if err != nil {
		s.logger.Error(err, "failed to load announcement recipients")
		return
	}
	text := "📢 มีงานเพิ่มวันนี้ เวลา " + event.Time + " น."
	for _, boss := range bosses {
		if err := s.announcer.PushEventAlert(ctx, boss.UserID, text, event); err != nil {
			s.logger.Error(err, "failed to announce new event", "target", boss.UserID)
		}
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("event", err)
	}
	return event, nil
}

// Update applies the non-nil fields of req and revalidates the result.
func (s *Service) Update(ctx context.Context, actor string, id uuid.UUID, req *model.UpdateEventRequest) (*model.Event, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("event", err)
	}

	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.Type != nil {
		event.Type = model.EventType(*req.Type)
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Uniform != nil {
		event.Uniform = *req.Uniform
	}
	if req.Notes != nil {
		event.Notes = *req.Notes
	}
	if req.Details != nil {
		event.Details = *req.Details
	}
	if err := event.Validate(); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	event.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	s.audit.Log(ctx, actor, model.AuditActionUpdateEvent, "event", event)
	return event, nil
}

func (s *Service) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return apperrors.NotFound("event", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Log(ctx, actor, model.AuditActionDeleteEvent, "event", event)
	return nil
}

func (s *Service) List(ctx context.Context, limit int) ([]*model.Event, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, limit)
}

func (s *Service) ListForMonth(ctx context.Context, month string) ([]*model.Event, error) {
	if !model.ValidateMonth(month) {
		return nil, apperrors.BadRequest("invalid month format (required: YYYY-MM)", nil)
	}
	return s.repo.ListForMonth(ctx, month)
}

func (s *Service) ListForDate(ctx context.Context, date string) ([]*model.Event, error) {
	return s.repo.ListForDate(ctx, date)
}

// Today returns events for the current Bangkok date.
func (s *Service) Today(ctx context.Context) ([]*model.Event, error) {
	return s.repo.ListForDate(ctx, time.Now().In(model.Bangkok).Format(model.DateLayout))
}

// Tomorrow returns events for the next Bangkok date.
func (s *Service) Tomorrow(ctx context.Context) ([]*model.Event, error) {
	date := time.Now().In(model.Bangkok).AddDate(0, 0, 1).Format(model.DateLayout)
	return s.repo.ListForDate(ctx, date)
}

// Week returns events from today through the next six days.
func (s *Service) Week(ctx context.Context) ([]*model.Event, error) {
	now := time.Now().In(model.Bangkok)
	from := now.Format(model.DateLayout)
	to := now.AddDate(0, 0, 6).Format(model.DateLayout)
	return s.repo.ListForRange(ctx, from, to)
}
