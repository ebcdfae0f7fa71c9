package reminder

import (
	"context"
	"time"

	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/internal/repository"
	"github.com/nattapongw/calendar-api/pkg/logger"
	"github.com/nattapongw/calendar-api/pkg/messaging"
	"github.com/nattapongw/calendar-api/pkg/metrics"
)

// Gateway delivers reminders to recipients over the configured channel.
type Gateway interface {
	PushReminder(ctx context.Context, to string, event *model.Event, minutes int) error
	PushDailySummary(ctx context.Context, to string, events []*model.Event) error
}

// DispatchResult summarizes one dispatch tick.
type DispatchResult struct {
	Evaluated    int
	Sent         int
	Skipped      int
	MarkFailures int
	PushFailures int
}

// Service walks today's events every tick, resolves each event's thresholds,
// and pushes one reminder per (event, threshold, recipient) at most once.
type Service struct {
	events        repository.EventRepository
	roles         repository.RoleRepository
	notifications repository.NotificationRepository
	resolver      *Resolver
	gateway       Gateway
	broker        messaging.Broker
	metrics       *metrics.Metrics
	logger        *logger.Logger
	window        int
}

func NewService(
	events repository.EventRepository,
	roles repository.RoleRepository,
	notifications repository.NotificationRepository,
	resolver *Resolver,
	gateway Gateway,
	broker messaging.Broker,
	m *metrics.Metrics,
	logger *logger.Logger,
	windowMinutes int,
) *Service {
	if windowMinutes <= 0 {
		windowMinutes = DefaultWindowMinutes
	}
	return &Service{
		events:        events,
		roles:         roles,
		notifications: notifications,
		resolver:      resolver,
		gateway:       gateway,
		broker:        broker,
		metrics:       m,
		logger:        logger,
		window:        windowMinutes,
	}
}

// Dispatch runs one reminder tick at the given instant. Recipients are the
// current boss roster, recomputed on every tick. The ledger is written before
// the push, so a crash mid-tick drops a reminder rather than duplicating it.
func (s *Service) Dispatch(ctx context.Context, now time.Time) (*DispatchResult, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.TickDuration.Observe(time.Since(start).Seconds())
		}
	}()

	result := &DispatchResult{}
	today := now.In(model.Bangkok).Format(model.DateLayout)

	events, err := s.events.ListForDate(ctx, today)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return result, nil
	}

	recipients, err := s.roles.ListByRole(ctx, model.RoleBoss)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		s.logger.Debug("no reminder recipients registered")
		return result, nil
	}

	for _, event := range events {
		result.Evaluated++
		if s.metrics != nil {
			s.metrics.EventsEvaluated.Inc()
		}

		startsAt, err := event.StartsAt()
		if err != nil {
			s.logger.Warn("skipping event with unparseable start", "event_id", event.ID.String())
			continue
		}
		diffMin := MinutesUntil(now, startsAt)

		for _, threshold := range s.resolver.Resolve(ctx, event.Type) {
			if !IsDue(diffMin, threshold, s.window) {
				continue
			}
			kind := model.ReminderKind(threshold)
			for _, recipient := range recipients {
				s.deliver(ctx, event, kind, threshold, recipient.UserID, now, result)
			}
		}
	}

	s.logger.Info("reminder tick complete",
		"date", today,
		"evaluated", result.Evaluated,
		"sent", result.Sent,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (s *Service) deliver(ctx context.Context, event *model.Event, kind string, threshold int, target string, now time.Time, result *DispatchResult) {
	sent, err := s.notifications.HasSent(ctx, event.ID, kind, target)
	if err != nil {
		result.MarkFailures++
		if s.metrics != nil {
			s.metrics.ReminderMarkErrors.Inc()
		}
		s.logger.Error(err, "ledger lookup failed", "event_id", event.ID.String(), "kind", kind)
		return
	}
	if sent {
		result.Skipped++
		if s.metrics != nil {
			s.metrics.RemindersSkipped.Inc()
		}
		return
	}

	// Mark first. If the push then fails the reminder is lost for good,
	// which beats paging the same person twice.
	if err := s.notifications.MarkSent(ctx, event.ID, kind, target, now); err != nil {
		result.MarkFailures++
		if s.metrics != nil {
			s.metrics.ReminderMarkErrors.Inc()
		}
		s.logger.Error(err, "ledger write failed", "event_id", event.ID.String(), "kind", kind, "target", target)
		return
	}

	if err := s.gateway.PushReminder(ctx, target, event, threshold); err != nil {
		result.PushFailures++
		if s.metrics != nil {
			s.metrics.ReminderPushErrors.Inc()
		}
		s.logger.Error(err, "reminder push failed", "event_id", event.ID.String(), "kind", kind, "target", target)
		return
	}

	result.Sent++
	if s.metrics != nil {
		s.metrics.RemindersSent.Inc()
	}
	s.publish(ctx, event, kind, target, now)
}

func (s *Service) publish(ctx context.Context, event *model.Event, kind, target string, now time.Time) {
	if s.broker == nil {
		return
	}
	msg := messaging.Message{
		Type: "reminder_sent",
		Payload: map[string]interface{}{
			"event_id": event.ID.String(),
			"kind":     kind,
			"target":   target,
			"sent_at":  now.UTC().Format(time.RFC3339),
		},
	}
	if err := s.broker.Publish(ctx, messaging.ChannelReminders, msg); err != nil {
		s.logger.Warn("failed to publish reminder event", "error", err.Error())
	}
}

// MorningPing pushes today's full schedule to every boss. It is intentionally
// not recorded in the ledger; the worker guards it with a time-of-day window
// so it fires on a single tick per day.
func (s *Service) MorningPing(ctx context.Context, now time.Time) error {
	today := now.In(model.Bangkok).Format(model.DateLayout)
	events, err := s.events.ListForDate(ctx, today)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	recipients, err := s.roles.ListByRole(ctx, model.RoleBoss)
	if err != nil {
		return err
	}
	for _, recipient := range recipients {
		if err := s.gateway.PushDailySummary(ctx, recipient.UserID, events); err != nil {
			s.logger.Error(err, "morning summary push failed", "target", recipient.UserID)
		}
	}
	return nil
}
