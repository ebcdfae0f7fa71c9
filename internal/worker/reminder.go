package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nattapongw/calendar-api/internal/config"
	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/internal/service/reminder"
	"github.com/nattapongw/calendar-api/pkg/logger"
)

// ReminderWorker drives the reminder service on a cron cadence. Each tick
// takes one clock snapshot so all window arithmetic within the tick agrees.
type ReminderWorker struct {
	service *reminder.Service
	cfg     config.ReminderConfig
	logger  *logger.Logger
	cron    *cron.Cron
}

func NewReminderWorker(service *reminder.Service, cfg config.ReminderConfig, logger *logger.Logger) *ReminderWorker {
	return &ReminderWorker{
		service: service,
		cfg:     cfg,
		logger:  logger,
		cron:    cron.New(cron.WithLocation(model.Bangkok)),
	}
}

// Start schedules the tick and blocks until ctx is cancelled.
func (w *ReminderWorker) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.cfg.CronSpec, func() { w.tick(ctx) }); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", w.cfg.CronSpec, err)
	}

	w.cron.Start()
	w.logger.Info("reminder worker started", "spec", w.cfg.CronSpec)

	<-ctx.Done()
	stopped := w.cron.Stop()
	<-stopped.Done()
	return nil
}

func (w *ReminderWorker) tick(ctx context.Context) {
	now := time.Now()

	result, err := w.service.Dispatch(ctx, now)
	if err != nil {
		w.logger.Error(err, "reminder dispatch failed")
	} else if result.Sent > 0 || result.MarkFailures > 0 || result.PushFailures > 0 {
		w.logger.Info("reminders dispatched",
			"sent", result.Sent,
			"skipped", result.Skipped,
			"mark_failures", result.MarkFailures,
			"push_failures", result.PushFailures,
		)
	}

	if w.inMorningWindow(now) {
		if err := w.service.MorningPing(ctx, now); err != nil {
			w.logger.Error(err, "morning summary failed")
		}
	}
}

// inMorningWindow is true for exactly one tick per day: the window is as wide
// as the tick cadence, starting at the configured time.
func (w *ReminderWorker) inMorningWindow(now time.Time) bool {
	local := now.In(model.Bangkok)
	startMin := w.cfg.MorningPingHour*60 + w.cfg.MorningPingMin
	nowMin := local.Hour()*60 + local.Minute()
	return nowMin >= startMin && nowMin < startMin+5
}
