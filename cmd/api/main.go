package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	_ "github.com/lib/pq"

	"github.com/nattapongw/calendar-api/internal/config"
	"github.com/nattapongw/calendar-api/internal/handler"
	attendanceHandler "github.com/nattapongw/calendar-api/internal/handler/attendance"
	auditHandler "github.com/nattapongw/calendar-api/internal/handler/audit"
	authHandler "github.com/nattapongw/calendar-api/internal/handler/auth"
	eventHandler "github.com/nattapongw/calendar-api/internal/handler/event"
	roleHandler "github.com/nattapongw/calendar-api/internal/handler/role"
	settingsHandler "github.com/nattapongw/calendar-api/internal/handler/settings"
	summaryHandler "github.com/nattapongw/calendar-api/internal/handler/summary"
	webhookHandler "github.com/nattapongw/calendar-api/internal/handler/webhook"
	"github.com/nattapongw/calendar-api/internal/line"
	"github.com/nattapongw/calendar-api/internal/middleware"
	"github.com/nattapongw/calendar-api/internal/notifier"
	"github.com/nattapongw/calendar-api/internal/repository/postgres"
	"github.com/nattapongw/calendar-api/internal/router"
	attendanceService "github.com/nattapongw/calendar-api/internal/service/attendance"
	auditService "github.com/nattapongw/calendar-api/internal/service/audit"
	botService "github.com/nattapongw/calendar-api/internal/service/bot"
	eventService "github.com/nattapongw/calendar-api/internal/service/event"
	roleService "github.com/nattapongw/calendar-api/internal/service/role"
	settingsService "github.com/nattapongw/calendar-api/internal/service/settings"
	"github.com/nattapongw/calendar-api/internal/worker"
	"github.com/nattapongw/calendar-api/pkg/auth"
	"github.com/nattapongw/calendar-api/pkg/logger"
	"github.com/nattapongw/calendar-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.New("calendar_api")
	m.Register(prometheus.DefaultRegisterer)

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	auditRepo := postgres.NewAuditRepository(postgres.NewBaseRepository(db))
	notificationRepo := postgres.NewNotificationRepository(db)

	// LINE client and push gateway
	lineClient := line.NewClient(line.Config{
		Token:           cfg.Secrets.LineChannelToken,
		ProfileCacheTTL: cfg.Notifier.ProfileCacheTTL,
		ProfileCleanup:  cfg.Notifier.ProfileCacheCleanup,
	}, appLogger)
	gateway := notifier.NewLineGateway(lineClient, m)

	// Services
	auditSvc := auditService.NewService(auditRepo, appLogger)
	roleSvc := roleService.NewService(roleRepo, auditSvc, appLogger)
	eventSvc := eventService.NewService(eventRepo, roleRepo, auditSvc, gateway, appLogger)
	attendanceSvc := attendanceService.NewService(attendanceRepo, eventRepo, auditSvc)
	settingsSvc := settingsService.NewService(notificationRepo, auditSvc)
	botSvc := botService.NewService(lineClient, eventRepo, roleSvc, auditSvc, appLogger, cfg.Reminder.SiteBaseURL)

	sessions := auth.NewSessionService(cfg.Secrets.SessionSecret, cfg.Session.ExpiryHours)
	authMiddleware := middleware.NewAuthMiddleware(sessions)

	// Handlers
	h := handler.NewHandler(db)
	r := router.NewRouter(
		authMiddleware,
		h,
		authHandler.NewHandler(sessions, cfg.Secrets.SitePasswordHash, cfg.Session.ExpiryHours*3600),
		webhookHandler.NewHandler(botSvc, cfg.Secrets.LineChannelSecret, appLogger),
		eventHandler.NewHandler(eventSvc),
		roleHandler.NewHandler(roleSvc),
		attendanceHandler.NewHandler(attendanceSvc),
		auditHandler.NewHandler(auditSvc),
		settingsHandler.NewHandler(settingsSvc),
		summaryHandler.NewHandler(eventSvc),
		router.Config{
			RateLimit:     rate.Limit(50),
			RateBurst:     100,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "calendar_api",
		},
	)
	r.Setup()

	// Audit retention runs alongside the API since it shares no state with
	// the reminder worker.
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	cleanup := worker.NewAuditCleanupWorker(auditRepo, cfg.Audit.RetentionDays, cfg.Audit.CleanupInterval, appLogger)
	go cleanup.Start(cleanupCtx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	cancelCleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
