package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/nattapongw/calendar-api/internal/config"
	"github.com/nattapongw/calendar-api/internal/email"
	"github.com/nattapongw/calendar-api/internal/line"
	"github.com/nattapongw/calendar-api/internal/notifier"
	"github.com/nattapongw/calendar-api/internal/repository/postgres"
	"github.com/nattapongw/calendar-api/internal/service/reminder"
	"github.com/nattapongw/calendar-api/internal/worker"
	"github.com/nattapongw/calendar-api/pkg/logger"
	"github.com/nattapongw/calendar-api/pkg/messaging"
	redisbroker "github.com/nattapongw/calendar-api/pkg/messaging/redis"
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

	m := metrics.New("calendar_worker")
	m.Register(prometheus.DefaultRegisterer)

	eventRepo := postgres.NewEventRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	gateway := buildGateway(cfg, m, appLogger)

	// The broker is optional: without Redis the worker still reminds, it
	// just stops announcing deliveries to subscribers.
	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		zl := log.Logger
		broker, err = redisbroker.NewRedisBroker(redisbroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, &zl)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()
	}

	resolver := reminder.NewResolver(notificationRepo, appLogger)
	svc := reminder.NewService(
		eventRepo,
		roleRepo,
		notificationRepo,
		resolver,
		gateway,
		broker,
		m,
		appLogger,
		cfg.Reminder.WindowMinutes,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Health and metrics endpoint for the scheduler process.
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		if err := http.ListenAndServe(":8081", mux); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server stopped")
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down worker...")
		cancel()
	}()

	w := worker.NewReminderWorker(svc, cfg.Reminder, appLogger)
	if err := w.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("reminder worker failed")
	}
	log.Info().Msg("worker exited properly")
}

// buildGateway selects the push channel. LINE is the default; email serves
// deployments without a messaging token.
func buildGateway(cfg *config.Config, m *metrics.Metrics, appLogger *logger.Logger) reminder.Gateway {
	if cfg.Notifier.Channel == "email" {
		sender := email.NewService(email.Config{
			Host:     cfg.Notifier.SMTP.Host,
			Port:     cfg.Notifier.SMTP.Port,
			User:     cfg.Secrets.SMTPUser,
			Password: cfg.Secrets.SMTPPassword,
			From:     cfg.Notifier.SMTP.From,
		})
		return notifier.NewEmailGateway(sender, m)
	}

	client := line.NewClient(line.Config{
		Token:           cfg.Secrets.LineChannelToken,
		ProfileCacheTTL: cfg.Notifier.ProfileCacheTTL,
		ProfileCleanup:  cfg.Notifier.ProfileCacheCleanup,
	}, appLogger)
	return notifier.NewLineGateway(client, m)
}
