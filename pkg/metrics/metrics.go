package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Reminder dispatch metrics
	RemindersSent      prometheus.Counter
	RemindersSkipped   prometheus.Counter
	ReminderMarkErrors prometheus.Counter
	ReminderPushErrors prometheus.Counter
	TickDuration       prometheus.Histogram
	EventsEvaluated    prometheus.Counter

	// Database metrics
	DatabaseOperations *prometheus.CounterVec

	// Gateway metrics
	GatewayPushes *prometheus.CounterVec
}

// New creates all application metrics under the namespace. Collectors are not
// registered here so tests can construct throwaway instances; call Register
// with the default registerer in main.
func New(namespace string) *Metrics {
	return &Metrics{
		RemindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_sent_total",
			Help:      "Total number of reminder pushes delivered to the gateway",
		}),
		RemindersSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_skipped_total",
			Help:      "Total number of reminders suppressed by the dedup ledger",
		}),
		ReminderMarkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_mark_errors_total",
			Help:      "Total number of failed ledger writes",
		}),
		ReminderPushErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_push_errors_total",
			Help:      "Total number of failed gateway pushes",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent processing one reminder tick",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		EventsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_evaluated_total",
			Help:      "Total number of events examined across ticks",
		}),
		DatabaseOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		GatewayPushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_pushes_total",
			Help:      "Total number of gateway push attempts",
		}, []string{"channel", "status"}),
	}
}

// Register registers all collectors with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.RemindersSent,
		m.RemindersSkipped,
		m.ReminderMarkErrors,
		m.ReminderPushErrors,
		m.TickDuration,
		m.EventsEvaluated,
		m.DatabaseOperations,
		m.GatewayPushes,
	)
}
