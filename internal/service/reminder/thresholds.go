package reminder

import (
	"context"
	"strconv"
	"strings"

	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/internal/repository"
	"github.com/nattapongw/calendar-api/pkg/logger"
)

// defaultThresholds maps an event type to the minutes-before-start marks at
// which a reminder fires when no stored override exists.
var defaultThresholds = map[model.EventType][]int{
	model.EventTypeInUnit:       {30},
	model.EventTypeInDepartment: {60},
	model.EventTypeHeadquarters: {60},
	model.EventTypeOffSite:      {120, 60},
}

// fallbackThresholds applies to unrecognized event types.
var fallbackThresholds = []int{60}

// Resolver picks reminder thresholds for an event type, preferring a stored
// per-type override and falling back to the built-in defaults.
type Resolver struct {
	settings repository.NotificationRepository
	logger   *logger.Logger
}

func NewResolver(settings repository.NotificationRepository, logger *logger.Logger) *Resolver {
	return &Resolver{settings: settings, logger: logger}
}

// Resolve returns the threshold list for eventType, in minutes before start.
// A stored override replaces the defaults entirely; an override whose tokens
// are all malformed is ignored.
func (r *Resolver) Resolve(ctx context.Context, eventType model.EventType) []int {
	if r.settings != nil {
		setting, err := r.settings.GetSetting(ctx, eventType)
		if err != nil {
			r.logger.Error(err, "failed to load notification setting", "type", string(eventType))
		} else if setting != nil {
			if parsed := ParseThresholds(setting.Thresholds); len(parsed) > 0 {
				return parsed
			}
		}
	}
	return Defaults(eventType)
}

// Defaults returns the built-in thresholds for eventType.
func Defaults(eventType model.EventType) []int {
	if ths, ok := defaultThresholds[eventType]; ok {
		return ths
	}
	return fallbackThresholds
}

// ParseThresholds parses a comma-separated threshold list. Tokens that are
// not integers in [0, 1440] are discarded; an empty result means the input
// carried no usable value.
func ParseThresholds(csv string) []int {
	parts := strings.Split(csv, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil || n < 0 || n > model.MaxThresholdMinutes {
			continue
		}
		out = append(out, n)
	}
	return out
}
