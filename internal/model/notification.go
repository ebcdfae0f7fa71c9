package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationRecord is one row of the dedup ledger: a reminder of the given
// kind was delivered to target for this event. Rows are written once and kept
// forever as an audit of what was sent.
type NotificationRecord struct {
	EventID uuid.UUID `db:"event_id" json:"event_id"`
	Kind    string    `db:"kind" json:"kind"`
	Target  string    `db:"target" json:"target"`
	SentAt  time.Time `db:"sent_at" json:"sent_at"`
}

// ReminderKind tags the ledger row with the threshold that fired, e.g. "pre_60".
func ReminderKind(thresholdMinutes int) string {
	return fmt.Sprintf("pre_%d", thresholdMinutes)
}

// NotificationSetting is a per-type override of the reminder lead times,
// stored as a comma-separated list of minutes.
type NotificationSetting struct {
	Type       EventType `db:"type" json:"type"`
	Thresholds string    `db:"thresholds" json:"thresholds"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// MaxThresholdMinutes caps a single lead time at one day.
const MaxThresholdMinutes = 1440

type UpdateSettingRequest struct {
	Type       string `json:"type" binding:"required"`
	Thresholds string `json:"thresholds" binding:"required"`
}
