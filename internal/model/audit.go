package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	Actor     string          `db:"actor" json:"actor"`
	Action    string          `db:"action" json:"action"`
	Entity    string          `db:"entity" json:"entity"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

const (
	AuditActionCreateEvent    = "create_event"
	AuditActionUpdateEvent    = "update_event"
	AuditActionDeleteEvent    = "delete_event"
	AuditActionSetRole        = "set_role"
	AuditActionSetAttendance  = "set_attendance"
	AuditActionAutoRegister   = "auto_register"
	AuditActionUrgentTask     = "urgent_task"
	AuditActionUpdateSettings = "update_notification_settings"
)

// RecentUser is a "first seen" entry derived from auto_register audit rows.
type RecentUser struct {
	UserID    string    `db:"actor" json:"user_id"`
	FirstSeen time.Time `db:"created_at" json:"first_seen"`
}
