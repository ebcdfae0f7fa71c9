package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	AttendanceStatusJoin   AttendanceStatus = "join"
	AttendanceStatusAbsent AttendanceStatus = "absent"
	AttendanceStatusBusy   AttendanceStatus = "busy"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusJoin, AttendanceStatusAbsent, AttendanceStatusBusy:
		return true
	}
	return false
}

type Attendance struct {
	EventID   uuid.UUID        `db:"event_id" json:"event_id"`
	UserID    string           `db:"user_id" json:"user_id"`
	Status    AttendanceStatus `db:"status" json:"status"`
	UpdatedBy string           `db:"updated_by" json:"updated_by"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// AttendanceEntry joins an attendance row with its event for the day view.
type AttendanceEntry struct {
	EventID  uuid.UUID        `db:"event_id" json:"event_id"`
	Status   AttendanceStatus `db:"status" json:"status"`
	Date     string           `db:"date" json:"date"`
	Time     string           `db:"time" json:"time"`
	Type     EventType        `db:"type" json:"type"`
	Location string           `db:"location" json:"location"`
	Uniform  string           `db:"uniform" json:"uniform"`
	Details  string           `db:"details" json:"details"`
	Notes    string           `db:"notes" json:"notes,omitempty"`
}

type SetAttendanceRequest struct {
	EventID string `json:"event_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
	Status  string `json:"status" binding:"required"`
	Actor   string `json:"actor"`
}
