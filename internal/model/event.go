package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeInUnit       EventType = "in_unit"
	EventTypeInDepartment EventType = "in_department"
	EventTypeHeadquarters EventType = "headquarters"
	EventTypeOffSite      EventType = "off_site"
)

// Bangkok is the reference timezone for all schedule arithmetic. A fixed
// offset is used instead of a zoneinfo lookup because Thailand has no DST.
var Bangkok = time.FixedZone("ICT", 7*3600)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	MaxLocationLen = 500
	MaxUniformLen  = 500
	MaxDetailsLen  = 2000
	MaxNotesLen    = 2000
)

var ValidEventTypes = []EventType{
	EventTypeInUnit,
	EventTypeInDepartment,
	EventTypeHeadquarters,
	EventTypeOffSite,
}

func (t EventType) Valid() bool {
	for _, v := range ValidEventTypes {
		if t == v {
			return true
		}
	}
	return false
}

type Event struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Date      string    `db:"date" json:"date"`
	Time      string    `db:"time" json:"time"`
	Type      EventType `db:"type" json:"type"`
	Location  string    `db:"location" json:"location"`
	Uniform   string    `db:"uniform" json:"uniform"`
	Details   string    `db:"details" json:"details"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StartsAt resolves the event's date and time to an absolute instant in the
// reference timezone.
func (e *Event) StartsAt() (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.Time, Bangkok)
}

type CreateEventRequest struct {
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Type     string `json:"type" binding:"required,eventtype"`
	Location string `json:"location" binding:"required"`
	Uniform  string `json:"uniform" binding:"required"`
	Details  string `json:"details" binding:"required"`
	Notes    string `json:"notes"`
}

type UpdateEventRequest struct {
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Type     *string `json:"type" binding:"omitempty,eventtype"`
	Location *string `json:"location"`
	Uniform  *string `json:"uniform"`
	Details  *string `json:"details"`
	Notes    *string `json:"notes"`
}

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe  = regexp.MustCompile(`^\d{2}:\d{2}$`)
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// ValidateMonth reports whether s is a YYYY-MM month filter.
func ValidateMonth(s string) bool {
	return monthRe.MatchString(s)
}

// Validate enforces the field constraints shared by create and update paths.
func (e *Event) Validate() error {
	if !dateRe.MatchString(e.Date) {
		return fmt.Errorf("invalid date format (required: YYYY-MM-DD)")
	}
	if _, err := time.ParseInLocation(DateLayout, e.Date, Bangkok); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	if !timeRe.MatchString(e.Time) {
		return fmt.Errorf("invalid time format (required: HH:MM)")
	}
	if _, err := time.ParseInLocation(TimeLayout, e.Time, Bangkok); err != nil {
		return fmt.Errorf("invalid time: %w", err)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("invalid event type: %s", e.Type)
	}
	if strings.TrimSpace(e.Location) == "" {
		return fmt.Errorf("location is required")
	}
	if strings.TrimSpace(e.Uniform) == "" {
		return fmt.Errorf("uniform is required")
	}
	if strings.TrimSpace(e.Details) == "" {
		return fmt.Errorf("details is required")
	}
	if len(e.Location) > MaxLocationLen {
		return fmt.Errorf("location too long (max %d chars)", MaxLocationLen)
	}
	if len(e.Uniform) > MaxUniformLen {
		return fmt.Errorf("uniform too long (max %d chars)", MaxUniformLen)
	}
	if len(e.Details) > MaxDetailsLen {
		return fmt.Errorf("details too long (max %d chars)", MaxDetailsLen)
	}
	if len(e.Notes) > MaxNotesLen {
		return fmt.Errorf("notes too long (max %d chars)", MaxNotesLen)
	}
	return nil
}
