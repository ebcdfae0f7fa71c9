package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() *Event {
	return &Event{
		Date:     "2026-03-02",
		Time:     "09:00",
		Type:     EventTypeInUnit,
		Location: "กองร้อย",
		Uniform:  "เครื่องแบบปกติ",
		Details:  "ประชุม",
	}
}

func TestEventValidate(t *testing.T) {
	assert.NoError(t, validEvent().Validate())

	tests := []struct {
		name   string
		mutate func(*Event)
		want   string
	}{
		{"bad date format", func(e *Event) { e.Date = "02-03-2026" }, "invalid date format"},
		{"impossible date", func(e *Event) { e.Date = "2026-02-31" }, "invalid date"},
		{"bad time format", func(e *Event) { e.Time = "9:00" }, "invalid time format"},
		{"impossible time", func(e *Event) { e.Time = "25:00" }, "invalid time"},
		{"unknown type", func(e *Event) { e.Type = "banquet" }, "invalid event type"},
		{"blank location", func(e *Event) { e.Location = "   " }, "location is required"},
		{"blank uniform", func(e *Event) { e.Uniform = "" }, "uniform is required"},
		{"blank details", func(e *Event) { e.Details = "" }, "details is required"},
		{"location too long", func(e *Event) { e.Location = strings.Repeat("a", MaxLocationLen+1) }, "location too long"},
		{"notes too long", func(e *Event) { e.Notes = strings.Repeat("a", MaxNotesLen+1) }, "notes too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := validEvent()
			tt.mutate(ev)
			err := ev.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEventStartsAt(t *testing.T) {
	ev := validEvent()
	starts, err := ev.StartsAt()
	require.NoError(t, err)

	want := time.Date(2026, 3, 2, 9, 0, 0, 0, Bangkok)
	assert.True(t, starts.Equal(want))

	// 09:00 Bangkok is 02:00 UTC.
	assert.Equal(t, 2, starts.UTC().Hour())
}

func TestValidateMonth(t *testing.T) {
	assert.True(t, ValidateMonth("2026-03"))
	assert.False(t, ValidateMonth("2026-3"))
	assert.False(t, ValidateMonth("2026-03-02"))
	assert.False(t, ValidateMonth("march"))
}

func TestReminderKind(t *testing.T) {
	assert.Equal(t, "pre_60", ReminderKind(60))
	assert.Equal(t, "pre_120", ReminderKind(120))
}
