package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nattapongw/calendar-api/internal/model"
)

func TestIsHelpCommand(t *testing.T) {
	for _, text := range []string{"ช่วยเหลือ", "help", "Help", "คู่มือ", "วิธีใช้"} {
		assert.True(t, isHelpCommand(text), text)
	}
	assert.False(t, isHelpCommand("HELP"))
	assert.False(t, isHelpCommand("ตารางงานวันนี้"))
}

func TestUrgentTaskPrefix(t *testing.T) {
	// Both the ASCII colon and the Thai full-width colon mark the command.
	assert.True(t, urgentRe.MatchString("สั่งงานด่วน: เตรียมเอกสาร"))
	assert.True(t, urgentRe.MatchString("สั่งงานด่วน：เตรียมเอกสาร"))
	assert.False(t, urgentRe.MatchString("งานด่วน: เตรียมเอกสาร"))

	got := urgentRe.ReplaceAllString("สั่งงานด่วน:   เตรียมเอกสาร", "")
	assert.Equal(t, "เตรียมเอกสาร", got)
}

func TestParseDayOfMonth(t *testing.T) {
	s := &Service{}
	now := time.Now().In(model.Bangkok)

	date, ok := s.parseDayOfMonth("วันที่ 15")
	require.True(t, ok)
	want := time.Date(now.Year(), now.Month(), 15, 0, 0, 0, 0, model.Bangkok)
	assert.Equal(t, want.Format(model.DateLayout), date)

	date, ok = s.parseDayOfMonth("งานวันที่5")
	require.True(t, ok)
	want = time.Date(now.Year(), now.Month(), 5, 0, 0, 0, 0, model.Bangkok)
	assert.Equal(t, want.Format(model.DateLayout), date)

	_, ok = s.parseDayOfMonth("วันนี้")
	assert.False(t, ok)
	_, ok = s.parseDayOfMonth("วันที่ 0")
	assert.False(t, ok)
	_, ok = s.parseDayOfMonth("วันที่ 32")
	assert.False(t, ok)
}
