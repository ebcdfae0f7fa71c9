package line

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nattapongw/calendar-api/internal/model"
)

func sampleEvent() *model.Event {
	return &model.Event{
		Date:     "2026-03-02",
		Time:     "09:00",
		Type:     model.EventTypeOffSite,
		Location: "กรมทหารราบ",
		Uniform:  "เครื่องแบบฝึก",
		Details:  "ฝึกประจำสัปดาห์",
	}
}

func TestChunkText(t *testing.T) {
	assert.Nil(t, ChunkText("", 300))
	assert.Equal(t, []string{"abc"}, ChunkText("abc", 300))

	chunks := ChunkText(strings.Repeat("ก", 650), 300)
	require.Len(t, chunks, 3)
	assert.Len(t, []rune(chunks[0]), 300)
	assert.Len(t, []rune(chunks[2]), 50)
	// Thai text survives chunking without byte-level splits.
	assert.Equal(t, strings.Repeat("ก", 650), strings.Join(chunks, ""))
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "ในหน่วย", TypeLabel(model.EventTypeInUnit))
	assert.Equal(t, "นอกหน่วย", TypeLabel(model.EventTypeOffSite))
	assert.Equal(t, "other", TypeLabel(model.EventType("other")))
}

func TestNewTextMessageTruncates(t *testing.T) {
	msg := NewTextMessage(strings.Repeat("ข", MaxTextLen+100))
	assert.Equal(t, "text", msg.Type)
	assert.Len(t, []rune(msg.Text), MaxTextLen)
}

func TestBuildBubble(t *testing.T) {
	bubble := BuildBubble(sampleEvent())
	assert.Equal(t, "bubble", bubble["type"])
}

func TestBuildFlexForEventsCapsCarousel(t *testing.T) {
	events := make([]*model.Event, 15)
	for i := range events {
		events[i] = sampleEvent()
	}

	flex := BuildFlexForEvents(events)
	assert.Equal(t, "flex", flex["type"])

	carousel, ok := flex["contents"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "carousel", carousel["type"])

	bubbles, ok := carousel["contents"].([]interface{})
	require.True(t, ok)
	assert.Len(t, bubbles, MaxBubblesPerCarousel)
}

func TestBuildFlexForEventsAltText(t *testing.T) {
	flex := BuildFlexForEvents([]*model.Event{sampleEvent()})
	assert.Equal(t, "ตารางงาน กรมทหารราบ", flex["altText"])
}
