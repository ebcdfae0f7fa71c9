package line

import (
	"strings"

	"github.com/nattapongw/calendar-api/internal/model"
)

// Flex layout constants. LINE caps a carousel at 10 bubbles and renders
// long baseline texts poorly, so free-text fields are chunked.
const (
	MaxBubblesPerCarousel = 10
	textChunkSize         = 300
)

// TypeLabel returns the Thai display name for an event type.
func TypeLabel(t model.EventType) string {
	switch t {
	case model.EventTypeInUnit:
		return "ในหน่วย"
	case model.EventTypeInDepartment:
		return "ในกรม"
	case model.EventTypeHeadquarters:
		return "บก.ใหญ่"
	case model.EventTypeOffSite:
		return "นอกหน่วย"
	default:
		return string(t)
	}
}

func typeColor(t model.EventType) string {
	switch t {
	case model.EventTypeInUnit:
		return "#10b981"
	case model.EventTypeInDepartment:
		return "#0ea5e9"
	case model.EventTypeHeadquarters:
		return "#f59e0b"
	case model.EventTypeOffSite:
		return "#ef4444"
	default:
		return "#9ca3af"
	}
}

func typeEmoji(t model.EventType) string {
	switch t {
	case model.EventTypeInUnit:
		return "🏢"
	case model.EventTypeInDepartment:
		return "🏛️"
	case model.EventTypeHeadquarters:
		return "⭐"
	case model.EventTypeOffSite:
		return "🚗"
	default:
		return "📌"
	}
}

// ChunkText splits s into rune-safe pieces of at most size runes.
func ChunkText(s string, size int) []string {
	var out []string
	runes := []rune(s)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
	}
	return out
}

type box = map[string]interface{}

func baselineRow(emoji, label, value, labelColor, valueColor, margin string, bold bool) box {
	value_ := box{
		"type":  "text",
		"text":  value,
		"size":  "sm",
		"flex":  5,
		"wrap":  true,
		"color": valueColor,
	}
	if bold {
		value_["weight"] = "bold"
	}
	return box{
		"type":    "box",
		"layout":  "baseline",
		"spacing": "sm",
		"margin":  margin,
		"contents": []interface{}{
			box{"type": "text", "text": emoji, "size": "sm", "flex": 0, "margin": "none"},
			box{"type": "text", "text": label, "color": labelColor, "size": "sm", "flex": 2},
			value_,
		},
	}
}

func chunkedRows(emoji, label, text, valueColor string, firstMargin string) []interface{} {
	var rows []interface{}
	for idx, chunk := range ChunkText(text, textChunkSize) {
		e, l, margin := "", "", "sm"
		if idx == 0 {
			e, l, margin = emoji, label, firstMargin
		}
		rows = append(rows, baselineRow(e, l, chunk, "#a1a1aa", valueColor, margin, false))
	}
	return rows
}

// BuildBubble renders a single event as a flex bubble.
func BuildBubble(ev *model.Event) box {
	color := typeColor(ev.Type)
	contents := []interface{}{
		box{
			"type":   "box",
			"layout": "vertical",
			"contents": []interface{}{
				box{
					"type":   "text",
					"text":   typeEmoji(ev.Type) + " " + ev.Location,
					"weight": "bold",
					"size":   "xl",
					"color":  "#FFFFFF",
					"wrap":   true,
				},
				box{
					"type":   "text",
					"text":   TypeLabel(ev.Type),
					"size":   "sm",
					"color":  color,
					"margin": "xs",
				},
			},
			"backgroundColor": color + "33",
			"paddingAll":      "md",
			"cornerRadius":    "md",
		},
		box{"type": "separator", "margin": "md", "color": color + "40"},
		baselineRow("📅", "วันที่", ev.Date, "#a1a1aa", "#FFFFFF", "md", false),
		baselineRow("⏰", "เวลา", ev.Time, "#a1a1aa", "#FFFFFF", "sm", true),
	}

	contents = append(contents, chunkedRows("👔", "ชุด", ev.Uniform, "#FFFFFF", "md")...)
	contents = append(contents, chunkedRows("📋", "รายละเอียด", ev.Details, "#FFFFFF", "md")...)

	if strings.TrimSpace(ev.Notes) != "" {
		contents = append(contents, box{"type": "separator", "margin": "md", "color": "#fbbf2440"})
		first := true
		for _, lineText := range splitNoteLines(ev.Notes) {
			for _, chunk := range ChunkText(lineText, textChunkSize) {
				e, l, margin := "", "", "sm"
				if first {
					e, l, margin = "⚠️", "กำหนดการ", "md"
					first = false
				}
				row := baselineRow(e, l, chunk, "#fbbf24", "#fde68a", margin, false)
				contents = append(contents, row)
			}
		}
	}

	return box{
		"type": "bubble",
		"body": box{
			"type":     "box",
			"layout":   "vertical",
			"spacing":  "none",
			"contents": contents,
		},
		"styles": box{
			"body": box{"backgroundColor": "#1a1a2e"},
		},
	}
}

// splitNoteLines breaks notes into display lines on newlines and common
// bullet markers.
func splitNoteLines(notes string) []string {
	var out []string
	for _, part := range strings.Split(notes, "\n") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		for _, bullet := range strings.FieldsFunc(part, func(r rune) bool {
			return r == '•'
		}) {
			bullet = strings.TrimSpace(bullet)
			if bullet != "" {
				out = append(out, bullet)
			}
		}
	}
	return out
}

// BuildFlexForEvents renders up to MaxBubblesPerCarousel events as a
// carousel flex message.
func BuildFlexForEvents(events []*model.Event) box {
	if len(events) > MaxBubblesPerCarousel {
		events = events[:MaxBubblesPerCarousel]
	}

	bubbles := make([]interface{}, 0, len(events))
	for _, ev := range events {
		bubbles = append(bubbles, BuildBubble(ev))
	}

	altText := "ตารางงาน"
	if len(events) > 0 {
		altText = strings.TrimSpace("ตารางงาน " + events[0].Location)
	}

	return box{
		"type":    "flex",
		"altText": altText,
		"contents": box{
			"type":     "carousel",
			"contents": bubbles,
		},
	}
}
