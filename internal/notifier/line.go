package notifier

import (
	"context"
	"fmt"

	"github.com/nattapongw/calendar-api/internal/line"
	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/pkg/metrics"
)

// LineGateway delivers reminders as a text alert followed by the event card.
type LineGateway struct {
	client  *line.Client
	metrics *metrics.Metrics
}

func NewLineGateway(client *line.Client, m *metrics.Metrics) *LineGateway {
	return &LineGateway{client: client, metrics: m}
}

func (g *LineGateway) PushReminder(ctx context.Context, to string, event *model.Event, minutes int) error {
	alert := fmt.Sprintf("🔔 แจ้งเตือน! อีก %d นาที\n%s %s น. ที่ %s",
		minutes, event.Date, event.Time, event.Location)
	err := g.client.Push(ctx, to,
		line.NewTextMessage(alert),
		line.FlexMessage("แจ้งเตือนกำหนดการ", line.BuildBubble(event)),
	)
	g.observe(err)
	return err
}

func (g *LineGateway) PushDailySummary(ctx context.Context, to string, events []*model.Event) error {
	header := fmt.Sprintf("🌅 สวัสดีตอนเช้า วันนี้มี %d งาน", len(events))
	err := g.client.Push(ctx, to,
		line.NewTextMessage(header),
		line.BuildFlexForEvents(events),
	)
	g.observe(err)
	return err
}

// PushEventAlert announces a single event, used for same-day additions.
func (g *LineGateway) PushEventAlert(ctx context.Context, to, text string, event *model.Event) error {
	err := g.client.Push(ctx, to,
		line.NewTextMessage(text),
		line.FlexMessage("กำหนดการใหม่", line.BuildBubble(event)),
	)
	g.observe(err)
	return err
}

func (g *LineGateway) observe(err error) {
	if g.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	g.metrics.GatewayPushes.WithLabelValues("line", status).Inc()
}
