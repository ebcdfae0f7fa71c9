package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/nattapongw/calendar-api/internal/email"
	"github.com/nattapongw/calendar-api/internal/line"
	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/pkg/metrics"
)

// EmailGateway renders reminders as plain-text mail. It exists for
// deployments that run the scheduler without a chat-platform token; the
// recipient id is used as the mail address.
type EmailGateway struct {
	sender  email.Service
	metrics *metrics.Metrics
}

func NewEmailGateway(sender email.Service, m *metrics.Metrics) *EmailGateway {
	return &EmailGateway{sender: sender, metrics: m}
}

func (g *EmailGateway) PushReminder(ctx context.Context, to string, event *model.Event, minutes int) error {
	subject := fmt.Sprintf("แจ้งเตือน: อีก %d นาที %s", minutes, event.Location)
	err := g.sender.Send(ctx, to, subject, formatEvent(event))
	g.observe(err)
	return err
}

func (g *EmailGateway) PushDailySummary(ctx context.Context, to string, events []*model.Event) error {
	subject := fmt.Sprintf("ตารางงานวันนี้ (%d งาน)", len(events))
	var b strings.Builder
	for i, event := range events {
		if i > 0 {
			b.WriteString("\n----\n")
		}
		b.WriteString(formatEvent(event))
	}
	err := g.sender.Send(ctx, to, subject, b.String())
	g.observe(err)
	return err
}

func (g *EmailGateway) PushEventAlert(ctx context.Context, to, text string, event *model.Event) error {
	err := g.sender.Send(ctx, to, text, formatEvent(event))
	g.observe(err)
	return err
}

func formatEvent(event *model.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", line.TypeLabel(event.Type), event.Location)
	fmt.Fprintf(&b, "วันที่: %s เวลา: %s น.\n", event.Date, event.Time)
	if event.Uniform != "" {
		fmt.Fprintf(&b, "การแต่งกาย: %s\n", event.Uniform)
	}
	if event.Details != "" {
		fmt.Fprintf(&b, "รายละเอียด: %s\n", event.Details)
	}
	if event.Notes != "" {
		fmt.Fprintf(&b, "หมายเหตุ: %s\n", event.Notes)
	}
	return b.String()
}

func (g *EmailGateway) observe(err error) {
	if g.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	g.metrics.GatewayPushes.WithLabelValues("email", status).Inc()
}
