package bot

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nattapongw/calendar-api/internal/line"
	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/internal/repository"
	"github.com/nattapongw/calendar-api/internal/service/audit"
	"github.com/nattapongw/calendar-api/internal/service/role"
	"github.com/nattapongw/calendar-api/pkg/logger"
)

// Service interprets chat messages from the bot webhook. All commands are in
// Thai, matching how the unit actually talks to the bot.
type Service struct {
	client  *line.Client
	events  repository.EventRepository
	roles   *role.Service
	audit   *audit.Service
	logger  *logger.Logger
	siteURL string
}

func NewService(
	client *line.Client,
	events repository.EventRepository,
	roles *role.Service,
	auditSvc *audit.Service,
	logger *logger.Logger,
	siteURL string,
) *Service {
	return &Service{
		client:  client,
		events:  events,
		roles:   roles,
		audit:   auditSvc,
		logger:  logger,
		siteURL: siteURL,
	}
}

// HandleEvent routes one webhook event. Errors are logged, not returned: the
// platform retries the whole batch on a non-200, which would replay commands
// that already ran.
func (s *Service) HandleEvent(ctx context.Context, ev *line.WebhookEvent) {
	if ev.Source == nil || ev.Source.UserID == "" {
		return
	}
	uid := ev.Source.UserID

	switch {
	case ev.Type == line.EventTypeFollow:
		s.handleFollow(ctx, uid)
	case ev.Type == line.EventTypeMessage && ev.Message != nil &&
		(ev.Message.Type == line.MessageTypeFile || ev.Message.Type == line.MessageTypeImage):
		s.handleFile(ctx, uid, ev.Message)
	case ev.Type == line.EventTypeMessage && ev.Message != nil && ev.Message.Type == line.MessageTypeText:
		s.handleText(ctx, uid, strings.TrimSpace(ev.Message.Text))
	}
}

func (s *Service) handleFollow(ctx context.Context, uid string) {
	displayName := ""
	if profile, err := s.client.GetProfile(ctx, uid); err == nil {
		displayName = profile.DisplayName
	}
	userRole, err := s.roles.EnsureUser(ctx, uid, displayName)
	if err != nil {
		s.logger.Error(err, "failed to register follower", "user_id", uid)
		return
	}

	msg := "ยินดีต้อนรับสู่ระบบตารางงาน! 🎉\n\n"
	switch userRole.Role {
	case model.RoleBoss:
		msg += "คุณได้รับสิทธิ์ Boss แล้ว\n\nคำสั่งที่ใช้ได้:\n• ตารางงานวันนี้\n• สั่งงานด่วน: ...\n• ส่งไฟล์\n• ช่วยเหลือ"
		if s.siteURL != "" {
			msg += "\n\nดูคู่มือเต็ม:\n" + s.siteURL + "/boss-help.html"
		}
	case model.RoleSecretary:
		msg += "คุณได้รับสิทธิ์เลขาแล้ว"
		if s.siteURL != "" {
			msg += "\n\nจัดการตารางที่:\n" + s.siteURL + "/secretary.html"
		}
	default:
		msg += "พิมพ์ 'ช่วยเหลือ' เพื่อดูคำสั่งที่ใช้ได้"
	}
	s.reply(ctx, uid, msg)
}

// handleFile forwards a boss's file or image to every secretary. Messages
// from other roles are ignored.
func (s *Service) handleFile(ctx context.Context, uid string, msg *line.WebhookMessage) {
	r, err := s.roles.Get(ctx, uid)
	if err != nil || r != model.RoleBoss {
		return
	}

	secretaries, err := s.roles.ListSecretaries(ctx)
	if err != nil {
		s.logger.Error(err, "failed to list secretaries", "user_id", uid)
		return
	}

	fileName := msg.FileName
	if fileName == "" {
		fileName = "ไฟล์จาก Boss"
	}
	fileType := "ไฟล์"
	if msg.Type == line.MessageTypeImage {
		fileType = "รูปภาพ"
	}
	for _, sec := range secretaries {
		s.reply(ctx, sec.UserID, fmt.Sprintf("📎 %s จาก Boss: %s\n\n(กรุณาเปิด LINE เพื่อดาวน์โหลดไฟล์)", fileType, fileName))
	}
	s.reply(ctx, uid, "✅ ส่งไฟล์ให้เลขาเรียบร้อยแล้ว")
}

var (
	urgentRe  = regexp.MustCompile(`^สั่งงานด่วน[：:]\s*`)
	dayOnlyRe = regexp.MustCompile(`(?:งานวันที่|วันที่)\s*(\d{1,2})(\D|$)`)
)

func (s *Service) handleText(ctx context.Context, uid, text string) {
	if _, err := s.roles.EnsureUser(ctx, uid, ""); err != nil {
		s.logger.Error(err, "failed to auto-register user", "user_id", uid)
	}

	switch {
	case isHelpCommand(text):
		s.sendHelp(ctx, uid)
	case urgentRe.MatchString(text):
		s.sendUrgentTask(ctx, uid, strings.TrimSpace(urgentRe.ReplaceAllString(text, "")))
	case text == "ตารางงานวันนี้" || text == "นัดหมายวันนี้":
		s.pushFlexForDate(ctx, uid, s.today().Format(model.DateLayout))
	case text == "จำนวนงานวันนี้":
		s.sendCount(ctx, uid, s.today().Format(model.DateLayout), "วันนี้")
	case text == "ตารางงานพรุ่งนี้" || text == "นัดหมายพรุ่งนี้":
		s.pushFlexForDate(ctx, uid, s.today().AddDate(0, 0, 1).Format(model.DateLayout))
	case text == "จำนวนงานพรุ่งนี้":
		s.sendCount(ctx, uid, s.today().AddDate(0, 0, 1).Format(model.DateLayout), "พรุ่งนี้")
	case text == "สรุปสัปดาห์":
		s.sendWeekSummary(ctx, uid)
	case text == "สรุปเดือน":
		s.sendMonthSummary(ctx, uid)
	default:
		if date, ok := s.parseDayOfMonth(text); ok {
			s.pushFlexForDate(ctx, uid, date)
		}
	}
}

func isHelpCommand(text string) bool {
	switch text {
	case "ช่วยเหลือ", "help", "Help", "คู่มือ", "วิธีใช้":
		return true
	}
	return false
}

func (s *Service) sendHelp(ctx context.Context, uid string) {
	r, err := s.roles.Get(ctx, uid)
	if err != nil {
		r = model.RoleViewer
	}
	switch r {
	case model.RoleBoss:
		msg := "📖 คู่มือการใช้งานสำหรับ Boss:"
		if s.siteURL != "" {
			msg += "\n\n" + s.siteURL + "/boss-help.html"
		}
		msg += "\n\nรวมคำสั่งและฟีเจอร์ทั้งหมดที่คุณสามารถใช้ได้"
		s.reply(ctx, uid, msg)
	case model.RoleSecretary:
		msg := "📖 คู่มือการใช้งานสำหรับเลขา:"
		if s.siteURL != "" {
			msg += "\n\n" + s.siteURL + "/secretary.html"
		}
		msg += "\n\nจัดการตารางงานและรายละเอียดต่างๆ"
		s.reply(ctx, uid, msg)
	default:
		s.reply(ctx, uid, "📖 คู่มือการใช้งาน:\n\nคำสั่งพื้นฐาน:\n• ตารางงานวันนี้\n• ตารางงานพรุ่งนี้\n• สรุปสัปดาห์\n• สรุปเดือน\n• วันที่ [เลข] (เช่น วันที่ 15)")
	}
}

// sendUrgentTask broadcasts a boss's message to every secretary.
func (s *Service) sendUrgentTask(ctx context.Context, uid, message string) {
	r, err := s.roles.Get(ctx, uid)
	if err != nil || r != model.RoleBoss {
		return
	}

	secretaries, err := s.roles.ListSecretaries(ctx)
	if err != nil {
		s.logger.Error(err, "failed to list secretaries", "user_id", uid)
		return
	}
	if len(secretaries) == 0 {
		s.reply(ctx, uid, "❌ ไม่พบเลขาในระบบ")
		return
	}

	bossName := "Boss"
	if profile, err := s.client.GetProfile(ctx, uid); err == nil && profile.DisplayName != "" {
		bossName = profile.DisplayName
	}
	for _, sec := range secretaries {
		s.reply(ctx, sec.UserID, fmt.Sprintf("🚨 งานด่วนจาก %s:\n\n%s", bossName, message))
	}
	s.reply(ctx, uid, fmt.Sprintf("✅ ส่งงานด่วนให้เลขา %d คนเรียบร้อยแล้ว", len(secretaries)))
	s.audit.Log(ctx, uid, model.AuditActionUrgentTask, "task", map[string]interface{}{
		"message":     message,
		"secretaries": len(secretaries),
	})
}

func (s *Service) sendCount(ctx context.Context, uid, date, label string) {
	count, err := s.events.CountForDate(ctx, date)
	if err != nil {
		s.logger.Error(err, "failed to count events", "date", date)
		return
	}
	s.reply(ctx, uid, fmt.Sprintf("%s (%s) มี %d รายการ", label, date, count))
}

// sendWeekSummary lists per-day counts for the Monday-based current week.
func (s *Service) sendWeekSummary(ctx context.Context, uid string) {
	base := s.today()
	monday := base.AddDate(0, 0, -((int(base.Weekday()) + 6) % 7))

	lines := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i).Format(model.DateLayout)
		count, err := s.events.CountForDate(ctx, date)
		if err != nil {
			s.logger.Error(err, "failed to count events", "date", date)
			return
		}
		lines = append(lines, fmt.Sprintf("%s: %d รายการ", date, count))
	}
	s.reply(ctx, uid, strings.Join(lines, "\n"))
}

func (s *Service) sendMonthSummary(ctx context.Context, uid string) {
	base := s.today()
	first := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, model.Bangkok)
	next := first.AddDate(0, 1, 0)

	events, err := s.events.ListForRange(ctx, first.Format(model.DateLayout), next.AddDate(0, 0, -1).Format(model.DateLayout))
	if err != nil {
		s.logger.Error(err, "failed to list month events")
		return
	}
	if len(events) == 0 {
		s.reply(ctx, uid, "ทั้งเดือนนี้ยังไม่มีรายการ")
		return
	}

	var out []string
	current := ""
	for _, ev := range events {
		if ev.Date != current {
			if current != "" {
				out = append(out, "")
			}
			out = append(out, "("+ev.Date+")")
			current = ev.Date
		}
		out = append(out, fmt.Sprintf("• %s %s@%s", ev.Time, line.TypeLabel(ev.Type), ev.Location))
	}
	s.reply(ctx, uid, strings.Join(out, "\n"))
}

// parseDayOfMonth reads "วันที่ N" as day N of the current Bangkok month.
func (s *Service) parseDayOfMonth(text string) (string, bool) {
	m := dayOnlyRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return "", false
	}
	base := s.today()
	date := time.Date(base.Year(), base.Month(), day, 0, 0, 0, 0, model.Bangkok)
	return date.Format(model.DateLayout), true
}

// pushFlexForDate sends a day's events as flex carousels, ten bubbles apiece.
func (s *Service) pushFlexForDate(ctx context.Context, uid, date string) {
	events, err := s.events.ListForDate(ctx, date)
	if err != nil {
		s.logger.Error(err, "failed to list events", "date", date)
		return
	}
	if len(events) == 0 {
		s.reply(ctx, uid, fmt.Sprintf("(%s) ไม่มีรายการ", date))
		return
	}

	for i := 0; i < len(events); i += line.MaxBubblesPerCarousel {
		end := i + line.MaxBubblesPerCarousel
		if end > len(events) {
			end = len(events)
		}
		flex := line.BuildFlexForEvents(events[i:end])
		if err := s.client.Push(ctx, uid, flex); err != nil {
			s.logger.Error(err, "failed to push schedule", "date", date, "user_id", uid)
		}
	}
}

func (s *Service) reply(ctx context.Context, uid, text string) {
	if err := s.client.PushText(ctx, uid, text); err != nil {
		s.logger.Error(err, "failed to push message", "user_id", uid)
	}
}

func (s *Service) today() time.Time {
	return time.Now().In(model.Bangkok)
}
