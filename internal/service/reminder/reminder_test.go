package reminder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/pkg/logger"
	"github.com/nattapongw/calendar-api/pkg/metrics"
)

func TestParseThresholds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"plain list", "10,20,30", []int{10, 20, 30}},
		{"spaces trimmed", " 120 , 60 ", []int{120, 60}},
		{"malformed tokens dropped", "abc,60,", []int{60}},
		{"out of range dropped", "2000,-5,60", []int{60}},
		{"zero allowed", "0,1440", []int{0, 1440}},
		{"empty", "", []int{}},
		{"all garbage", "x,y", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseThresholds(tt.input))
		})
	}
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, []int{30}, Defaults(model.EventTypeInUnit))
	assert.Equal(t, []int{60}, Defaults(model.EventTypeInDepartment))
	assert.Equal(t, []int{60}, Defaults(model.EventTypeHeadquarters))
	assert.Equal(t, []int{120, 60}, Defaults(model.EventTypeOffSite))
	assert.Equal(t, []int{60}, Defaults(model.EventType("mystery")))
}

func TestResolverOverride(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	r := NewResolver(store, testLogger())

	// No override stored.
	assert.Equal(t, []int{120, 60}, r.Resolve(ctx, model.EventTypeOffSite))

	store.settings[model.EventTypeOffSite] = &model.NotificationSetting{
		Type:       model.EventTypeOffSite,
		Thresholds: "10,20,30",
	}
	assert.Equal(t, []int{10, 20, 30}, r.Resolve(ctx, model.EventTypeOffSite))

	// An override with no usable token falls back to the defaults.
	store.settings[model.EventTypeOffSite].Thresholds = "abc,,"
	assert.Equal(t, []int{120, 60}, r.Resolve(ctx, model.EventTypeOffSite))
}

func TestMinutesUntil(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, model.Bangkok)

	assert.Equal(t, 60, MinutesUntil(now, now.Add(60*time.Minute)))
	assert.Equal(t, 59, MinutesUntil(now, now.Add(58*time.Minute+30*time.Second)))
	assert.Equal(t, 58, MinutesUntil(now, now.Add(58*time.Minute+29*time.Second)))
	assert.Equal(t, -5, MinutesUntil(now, now.Add(-5*time.Minute)))
	assert.Equal(t, 0, MinutesUntil(now, now.Add(10*time.Second)))
}

func TestIsDue(t *testing.T) {
	tests := []struct {
		diff, threshold, window int
		want                    bool
	}{
		{58, 60, 6, true},
		{60, 60, 6, true},
		{55, 60, 6, true},
		{54, 60, 6, false},
		{61, 60, 6, false},
		{-1, 0, 6, true},
		{-6, 0, 6, false},
		{118, 120, 6, true},
	}
	for _, tt := range tests {
		name := fmt.Sprintf("diff=%d threshold=%d", tt.diff, tt.threshold)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDue(tt.diff, tt.threshold, tt.window))
		})
	}
}

func TestDispatchSendsOncePerTriple(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, model.Bangkok)
	store := newFakeStore()
	gw := &fakeGateway{}

	ev := storeEvent(t, store, now.Add(60*time.Minute), model.EventTypeInDepartment)
	store.bosses = []string{"U1", "U2"}

	svc := newTestService(store, gw)

	res, err := svc.Dispatch(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Evaluated)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 0, res.Skipped)
	require.Len(t, gw.reminders, 2)
	assert.Equal(t, "U1", gw.reminders[0].to)
	assert.Equal(t, ev.ID, gw.reminders[0].event.ID)
	assert.Equal(t, 60, gw.reminders[0].minutes)

	// Next tick inside the same window: the ledger suppresses both.
	res, err = svc.Dispatch(ctx, now.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	assert.Equal(t, 2, res.Skipped)
	assert.Len(t, gw.reminders, 2)
}

func TestDispatchMultipleThresholds(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 7, 0, 0, 0, model.Bangkok)
	store := newFakeStore()
	gw := &fakeGateway{}

	// Off-site events remind at 120 and again at 60 minutes out.
	storeEvent(t, store, now.Add(120*time.Minute), model.EventTypeOffSite)
	store.bosses = []string{"U1"}
	svc := newTestService(store, gw)

	res, err := svc.Dispatch(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 120, gw.reminders[0].minutes)

	res, err = svc.Dispatch(ctx, now.Add(60*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 60, gw.reminders[1].minutes)
	assert.Len(t, store.ledger, 2)
}

func TestDispatchMarksBeforePush(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, model.Bangkok)
	store := newFakeStore()
	gw := &fakeGateway{failPush: true}

	storeEvent(t, store, now.Add(30*time.Minute), model.EventTypeInUnit)
	store.bosses = []string{"U1"}
	svc := newTestService(store, gw)

	res, err := svc.Dispatch(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	assert.Equal(t, 1, res.PushFailures)

	// The failed push was still recorded, so the next tick does not retry.
	gw.failPush = false
	res, err = svc.Dispatch(ctx, now.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, gw.reminders)
}

func TestDispatchLedgerWriteFailure(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, model.Bangkok)
	store := newFakeStore()
	store.failMark = true
	gw := &fakeGateway{}

	storeEvent(t, store, now.Add(30*time.Minute), model.EventTypeInUnit)
	store.bosses = []string{"U1"}
	svc := newTestService(store, gw)

	res, err := svc.Dispatch(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.MarkFailures)
	assert.Empty(t, gw.reminders, "a reminder must not be pushed without a ledger row")
}

func TestDispatchNoRecipients(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, model.Bangkok)
	store := newFakeStore()
	gw := &fakeGateway{}

	storeEvent(t, store, now.Add(30*time.Minute), model.EventTypeInUnit)
	svc := newTestService(store, gw)

	res, err := svc.Dispatch(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Evaluated)
	assert.Empty(t, gw.reminders)
}

func TestDispatchIgnoresOtherDays(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 23, 30, 0, 0, model.Bangkok)
	store := newFakeStore()
	gw := &fakeGateway{}

	// 00:30 tomorrow is 60 minutes away but belongs to tomorrow's date,
	// so tonight's ticks never see it.
	storeEvent(t, store, now.Add(60*time.Minute), model.EventTypeInDepartment)
	store.bosses = []string{"U1"}
	svc := newTestService(store, gw)

	res, err := svc.Dispatch(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Evaluated)
}

func TestMorningPing(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 30, 0, 0, model.Bangkok)
	store := newFakeStore()
	gw := &fakeGateway{}

	storeEvent(t, store, now.Add(6*time.Hour), model.EventTypeHeadquarters)
	store.bosses = []string{"U1", "U2"}
	svc := newTestService(store, gw)

	require.NoError(t, svc.MorningPing(ctx, now))
	assert.Len(t, gw.summaries, 2)

	// Unlike reminders the ping is not ledgered; a second call sends again.
	require.NoError(t, svc.MorningPing(ctx, now))
	assert.Len(t, gw.summaries, 4)
}

func TestMorningPingEmptyDay(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 8, 30, 0, 0, model.Bangkok)
	store := newFakeStore()
	store.bosses = []string{"U1"}
	gw := &fakeGateway{}
	svc := newTestService(store, gw)

	require.NoError(t, svc.MorningPing(ctx, now))
	assert.Empty(t, gw.summaries)
}

// ---- test doubles ----

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.FatalLevel})
}

func newTestService(store *fakeStore, gw *fakeGateway) *Service {
	return NewService(
		store, fakeRoles{store}, store,
		NewResolver(store, testLogger()),
		gw, nil,
		metrics.New("test"),
		testLogger(),
		DefaultWindowMinutes,
	)
}

func storeEvent(t *testing.T, store *fakeStore, startsAt time.Time, typ model.EventType) *model.Event {
	t.Helper()
	local := startsAt.In(model.Bangkok)
	ev := &model.Event{
		ID:       uuid.New(),
		Date:     local.Format(model.DateLayout),
		Time:     local.Format(model.TimeLayout),
		Type:     typ,
		Location: "กองบัญชาการ",
		Uniform:  "เครื่องแบบปกติ",
		Details:  "ประชุมประจำเดือน",
	}
	store.events = append(store.events, ev)
	return ev
}

type ledgerKey struct {
	eventID uuid.UUID
	kind    string
	target  string
}

// fakeStore backs the event, role, and notification repositories in memory.
type fakeStore struct {
	events   []*model.Event
	bosses   []string
	settings map[model.EventType]*model.NotificationSetting
	ledger   map[ledgerKey]time.Time
	failMark bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		settings: make(map[model.EventType]*model.NotificationSetting),
		ledger:   make(map[ledgerKey]time.Time),
	}
}

func (f *fakeStore) Create(ctx context.Context, event *model.Event) error { return nil }
func (f *fakeStore) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	return nil, nil
}
func (f *fakeStore) Update(ctx context.Context, event *model.Event) error { return nil }
func (f *fakeStore) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (f *fakeStore) List(ctx context.Context, limit int) ([]*model.Event, error) {
	return f.events, nil
}
func (f *fakeStore) ListForMonth(ctx context.Context, month string) ([]*model.Event, error) {
	return nil, nil
}
func (f *fakeStore) ListForDate(ctx context.Context, date string) ([]*model.Event, error) {
	var out []*model.Event
	for _, ev := range f.events {
		if ev.Date == date {
			out = append(out, ev)
		}
	}
	return out, nil
}
func (f *fakeStore) CountForDate(ctx context.Context, date string) (int, error) {
	evs, _ := f.ListForDate(ctx, date)
	return len(evs), nil
}
func (f *fakeStore) ListForRange(ctx context.Context, from, to string) ([]*model.Event, error) {
	return nil, nil
}

func (f *fakeStore) HasSent(ctx context.Context, eventID uuid.UUID, kind, target string) (bool, error) {
	_, ok := f.ledger[ledgerKey{eventID, kind, target}]
	return ok, nil
}
func (f *fakeStore) MarkSent(ctx context.Context, eventID uuid.UUID, kind, target string, sentAt time.Time) error {
	if f.failMark {
		return fmt.Errorf("ledger unavailable")
	}
	key := ledgerKey{eventID, kind, target}
	if _, ok := f.ledger[key]; !ok {
		f.ledger[key] = sentAt
	}
	return nil
}
func (f *fakeStore) GetSetting(ctx context.Context, eventType model.EventType) (*model.NotificationSetting, error) {
	return f.settings[eventType], nil
}
func (f *fakeStore) ListSettings(ctx context.Context) ([]*model.NotificationSetting, error) {
	return nil, nil
}
func (f *fakeStore) UpsertSetting(ctx context.Context, setting *model.NotificationSetting) error {
	f.settings[setting.Type] = setting
	return nil
}

// fakeRoles serves the boss roster from the shared store.
type fakeRoles struct {
	store *fakeStore
}

func (f fakeRoles) Get(ctx context.Context, userID string) (*model.UserRole, error) {
	return nil, nil
}
func (f fakeRoles) Upsert(ctx context.Context, role *model.UserRole) error { return nil }
func (f fakeRoles) List(ctx context.Context) ([]*model.UserRole, error)    { return nil, nil }
func (f fakeRoles) ListByRole(ctx context.Context, role model.Role) ([]*model.UserRole, error) {
	var out []*model.UserRole
	if role != model.RoleBoss {
		return out, nil
	}
	for _, id := range f.store.bosses {
		out = append(out, &model.UserRole{UserID: id, Role: model.RoleBoss})
	}
	return out, nil
}

type pushedReminder struct {
	to      string
	event   *model.Event
	minutes int
}

type fakeGateway struct {
	reminders []pushedReminder
	summaries []string
	failPush  bool
}

func (g *fakeGateway) PushReminder(ctx context.Context, to string, event *model.Event, minutes int) error {
	if g.failPush {
		return fmt.Errorf("gateway down")
	}
	g.reminders = append(g.reminders, pushedReminder{to, event, minutes})
	return nil
}

func (g *fakeGateway) PushDailySummary(ctx context.Context, to string, events []*model.Event) error {
	g.summaries = append(g.summaries, to)
	return nil
}
