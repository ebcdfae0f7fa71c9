package settings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nattapongw/calendar-api/internal/model"
	"github.com/nattapongw/calendar-api/internal/service/audit"
	"github.com/nattapongw/calendar-api/pkg/logger"
)

func newTestService() (*Service, *fakeRepo) {
	repo := &fakeRepo{settings: make(map[model.EventType]*model.NotificationSetting)}
	lg := logger.NewLogger(&logger.Config{Level: logger.FatalLevel})
	return NewService(repo, audit.NewService(&fakeAuditRepo{}, lg)), repo
}

func TestUpdateNormalizes(t *testing.T) {
	svc, repo := newTestService()

	saved, err := svc.Update(context.Background(), "console", &model.UpdateSettingRequest{
		Type:       "off_site",
		Thresholds: " 120 , 60 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "120,60", saved.Thresholds)
	assert.Equal(t, "120,60", repo.settings[model.EventTypeOffSite].Thresholds)
}

func TestUpdateRejectsBadInput(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name       string
		typ        string
		thresholds string
	}{
		{"unknown type", "banquet", "60"},
		{"non-numeric token", "off_site", "abc,60"},
		{"negative", "off_site", "-10"},
		{"above one day", "off_site", "1500"},
		{"empty list", "off_site", " , ,"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(ctx, "console", &model.UpdateSettingRequest{
				Type:       tc.typ,
				Thresholds: tc.thresholds,
			})
			assert.Error(t, err)
		})
	}
}

func TestUpdateAllowsBoundaryValues(t *testing.T) {
	svc, _ := newTestService()

	saved, err := svc.Update(context.Background(), "console", &model.UpdateSettingRequest{
		Type:       "in_unit",
		Thresholds: "0,1440",
	})
	require.NoError(t, err)
	assert.Equal(t, "0,1440", saved.Thresholds)
}

type fakeRepo struct {
	settings map[model.EventType]*model.NotificationSetting
}

func (f *fakeRepo) HasSent(ctx context.Context, eventID uuid.UUID, kind, target string) (bool, error) {
	return false, nil
}
func (f *fakeRepo) MarkSent(ctx context.Context, eventID uuid.UUID, kind, target string, sentAt time.Time) error {
	return nil
}
func (f *fakeRepo) GetSetting(ctx context.Context, eventType model.EventType) (*model.NotificationSetting, error) {
	return f.settings[eventType], nil
}
func (f *fakeRepo) ListSettings(ctx context.Context) ([]*model.NotificationSetting, error) {
	out := make([]*model.NotificationSetting, 0, len(f.settings))
	for _, s := range f.settings {
		out = append(out, s)
	}
	return out, nil
}
func (f *fakeRepo) UpsertSetting(ctx context.Context, setting *model.NotificationSetting) error {
	f.settings[setting.Type] = setting
	return nil
}

type fakeAuditRepo struct {
	logs []*model.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, log *model.AuditLog) error {
	f.logs = append(f.logs, log)
	return nil
}
func (f *fakeAuditRepo) List(ctx context.Context, action string, limit int) ([]*model.AuditLog, error) {
	return f.logs, nil
}
func (f *fakeAuditRepo) ListRecentUsers(ctx context.Context, limit int) ([]*model.RecentUser, error) {
	return nil, nil
}
func (f *fakeAuditRepo) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}
