package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anjiri1684/study_platform/database/memstore"
	"github.com/anjiri1684/study_platform/models"
)

type recordingMailer struct {
	mu  sync.Mutex
	got []string
}

func (m *recordingMailer) Send(_ context.Context, _, toEmail, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.got = append(m.got, toEmail)
	return nil
}

func TestReminderJobRun(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	now := time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)
	tomorrow := now.Add(26 * time.Hour)

	sessions := []*models.StudySession{
		{Title: "Go basics", Status: models.StatusApproved, ClassStartDate: tomorrow},
		{Title: "Pending one", Status: models.StatusPending, ClassStartDate: tomorrow},
		{Title: "Next week", Status: models.StatusApproved, ClassStartDate: now.AddDate(0, 0, 7)},
	}
	for _, s := range sessions {
		_, err := store.Sessions.Insert(ctx, s)
		require.NoError(t, err)
	}
	for i, email := range []string{"a@x.io", "b@x.io"} {
		_, err := store.Bookings.InsertIfAbsent(ctx, &models.Booking{SessionID: sessions[0].ID, StudentEmail: email})
		require.NoError(t, err, i)
	}
	_, err := store.Bookings.InsertIfAbsent(ctx, &models.Booking{SessionID: sessions[1].ID, StudentEmail: "c@x.io"})
	require.NoError(t, err)

	mailer := &recordingMailer{}
	job := NewReminderJob(store, mailer, zap.NewNop())
	job.now = func() time.Time { return now }

	sent, err := job.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.ElementsMatch(t, []string{"a@x.io", "b@x.io"}, mailer.got)
}

func TestReminderJobScheduleRejectsBadExpression(t *testing.T) {
	job := NewReminderJob(memstore.New(), &recordingMailer{}, zap.NewNop())
	c := cron.New()
	assert.Error(t, job.Schedule(c, "not a cron"))
	assert.NoError(t, job.Schedule(c, "0 8 * * *"))
	assert.Len(t, c.Entries(), 1)
}
