package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
	"github.com/anjiri1684/study_platform/notifications"
)

// ReminderJob emails every student booked into an approved session whose
// class starts on the following day.
type ReminderJob struct {
	store  *database.Store
	mailer notifications.Mailer
	log    *zap.Logger
	now    func() time.Time
}

func NewReminderJob(store *database.Store, mailer notifications.Mailer, log *zap.Logger) *ReminderJob {
	return &ReminderJob{store: store, mailer: mailer, log: log, now: time.Now}
}

// Schedule registers the job on c under the given cron expression.
func (j *ReminderJob) Schedule(c *cron.Cron, spec string) error {
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := j.Run(ctx); err != nil {
			j.log.Error("class reminder run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule class reminders %q: %w", spec, err)
	}
	return nil
}

// Run sends the reminders and reports how many were delivered.
func (j *ReminderJob) Run(ctx context.Context) (int, error) {
	now := j.now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	sessions, err := j.store.Sessions.List(ctx, database.SessionFilter{
		Status:           models.StatusApproved,
		ClassStartAfter:  from,
		ClassStartBefore: to,
	})
	if err != nil {
		return 0, fmt.Errorf("list upcoming sessions: %w", err)
	}

	sent := 0
	for _, s := range sessions {
		bookings, err := j.store.Bookings.ListBySession(ctx, s.ID)
		if err != nil {
			return sent, fmt.Errorf("list bookings for session %s: %w", s.ID, err)
		}
		for _, b := range bookings {
			subject := "Reminder: " + s.Title + " starts tomorrow"
			body := fmt.Sprintf(
				"<h1>Class Reminder</h1><p>Hi there,</p><p>Your study session <b>%s</b> with %s starts on %s.</p>",
				s.Title, s.Tutor.Name, s.ClassStartDate.Format("Monday, 02 Jan 2006 15:04 MST"),
			)
			if err := j.mailer.Send(ctx, "", b.StudentEmail, subject, body); err != nil {
				j.log.Warn("class reminder not delivered", zap.String("to", b.StudentEmail), zap.Error(err))
				continue
			}
			sent++
		}
	}
	j.log.Info("class reminders sent", zap.Int("sessions", len(sessions)), zap.Int("emails", sent))
	return sent, nil
}
