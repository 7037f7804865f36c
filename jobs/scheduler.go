// File: /jobs/scheduler.go
package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"gatherly-api/models"
	"gatherly-api/repositories"
	"gatherly-api/services"
)

// Kind identifies a background job. The set is closed: Add rejects any
// kind without a registered handler.
type Kind string

const (
	KindEventReminder       Kind = "event_reminder"
	KindNotificationCleanup Kind = "notification_cleanup"
)

// Handler runs one pass of a job.
type Handler func() error

type scheduledJob struct {
	kind     Kind
	interval time.Duration
	ticker   *time.Ticker
}

// Scheduler runs registered jobs on fixed intervals. Handlers are bound
// at construction; Add only picks which of them run and how often.
type Scheduler struct {
	db       *gorm.DB
	handlers map[Kind]Handler
	jobs     []*scheduledJob
	done     chan bool
}

func NewScheduler(db *gorm.DB, notifications *services.NotificationService) *Scheduler {
	s := &Scheduler{
		db:   db,
		done: make(chan bool),
	}

	events := repositories.NewEventRepository(db)
	s.handlers = map[Kind]Handler{
		KindEventReminder:       func() error { return s.sendEventReminders(events, notifications) },
		KindNotificationCleanup: func() error { return s.cleanupNotifications() },
	}

	return s
}

// Add schedules a job kind at the given interval.
func (s *Scheduler) Add(kind Kind, interval time.Duration) error {
	if _, known := s.handlers[kind]; !known {
		return fmt.Errorf("unknown job kind: %s", kind)
	}

	s.jobs = append(s.jobs, &scheduledJob{
		kind:     kind,
		interval: interval,
		ticker:   time.NewTicker(interval),
	})
	return nil
}

// Start launches one goroutine per scheduled job. Each runs once
// immediately, then on its interval.
func (s *Scheduler) Start() {
	for _, job := range s.jobs {
		job := job
		fmt.Printf("Job %s started (every %s)\n", job.kind, job.interval)

		go func() {
			s.run(job.kind)

			for {
				select {
				case <-job.ticker.C:
					s.run(job.kind)
				case <-s.done:
					fmt.Printf("Job %s stopped\n", job.kind)
					return
				}
			}
		}()
	}
}

// Stop halts all scheduled jobs.
func (s *Scheduler) Stop() {
	for _, job := range s.jobs {
		job.ticker.Stop()
	}
	close(s.done)
}

func (s *Scheduler) run(kind Kind) {
	if err := s.handlers[kind](); err != nil {
		fmt.Printf("Job %s failed: %v\n", kind, err)
	}
}

// sendEventReminders notifies accepted participants of events starting
// within the next 24 hours. ReminderSent keeps each event to one
// reminder even across restarts.
func (s *Scheduler) sendEventReminders(events *repositories.EventRepository, notifications *services.NotificationService) error {
	now := time.Now()

	var upcoming []models.Event
	if err := s.db.Where("is_deleted = ? AND reminder_sent = ?", false, false).
		Where("starts_at > ? AND starts_at <= ?", now, now.Add(24*time.Hour)).
		Find(&upcoming).Error; err != nil {
		return err
	}

	for _, event := range upcoming {
		userIDs, err := events.AcceptedUserIDs(event.ID)
		if err != nil {
			fmt.Printf("Failed to load participants for event %s: %v\n", event.ID, err)
			continue
		}
		userIDs = append(userIDs, event.OrganizerID)

		notifications.Dispatch(userIDs, services.EventReminderContent(event.Title, event.StartsAt))

		if err := s.db.Model(&models.Event{}).Where("id = ?", event.ID).
			Update("reminder_sent", true).Error; err != nil {
			fmt.Printf("Failed to mark reminder sent for event %s: %v\n", event.ID, err)
		}
	}

	return nil
}

// cleanupNotifications purges per-user notification rows soft-deleted
// more than 30 days ago, then orphaned notification bodies.
func (s *Scheduler) cleanupNotifications() error {
	cutoff := time.Now().Add(-30 * 24 * time.Hour)

	if err := s.db.Where("is_deleted = ? AND updated_at < ?", true, cutoff).
		Delete(&models.UserNotification{}).Error; err != nil {
		return err
	}

	return s.db.Where("id NOT IN (?)",
		s.db.Model(&models.UserNotification{}).Select("notification_id"),
	).Delete(&models.Notification{}).Error
}
