// File: /jobs/scheduler_test.go
package jobs

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gatherly-api/models"
	"gatherly-api/repositories"
	"gatherly-api/services"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Participant{},
		&models.Notification{},
		&models.UserNotification{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) {
	t.Helper()

	user := models.User{
		ID:     id,
		Name:   id,
		Handle: id,
		Email:  id + "@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", id, err)
	}
}

func seedEvent(t *testing.T, db *gorm.DB, id, organizerID string, startsAt time.Time, reminderSent bool) {
	t.Helper()

	event := models.Event{
		ID:           id,
		Title:        "Event " + id,
		Description:  "desc",
		Category:     "social",
		OrganizerID:  organizerID,
		StartsAt:     startsAt,
		EndsAt:       startsAt.Add(2 * time.Hour),
		IsPublic:     true,
		ReminderSent: reminderSent,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to create event %s: %v", id, err)
	}
}

func TestSchedulerAdd(t *testing.T) {
	db := openTestDB(t)
	scheduler := NewScheduler(db, services.NewNotificationService(db))

	t.Run("known kinds schedule", func(t *testing.T) {
		if err := scheduler.Add(KindEventReminder, time.Hour); err != nil {
			t.Errorf("Add(KindEventReminder) failed: %v", err)
		}
		if err := scheduler.Add(KindNotificationCleanup, time.Hour); err != nil {
			t.Errorf("Add(KindNotificationCleanup) failed: %v", err)
		}
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		if err := scheduler.Add(Kind("defrag"), time.Hour); err == nil {
			t.Error("expected error for unknown job kind")
		}
	})
}

func TestSendEventReminders(t *testing.T) {
	db := openTestDB(t)
	notifications := services.NewNotificationService(db)
	scheduler := NewScheduler(db, notifications)
	events := repositories.NewEventRepository(db)

	seedUser(t, db, "organizer")
	seedUser(t, db, "member")

	// Starting soon, reminder due.
	seedEvent(t, db, "soon", "organizer", time.Now().Add(2*time.Hour), false)
	// Too far out.
	seedEvent(t, db, "later", "organizer", time.Now().Add(72*time.Hour), false)
	// Already reminded.
	seedEvent(t, db, "done", "organizer", time.Now().Add(2*time.Hour), true)

	now := time.Now()
	participant := models.Participant{
		EventID:     "soon",
		UserID:      "member",
		Status:      models.ParticipationStatusAccepted,
		InvitedAt:   now,
		RespondedAt: &now,
	}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("failed to create participant: %v", err)
	}

	if err := scheduler.sendEventReminders(events, notifications); err != nil {
		t.Fatalf("sendEventReminders failed: %v", err)
	}

	for _, userID := range []string{"member", "organizer"} {
		var count int64
		db.Model(&models.UserNotification{}).Where("user_id = ?", userID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 reminder for %s, got %d", userID, count)
		}
	}

	var soon models.Event
	if err := db.First(&soon, "id = ?", "soon").Error; err != nil {
		t.Fatalf("failed to reload event: %v", err)
	}
	if !soon.ReminderSent {
		t.Error("expected reminder_sent to be set")
	}

	// A second pass must not re-send.
	if err := scheduler.sendEventReminders(events, notifications); err != nil {
		t.Fatalf("second sendEventReminders failed: %v", err)
	}
	var total int64
	db.Model(&models.UserNotification{}).Count(&total)
	if total != 2 {
		t.Errorf("expected 2 reminders total after second pass, got %d", total)
	}
}

func TestCleanupNotifications(t *testing.T) {
	db := openTestDB(t)
	scheduler := NewScheduler(db, services.NewNotificationService(db))

	seedUser(t, db, "alice")

	old := models.Notification{ID: "old", Type: models.NotificationTypeNewPost, Title: "t", Content: "c"}
	fresh := models.Notification{ID: "fresh", Type: models.NotificationTypeNewPost, Title: "t", Content: "c"}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}
	if err := db.Create(&fresh).Error; err != nil {
		t.Fatalf("failed to create notification: %v", err)
	}

	rows := []models.UserNotification{
		{NotificationID: "old", UserID: "alice", IsDeleted: true},
		{NotificationID: "fresh", UserID: "alice", IsDeleted: false},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("failed to create user notification: %v", err)
		}
	}

	// Age the soft-deleted row past the retention window.
	stale := time.Now().Add(-40 * 24 * time.Hour)
	if err := db.Model(&models.UserNotification{}).Where("id = ?", rows[0].ID).
		UpdateColumn("updated_at", stale).Error; err != nil {
		t.Fatalf("failed to backdate row: %v", err)
	}

	if err := scheduler.cleanupNotifications(); err != nil {
		t.Fatalf("cleanupNotifications failed: %v", err)
	}

	var remaining int64
	db.Model(&models.UserNotification{}).Count(&remaining)
	if remaining != 1 {
		t.Errorf("expected 1 remaining recipient row, got %d", remaining)
	}

	var bodies []models.Notification
	if err := db.Find(&bodies).Error; err != nil {
		t.Fatalf("failed to load notifications: %v", err)
	}
	if len(bodies) != 1 || bodies[0].ID != "fresh" {
		t.Errorf("expected only the fresh body to survive, got %+v", bodies)
	}
}
