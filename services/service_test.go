// File: /services/service_test.go
package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gatherly-api/models"
)

// openTestDB returns an in-memory database migrated to the full schema,
// including the partial unique indexes the lifecycle invariants rely on.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A second pooled connection to :memory: would see an empty database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Participant{},
		&models.Invitation{},
		&models.RSVP{},
		&models.Notification{},
		&models.UserNotification{},
		&models.Post{},
		&models.Reply{},
		&models.ChatMessage{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	constraints := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uk_invitations_event_invitee_active ON invitations(event_id, invitee_id) WHERE is_deleted = 0",
		"CREATE UNIQUE INDEX IF NOT EXISTS uk_rsvps_invitation_active ON rsvps(invitation_id) WHERE is_deleted = 0",
	}
	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create constraint: %v", err)
		}
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, id, name string) *models.User {
	t.Helper()

	user := models.User{
		ID:            id,
		Name:          name,
		Handle:        id,
		Email:         id + "@example.com",
		Password:      "hashed",
		EmailVerified: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", id, err)
	}
	return &user
}

func createTestEvent(t *testing.T, db *gorm.DB, id, organizerID string, isPublic, isOpen bool) *models.Event {
	t.Helper()

	event := models.Event{
		ID:          id,
		Title:       "Event " + id,
		Description: "A test gathering",
		Category:    "social",
		OrganizerID: organizerID,
		StartsAt:    time.Now().Add(48 * time.Hour),
		EndsAt:      time.Now().Add(50 * time.Hour),
		IsPublic:    isPublic,
		IsOpen:      isOpen,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to create event %s: %v", id, err)
	}
	return &event
}

// notificationsFor returns the notification types delivered to a user,
// oldest first.
func notificationsFor(t *testing.T, db *gorm.DB, userID string) []models.NotificationType {
	t.Helper()

	var rows []models.UserNotification
	if err := db.Preload("Notification").
		Where("user_id = ?", userID).
		Order("id ASC").Find(&rows).Error; err != nil {
		t.Fatalf("failed to load notifications for %s: %v", userID, err)
	}

	types := make([]models.NotificationType, 0, len(rows))
	for _, row := range rows {
		types = append(types, row.Notification.Type)
	}
	return types
}
