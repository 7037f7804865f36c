// File: /database/database.go
package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gatherly-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
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
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Add custom indexes for better performance
	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	// Uniqueness constraints the lifecycle invariants rely on
	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_organizer_starts ON events(organizer_id, starts_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for events: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_public_starts ON events(is_public, starts_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for public events: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_user_notifications_user_created ON user_notifications(user_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for user_notifications: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_chat_messages_event_created ON chat_messages(event_id, created_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for chat_messages: %v\n", err)
	}

	return nil
}

// addDatabaseConstraints closes the check-then-insert race windows at
// the storage layer. Soft-deleted rows are excluded from uniqueness via
// a generated column that is NULL when deleted: MySQL ignores NULL key
// parts in unique indexes, so any number of deleted rows may coexist
// while at most one active row per pair is allowed.
func addDatabaseConstraints(db *gorm.DB) error {
	// One participant record per (event, user), deleted never happens here
	if err := db.Exec("ALTER TABLE participants ADD CONSTRAINT uk_participants_event_user UNIQUE (event_id, user_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add unique constraint for participants: %v\n", err)
	}

	// One active invitation per (event, invitee)
	if err := db.Exec("ALTER TABLE invitations ADD COLUMN active TINYINT GENERATED ALWAYS AS (IF(is_deleted, NULL, 1)) STORED").Error; err != nil {
		fmt.Printf("Warning: Could not add active column for invitations: %v\n", err)
	}
	if err := db.Exec("ALTER TABLE invitations ADD CONSTRAINT uk_invitations_event_invitee_active UNIQUE (event_id, invitee_id, active)").Error; err != nil {
		fmt.Printf("Warning: Could not add unique constraint for invitations: %v\n", err)
	}

	// One active RSVP per invitation
	if err := db.Exec("ALTER TABLE rsvps ADD COLUMN active TINYINT GENERATED ALWAYS AS (IF(is_deleted, NULL, 1)) STORED").Error; err != nil {
		fmt.Printf("Warning: Could not add active column for rsvps: %v\n", err)
	}
	if err := db.Exec("ALTER TABLE rsvps ADD CONSTRAINT uk_rsvps_invitation_active UNIQUE (invitation_id, active)").Error; err != nil {
		fmt.Printf("Warning: Could not add unique constraint for rsvps: %v\n", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	testUsers := []models.User{
		{
			ID:            "user-1",
			Name:          "John Doe",
			Handle:        "john_doe",
			Email:         "john@example.com",
			Password:      "$2a$10$dummy", // This should be properly hashed in real scenarios
			EmailVerified: true,
		},
		{
			ID:            "user-2",
			Name:          "Jane Smith",
			Handle:        "jane_smith",
			Email:         "jane@example.com",
			Password:      "$2a$10$dummy",
			EmailVerified: true,
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Handle, err)
		}
	}

	fmt.Println("Database seeded with test data")
	return nil
}
