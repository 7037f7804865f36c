// File: /controllers/event_controller_test.go
package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
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

func newEventController(t *testing.T, db *gorm.DB) *EventController {
	t.Helper()

	events := repositories.NewEventRepository(db)
	notifications := services.NewNotificationService(db)
	participation := services.NewParticipationService(db, events, notifications)
	return NewEventController(db, events, participation, notifications)
}

func seedUser(t *testing.T, db *gorm.DB, id string) {
	t.Helper()

	user := models.User{ID: id, Name: id, Handle: id, Email: id + "@example.com", Password: "hashed"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", id, err)
	}
}

func seedEvent(t *testing.T, db *gorm.DB, id, organizerID string, isPublic bool) {
	t.Helper()

	event := models.Event{
		ID:          id,
		Title:       "Event " + id,
		Description: "desc",
		Category:    "social",
		OrganizerID: organizerID,
		StartsAt:    time.Now().Add(48 * time.Hour),
		EndsAt:      time.Now().Add(50 * time.Hour),
		IsPublic:    isPublic,
		IsOpen:      true,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to create event %s: %v", id, err)
	}
}

func acceptParticipant(t *testing.T, db *gorm.DB, eventID, userID string) {
	t.Helper()

	now := time.Now()
	participant := models.Participant{
		EventID:     eventID,
		UserID:      userID,
		Status:      models.ParticipationStatusAccepted,
		InvitedAt:   now,
		RespondedAt: &now,
	}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("failed to create participant: %v", err)
	}
}

func listEventsAs(t *testing.T, ec *EventController, userID string) []models.Event {
	t.Helper()

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/events/", nil)
	c.Set("user_id", userID)

	ec.GetEvents(c)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		Events []models.Event `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response.Events
}

func TestGetEventsVisibility(t *testing.T) {
	db := openTestDB(t)
	ec := newEventController(t, db)

	seedUser(t, db, "organizer")
	seedUser(t, db, "member")
	seedUser(t, db, "stranger")

	seedEvent(t, db, "pub", "organizer", true)
	seedEvent(t, db, "priv-joined", "organizer", false)
	seedEvent(t, db, "priv-other", "organizer", false)
	acceptParticipant(t, db, "priv-joined", "member")

	t.Run("accepted participant sees their private event", func(t *testing.T) {
		got := listEventsAs(t, ec, "member")

		ids := make(map[string]bool, len(got))
		for _, event := range got {
			ids[event.ID] = true
		}
		if !ids["pub"] || !ids["priv-joined"] {
			t.Errorf("expected pub and priv-joined, got %v", ids)
		}
		if ids["priv-other"] {
			t.Error("member must not see a private event they are not part of")
		}
	})

	t.Run("organizer sees all own events", func(t *testing.T) {
		got := listEventsAs(t, ec, "organizer")
		if len(got) != 3 {
			t.Errorf("expected 3 events for organizer, got %d", len(got))
		}
	})

	t.Run("outsider sees public events only", func(t *testing.T) {
		got := listEventsAs(t, ec, "stranger")
		if len(got) != 1 || got[0].ID != "pub" {
			t.Errorf("expected only the public event, got %+v", got)
		}
	})

	t.Run("pending participant does not qualify", func(t *testing.T) {
		seedUser(t, db, "waiting")
		participant := models.Participant{
			EventID:   "priv-other",
			UserID:    "waiting",
			Status:    models.ParticipationStatusPending,
			InvitedAt: time.Now(),
		}
		if err := db.Create(&participant).Error; err != nil {
			t.Fatalf("failed to create participant: %v", err)
		}

		got := listEventsAs(t, ec, "waiting")
		if len(got) != 1 || got[0].ID != "pub" {
			t.Errorf("expected only the public event for a pending participant, got %+v", got)
		}
	})
}
