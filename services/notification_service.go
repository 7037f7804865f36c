// File: /services/notification_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gatherly-api/models"
	"gatherly-api/utils"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Create persists one Notification and one UserNotification per
// recipient, all-or-nothing. Every recipient ID must resolve to an
// existing user; if any one is unknown nothing is written.
func (ns *NotificationService) Create(userIDs []string, ntype models.NotificationType, title, content string) (*models.Notification, error) {
	recipients := dedupeIDs(userIDs)
	if len(recipients) == 0 {
		return nil, utils.NewInvalid("no_recipients", "At least one recipient is required")
	}

	notification := models.Notification{
		ID:      uuid.New().String(),
		Type:    ntype,
		Title:   title,
		Content: content,
	}

	err := ns.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("id IN ?", recipients).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(recipients)) {
			return utils.NewNotFound("users_not_found", "Some users not found")
		}

		if err := tx.Create(&notification).Error; err != nil {
			return err
		}

		for _, userID := range recipients {
			userNotification := models.UserNotification{
				NotificationID: notification.ID,
				UserID:         userID,
			}
			if err := tx.Create(&userNotification).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &notification, nil
}

// Dispatch is the fire-and-forget path used after state transitions. A
// dispatch failure is logged and never surfaced: the primary mutation
// has already committed and must stay committed.
func (ns *NotificationService) Dispatch(userIDs []string, content NotificationContent) {
	if _, err := ns.Create(userIDs, content.Type, content.Title, content.Content); err != nil {
		fmt.Printf("Failed to dispatch %s notification: %v\n", content.Type, err)
	}
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
