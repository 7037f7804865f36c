// File: /models/notification.go
package models

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationTypeInvitation     NotificationType = "invitation"
	NotificationTypeRSVPAccepted   NotificationType = "rsvp_accepted"
	NotificationTypeRSVPDenied     NotificationType = "rsvp_denied"
	NotificationTypeNewPost        NotificationType = "new_post"
	NotificationTypeNewReply       NotificationType = "new_reply"
	NotificationTypeEventUpdated   NotificationType = "event_updated"
	NotificationTypeEventCancelled NotificationType = "event_cancelled"
	NotificationTypeEventReminder  NotificationType = "event_reminder"
	NotificationTypeJoinRequest    NotificationType = "join_request"
	NotificationTypeJoinAccepted   NotificationType = "join_accepted"
	NotificationTypeJoinDenied     NotificationType = "join_denied"
)

type Notification struct {
	ID        string           `json:"id" gorm:"primaryKey;size:191"`
	Type      NotificationType `json:"type" gorm:"not null;size:50"`
	Title     string           `json:"title" gorm:"not null;size:255"`
	Content   string           `json:"content" gorm:"not null;type:text"`
	IsDeleted bool             `json:"is_deleted" gorm:"default:false"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// UserNotification fans one Notification out to one recipient. Created
// in the same transaction as its Notification, never mutated except the
// read and soft-delete flags.
type UserNotification struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	NotificationID string    `json:"notification_id" gorm:"not null;size:191;index"`
	UserID         string    `json:"user_id" gorm:"not null;size:191;index"`
	IsRead         bool      `json:"is_read" gorm:"default:false"`
	IsDeleted      bool      `json:"is_deleted" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Notification Notification `json:"notification" gorm:"foreignKey:NotificationID"`
	User         User         `json:"user" gorm:"foreignKey:UserID"`
}

// NotificationResponse represents the API response for notifications
type NotificationResponse struct {
	ID        uint             `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	TimeAgo   string           `json:"time_ago"`
}

// NotificationStats represents notification statistics
type NotificationStats struct {
	UnreadCount int `json:"unread_count"`
	TotalCount  int `json:"total_count"`
}

// PaginatedNotifications represents paginated notification response
type PaginatedNotifications struct {
	Notifications []NotificationResponse `json:"notifications"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	Total         int64                  `json:"total"`
	HasMore       bool                   `json:"has_more"`
	TotalPages    int                    `json:"total_pages"`
}

// GetTimeAgo returns a human-readable time difference
func (un *UserNotification) GetTimeAgo() string {
	now := time.Now()
	diff := now.Sub(un.CreatedAt)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		minutes := int(diff.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / (24 * 7))
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	default:
		months := int(diff.Hours() / (24 * 30))
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	}
}

// ToResponse converts a UserNotification to its API shape
func (un *UserNotification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:        un.ID,
		Type:      un.Notification.Type,
		Title:     un.Notification.Title,
		Content:   un.Notification.Content,
		IsRead:    un.IsRead,
		CreatedAt: un.CreatedAt,
		TimeAgo:   un.GetTimeAgo(),
	}
}
