// File: /models/event.go
package models

import (
	"time"
)

type ParticipationStatus string

const (
	ParticipationStatusPending  ParticipationStatus = "pending"
	ParticipationStatusAccepted ParticipationStatus = "accepted"
	ParticipationStatusDenied   ParticipationStatus = "denied"
	// Reserved for organizer-initiated invites; no operation produces it yet.
	ParticipationStatusInvited ParticipationStatus = "invited"
)

// IsTerminal reports whether the status can no longer change.
func (s ParticipationStatus) IsTerminal() bool {
	return s == ParticipationStatusAccepted || s == ParticipationStatusDenied
}

type Event struct {
	ID           string      `json:"id" gorm:"primaryKey;size:191"`
	Title        string      `json:"title" gorm:"not null;size:255"`
	Description  string      `json:"description" gorm:"not null;type:text"`
	Category     string      `json:"category" gorm:"not null;size:50"`
	OrganizerID  string      `json:"organizer_id" gorm:"not null;size:191"`
	StartsAt     time.Time   `json:"starts_at" gorm:"not null"`
	EndsAt       time.Time   `json:"ends_at" gorm:"not null"`
	Location     string      `json:"location" gorm:"size:500"`
	ImageUrls    StringSlice `json:"image_urls" gorm:"type:json"`
	IsPublic     bool        `json:"is_public" gorm:"default:false"`
	IsOpen       bool        `json:"is_open" gorm:"default:true"`
	IsDeleted    bool        `json:"is_deleted" gorm:"default:false"`
	ReminderSent bool        `json:"reminder_sent" gorm:"default:false"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	// The organizer is never listed among Participants; organizer access is implicit.
	Organizer    User          `json:"organizer" gorm:"foreignKey:OrganizerID"`
	Participants []Participant `json:"participants" gorm:"foreignKey:EventID"`
}

// Participant is one (event, user) membership record. Rows are never
// deleted, only mutated; the unique index on (event_id, user_id) is the
// storage-level guard against double joins.
type Participant struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	EventID     string              `json:"event_id" gorm:"not null;size:191;uniqueIndex:uk_participants_event_user"`
	UserID      string              `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_participants_event_user"`
	Status      ParticipationStatus `json:"status" gorm:"not null;default:'pending';size:20"`
	InvitedAt   time.Time           `json:"invited_at" gorm:"not null"`
	RespondedAt *time.Time          `json:"responded_at"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`

	Event Event `json:"event" gorm:"foreignKey:EventID"`
	User  User  `json:"user" gorm:"foreignKey:UserID"`
}
