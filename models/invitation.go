// File: /models/invitation.go
package models

import "time"

type RSVPResponse string

const (
	RSVPResponsePending  RSVPResponse = "pending"
	RSVPResponseAccepted RSVPResponse = "accepted"
	RSVPResponseDenied   RSVPResponse = "denied"
)

// Invitation is an organizer-issued, event-scoped request for one
// accepted participant. Content is immutable after creation; removal is
// a soft delete by the invitor. At most one non-deleted invitation may
// exist per (event, invitee) pair, enforced by a storage-level unique
// index over active rows.
type Invitation struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	EventID   string    `json:"event_id" gorm:"not null;size:191;index"`
	InvitorID string    `json:"invitor_id" gorm:"not null;size:191"`
	InviteeID string    `json:"invitee_id" gorm:"not null;size:191;index"`
	Content   string    `json:"content" gorm:"type:text"`
	SentAt    time.Time `json:"sent_at" gorm:"not null"`
	IsDeleted bool      `json:"is_deleted" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Event   Event `json:"event" gorm:"foreignKey:EventID"`
	Invitor User  `json:"invitor" gorm:"foreignKey:InvitorID"`
	Invitee User  `json:"invitee" gorm:"foreignKey:InviteeID"`
}

// RSVP is the invitee's single response to an invitation. A missing
// RSVP reads as pending. The response is set exactly once at creation;
// there is no update path.
type RSVP struct {
	ID           string       `json:"id" gorm:"primaryKey;size:191"`
	InvitationID string       `json:"invitation_id" gorm:"not null;size:191;index"`
	Response     RSVPResponse `json:"response" gorm:"not null;default:'pending';size:20"`
	RespondedAt  time.Time    `json:"responded_at" gorm:"not null"`
	IsDeleted    bool         `json:"is_deleted" gorm:"default:false"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	Invitation Invitation `json:"invitation" gorm:"foreignKey:InvitationID"`
}
