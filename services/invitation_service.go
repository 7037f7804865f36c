// File: /services/invitation_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gatherly-api/models"
	"gatherly-api/repositories"
	"gatherly-api/utils"
)

// InvitationService handles the organizer-issued invitation and the
// invitee's single RSVP. Both are soft-deleted, never updated in place.
type InvitationService struct {
	db            *gorm.DB
	events        *repositories.EventRepository
	invitations   *repositories.InvitationRepository
	notifications *NotificationService
}

func NewInvitationService(db *gorm.DB, events *repositories.EventRepository, invitations *repositories.InvitationRepository, notifications *NotificationService) *InvitationService {
	return &InvitationService{
		db:            db,
		events:        events,
		invitations:   invitations,
		notifications: notifications,
	}
}

// CreateInvitation issues an event-scoped invitation from the organizer
// to an accepted participant. At most one non-deleted invitation may
// exist per (event, invitee).
func (is *InvitationService) CreateInvitation(invitorID, eventID, inviteeID, content string) (*models.Invitation, error) {
	event, err := is.events.FindActiveEvent(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("event_not_found", "Event not found")
		}
		return nil, err
	}

	if err := EnsureOrganizer(event, invitorID); err != nil {
		return nil, err
	}

	var invitee models.User
	if err := is.db.First(&invitee, "id = ?", inviteeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("user_not_found", "Invitee not found")
		}
		return nil, err
	}

	accepted, err := is.events.IsAcceptedParticipant(eventID, inviteeID)
	if err != nil {
		return nil, err
	}
	if !accepted {
		return nil, utils.NewConflict("invitee_not_participant", "Invitee is not an accepted participant of this event")
	}

	exists, err := is.invitations.ActiveInvitationExists(eventID, inviteeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.NewConflict("invitation_exists", "An invitation for this participant already exists")
	}

	invitation := models.Invitation{
		ID:        uuid.New().String(),
		EventID:   eventID,
		InvitorID: invitorID,
		InviteeID: inviteeID,
		Content:   content,
		SentAt:    time.Now(),
	}

	if err := is.invitations.CreateInvitation(&invitation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewConflict("invitation_exists", "An invitation for this participant already exists")
		}
		return nil, err
	}

	invitorName := invitorID
	var invitor models.User
	if err := is.db.First(&invitor, "id = ?", invitorID).Error; err == nil {
		invitorName = invitor.Name
	}
	is.notifications.Dispatch([]string{inviteeID}, InvitationContent(event.Title, invitorName))

	return &invitation, nil
}

// GetInvitationByID returns an invitation to one of its two parties.
func (is *InvitationService) GetInvitationByID(userID, invitationID string) (*models.Invitation, error) {
	invitation, err := is.invitations.FindActiveInvitation(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("invitation_not_found", "Invitation not found")
		}
		return nil, err
	}

	if err := EnsureInvitationParty(invitation, userID); err != nil {
		return nil, err
	}

	return invitation, nil
}

// DeleteInvitation soft-deletes an invitation; invitor only.
func (is *InvitationService) DeleteInvitation(userID, invitationID string) (*models.Invitation, error) {
	invitation, err := is.invitations.FindActiveInvitation(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("invitation_not_found", "Invitation not found")
		}
		return nil, err
	}

	if invitation.InvitorID != userID {
		return nil, utils.NewForbidden("not_invitor", "Only the invitor may delete this invitation")
	}

	if err := is.invitations.SoftDeleteInvitation(invitation); err != nil {
		return nil, err
	}

	return invitation, nil
}

// ListInvitations returns the non-deleted invitations the user is a party to.
func (is *InvitationService) ListInvitations(userID string) ([]models.Invitation, error) {
	return is.invitations.ListInvitationsForUser(userID)
}

// CreateRSVP records the invitee's single response to an invitation.
// The response is set exactly once; there is no update path.
func (is *InvitationService) CreateRSVP(userID, invitationID string, response models.RSVPResponse) (*models.RSVP, error) {
	if response != models.RSVPResponseAccepted && response != models.RSVPResponseDenied && response != models.RSVPResponsePending {
		return nil, utils.NewInvalid("invalid_response", "Response must be accepted, denied or pending")
	}

	invitation, err := is.invitations.FindActiveInvitation(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("invitation_not_found", "Invitation not found")
		}
		return nil, err
	}

	if invitation.InviteeID != userID {
		return nil, utils.NewForbidden("not_invitee", "Only the invitee may respond to this invitation")
	}

	exists, err := is.invitations.ActiveRSVPExists(invitationID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.NewConflict("rsvp_exists", "This invitation has already been responded to")
	}

	rsvp := models.RSVP{
		ID:           uuid.New().String(),
		InvitationID: invitationID,
		Response:     response,
		RespondedAt:  time.Now(),
	}

	if err := is.invitations.CreateRSVP(&rsvp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewConflict("rsvp_exists", "This invitation has already been responded to")
		}
		return nil, err
	}

	is.notifyRSVP(invitation, response)

	return &rsvp, nil
}

// GetRSVPByID returns an RSVP to one of the invitation's two parties.
func (is *InvitationService) GetRSVPByID(userID, rsvpID string) (*models.RSVP, error) {
	rsvp, err := is.invitations.FindActiveRSVP(rsvpID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("rsvp_not_found", "RSVP not found")
		}
		return nil, err
	}

	if err := EnsureInvitationParty(&rsvp.Invitation, userID); err != nil {
		return nil, err
	}

	return rsvp, nil
}

// DeleteRSVP soft-deletes an RSVP; invitee only.
func (is *InvitationService) DeleteRSVP(userID, rsvpID string) (*models.RSVP, error) {
	rsvp, err := is.invitations.FindActiveRSVP(rsvpID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("rsvp_not_found", "RSVP not found")
		}
		return nil, err
	}

	if rsvp.Invitation.InviteeID != userID {
		return nil, utils.NewForbidden("not_invitee", "Only the invitee may delete this RSVP")
	}

	if err := is.invitations.SoftDeleteRSVP(rsvp); err != nil {
		return nil, err
	}

	return rsvp, nil
}

func (is *InvitationService) notifyRSVP(invitation *models.Invitation, response models.RSVPResponse) {
	if response == models.RSVPResponsePending {
		return
	}

	eventTitle := invitation.EventID
	var event models.Event
	if err := is.db.First(&event, "id = ?", invitation.EventID).Error; err == nil {
		eventTitle = event.Title
	}

	inviteeName := invitation.InviteeID
	var invitee models.User
	if err := is.db.First(&invitee, "id = ?", invitation.InviteeID).Error; err == nil {
		inviteeName = invitee.Name
	}

	if response == models.RSVPResponseAccepted {
		is.notifications.Dispatch([]string{invitation.InvitorID}, RSVPAcceptedContent(eventTitle, inviteeName))
	} else {
		is.notifications.Dispatch([]string{invitation.InvitorID}, RSVPDeniedContent(eventTitle, inviteeName))
	}
}
