// File: /services/authz.go
package services

import (
	"gatherly-api/models"
	"gatherly-api/repositories"
	"gatherly-api/utils"
)

// Capability checks applied before every state mutation. Each either
// allows the call to proceed or returns a Forbidden error. A caller that
// fails a check learns the record exists; existence is not hidden here.

// EnsureOrganizer allows only the event's organizer through.
func EnsureOrganizer(event *models.Event, userID string) error {
	if event.OrganizerID != userID {
		return utils.NewForbidden("not_organizer", "Only the organizer may perform this action")
	}
	return nil
}

// EnsureSelf allows a user to touch only their own record.
func EnsureSelf(callerID, targetID string) error {
	if callerID != targetID {
		return utils.NewForbidden("not_self", "You may only modify your own profile")
	}
	return nil
}

// EnsureInvitationParty allows only the invitor or invitee of an invitation.
func EnsureInvitationParty(invitation *models.Invitation, userID string) error {
	if invitation.InvitorID != userID && invitation.InviteeID != userID {
		return utils.NewForbidden("not_invitation_party", "Only the invitor or invitee may access this invitation")
	}
	return nil
}

// EnsureEventAccess allows read access to an event: anyone for public
// events, the organizer and accepted participants for private ones.
func EnsureEventAccess(events *repositories.EventRepository, event *models.Event, userID string) error {
	if event.IsPublic || event.OrganizerID == userID {
		return nil
	}

	accepted, err := events.IsAcceptedParticipant(event.ID, userID)
	if err != nil {
		return err
	}
	if !accepted {
		return utils.NewForbidden("not_participant", "Only participants may access this event")
	}
	return nil
}
