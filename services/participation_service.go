// File: /services/participation_service.go
package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"gatherly-api/models"
	"gatherly-api/repositories"
	"gatherly-api/utils"
)

// ParticipationService governs the per-(event, user) membership state
// machine: none → pending → accepted|denied, or straight to accepted
// when the event is public. A status transitions exactly once.
type ParticipationService struct {
	db            *gorm.DB
	events        *repositories.EventRepository
	notifications *NotificationService
}

func NewParticipationService(db *gorm.DB, events *repositories.EventRepository, notifications *NotificationService) *ParticipationService {
	return &ParticipationService{
		db:            db,
		events:        events,
		notifications: notifications,
	}
}

// Join records a request to join the event. Public events auto-accept;
// private events leave the request pending for the organizer. One
// request per user per event, ever — the unique participant index
// serializes racing joins.
func (ps *ParticipationService) Join(eventID, userID string) (*models.Event, error) {
	event, err := ps.events.FindActiveEvent(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("event_not_found", "Event not found")
		}
		return nil, err
	}

	if event.OrganizerID == userID {
		return nil, utils.NewConflict("organizer_cannot_join", "The organizer is already part of the event")
	}

	if !event.IsOpen {
		return nil, utils.NewConflict("event_closed", "Event is not accepting new participants")
	}

	if _, err := ps.events.FindParticipant(eventID, userID); err == nil {
		return nil, utils.NewConflict("already_requested", "Already requested to join this event")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	participant := models.Participant{
		EventID:   eventID,
		UserID:    userID,
		Status:    models.ParticipationStatusPending,
		InvitedAt: now,
	}
	if event.IsPublic {
		participant.Status = models.ParticipationStatusAccepted
		participant.RespondedAt = &now
	}

	if err := ps.events.CreateParticipant(&participant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewConflict("already_requested", "Already requested to join this event")
		}
		return nil, err
	}

	if participant.Status == models.ParticipationStatusPending {
		ps.notifyJoinRequest(event, userID)
	}

	return ps.events.FindEventWithParticipants(eventID)
}

// RespondJoin lets the organizer accept or deny a pending join request.
// The decision is final; a non-pending participant cannot be responded
// to again.
func (ps *ParticipationService) RespondJoin(eventID, organizerID, targetUserID string, decision models.ParticipationStatus) (*models.Event, error) {
	if decision != models.ParticipationStatusAccepted && decision != models.ParticipationStatusDenied {
		return nil, utils.NewInvalid("invalid_decision", "Decision must be accepted or denied")
	}

	event, err := ps.events.FindActiveEvent(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("event_not_found", "Event not found")
		}
		return nil, err
	}

	if err := EnsureOrganizer(event, organizerID); err != nil {
		return nil, err
	}

	participant, err := ps.events.FindParticipant(eventID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("participant_not_found", "No join request from this user")
		}
		return nil, err
	}

	if participant.Status != models.ParticipationStatusPending {
		return nil, utils.NewConflict("already_responded", "This join request has already been responded to")
	}

	// Conditional update keyed on the pending status; a concurrent
	// response makes this a no-op and we report the conflict.
	err = ps.events.TransitionParticipant(participant.ID, models.ParticipationStatusPending, decision)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewConflict("already_responded", "This join request has already been responded to")
		}
		return nil, err
	}

	if decision == models.ParticipationStatusAccepted {
		ps.notifications.Dispatch([]string{targetUserID}, JoinAcceptedContent(event.Title))
	} else {
		ps.notifications.Dispatch([]string{targetUserID}, JoinDeniedContent(event.Title))
	}

	return ps.events.FindEventWithParticipants(eventID)
}

// ListParticipants returns an event's membership records, optionally
// filtered by status. Pending requests are organizer-only.
func (ps *ParticipationService) ListParticipants(eventID, callerID string, status models.ParticipationStatus) ([]models.Participant, error) {
	event, err := ps.events.FindActiveEvent(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("event_not_found", "Event not found")
		}
		return nil, err
	}

	if status == models.ParticipationStatusPending {
		if err := EnsureOrganizer(event, callerID); err != nil {
			return nil, err
		}
	} else {
		if err := EnsureEventAccess(ps.events, event, callerID); err != nil {
			return nil, err
		}
	}

	return ps.events.ListParticipants(eventID, status)
}

func (ps *ParticipationService) notifyJoinRequest(event *models.Event, requesterID string) {
	requesterName := requesterID
	if user, err := ps.lookupUser(requesterID); err == nil {
		requesterName = user.Name
	}
	ps.notifications.Dispatch([]string{event.OrganizerID}, JoinRequestContent(event.Title, requesterName))
}

func (ps *ParticipationService) lookupUser(userID string) (*models.User, error) {
	var user models.User
	if err := ps.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
