// File: /repositories/event_repository.go
package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"gatherly-api/models"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// FindActiveEvent retrieves a non-deleted event by ID.
func (r *EventRepository) FindActiveEvent(eventID string) (*models.Event, error) {
	var event models.Event
	err := r.db.Where("id = ? AND is_deleted = ?", eventID, false).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindEventWithParticipants retrieves a non-deleted event with its participant list.
func (r *EventRepository) FindEventWithParticipants(eventID string) (*models.Event, error) {
	var event models.Event
	err := r.db.Preload("Participants").Preload("Participants.User").
		Where("id = ? AND is_deleted = ?", eventID, false).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindParticipant retrieves the membership record for a (event, user) pair.
func (r *EventRepository) FindParticipant(eventID, userID string) (*models.Participant, error) {
	var participant models.Participant
	err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// CreateParticipant inserts a new membership record. The unique index on
// (event_id, user_id) makes this the serialization point for racing joins.
func (r *EventRepository) CreateParticipant(participant *models.Participant) error {
	return r.db.Create(participant).Error
}

// TransitionParticipant moves a participant from `from` to `to` and
// stamps responded_at, as a single conditional update. Returns
// ErrRecordNotFound when the row was not in `from` anymore, which is how
// racing responses lose.
func (r *EventRepository) TransitionParticipant(participantID uint, from, to models.ParticipationStatus) error {
	now := time.Now()
	result := r.db.Model(&models.Participant{}).
		Where("id = ? AND status = ?", participantID, from).
		Updates(map[string]interface{}{
			"status":       to,
			"responded_at": &now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListParticipants returns all membership records of an event, optionally
// filtered by status.
func (r *EventRepository) ListParticipants(eventID string, status models.ParticipationStatus) ([]models.Participant, error) {
	var participants []models.Participant
	query := r.db.Preload("User").Where("event_id = ?", eventID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at ASC").Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// AcceptedUserIDs returns the user IDs of all accepted participants.
func (r *EventRepository) AcceptedUserIDs(eventID string) ([]string, error) {
	var userIDs []string
	err := r.db.Model(&models.Participant{}).
		Where("event_id = ? AND status = ?", eventID, models.ParticipationStatusAccepted).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

// IsAcceptedParticipant reports whether the user is an accepted
// participant of the event.
func (r *EventRepository) IsAcceptedParticipant(eventID, userID string) (bool, error) {
	var participant models.Participant
	err := r.db.Where("event_id = ? AND user_id = ? AND status = ?",
		eventID, userID, models.ParticipationStatusAccepted).First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
