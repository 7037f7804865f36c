// File: /repositories/invitation_repository.go
package repositories

import (
	"gorm.io/gorm"

	"gatherly-api/models"
)

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// FindActiveInvitation retrieves a non-deleted invitation by ID.
func (r *InvitationRepository) FindActiveInvitation(invitationID string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.Where("id = ? AND is_deleted = ?", invitationID, false).First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ActiveInvitationExists reports whether a non-deleted invitation exists
// for the (event, invitee) pair.
func (r *InvitationRepository) ActiveInvitationExists(eventID, inviteeID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Invitation{}).
		Where("event_id = ? AND invitee_id = ? AND is_deleted = ?", eventID, inviteeID, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateInvitation inserts a new invitation. The storage-level unique
// index over active rows is the last word on duplicates.
func (r *InvitationRepository) CreateInvitation(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

// SoftDeleteInvitation flips the soft-delete flag.
func (r *InvitationRepository) SoftDeleteInvitation(invitation *models.Invitation) error {
	invitation.IsDeleted = true
	return r.db.Model(invitation).Update("is_deleted", true).Error
}

// ListInvitationsForUser returns non-deleted invitations where the user
// is invitor or invitee.
func (r *InvitationRepository) ListInvitationsForUser(userID string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.db.Preload("Event").Preload("Invitor").Preload("Invitee").
		Where("(invitor_id = ? OR invitee_id = ?) AND is_deleted = ?", userID, userID, false).
		Order("sent_at DESC").Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

// FindActiveRSVP retrieves a non-deleted RSVP with its invitation.
func (r *InvitationRepository) FindActiveRSVP(rsvpID string) (*models.RSVP, error) {
	var rsvp models.RSVP
	err := r.db.Preload("Invitation").
		Where("id = ? AND is_deleted = ?", rsvpID, false).First(&rsvp).Error
	if err != nil {
		return nil, err
	}
	return &rsvp, nil
}

// ActiveRSVPExists reports whether a non-deleted RSVP exists for the invitation.
func (r *InvitationRepository) ActiveRSVPExists(invitationID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.RSVP{}).
		Where("invitation_id = ? AND is_deleted = ?", invitationID, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateRSVP inserts a new RSVP row.
func (r *InvitationRepository) CreateRSVP(rsvp *models.RSVP) error {
	return r.db.Create(rsvp).Error
}

// SoftDeleteRSVP flips the soft-delete flag.
func (r *InvitationRepository) SoftDeleteRSVP(rsvp *models.RSVP) error {
	rsvp.IsDeleted = true
	return r.db.Model(rsvp).Update("is_deleted", true).Error
}
