// File: /services/invitation_service_test.go
package services

import (
	"testing"

	"gorm.io/gorm"

	"gatherly-api/models"
	"gatherly-api/repositories"
)

// invitationFixture seeds an event with one accepted participant, the
// usual precondition for issuing an invitation.
func invitationFixture(t *testing.T) (*InvitationService, *ParticipationService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	events := repositories.NewEventRepository(db)
	invitations := repositories.NewInvitationRepository(db)
	notifications := NewNotificationService(db)
	participation := NewParticipationService(db, events, notifications)
	service := NewInvitationService(db, events, invitations, notifications)

	createTestUser(t, db, "organizer", "Olive")
	createTestUser(t, db, "member", "Max")
	createTestUser(t, db, "stranger", "Sam")
	createTestEvent(t, db, "evt", "organizer", true, true)

	if _, err := participation.Join("evt", "member"); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	return service, participation, db
}

func TestCreateInvitation(t *testing.T) {
	t.Run("organizer invites accepted participant", func(t *testing.T) {
		service, _, db := invitationFixture(t)

		invitation, err := service.CreateInvitation("organizer", "evt", "member", "Bring snacks")
		if err != nil {
			t.Fatalf("CreateInvitation failed: %v", err)
		}
		if invitation.InvitorID != "organizer" || invitation.InviteeID != "member" {
			t.Errorf("unexpected parties: %+v", invitation)
		}
		if invitation.SentAt.IsZero() {
			t.Error("expected sent_at to be stamped")
		}

		got := notificationsFor(t, db, "member")
		if len(got) != 1 || got[0] != models.NotificationTypeInvitation {
			t.Errorf("expected one invitation notification, got %v", got)
		}
	})

	t.Run("only the organizer may invite", func(t *testing.T) {
		service, _, _ := invitationFixture(t)

		_, err := service.CreateInvitation("member", "evt", "member", "")
		assertAPIError(t, err, 403, "not_organizer")
	})

	t.Run("invitee must be an accepted participant", func(t *testing.T) {
		service, _, _ := invitationFixture(t)

		_, err := service.CreateInvitation("organizer", "evt", "stranger", "")
		assertAPIError(t, err, 409, "invitee_not_participant")
	})

	t.Run("unknown invitee", func(t *testing.T) {
		service, _, _ := invitationFixture(t)

		_, err := service.CreateInvitation("organizer", "evt", "ghost", "")
		assertAPIError(t, err, 404, "user_not_found")
	})

	t.Run("one active invitation per invitee", func(t *testing.T) {
		service, _, _ := invitationFixture(t)

		if _, err := service.CreateInvitation("organizer", "evt", "member", ""); err != nil {
			t.Fatalf("first CreateInvitation failed: %v", err)
		}
		_, err := service.CreateInvitation("organizer", "evt", "member", "")
		assertAPIError(t, err, 409, "invitation_exists")
	})

	t.Run("soft-deleted invitation frees the slot", func(t *testing.T) {
		service, _, _ := invitationFixture(t)

		first, err := service.CreateInvitation("organizer", "evt", "member", "")
		if err != nil {
			t.Fatalf("CreateInvitation failed: %v", err)
		}
		if _, err := service.DeleteInvitation("organizer", first.ID); err != nil {
			t.Fatalf("DeleteInvitation failed: %v", err)
		}
		if _, err := service.CreateInvitation("organizer", "evt", "member", "again"); err != nil {
			t.Fatalf("re-invite after delete failed: %v", err)
		}
	})
}

func TestInvitationAccess(t *testing.T) {
	t.Run("either party may read", func(t *testing.T) {
		service, _, _ := invitationFixture(t)
		invitation, err := service.CreateInvitation("organizer", "evt", "member", "")
		if err != nil {
			t.Fatalf("CreateInvitation failed: %v", err)
		}

		for _, userID := range []string{"organizer", "member"} {
			if _, err := service.GetInvitationByID(userID, invitation.ID); err != nil {
				t.Errorf("GetInvitationByID as %s failed: %v", userID, err)
			}
		}
	})

	t.Run("third parties are rejected", func(t *testing.T) {
		service, _, _ := invitationFixture(t)
		invitation, err := service.CreateInvitation("organizer", "evt", "member", "")
		if err != nil {
			t.Fatalf("CreateInvitation failed: %v", err)
		}

		_, err = service.GetInvitationByID("stranger", invitation.ID)
		assertAPIError(t, err, 403, "not_invitation_party")
	})

	t.Run("only the invitor may delete", func(t *testing.T) {
		service, _, _ := invitationFixture(t)
		invitation, err := service.CreateInvitation("organizer", "evt", "member", "")
		if err != nil {
			t.Fatalf("CreateInvitation failed: %v", err)
		}

		_, err = service.DeleteInvitation("member", invitation.ID)
		assertAPIError(t, err, 403, "not_invitor")
	})

	t.Run("deleted invitation reads as missing", func(t *testing.T) {
		service, _, _ := invitationFixture(t)
		invitation, err := service.CreateInvitation("organizer", "evt", "member", "")
		if err != nil {
			t.Fatalf("CreateInvitation failed: %v", err)
		}
		if _, err := service.DeleteInvitation("organizer", invitation.ID); err != nil {
			t.Fatalf("DeleteInvitation failed: %v", err)
		}

		_, err = service.GetInvitationByID("member", invitation.ID)
		assertAPIError(t, err, 404, "invitation_not_found")
	})

	t.Run("list covers both directions", func(t *testing.T) {
		service, _, _ := invitationFixture(t)
		if _, err := service.CreateInvitation("organizer", "evt", "member", ""); err != nil {
			t.Fatalf("CreateInvitation failed: %v", err)
		}

		for _, userID := range []string{"organizer", "member"} {
			invitations, err := service.ListInvitations(userID)
			if err != nil {
				t.Fatalf("ListInvitations as %s failed: %v", userID, err)
			}
			if len(invitations) != 1 {
				t.Errorf("expected 1 invitation for %s, got %d", userID, len(invitations))
			}
		}

		invitations, err := service.ListInvitations("stranger")
		if err != nil {
			t.Fatalf("ListInvitations failed: %v", err)
		}
		if len(invitations) != 0 {
			t.Errorf("expected no invitations for stranger, got %d", len(invitations))
		}
	})
}

func TestCreateRSVP(t *testing.T) {
	setup := func(t *testing.T) (*InvitationService, *models.Invitation, *gorm.DB) {
		service, _, db := invitationFixture(t)
		invitation, err := service.CreateInvitation("organizer", "evt", "member", "")
		if err != nil {
			t.Fatalf("CreateInvitation failed: %v", err)
		}
		return service, invitation, db
	}

	t.Run("accept notifies the invitor", func(t *testing.T) {
		service, invitation, db := setup(t)

		rsvp, err := service.CreateRSVP("member", invitation.ID, models.RSVPResponseAccepted)
		if err != nil {
			t.Fatalf("CreateRSVP failed: %v", err)
		}
		if rsvp.Response != models.RSVPResponseAccepted {
			t.Errorf("expected accepted, got %s", rsvp.Response)
		}

		got := notificationsFor(t, db, "organizer")
		if len(got) != 1 || got[0] != models.NotificationTypeRSVPAccepted {
			t.Errorf("expected one rsvp_accepted notification, got %v", got)
		}
	})

	t.Run("deny notifies the invitor", func(t *testing.T) {
		service, invitation, db := setup(t)

		if _, err := service.CreateRSVP("member", invitation.ID, models.RSVPResponseDenied); err != nil {
			t.Fatalf("CreateRSVP failed: %v", err)
		}

		got := notificationsFor(t, db, "organizer")
		if len(got) != 1 || got[0] != models.NotificationTypeRSVPDenied {
			t.Errorf("expected one rsvp_denied notification, got %v", got)
		}
	})

	t.Run("pending response is silent", func(t *testing.T) {
		service, invitation, db := setup(t)

		if _, err := service.CreateRSVP("member", invitation.ID, models.RSVPResponsePending); err != nil {
			t.Fatalf("CreateRSVP failed: %v", err)
		}

		if got := notificationsFor(t, db, "organizer"); len(got) != 0 {
			t.Errorf("expected no notifications for pending RSVP, got %v", got)
		}
	})

	t.Run("invalid response", func(t *testing.T) {
		service, invitation, _ := setup(t)

		_, err := service.CreateRSVP("member", invitation.ID, "maybe")
		assertAPIError(t, err, 400, "invalid_response")
	})

	t.Run("only the invitee may respond", func(t *testing.T) {
		service, invitation, _ := setup(t)

		_, err := service.CreateRSVP("organizer", invitation.ID, models.RSVPResponseAccepted)
		assertAPIError(t, err, 403, "not_invitee")
	})

	t.Run("one active RSVP per invitation", func(t *testing.T) {
		service, invitation, _ := setup(t)

		if _, err := service.CreateRSVP("member", invitation.ID, models.RSVPResponseAccepted); err != nil {
			t.Fatalf("first CreateRSVP failed: %v", err)
		}
		_, err := service.CreateRSVP("member", invitation.ID, models.RSVPResponseDenied)
		assertAPIError(t, err, 409, "rsvp_exists")
	})

	t.Run("deleting the RSVP allows a fresh response", func(t *testing.T) {
		service, invitation, _ := setup(t)

		rsvp, err := service.CreateRSVP("member", invitation.ID, models.RSVPResponseAccepted)
		if err != nil {
			t.Fatalf("CreateRSVP failed: %v", err)
		}
		if _, err := service.DeleteRSVP("member", rsvp.ID); err != nil {
			t.Fatalf("DeleteRSVP failed: %v", err)
		}
		if _, err := service.CreateRSVP("member", invitation.ID, models.RSVPResponseDenied); err != nil {
			t.Fatalf("CreateRSVP after delete failed: %v", err)
		}
	})

	t.Run("only the invitee may delete the RSVP", func(t *testing.T) {
		service, invitation, _ := setup(t)

		rsvp, err := service.CreateRSVP("member", invitation.ID, models.RSVPResponseAccepted)
		if err != nil {
			t.Fatalf("CreateRSVP failed: %v", err)
		}

		_, err = service.DeleteRSVP("organizer", rsvp.ID)
		assertAPIError(t, err, 403, "not_invitee")
	})

	t.Run("either party may read the RSVP", func(t *testing.T) {
		service, invitation, _ := setup(t)

		rsvp, err := service.CreateRSVP("member", invitation.ID, models.RSVPResponseAccepted)
		if err != nil {
			t.Fatalf("CreateRSVP failed: %v", err)
		}

		for _, userID := range []string{"organizer", "member"} {
			if _, err := service.GetRSVPByID(userID, rsvp.ID); err != nil {
				t.Errorf("GetRSVPByID as %s failed: %v", userID, err)
			}
		}

		_, err = service.GetRSVPByID("stranger", rsvp.ID)
		assertAPIError(t, err, 403, "not_invitation_party")
	})
}
