// File: /services/notification_content.go
package services

import (
	"fmt"
	"time"

	"gatherly-api/models"
)

// NotificationContent is the typed payload a content builder produces.
// Builders are pure functions; callers decide who receives the result.
type NotificationContent struct {
	Type    models.NotificationType
	Title   string
	Content string
}

func InvitationContent(eventTitle, invitorName string) NotificationContent {
	return NotificationContent{
		Type:    models.NotificationTypeInvitation,
		Title:   "You have been invited",
		Content: fmt.Sprintf("%s invited you to an activity in \"%s\"", invitorName, eventTitle),
	}
}

func RSVPAcceptedContent(eventTitle, inviteeName string) NotificationContent {
	return NotificationContent{
		Type:    models.NotificationTypeRSVPAccepted,
		Title:   "Invitation accepted",
		Content: fmt.Sprintf("%s accepted your invitation for \"%s\"", inviteeName, eventTitle),
	}
}

func RSVPDeniedContent(eventTitle, inviteeName string) NotificationContent {
	return NotificationContent{
		Type:    models.NotificationTypeRSVPDenied,
		Title:   "Invitation declined",
		Content: fmt.Sprintf("%s declined your invitation for \"%s\"", inviteeName, eventTitle),
	}
}

func NewPostContent(eventTitle, authorName, postTitle string) NotificationContent {
	return NotificationContent{
		Type:    models.NotificationTypeNewPost,
		Title:   "New discussion post",
		Content: fmt.Sprintf("%s posted \"%s\" in \"%s\"", authorName, postTitle, eventTitle),
	}
}

func NewReplyContent(eventTitle, authorName string) NotificationContent {
	return NotificationContent{
		Type:    models.NotificationTypeNewReply,
		Title:   "New reply",
		Content: fmt.Sprintf("%s replied to a discussion in \"%s\"", authorName, eventTitle),
	}
}

func EventUpdatedContent(eventTitle string) NotificationContent {
	return NotificationContent{
		Type:    models.NotificationTypeEventUpdated,
		Title:   "Event updated",
		Content: fmt.Sprintf("\"%s\" has been updated by the organizer", eventTitle),
	}
}

func EventCancelledContent(eventTitle string) NotificationContent {
	return NotificationContent{
		Type:    models.NotificationTypeEventCancelled,
		Title:   "Event cancelled",
		Content: fmt.Sprintf("\"%s\" has been cancelled by the organizer", eventTitle),
	}
}

func EventReminderContent(eventTitle string, startsAt time.Time) NotificationContent {
	return NotificationContent{
		Type:    models.NotificationTypeEventReminder,
		Title:   "Event starting soon",
		Content: fmt.Sprintf("\"%s\" starts at %s", eventTitle, startsAt.Format("Mon, 2 Jan 15:04")),
	}
}

func JoinRequestContent(eventTitle, requesterName string) NotificationContent {
	return NotificationContent{
		Type:    models.NotificationTypeJoinRequest,
		Title:   "New join request",
		Content: fmt.Sprintf("%s requested to join \"%s\"", requesterName, eventTitle),
	}
}

func JoinAcceptedContent(eventTitle string) NotificationContent {
	return NotificationContent{
		Type:    models.NotificationTypeJoinAccepted,
		Title:   "Join request accepted",
		Content: fmt.Sprintf("Your request to join \"%s\" was accepted", eventTitle),
	}
}

func JoinDeniedContent(eventTitle string) NotificationContent {
	return NotificationContent{
		Type:    models.NotificationTypeJoinDenied,
		Title:   "Join request denied",
		Content: fmt.Sprintf("Your request to join \"%s\" was denied", eventTitle),
	}
}
