// File: /controllers/event_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gatherly-api/models"
	"gatherly-api/repositories"
	"gatherly-api/services"
	"gatherly-api/utils"
)

type EventController struct {
	db            *gorm.DB
	events        *repositories.EventRepository
	participation *services.ParticipationService
	notifications *services.NotificationService
}

func NewEventController(db *gorm.DB, events *repositories.EventRepository, participation *services.ParticipationService, notifications *services.NotificationService) *EventController {
	return &EventController{
		db:            db,
		events:        events,
		participation: participation,
		notifications: notifications,
	}
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
	Location    string    `json:"location"`
	ImageUrls   []string  `json:"image_urls"`
	IsPublic    *bool     `json:"is_public"`
	IsOpen      *bool     `json:"is_open"`
}

func (ec *EventController) GetEvents(c *gin.Context) {
	userID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	// Public events, plus private ones the caller organizes or is an
	// accepted participant of.
	query := ec.db.Preload("Organizer").
		Where("is_deleted = ?", false).
		Where("starts_at > ?", time.Now()).
		Where("is_public = ? OR organizer_id = ? OR EXISTS (SELECT 1 FROM participants WHERE participants.event_id = events.id AND participants.user_id = ? AND participants.status = ?)",
			true, userID, userID, models.ParticipationStatusAccepted)

	if search := c.Query("search"); search != "" {
		query = query.Where("(title LIKE ? OR description LIKE ?)", "%"+search+"%", "%"+search+"%")
	}

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var events []models.Event
	if err := query.Order("starts_at ASC").Offset(offset).Limit(limit).Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	for i := range events {
		events[i].Organizer.Password = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"page":   page,
		"limit":  limit,
	})
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.StartsAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event start must be in the future"})
		return
	}
	if req.EndsAt.Before(req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event end must be after its start"})
		return
	}

	isPublic := false
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	isOpen := true
	if req.IsOpen != nil {
		isOpen = *req.IsOpen
	}

	// The organizer holds implicit full access and is never added to the
	// participant list.
	event := models.Event{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		OrganizerID: userID,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Location:    req.Location,
		ImageUrls:   models.StringSlice(req.ImageUrls),
		IsPublic:    isPublic,
		IsOpen:      isOpen,
	}

	if err := ec.db.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (ec *EventController) GetEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	event, err := ec.events.FindEventWithParticipants(eventID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if err := services.EnsureEventAccess(ec.events, event, userID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	event, err := ec.events.FindActiveEvent(eventID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if err := services.EnsureOrganizer(event, userID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.EndsAt.Before(req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event end must be after its start"})
		return
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
		"starts_at":   req.StartsAt,
		"ends_at":     req.EndsAt,
		"location":    req.Location,
		"image_urls":  models.StringSlice(req.ImageUrls),
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}
	if req.IsOpen != nil {
		updates["is_open"] = *req.IsOpen
	}

	if err := ec.db.Model(event).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	ec.notifyAudience(event, services.EventUpdatedContent(req.Title))

	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully"})
}

// CancelEvent soft-deletes an event and notifies its accepted participants.
func (ec *EventController) CancelEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	event, err := ec.events.FindActiveEvent(eventID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if err := services.EnsureOrganizer(event, userID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	if err := ec.db.Model(event).Update("is_deleted", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel event"})
		return
	}

	ec.notifyAudience(event, services.EventCancelledContent(event.Title))

	c.JSON(http.StatusOK, gin.H{"message": "Event cancelled successfully"})
}

// JoinEvent requests membership; public events accept immediately.
func (ec *EventController) JoinEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	event, err := ec.participation.Join(eventID, userID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

type RespondJoinRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Decision string `json:"decision" binding:"required"`
}

// RespondJoin lets the organizer accept or deny a pending join request.
func (ec *EventController) RespondJoin(c *gin.Context) {
	organizerID := c.GetString("user_id")
	eventID := c.Param("id")

	var req RespondJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := ec.participation.RespondJoin(eventID, organizerID, req.UserID, models.ParticipationStatus(req.Decision))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (ec *EventController) GetParticipants(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")
	status := models.ParticipationStatus(c.Query("status"))

	participants, err := ec.participation.ListParticipants(eventID, userID, status)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	for i := range participants {
		participants[i].User.Password = ""
	}

	c.JSON(http.StatusOK, gin.H{"participants": participants})
}

func (ec *EventController) GetJoinedEvents(c *gin.Context) {
	userID := c.GetString("user_id")

	var participants []models.Participant
	if err := ec.db.Preload("Event").Preload("Event.Organizer").
		Where("user_id = ? AND status = ?", userID, models.ParticipationStatusAccepted).
		Find(&participants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch joined events"})
		return
	}

	events := make([]models.Event, 0, len(participants))
	for _, participant := range participants {
		if participant.Event.IsDeleted {
			continue
		}
		participant.Event.Organizer.Password = ""
		events = append(events, participant.Event)
	}

	c.JSON(http.StatusOK, events)
}

func (ec *EventController) GetCreatedEvents(c *gin.Context) {
	userID := c.GetString("user_id")

	var events []models.Event
	if err := ec.db.Preload("Participants").
		Where("organizer_id = ? AND is_deleted = ?", userID, false).
		Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch created events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func (ec *EventController) notifyAudience(event *models.Event, content services.NotificationContent) {
	userIDs, err := ec.events.AcceptedUserIDs(event.ID)
	if err != nil || len(userIDs) == 0 {
		return
	}
	ec.notifications.Dispatch(userIDs, content)
}
