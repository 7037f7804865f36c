// File: /controllers/post_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gatherly-api/models"
	"gatherly-api/repositories"
	"gatherly-api/services"
	"gatherly-api/utils"
)

type PostController struct {
	db            *gorm.DB
	events        *repositories.EventRepository
	notifications *services.NotificationService
}

func NewPostController(db *gorm.DB, events *repositories.EventRepository, notifications *services.NotificationService) *PostController {
	return &PostController{
		db:            db,
		events:        events,
		notifications: notifications,
	}
}

type CreatePostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// CreatePost adds a discussion post to an event. Organizer and
// participants only; the event audience is notified.
func (pc *PostController) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	event, err := pc.events.FindActiveEvent(eventID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if err := services.EnsureEventAccess(pc.events, event, userID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := models.Post{
		ID:       uuid.New().String(),
		EventID:  eventID,
		AuthorID: userID,
		Title:    req.Title,
		Body:     req.Body,
	}

	if err := pc.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	pc.notifyAudience(event, userID, services.NewPostContent(event.Title, pc.userName(userID), req.Title))

	c.JSON(http.StatusCreated, post)
}

func (pc *PostController) GetPosts(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	event, err := pc.events.FindActiveEvent(eventID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if err := services.EnsureEventAccess(pc.events, event, userID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	var posts []models.Post
	if err := pc.db.Preload("Author").Preload("Replies", "is_deleted = ?", false).Preload("Replies.Author").
		Where("event_id = ? AND is_deleted = ?", eventID, false).
		Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	for i := range posts {
		posts[i].Author.Password = ""
		for j := range posts[i].Replies {
			posts[i].Replies[j].Author.Password = ""
		}
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

type UpdatePostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

func (pc *PostController) UpdatePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may edit this post"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := pc.db.Model(&post).Updates(map[string]interface{}{
		"title": req.Title,
		"body":  req.Body,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully"})
}

func (pc *PostController) DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may delete this post"})
		return
	}

	if err := pc.db.Model(&post).Update("is_deleted", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

type CreateReplyRequest struct {
	Body string `json:"body" binding:"required"`
}

// CreateReply adds a reply to a discussion post. Post author is notified.
func (pc *PostController) CreateReply(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	event, err := pc.events.FindActiveEvent(post.EventID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if err := services.EnsureEventAccess(pc.events, event, userID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	var req CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := models.Reply{
		ID:       uuid.New().String(),
		PostID:   postID,
		AuthorID: userID,
		Body:     req.Body,
	}

	if err := pc.db.Create(&reply).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reply"})
		return
	}

	if post.AuthorID != userID {
		pc.notifications.Dispatch([]string{post.AuthorID}, services.NewReplyContent(event.Title, pc.userName(userID)))
	}

	c.JSON(http.StatusCreated, reply)
}

func (pc *PostController) DeleteReply(c *gin.Context) {
	userID := c.GetString("user_id")
	replyID := c.Param("id")

	var reply models.Reply
	if err := pc.db.Where("id = ? AND is_deleted = ?", replyID, false).First(&reply).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reply not found"})
		return
	}

	if reply.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may delete this reply"})
		return
	}

	if err := pc.db.Model(&reply).Update("is_deleted", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reply"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted successfully"})
}

func (pc *PostController) notifyAudience(event *models.Event, actorID string, content services.NotificationContent) {
	userIDs, err := pc.events.AcceptedUserIDs(event.ID)
	if err != nil {
		return
	}
	recipients := make([]string, 0, len(userIDs)+1)
	for _, id := range userIDs {
		if id != actorID {
			recipients = append(recipients, id)
		}
	}
	if event.OrganizerID != actorID {
		recipients = append(recipients, event.OrganizerID)
	}
	if len(recipients) == 0 {
		return
	}
	pc.notifications.Dispatch(recipients, content)
}

func (pc *PostController) userName(userID string) string {
	var user models.User
	if err := pc.db.First(&user, "id = ?", userID).Error; err != nil {
		return userID
	}
	return user.Name
}
