// File: /controllers/chat_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"gatherly-api/middleware"
	"gatherly-api/models"
	"gatherly-api/repositories"
	"gatherly-api/services"
	"gatherly-api/utils"
)

type ChatController struct {
	db        *gorm.DB
	events    *repositories.EventRepository
	hub       *services.ChatHub
	jwtSecret string
	upgrader  websocket.Upgrader
}

func NewChatController(db *gorm.DB, events *repositories.EventRepository, hub *services.ChatHub, jwtSecret string) *ChatController {
	return &ChatController{
		db:        db,
		events:    events,
		hub:       hub,
		jwtSecret: jwtSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

type inboundChatMessage struct {
	Body string `json:"body"`
}

// HandleChat upgrades the connection and relays chat for one event room.
// Browsers cannot set headers on websocket dials, so the token arrives
// as a query parameter instead of an Authorization header.
func (cc *ChatController) HandleChat(c *gin.Context) {
	eventID := c.Param("id")

	tokenString := c.Query("token")
	if tokenString == "" {
		tokenString = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	claims, err := middleware.ParseToken(tokenString, cc.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	userID := claims.UserID

	event, err := cc.events.FindActiveEvent(eventID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if err := services.EnsureEventAccess(cc.events, event, userID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	var user models.User
	if err := cc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	conn, err := cc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		fmt.Printf("Failed to upgrade chat connection: %v\n", err)
		return
	}

	client := services.NewChatClient(eventID, userID)
	cc.hub.Join(client)

	go cc.writePump(conn, client)
	cc.readPump(conn, client, &user)
}

// writePump drains the client's send channel onto the wire. It owns all
// writes to the connection.
func (cc *ChatController) writePump(conn *websocket.Conn, client *services.ChatClient) {
	ticker := time.NewTicker(50 * time.Second)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case event, ok := <-client.Send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump consumes inbound messages, persists them, and fans them out
// to the room. It leaves the hub on any read error.
func (cc *ChatController) readPump(conn *websocket.Conn, client *services.ChatClient, user *models.User) {
	defer func() {
		cc.hub.Leave(client)
		conn.Close()
	}()

	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var inbound inboundChatMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		body := strings.TrimSpace(inbound.Body)
		if body == "" {
			continue
		}

		message := models.ChatMessage{
			EventID:  client.EventID,
			UserID:   client.UserID,
			Username: user.Name,
			Body:     body,
		}
		if err := cc.db.Create(&message).Error; err != nil {
			fmt.Printf("Failed to persist chat message: %v\n", err)
			continue
		}

		cc.hub.Broadcast(client.EventID, services.ChatEvent{
			Type: "message",
			Data: services.ChatPayload{
				ID:        message.ID,
				EventID:   message.EventID,
				UserID:    message.UserID,
				Username:  message.Username,
				Body:      message.Body,
				CreatedAt: message.CreatedAt,
			},
		})
	}
}

// GetChatHistory returns the most recent messages for an event room.
func (cc *ChatController) GetChatHistory(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	event, err := cc.events.FindActiveEvent(eventID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if err := services.EnsureEventAccess(cc.events, event, userID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	var messages []models.ChatMessage
	if err := cc.db.Where("event_id = ?", eventID).
		Order("created_at DESC").
		Limit(100).
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat history"})
		return
	}

	// Oldest first for rendering.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
