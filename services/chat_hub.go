// File: /services/chat_hub.go
package services

import (
	"sync"
	"time"
)

// ChatEvent is one frame on the chat wire, both directions.
type ChatEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ChatPayload is the broadcast body for a persisted chat message.
type ChatPayload struct {
	ID        uint      `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatClient is one websocket connection joined to an event room.
// Outbound frames go through Send; the connection's write pump drains it.
type ChatClient struct {
	EventID string
	UserID  string
	Send    chan ChatEvent
}

func NewChatClient(eventID, userID string) *ChatClient {
	return &ChatClient{
		EventID: eventID,
		UserID:  userID,
		Send:    make(chan ChatEvent, 16),
	}
}

// ChatHub is the connection registry for event chat rooms. It is
// injected where needed rather than living as a package-level map, so
// its lifecycle is owned by main.
type ChatHub struct {
	mutex sync.RWMutex
	rooms map[string]map[*ChatClient]bool
}

func NewChatHub() *ChatHub {
	return &ChatHub{
		rooms: make(map[string]map[*ChatClient]bool),
	}
}

// Join registers a client with its event's room.
func (h *ChatHub) Join(client *ChatClient) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	room, exists := h.rooms[client.EventID]
	if !exists {
		room = make(map[*ChatClient]bool)
		h.rooms[client.EventID] = room
	}
	room[client] = true
}

// Leave removes a client and closes its send channel. Empty rooms are
// dropped from the registry.
func (h *ChatHub) Leave(client *ChatClient) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	room, exists := h.rooms[client.EventID]
	if !exists {
		return
	}
	if _, joined := room[client]; !joined {
		return
	}

	delete(room, client)
	close(client.Send)
	if len(room) == 0 {
		delete(h.rooms, client.EventID)
	}
}

// Broadcast delivers a frame to every client in the event's room. A
// client whose send buffer is full is skipped; chat is best-effort.
func (h *ChatHub) Broadcast(eventID string, event ChatEvent) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.rooms[eventID] {
		select {
		case client.Send <- event:
		default:
		}
	}
}

// RoomSize reports how many clients are joined to an event's room.
func (h *ChatHub) RoomSize(eventID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.rooms[eventID])
}
