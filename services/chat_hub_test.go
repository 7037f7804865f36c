// File: /services/chat_hub_test.go
package services

import "testing"

func TestChatHub(t *testing.T) {
	t.Run("broadcast reaches the room only", func(t *testing.T) {
		hub := NewChatHub()
		inRoom := NewChatClient("evt-1", "alice")
		alsoIn := NewChatClient("evt-1", "bob")
		elsewhere := NewChatClient("evt-2", "carol")
		hub.Join(inRoom)
		hub.Join(alsoIn)
		hub.Join(elsewhere)

		hub.Broadcast("evt-1", ChatEvent{Type: "message", Data: "hi"})

		for _, client := range []*ChatClient{inRoom, alsoIn} {
			select {
			case event := <-client.Send:
				if event.Type != "message" {
					t.Errorf("unexpected event type %q", event.Type)
				}
			default:
				t.Errorf("client %s received nothing", client.UserID)
			}
		}

		select {
		case <-elsewhere.Send:
			t.Error("client in another room received the broadcast")
		default:
		}
	})

	t.Run("leave closes the send channel and empties the room", func(t *testing.T) {
		hub := NewChatHub()
		client := NewChatClient("evt-1", "alice")
		hub.Join(client)

		hub.Leave(client)

		if _, open := <-client.Send; open {
			t.Error("expected send channel to be closed")
		}
		if size := hub.RoomSize("evt-1"); size != 0 {
			t.Errorf("expected empty room, got %d", size)
		}

		// Leaving twice must not panic or double-close.
		hub.Leave(client)
	})

	t.Run("slow client is skipped", func(t *testing.T) {
		hub := NewChatHub()
		client := NewChatClient("evt-1", "alice")
		hub.Join(client)

		// Fill the buffer, then broadcast once more; the extra frame is dropped.
		for i := 0; i < cap(client.Send); i++ {
			hub.Broadcast("evt-1", ChatEvent{Type: "message"})
		}
		hub.Broadcast("evt-1", ChatEvent{Type: "overflow"})

		if got := len(client.Send); got != cap(client.Send) {
			t.Errorf("expected full buffer of %d, got %d", cap(client.Send), got)
		}
	})

	t.Run("room size tracks joins", func(t *testing.T) {
		hub := NewChatHub()
		if size := hub.RoomSize("evt-1"); size != 0 {
			t.Fatalf("expected 0, got %d", size)
		}

		a := NewChatClient("evt-1", "alice")
		b := NewChatClient("evt-1", "bob")
		hub.Join(a)
		hub.Join(b)

		if size := hub.RoomSize("evt-1"); size != 2 {
			t.Errorf("expected 2, got %d", size)
		}

		hub.Leave(a)
		if size := hub.RoomSize("evt-1"); size != 1 {
			t.Errorf("expected 1, got %d", size)
		}
	})
}
