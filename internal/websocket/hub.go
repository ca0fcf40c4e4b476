package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"teammatch/internal/apptypes"
)

// ErrHubBusy is returned when the hub's event queue is full.
var ErrHubBusy = errors.New("notification hub queue is full")

// notification is the JSON frame pushed to a browser.
type notification struct {
	apptypes.FriendRequestEvent
	Message string `json:"message"`
}

// Hub tracks one notification socket per user and routes friend request
// events to the socket of the notified user.
type Hub struct {
	// Only touched by Run.
	clients map[uint]*Client

	register   chan *Client
	unregister chan *Client
	events     chan apptypes.FriendRequestEvent

	// Closed when Run returns.
	done chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan apptypes.FriendRequestEvent, 256),
		done:       make(chan struct{}),
	}
}

// PublishFriendRequestEvent queues event for delivery without blocking. Users
// without an open socket simply miss it.
func (h *Hub) PublishFriendRequestEvent(ctx context.Context, event apptypes.FriendRequestEvent) error {
	select {
	case h.events <- event:
		return nil
	default:
		log.Printf("Warning: hub event queue full, dropping %s for user %d", event.Type, event.NotifyUserID)
		return ErrHubBusy
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Run owns the client map until ctx is canceled. It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	log.Println("WebSocket hub started.")
	for {
		select {
		case <-ctx.Done():
			for userID, client := range h.clients {
				close(client.send)
				delete(h.clients, userID)
			}
			log.Println("WebSocket hub stopped.")
			return

		case client := <-h.register:
			if existing, ok := h.clients[client.UserID]; ok {
				log.Printf("User %d reconnected, closing previous socket.", client.UserID)
				close(existing.send)
			}
			h.clients[client.UserID] = client

		case client := <-h.unregister:
			// A replaced client was already closed on register.
			if stored, ok := h.clients[client.UserID]; ok && stored == client {
				delete(h.clients, client.UserID)
				close(client.send)
			}

		case event := <-h.events:
			client, ok := h.clients[event.NotifyUserID]
			if !ok {
				continue
			}
			frame, err := json.Marshal(notification{FriendRequestEvent: event, Message: event.Message()})
			if err != nil {
				log.Printf("Error encoding notification for user %d: %v", event.NotifyUserID, err)
				continue
			}
			select {
			case client.send <- frame:
			default:
				log.Printf("Warning: send buffer of user %d is full, dropping client.", event.NotifyUserID)
				close(client.send)
				delete(h.clients, event.NotifyUserID)
			}
		}
	}
}
