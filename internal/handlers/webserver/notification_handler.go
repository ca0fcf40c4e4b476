package webserver

import (
	"log"
	"net/http"

	"teammatch/internal/config"
	"teammatch/internal/session"
	ws "teammatch/internal/websocket"
)

// NotificationHandler upgrades logged in sessions to the notification socket.
type NotificationHandler struct {
	hub      *ws.Hub
	sessions *session.Manager
	wsCfg    config.WebSocketConfig
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(hub *ws.Hub, sm *session.Manager, wsCfg config.WebSocketConfig) *NotificationHandler {
	return &NotificationHandler{hub: hub, sessions: sm, wsCfg: wsCfg}
}

// ServeWS answers 401 instead of redirecting; browsers do not follow
// redirects on a websocket handshake.
func (h *NotificationHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserID(h.sessions.Get(r))
	if !ok {
		log.Printf("Rejected anonymous notification socket from %s", r.RemoteAddr)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	ws.ServeWs(h.hub, userID, w, r, h.wsCfg)
}
