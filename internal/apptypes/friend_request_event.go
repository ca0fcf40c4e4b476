package apptypes

import "time"

// FriendRequestEventType names what happened to a friend request.
type FriendRequestEventType string

const (
	FriendRequestCreated  FriendRequestEventType = "friend_request.created"
	FriendRequestAccepted FriendRequestEventType = "friend_request.accepted"
	FriendRequestRejected FriendRequestEventType = "friend_request.rejected"
)

// FriendRequestEvent is published after a friend request changes and pushed to
// the browser of NotifyUserID.
type FriendRequestEvent struct {
	Type          FriendRequestEventType `json:"type"`
	RequestID     uint                   `json:"requestId"`
	SenderID      uint                   `json:"senderId"`
	ReceiverID    uint                   `json:"receiverId"`
	NotifyUserID  uint                   `json:"notifyUserId"`
	ActorUsername string                 `json:"actorUsername,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
}

// Message is the human-readable text shown to the notified user.
func (e FriendRequestEvent) Message() string {
	switch e.Type {
	case FriendRequestCreated:
		return e.ActorUsername + " sent you a friend request"
	case FriendRequestAccepted:
		return e.ActorUsername + " accepted your friend request"
	case FriendRequestRejected:
		return e.ActorUsername + " rejected your friend request"
	default:
		return ""
	}
}
