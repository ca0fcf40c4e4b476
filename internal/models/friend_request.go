package models

// FriendRequestStatus is the lifecycle state of a friend request.
type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusRejected FriendRequestStatus = "rejected"
)

// FriendRequest is a directional request from Sender to Receiver.
// CreatedAt doubles as the request timestamp.
type FriendRequest struct {
	BaseModel
	SenderID   uint                `gorm:"not null;index:idx_friend_request_users" json:"senderId"`
	ReceiverID uint                `gorm:"not null;index:idx_friend_request_users" json:"receiverId"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// TableName overrides the table name used by FriendRequest.
func (FriendRequest) TableName() string {
	return "friend_requests"
}

// OtherParty returns the participant that is not userID.
func (r *FriendRequest) OtherParty(userID uint) User {
	if r.SenderID != userID {
		return r.Sender
	}
	return r.Receiver
}
