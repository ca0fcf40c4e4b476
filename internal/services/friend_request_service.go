package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"teammatch/internal/apptypes"
	"teammatch/internal/models"
	"teammatch/internal/storage"
)

var (
	ErrFriendRequestSelf     = errors.New("you cannot send a friend request to yourself")
	ErrFriendRequestExists   = errors.New("friend request already sent")
	ErrRecipientNotFound     = errors.New("recipient user does not exist")
	ErrFriendRequestNotFound = errors.New("friend request not found")
	ErrNotRecipientOfRequest = errors.New("you are not the recipient of this friend request")
	ErrRequestNotPending     = errors.New("friend request is no longer pending")
)

// EventPublisher delivers friend request events to interested users.
type EventPublisher interface {
	PublishFriendRequestEvent(ctx context.Context, event apptypes.FriendRequestEvent) error
}

// FriendRequestService defines the interface for friend request operations.
type FriendRequestService interface {
	SendFriendRequest(ctx context.Context, senderID, receiverID uint) (*models.FriendRequest, error)
	AcceptFriendRequest(ctx context.Context, actorID, requestID uint) error
	RejectFriendRequest(ctx context.Context, actorID, requestID uint) error
	// ListPendingRequests returns pending requests addressed to userID, with Sender loaded.
	ListPendingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	// GetFriendsList returns the other party of every accepted request userID is in.
	GetFriendsList(ctx context.Context, userID uint) ([]models.User, error)
}

type friendRequestService struct {
	userRepo   storage.UserRepository
	friendRepo storage.FriendRequestRepository
	publisher  EventPublisher
	now        func() time.Time
}

// NewFriendRequestService creates a new FriendRequestService. publisher may be nil.
func NewFriendRequestService(
	userRepo storage.UserRepository,
	friendRepo storage.FriendRequestRepository,
	publisher EventPublisher,
) FriendRequestService {
	return &friendRequestService{
		userRepo:   userRepo,
		friendRepo: friendRepo,
		publisher:  publisher,
		now:        time.Now,
	}
}

// SendFriendRequest creates a pending request from senderID to receiverID.
// The duplicate check and the insert are not atomic.
func (s *friendRequestService) SendFriendRequest(ctx context.Context, senderID, receiverID uint) (*models.FriendRequest, error) {
	if senderID == receiverID {
		return nil, ErrFriendRequestSelf
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load sender %d: %w", senderID, err)
	}
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		log.Printf("Error checking recipient user %d: %v", receiverID, err)
		return nil, fmt.Errorf("failed to load recipient %d: %w", receiverID, err)
	}

	existing, err := s.friendRepo.FindExisting(ctx, senderID, receiverID, models.FriendRequestStatusPending)
	if err != nil {
		log.Printf("Error checking existing friend request %d -> %d: %v", senderID, receiverID, err)
		return nil, fmt.Errorf("failed to check existing requests: %w", err)
	}
	if existing != nil {
		return nil, ErrFriendRequestExists
	}

	request := &models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.FriendRequestStatusPending,
	}
	if err := s.friendRepo.Create(ctx, request); err != nil {
		log.Printf("Error saving friend request %d -> %d: %v", senderID, receiverID, err)
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	s.publish(ctx, apptypes.FriendRequestEvent{
		Type:          apptypes.FriendRequestCreated,
		RequestID:     request.ID,
		SenderID:      senderID,
		ReceiverID:    receiverID,
		NotifyUserID:  receiverID,
		ActorUsername: sender.Username,
	})
	return request, nil
}

func (s *friendRequestService) AcceptFriendRequest(ctx context.Context, actorID, requestID uint) error {
	return s.resolve(ctx, actorID, requestID, models.FriendRequestStatusAccepted, apptypes.FriendRequestAccepted)
}

func (s *friendRequestService) RejectFriendRequest(ctx context.Context, actorID, requestID uint) error {
	return s.resolve(ctx, actorID, requestID, models.FriendRequestStatusRejected, apptypes.FriendRequestRejected)
}

// resolve moves a pending request addressed to actorID to status.
func (s *friendRequestService) resolve(ctx context.Context, actorID, requestID uint, status models.FriendRequestStatus, eventType apptypes.FriendRequestEventType) error {
	request, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFriendRequestNotFound
		}
		log.Printf("Error retrieving friend request %d: %v", requestID, err)
		return fmt.Errorf("failed to load friend request: %w", err)
	}

	if request.ReceiverID != actorID {
		return ErrNotRecipientOfRequest
	}
	if request.Status != models.FriendRequestStatusPending {
		return ErrRequestNotPending
	}

	if err := s.friendRepo.UpdateRequestStatus(ctx, requestID, status); err != nil {
		log.Printf("Error updating friend request %d to %s: %v", requestID, status, err)
		return fmt.Errorf("failed to update friend request: %w", err)
	}
	log.Printf("Friend request %d %s by user %d", requestID, status, actorID)

	event := apptypes.FriendRequestEvent{
		Type:         eventType,
		RequestID:    request.ID,
		SenderID:     request.SenderID,
		ReceiverID:   request.ReceiverID,
		NotifyUserID: request.SenderID,
	}
	if actor, err := s.userRepo.GetByID(ctx, actorID); err == nil {
		event.ActorUsername = actor.Username
	}
	s.publish(ctx, event)
	return nil
}

// publish is best effort. The request change is already committed.
func (s *friendRequestService) publish(ctx context.Context, event apptypes.FriendRequestEvent) {
	if s.publisher == nil {
		return
	}
	event.Timestamp = s.now().UTC()
	if err := s.publisher.PublishFriendRequestEvent(ctx, event); err != nil {
		log.Printf("Error publishing %s event for request %d: %v", event.Type, event.RequestID, err)
	}
}

func (s *friendRequestService) ListPendingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	requests, err := s.friendRepo.GetPendingRequestsForUser(ctx, userID)
	if err != nil {
		log.Printf("Error fetching pending friend requests for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return requests, nil
}

func (s *friendRequestService) GetFriendsList(ctx context.Context, userID uint) ([]models.User, error) {
	accepted, err := s.friendRepo.GetAcceptedForUser(ctx, userID)
	if err != nil {
		log.Printf("Error fetching accepted friend requests for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	friends := make([]models.User, 0, len(accepted))
	for i := range accepted {
		friends = append(friends, accepted[i].OtherParty(userID))
	}
	return friends, nil
}
