package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"teammatch/internal/models"
)

// FriendRequestRepository defines the interface for friend request data operations.
type FriendRequestRepository interface {
	Create(ctx context.Context, request *models.FriendRequest) error
	// FindExisting returns the first request sender→receiver with status, or nil.
	FindExisting(ctx context.Context, senderID, receiverID uint, status models.FriendRequestStatus) (*models.FriendRequest, error)
	GetRequestByID(ctx context.Context, requestID uint) (*models.FriendRequest, error)
	UpdateRequestStatus(ctx context.Context, requestID uint, status models.FriendRequestStatus) error
	// GetPendingRequestsForUser lists pending requests addressed to receiverID, with Sender loaded.
	GetPendingRequestsForUser(ctx context.Context, receiverID uint) ([]models.FriendRequest, error)
	// GetAcceptedForUser lists accepted requests userID sent or received, with both parties loaded.
	GetAcceptedForUser(ctx context.Context, userID uint) ([]models.FriendRequest, error)
}

type gormFriendRequestRepository struct {
	db *gorm.DB
}

func NewGormFriendRequestRepository(db *gorm.DB) FriendRequestRepository {
	return &gormFriendRequestRepository{db: db}
}

func (r *gormFriendRequestRepository) Create(ctx context.Context, request *models.FriendRequest) error {
	// Omit associations so an unloaded Sender/Receiver is not upserted.
	return r.db.WithContext(ctx).Omit("Sender", "Receiver").Create(request).Error
}

func (r *gormFriendRequestRepository) FindExisting(ctx context.Context, senderID, receiverID uint, status models.FriendRequestStatus) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, status).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No matching request is not an error in this context
		}
		return nil, err
	}
	return &request, nil
}

func (r *gormFriendRequestRepository) GetRequestByID(ctx context.Context, requestID uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.db.WithContext(ctx).First(&request, requestID).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *gormFriendRequestRepository) UpdateRequestStatus(ctx context.Context, requestID uint, status models.FriendRequestStatus) error {
	return r.db.WithContext(ctx).Model(&models.FriendRequest{}).Where("id = ?", requestID).Update("status", status).Error
}

func (r *gormFriendRequestRepository) GetPendingRequestsForUser(ctx context.Context, receiverID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("receiver_id = ? AND status = ?", receiverID, models.FriendRequestStatusPending).
		Order("id ASC").
		Find(&requests).Error
	return requests, err
}

func (r *gormFriendRequestRepository) GetAcceptedForUser(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?", userID, userID, models.FriendRequestStatusAccepted).
		Order("id ASC").
		Find(&requests).Error
	return requests, err
}
