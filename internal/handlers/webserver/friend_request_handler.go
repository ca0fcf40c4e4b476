package webserver

import (
	"context"
	"errors"
	"net/http"

	"teammatch/internal/middleware"
	"teammatch/internal/models"
	"teammatch/internal/services"
)

// FriendRequestHandler serves the friend request and friends pages.
type FriendRequestHandler struct {
	pages
	friendService services.FriendRequestService
}

// NewFriendRequestHandler creates a new FriendRequestHandler.
func NewFriendRequestHandler(fs services.FriendRequestService, p pages) *FriendRequestHandler {
	return &FriendRequestHandler{pages: p, friendService: fs}
}

// Send handles POST /send-friend-request/{id}.
func (h *FriendRequestHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, _ := middleware.GetUserIDFromContext(r.Context())
	s := h.sessions.Get(r)
	receiverID, ok := pathID(r)
	if !ok {
		h.notFound(w, r, "User not found.")
		return
	}

	_, err := h.friendService.SendFriendRequest(r.Context(), senderID, receiverID)
	switch {
	case errors.Is(err, services.ErrFriendRequestSelf):
		h.redirect(w, r, s, "/find-teammates", "You cannot send a friend request to yourself!")
	case errors.Is(err, services.ErrFriendRequestExists):
		h.redirect(w, r, s, "/find-teammates", "Friend request already sent!")
	case errors.Is(err, services.ErrRecipientNotFound), errors.Is(err, services.ErrUserNotFound):
		h.notFound(w, r, "User not found.")
	case err != nil:
		h.serverError(w, r, err)
	default:
		h.redirect(w, r, s, "/find-teammates", "Friend request sent successfully!")
	}
}

// Accept handles POST /accept-friend-request/{id}.
func (h *FriendRequestHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.friendService.AcceptFriendRequest, "accept", "Friend request accepted!")
}

// Reject handles POST /reject-friend-request/{id}.
func (h *FriendRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.friendService.RejectFriendRequest, "reject", "Friend request rejected!")
}

func (h *FriendRequestHandler) resolve(w http.ResponseWriter, r *http.Request, action func(context.Context, uint, uint) error, verb, success string) {
	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	s := h.sessions.Get(r)
	requestID, ok := pathID(r)
	if !ok {
		h.notFound(w, r, "Friend request not found.")
		return
	}

	err := action(r.Context(), actorID, requestID)
	switch {
	case errors.Is(err, services.ErrFriendRequestNotFound):
		h.notFound(w, r, "Friend request not found.")
	case errors.Is(err, services.ErrNotRecipientOfRequest):
		h.redirect(w, r, s, "/", "You are not authorized to "+verb+" this request.")
	case errors.Is(err, services.ErrRequestNotPending):
		h.redirect(w, r, s, "/friend-requests", "This friend request has already been answered.")
	case err != nil:
		h.serverError(w, r, err)
	default:
		h.redirect(w, r, s, "/", success)
	}
}

type friendRequestsData struct {
	Requests []models.FriendRequest
}

// Requests lists pending requests addressed to the current user.
func (h *FriendRequestHandler) Requests(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	requests, err := h.friendService.ListPendingRequests(r.Context(), userID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, h.sessions.Get(r), http.StatusOK, "friend_requests.html", "Friend requests", friendRequestsData{Requests: requests})
}

type friendsData struct {
	Friends []models.User
}

// Friends lists everyone the current user has an accepted request with.
func (h *FriendRequestHandler) Friends(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	friends, err := h.friendService.GetFriendsList(r.Context(), userID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, h.sessions.Get(r), http.StatusOK, "friends.html", "Friends", friendsData{Friends: friends})
}
