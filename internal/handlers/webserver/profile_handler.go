package webserver

import (
	"errors"
	"fmt"
	"net/http"

	"teammatch/internal/middleware"
	"teammatch/internal/models"
	"teammatch/internal/services"
	"teammatch/internal/session"
)

const defaultMaxMemory = 32 << 20 // 32 MB

// ProfileHandler serves profile pages and profile editing.
type ProfileHandler struct {
	pages
	userService    services.UserService
	maxUploadBytes int64
}

// NewProfileHandler creates a new ProfileHandler. maxUploadMB bounds the whole
// edit form body.
func NewProfileHandler(us services.UserService, maxUploadMB int64, p pages) *ProfileHandler {
	maxUploadBytes := maxUploadMB << 20
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxMemory
	}
	return &ProfileHandler{pages: p, userService: us, maxUploadBytes: maxUploadBytes}
}

type profileData struct {
	User  *models.User
	IsOwn bool
}

func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r, "User not found.")
		return
	}
	user, err := h.userService.GetProfile(r.Context(), id)
	if errors.Is(err, services.ErrUserNotFound) {
		h.notFound(w, r, "User not found.")
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	s := h.sessions.Get(r)
	viewer, _ := session.UserID(s)
	h.render(w, r, s, http.StatusOK, "profile.html", user.Username, profileData{User: user, IsOwn: viewer == user.ID})
}

func (h *ProfileHandler) EditProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	s := h.sessions.Get(r)

	if r.Method == http.MethodGet {
		user, err := h.userService.GetProfile(r.Context(), userID)
		if errors.Is(err, services.ErrUserNotFound) {
			h.notFound(w, r, "User not found.")
			return
		}
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		h.render(w, r, s, http.StatusOK, "edit_profile.html", "Edit profile", profileData{User: user, IsOwn: true})
		return
	}

	// Slack for the text fields on top of the picture limit.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(defaultMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.redirect(w, r, s, "/edit-profile", fmt.Sprintf("Profile picture must be at most %d MB.", h.maxUploadBytes>>20))
			return
		}
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	update := services.ProfileUpdate{
		Bio:      r.FormValue("bio"),
		Location: r.FormValue("location"),
		GitHub:   r.FormValue("github"),
		LinkedIn: r.FormValue("linkedin"),
	}
	file, header, err := r.FormFile("profile_picture")
	if err == nil {
		defer file.Close()
		if header.Filename != "" {
			update.Picture = &services.PictureUpload{
				Reader:   file,
				Size:     header.Size,
				FileName: header.Filename,
				MimeType: header.Header.Get("Content-Type"),
			}
		}
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "Error reading profile picture", http.StatusBadRequest)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, update)
	switch {
	case errors.Is(err, services.ErrInvalidFileType):
		h.redirect(w, r, s, "/edit-profile", "Profile picture must be a png, jpg or jpeg file.")
	case errors.Is(err, services.ErrFileTooLarge):
		h.redirect(w, r, s, "/edit-profile", fmt.Sprintf("Profile picture must be at most %d MB.", h.maxUploadBytes>>20))
	case errors.Is(err, services.ErrUserNotFound):
		h.notFound(w, r, "User not found.")
	case err != nil:
		h.serverError(w, r, err)
	default:
		h.redirect(w, r, s, fmt.Sprintf("/profile/%d", user.ID), "Profile updated successfully!")
	}
}
