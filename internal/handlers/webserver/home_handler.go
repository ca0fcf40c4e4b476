package webserver

import (
	"errors"
	"net/http"

	"teammatch/internal/middleware"
	"teammatch/internal/models"
	"teammatch/internal/services"
	"teammatch/internal/session"
)

// HomeHandler serves the index and dashboard pages.
type HomeHandler struct {
	pages
	recommendations services.RecommendationService
	userService     services.UserService
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(rs services.RecommendationService, us services.UserService, p pages) *HomeHandler {
	return &HomeHandler{pages: p, recommendations: rs, userService: us}
}

type indexData struct {
	Recommendations []models.User
}

// Index shows recommendations to logged in users, preferring the category of
// their last search.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(r)
	data := indexData{}
	if userID, ok := session.UserID(s); ok {
		rc := services.RecommendationContext{LastSearchedCategory: session.LastSearchedCategory(s)}
		users, err := h.recommendations.RecommendForSession(r.Context(), userID, rc)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		data.Recommendations = users
	}
	h.render(w, r, s, http.StatusOK, "index.html", "Home", data)
}

type dashboardData struct {
	User            *models.User
	Recommendations []models.User
}

// Dashboard always ranks by search history.
func (h *HomeHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	user, err := h.userService.GetProfile(r.Context(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		h.notFound(w, r, "User not found.")
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	users, err := h.recommendations.Recommend(r.Context(), userID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, h.sessions.Get(r), http.StatusOK, "dashboard.html", "Dashboard", dashboardData{User: user, Recommendations: users})
}
