package webserver

import (
	"log"
	"net/http"
	"strconv"

	"teammatch/internal/middleware"
	"teammatch/internal/models"
	"teammatch/internal/services"
	"teammatch/internal/session"
)

// SearchHandler serves the skill search and the teammate finder.
type SearchHandler struct {
	pages
	userService     services.UserService
	recommendations services.RecommendationService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(us services.UserService, rs services.RecommendationService, p pages) *SearchHandler {
	return &SearchHandler{pages: p, userService: us, recommendations: rs}
}

type teammatesData struct {
	Users       []models.User
	SearchQuery string
	Pagination  *services.SearchResult
}

// Search lists users by skill, six per page. A categorized search by a logged
// in user is remembered in the session.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(r)
	userID, _ := session.UserID(s)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.userService.SearchBySkill(r.Context(), userID, r.URL.Query().Get("skill"), page)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if result.Category != "" {
		session.SetLastSearchedCategory(s, result.Category)
		if err := h.sessions.Save(w, r, s); err != nil {
			log.Printf("Error saving session: %v", err)
		}
	}

	h.render(w, r, s, http.StatusOK, "find_teammates.html", "Find teammates", teammatesData{
		Users:       result.Users,
		SearchQuery: result.Term,
		Pagination:  result,
	})
}

// FindTeammates lists everyone in the remembered category, or everyone.
func (h *SearchHandler) FindTeammates(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	s := h.sessions.Get(r)

	rc := services.RecommendationContext{LastSearchedCategory: session.LastSearchedCategory(s)}
	users, err := h.recommendations.FindTeammates(r.Context(), userID, rc)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, s, http.StatusOK, "find_teammates.html", "Find teammates", teammatesData{Users: users})
}
