package webserver

import (
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"

	"teammatch/internal/config"
	"teammatch/internal/middleware"
	"teammatch/internal/services"
	"teammatch/internal/session"
	"teammatch/internal/view"
	ws "teammatch/internal/websocket"
)

// Dependencies are the services and infrastructure the web routes use.
type Dependencies struct {
	Config          *config.Config
	Sessions        *session.Manager
	Renderer        *view.PageRenderer
	Hub             *ws.Hub
	AuthService     services.AuthService
	UserService     services.UserService
	Recommendations services.RecommendationService
	FriendRequests  services.FriendRequestService
}

// NewRouter registers every page route.
func NewRouter(deps Dependencies) *mux.Router {
	p := pages{sessions: deps.Sessions, renderer: deps.Renderer}
	authHandler := NewAuthHandler(deps.AuthService, p)
	homeHandler := NewHomeHandler(deps.Recommendations, deps.UserService, p)
	profileHandler := NewProfileHandler(deps.UserService, int64(deps.Config.Storage.MaxFileSizeMB), p)
	searchHandler := NewSearchHandler(deps.UserService, deps.Recommendations, p)
	friendHandler := NewFriendRequestHandler(deps.FriendRequests, p)
	notificationHandler := NewNotificationHandler(deps.Hub, deps.Sessions, deps.Config.WebSocket)

	login := func(msg string, h http.HandlerFunc) http.Handler {
		return middleware.RequireLogin(deps.Sessions, msg)(h)
	}

	r := mux.NewRouter()

	r.HandleFunc("/", homeHandler.Index).Methods(http.MethodGet)
	r.HandleFunc("/register", authHandler.Register).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/search", searchHandler.Search).Methods(http.MethodGet)
	r.HandleFunc("/profile/{id:[0-9]+}", profileHandler.Profile).Methods(http.MethodGet)

	r.Handle("/dashboard", login("You need to log in to view the dashboard.", homeHandler.Dashboard)).Methods(http.MethodGet)
	r.Handle("/edit-profile", login("You need to log in to edit your profile.", profileHandler.EditProfile)).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/find-teammates", login("You need to log in to find teammates.", searchHandler.FindTeammates)).Methods(http.MethodGet)
	r.Handle("/send-friend-request/{id:[0-9]+}", login("You need to log in to send friend requests.", friendHandler.Send)).Methods(http.MethodPost)
	r.Handle("/accept-friend-request/{id:[0-9]+}", login("You need to log in to accept friend requests.", friendHandler.Accept)).Methods(http.MethodPost)
	r.Handle("/reject-friend-request/{id:[0-9]+}", login("You need to log in to reject friend requests.", friendHandler.Reject)).Methods(http.MethodPost)
	r.Handle("/friend-requests", login("You need to log in to view friend requests.", friendHandler.Requests)).Methods(http.MethodGet)
	r.Handle("/friends", login("You need to log in to view your friends.", friendHandler.Friends)).Methods(http.MethodGet)

	r.HandleFunc("/ws/notifications", notificationHandler.ServeWS)

	// Locally stored pictures are served at the base URL their links use. An
	// absolute BASE_URL means something else serves them.
	uploadsBase := strings.TrimSuffix(deps.Config.Storage.BaseURL, "/")
	if deps.Config.Storage.Type == "local" && deps.Config.Storage.LocalPath != "" && strings.HasPrefix(uploadsBase, "/") {
		uploadsPath := uploadsBase + "/"
		r.PathPrefix(uploadsPath).Handler(http.StripPrefix(uploadsPath, http.FileServer(http.FS(os.DirFS(deps.Config.Storage.LocalPath)))))
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.notFound(w, r, "Page not found.")
	})
	return r
}
