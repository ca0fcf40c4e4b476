package webserver

import (
	"errors"
	"fmt"
	"net/http"

	"teammatch/internal/services"
	"teammatch/internal/session"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	pages
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService services.AuthService, p pages) *AuthHandler {
	return &AuthHandler{pages: p, authService: authService}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(r)
	if r.Method == http.MethodGet {
		h.render(w, r, s, http.StatusOK, "register.html", "Register", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	_, err := h.authService.Register(r.Context(), r.FormValue("username"), r.FormValue("password"), r.FormValue("skills"))
	switch {
	case errors.Is(err, services.ErrUserAlreadyExists):
		h.redirect(w, r, s, "/register", "Username already exists!")
	case errors.Is(err, services.ErrMissingFields):
		h.redirect(w, r, s, "/register", "Username and password are required!")
	case errors.Is(err, services.ErrPasswordTooLong):
		h.redirect(w, r, s, "/register", fmt.Sprintf("Password must be at most %d bytes long!", services.MaxPasswordBytes))
	case err != nil:
		h.serverError(w, r, err)
	default:
		h.redirect(w, r, s, "/login", "Registration successful!")
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(r)
	if r.Method == http.MethodGet {
		h.render(w, r, s, http.StatusOK, "login.html", "Login", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	user, err := h.authService.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		s.AddFlash("Invalid username or password!")
		h.render(w, r, s, http.StatusOK, "login.html", "Login", nil)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	session.SetUserID(s, user.ID)
	h.redirect(w, r, s, "/", "Logged in successfully!")
}

// Logout forgets the user but keeps the rest of the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(r)
	session.ClearUserID(s)
	h.redirect(w, r, s, "/", "You have been logged out successfully!")
}
