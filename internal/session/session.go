// Package session wraps the signed cookie session shared by every page.
//
// A cookie store decodes a fresh copy of the session on every Get, so a
// handler should Get once, mutate, and Save once per response.
package session

import (
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"teammatch/internal/config"
)

const (
	userIDKey               = "user_id"
	lastSearchedCategoryKey = "last_searched_category"
)

// NewCookieStore builds the signed cookie store described by cfg.
func NewCookieStore(cfg config.SessionConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.SecretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge(),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Manager reads and writes the named session.
type Manager struct {
	store sessions.Store
	name  string
}

// NewManager creates a Manager for the session called name in store.
func NewManager(store sessions.Store, name string) *Manager {
	return &Manager{store: store, name: name}
}

// Get returns the request's session. A cookie that fails to decode, for
// example after a secret rotation, yields a new empty session.
func (m *Manager) Get(r *http.Request) *sessions.Session {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		log.Printf("Discarding unreadable session cookie: %v", err)
	}
	if s == nil {
		s = sessions.NewSession(m.store, m.name)
	}
	return s
}

// Save writes s back to the response.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, s *sessions.Session) error {
	return s.Save(r, w)
}

// Flash adds msg to the session and saves it.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, msg string) {
	s := m.Get(r)
	s.AddFlash(msg)
	if err := s.Save(r, w); err != nil {
		log.Printf("Error saving flash message: %v", err)
	}
}

// UserID returns the logged in user, if any.
func UserID(s *sessions.Session) (uint, bool) {
	id, ok := s.Values[userIDKey].(uint)
	return id, ok && id != 0
}

// SetUserID marks s as logged in as id.
func SetUserID(s *sessions.Session, id uint) {
	s.Values[userIDKey] = id
}

// ClearUserID logs s out. The remembered search category survives.
func ClearUserID(s *sessions.Session) {
	delete(s.Values, userIDKey)
}

// LastSearchedCategory returns the remembered category or "".
func LastSearchedCategory(s *sessions.Session) string {
	c, _ := s.Values[lastSearchedCategoryKey].(string)
	return c
}

// SetLastSearchedCategory remembers category for later recommendations.
func SetLastSearchedCategory(s *sessions.Session, category string) {
	s.Values[lastSearchedCategoryKey] = category
}

// PopFlashes returns and removes the pending flash messages. The caller must
// save s when the result is non-empty.
func PopFlashes(s *sessions.Session) []string {
	raw := s.Flashes()
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
