package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teammatch/internal/config"
)

func newTestManager() *Manager {
	cfg := config.SessionConfig{Name: "teammatch-session", SecretKey: "test-secret", MaxAgeDays: 7}
	return NewManager(NewCookieStore(cfg), cfg.Name)
}

// roundTrip returns a request carrying the cookies set on rec.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestManager_LoginStateSurvivesRoundTrip(t *testing.T) {
	m := newTestManager()

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	s := m.Get(req)
	_, ok := UserID(s)
	assert.False(t, ok)

	SetUserID(s, 42)
	SetLastSearchedCategory(s, "coding")
	s.AddFlash("Logged in successfully!")
	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, req, s))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "teammatch-session", cookies[0].Name)
	assert.Equal(t, 7*24*3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)

	s2 := m.Get(roundTrip(rec))
	id, ok := UserID(s2)
	require.True(t, ok)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "coding", LastSearchedCategory(s2))
	assert.Equal(t, []string{"Logged in successfully!"}, PopFlashes(s2))
	assert.Empty(t, PopFlashes(s2))
}

func TestManager_LogoutKeepsCategory(t *testing.T) {
	m := newTestManager()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s := m.Get(req)
	SetUserID(s, 7)
	SetLastSearchedCategory(s, "design")
	ClearUserID(s)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, req, s))

	s2 := m.Get(roundTrip(rec))
	_, ok := UserID(s2)
	assert.False(t, ok)
	assert.Equal(t, "design", LastSearchedCategory(s2))
}

func TestManager_TamperedCookieYieldsEmptySession(t *testing.T) {
	m := newTestManager()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "teammatch-session", Value: "garbage"})

	s := m.Get(req)
	require.NotNil(t, s)
	_, ok := UserID(s)
	assert.False(t, ok)
	assert.Empty(t, LastSearchedCategory(s))
}

func TestManager_Flash(t *testing.T) {
	m := newTestManager()
	rec := httptest.NewRecorder()
	m.Flash(rec, httptest.NewRequest(http.MethodGet, "/", nil), "Profile updated successfully!")

	s := m.Get(roundTrip(rec))
	assert.Equal(t, []string{"Profile updated successfully!"}, PopFlashes(s))
}
