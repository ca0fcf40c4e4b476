package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type card struct {
	ID             uint
	Username       string
	ProfilePicture string
	Skills         []string
}

func (c card) SkillList() []string { return c.Skills }

func TestPageRenderer_LayoutAndFlashes(t *testing.T) {
	pr, err := NewPageRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = pr.RenderTemplate(&buf, "index.html", Page{
		Title:   "Home",
		UserID:  3,
		Flashes: []string{"Logged in successfully!"},
		Data: struct{ Recommendations []card }{
			Recommendations: []card{{ID: 8, Username: "bob", Skills: []string{"python", "ml"}}},
		},
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>Home - Hackathon Teammate Finder</title>")
	assert.Contains(t, html, "Logged in successfully!")
	assert.Contains(t, html, `href="/profile/8"`)
	assert.Contains(t, html, "python, ml")
	assert.Contains(t, html, "/ws/notifications")
	assert.Contains(t, html, `href="/logout"`)
}

func TestPageRenderer_AnonymousAndEscaping(t *testing.T) {
	pr, err := NewPageRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pr.RenderTemplate(&buf, "not_found.html", Page{Data: "<script>alert(1)</script>"}))

	html := buf.String()
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.NotContains(t, html, "/ws/notifications")
	assert.Contains(t, html, `href="/login"`)
}

func TestPageRenderer_UnknownTemplate(t *testing.T) {
	pr, err := NewPageRenderer()
	require.NoError(t, err)
	assert.Error(t, pr.RenderTemplate(&bytes.Buffer{}, "missing.html", Page{}))
}
