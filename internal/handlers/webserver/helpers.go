package webserver

import (
	"bytes"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"teammatch/internal/session"
	"teammatch/internal/view"
)

// pages holds what every page handler needs to answer with HTML.
type pages struct {
	sessions *session.Manager
	renderer *view.PageRenderer
}

// render writes page name wrapped in the layout. Pending flashes in s are
// consumed, so s is saved first.
func (p *pages) render(w http.ResponseWriter, r *http.Request, s *sessions.Session, status int, name, title string, data any) {
	userID, _ := session.UserID(s)
	page := view.Page{
		Title:   title,
		UserID:  userID,
		Flashes: session.PopFlashes(s),
		Data:    data,
	}
	if len(page.Flashes) > 0 {
		if err := p.sessions.Save(w, r, s); err != nil {
			log.Printf("Error saving session: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := p.renderer.RenderTemplate(&buf, name, page); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// redirect flashes msg in s, saves s and redirects to url.
func (p *pages) redirect(w http.ResponseWriter, r *http.Request, s *sessions.Session, url, msg string) {
	if msg != "" {
		s.AddFlash(msg)
	}
	if err := p.sessions.Save(w, r, s); err != nil {
		log.Printf("Error saving session: %v", err)
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (p *pages) notFound(w http.ResponseWriter, r *http.Request, msg string) {
	p.render(w, r, p.sessions.Get(r), http.StatusNotFound, "not_found.html", "Not found", msg)
}

func (p *pages) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("Error handling %s %s: %v", r.Method, r.URL.Path, err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
