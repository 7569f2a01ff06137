package app

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// applyQuery feeds the category, year and event query parameters through
// the session handlers. missed reports an event id that is not in the
// loaded store.
func applyQuery(sess *Session, q url.Values) (missed bool, err error) {
	sess.OnCategoryChange(q.Get("category"))

	year, err := ParseYearFilter(q.Get("year"))
	if err != nil {
		return false, err
	}
	sess.OnYearChange(year)

	if idStr := q.Get("event"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			// Unknown ids are a no-op, unparseable ones too
			return false, nil
		}
		var lookupErr *LookupError
		if errors.As(sess.OnItemSelected(id), &lookupErr) {
			return true, nil
		}
	}
	return false, nil
}

// ServeIndex renders the timeline page
func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	start := time.Now()
	defer s.observeSince(start)

	sess := s.session(w, r)
	missed, err := applyQuery(sess, r.URL.Query())
	if err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}
	if missed {
		s.metrics.LookupMiss()
	}

	view := Project(sess)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "page", newPage(view)); err != nil {
		log.Printf("Error rendering timeline: %v", err)
	}
}

// HandleTheme toggles the theme cookie and sends the browser back
func (s *Server) HandleTheme(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	sess := s.session(w, r)
	if err := sess.OnToggleTheme(); err != nil {
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, safeReturn(r.FormValue("return")), http.StatusSeeOther)
}

// safeReturn only allows local absolute paths as redirect targets
func safeReturn(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

// readySession builds a session from the query and fails the request when
// the events are not available
func (s *Server) readySession(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess := s.session(w, r)
	if _, err := applyQuery(sess, r.URL.Query()); err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return nil, false
	}
	switch sess.Status() {
	case StatusLoading, StatusError:
		http.Error(w, ErrNotReady, http.StatusServiceUnavailable)
		return nil, false
	}
	return sess, true
}

// HandleEvents returns the filtered, year-sorted events
// Query params: category, year (both optional, default All)
func (s *Server) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	sess, ok := s.readySession(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := WriteJSON(w, sess.Selection(), sess.Display()); err != nil {
		log.Printf("Error encoding events: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleEvent returns one event by id
// URL: /api/events/{id}
func (s *Server) HandleEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, ErrInvalidID, http.StatusBadRequest)
		return
	}

	sess := s.session(w, r)
	ev, err := sess.Lookup(id)
	var lookupErr *LookupError
	switch {
	case errors.As(err, &lookupErr):
		s.metrics.LookupMiss()
		http.Error(w, ErrEventNotFound, http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, ErrNotReady, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Detail(ev)); err != nil {
		log.Printf("Error encoding event: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleOptions returns the categories and years for the selectors
func (s *Server) HandleOptions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	sess, ok := s.readySession(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sess.Options()); err != nil {
		log.Printf("Error encoding options: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleDownload exports the current display set as CSV or JSON
// Query params: format (csv|json), category, year
func (s *Server) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
		return
	}
	sess, ok := s.readySession(w, r)
	if !ok {
		return
	}

	switch format {
	case "csv":
		GenerateCSV(w, sess.Selection(), sess.Display())
	case "json":
		GenerateJSON(w, sess.Selection(), sess.Display())
	}
}

// HandleData serves the validated event document. Clients revalidate
// with If-None-Match.
func (s *Server) HandleData(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	s.mu.RLock()
	raw, etag := s.raw, s.etag
	s.mu.RUnlock()

	if raw == nil {
		http.Error(w, ErrNotReady, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(raw); err != nil {
		log.Printf("Error writing event data: %v", err)
	}
}
