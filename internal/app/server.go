package app

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Server is the HTTP timeline viewer. It holds the loaded store and
// builds a fresh Session for every request.
type Server struct {
	source        Source
	excerptLength int
	metrics       *Metrics
	tmpl          *template.Template

	mu      sync.RWMutex
	store   *EventStore
	loadErr error
	raw     []byte
	etag    string

	mux    *http.ServeMux
	server *http.Server
}

// NewServer creates the viewer for cfg reading events from src. Events
// are not loaded until Reload is called.
func NewServer(cfg *Config, src Source) *Server {
	s := &Server{
		source:        src,
		excerptLength: cfg.Display.ExcerptLength,
		metrics:       NewMetrics(),
		tmpl:          mustParseTemplates(),
		mux:           http.NewServeMux(),
	}
	s.routes()
	s.server = &http.Server{
		Addr:         cfg.Server.ListenAddress,
		Handler:      s.mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

func (s *Server) routes() {
	m := s.metrics
	s.mux.HandleFunc("/", m.Instrument("index", s.ServeIndex))
	s.mux.HandleFunc("/theme", m.Instrument("theme", s.HandleTheme))
	s.mux.HandleFunc("/api/events", m.Instrument("events", s.HandleEvents))
	s.mux.HandleFunc("/api/events/{id}", m.Instrument("event", s.HandleEvent))
	s.mux.HandleFunc("/api/options", m.Instrument("options", s.HandleOptions))
	s.mux.HandleFunc("/api/download", m.Instrument("download", s.HandleDownload))
	s.mux.HandleFunc("/data/events.json", m.Instrument("data", s.HandleData))
	s.mux.Handle("/static/", http.FileServer(http.FS(StaticFiles)))
	s.mux.Handle("/metrics", m.Handler())
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler { return s.mux }

// Serve listens on the configured address
func (s *Server) Serve() error { return s.server.ListenAndServe() }

// Shutdown stops the listener and waits for open requests
func (s *Server) Shutdown(ctx context.Context) error { return s.server.Shutdown(ctx) }

// Reload fetches and validates the event document and swaps it in.
// A failed load replaces the store with the error state; nothing from a
// half-valid document is kept.
func (s *Server) Reload(ctx context.Context) error {
	store, err := LoadEvents(ctx, s.source)
	s.metrics.ObserveLoad(store, err)

	var raw []byte
	var etag string
	if err == nil {
		raw, err = json.Marshal(store.Events())
		if err == nil {
			sum := blake2b.Sum256(raw)
			etag = `"` + hex.EncodeToString(sum[:16]) + `"`
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("⚠️  Failed to load events from %s: %v", s.source, err)
		s.store, s.loadErr, s.raw, s.etag = nil, err, nil, ""
		return err
	}
	s.store, s.loadErr, s.raw, s.etag = store, nil, raw, etag
	log.Printf("✅ Loaded %d events from %s", store.Len(), s.source)
	return nil
}

// snapshot returns the current store and load error
func (s *Server) snapshot() (*EventStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store, s.loadErr
}

// session builds the per-request session: shared read-only events,
// theme from the request cookies
func (s *Server) session(w http.ResponseWriter, r *http.Request) *Session {
	sess := NewSession(NewThemeState(NewCookiePreferences(w, r)), s.excerptLength)
	store, err := s.snapshot()
	if store != nil || err != nil {
		sess.Attach(store, err)
	}
	return sess
}

func (s *Server) observeSince(start time.Time) {
	s.metrics.ObserveRender(time.Since(start))
}
