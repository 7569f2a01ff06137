package app

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
)

// Session is the application context for one viewer session. It owns
// the loaded events, the filter selection, the open detail view and the
// theme, and exposes one handler per UI action.
type Session struct {
	ID string

	store   *EventStore
	loadErr error

	selection FilterSelection
	selected  *Event
	theme     *ThemeState

	excerptLength int
}

// NewSession creates a session in the loading state
func NewSession(theme *ThemeState, excerptLength int) *Session {
	if theme == nil {
		theme = NewThemeState(nil)
	}
	if excerptLength <= 0 {
		excerptLength = DefaultExcerptLength
	}
	return &Session{
		ID:            uuid.NewString(),
		selection:     DefaultSelection,
		theme:         theme,
		excerptLength: excerptLength,
	}
}

// Load fetches and validates the events. It is the only blocking step of
// a session and runs once; later calls return the first outcome.
func (s *Session) Load(ctx context.Context, src Source) error {
	if s.store != nil || s.loadErr != nil {
		return s.loadErr
	}
	store, err := LoadEvents(ctx, src)
	if err != nil {
		log.Printf("[%s] Error loading events: %v", s.short(), err)
	}
	s.Attach(store, err)
	return err
}

// Attach records the outcome of a load performed elsewhere
func (s *Session) Attach(store *EventStore, err error) {
	if err != nil {
		s.store = nil
		s.loadErr = err
		return
	}
	s.store = store
	s.loadErr = nil
}

// Status reports what the timeline area shows right now
func (s *Session) Status() Status {
	switch {
	case s.loadErr != nil:
		return StatusError
	case !s.store.Loaded():
		return StatusLoading
	case len(Filter(s.store.events, s.selection)) == 0:
		return StatusEmpty
	default:
		return StatusReady
	}
}

// Err returns the load error, if any
func (s *Session) Err() error {
	return s.loadErr
}

// OnCategoryChange applies a new category selector value
func (s *Session) OnCategoryChange(category string) {
	s.selection.Category = NormalizeCategory(category)
}

// OnYearChange applies a new year selector value
func (s *Session) OnYearChange(year YearFilter) {
	s.selection.Year = year
}

// OnClearFilters resets both selectors
func (s *Session) OnClearFilters() {
	s.selection = DefaultSelection
}

// OnToggleTheme flips and persists the theme
func (s *Session) OnToggleTheme() error {
	if err := s.theme.Toggle(); err != nil {
		log.Printf("[%s] Error saving theme preference: %v", s.short(), err)
		return err
	}
	return nil
}

// OnItemSelected opens the detail view for id. The event comes from the
// full store, not the filtered view. An unknown id leaves the session
// unchanged.
func (s *Session) OnItemSelected(id int) error {
	ev, err := s.store.Lookup(id)
	if err != nil {
		var lookupErr *LookupError
		if errors.As(err, &lookupErr) {
			log.Printf("[%s] %v", s.short(), err)
		}
		return err
	}
	s.selected = &ev
	return nil
}

// OnDismiss closes the detail view
func (s *Session) OnDismiss() {
	s.selected = nil
}

// Selection returns the current filter selection
func (s *Session) Selection() FilterSelection {
	return s.selection
}

// Selected returns the event shown in the detail view
func (s *Session) Selected() (Event, bool) {
	if s.selected == nil {
		return Event{}, false
	}
	return *s.selected, true
}

// Theme returns the current theme
func (s *Session) Theme() Theme {
	return s.theme.Current()
}

// Options returns the selector values for the loaded events
func (s *Session) Options() FilterOptions {
	return s.store.Options()
}

// Events returns every loaded event in load order
func (s *Session) Events() []Event {
	return s.store.Events()
}

// Filtered returns the events passing the current selection, in load order
func (s *Session) Filtered() []Event {
	if !s.store.Loaded() {
		return nil
	}
	return Filter(s.store.events, s.selection)
}

// Display returns the filtered events sorted by year
func (s *Session) Display() []Event {
	return SortByYear(s.Filtered())
}

// Lookup finds an event in the full store
func (s *Session) Lookup(id int) (Event, error) {
	return s.store.Lookup(id)
}

func (s *Session) short() string {
	if len(s.ID) > 8 {
		return s.ID[:8]
	}
	return s.ID
}
