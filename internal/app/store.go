package app

// EventStore is the immutable collection of loaded events. The zero value
// is an empty store that has not been loaded yet.
type EventStore struct {
	events  []Event
	byID    map[int]int
	options FilterOptions
	loaded  bool
}

// NewEventStore creates a loaded store from validated events. Filter
// options are derived here, once per load.
func NewEventStore(events []Event) *EventStore {
	s := &EventStore{
		events: make([]Event, len(events)),
		byID:   make(map[int]int, len(events)),
		loaded: true,
	}
	copy(s.events, events)
	for i, e := range s.events {
		s.byID[e.ID] = i
	}
	s.options = DeriveOptions(s.events)
	return s
}

// Loaded reports whether the store has been populated
func (s *EventStore) Loaded() bool {
	return s != nil && s.loaded
}

// Len returns the number of events
func (s *EventStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.events)
}

// Events returns a copy of all events in load order
func (s *EventStore) Events() []Event {
	if s == nil {
		return nil
	}
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Lookup returns the event with the given id
func (s *EventStore) Lookup(id int) (Event, error) {
	if !s.Loaded() {
		return Event{}, ErrNotLoaded
	}
	i, ok := s.byID[id]
	if !ok {
		return Event{}, &LookupError{ID: id}
	}
	return s.events[i], nil
}

// Options returns the categories and years present in the store
func (s *EventStore) Options() FilterOptions {
	if !s.Loaded() {
		return FilterOptions{Categories: []string{}, Years: []int{}}
	}
	return FilterOptions{
		Categories: append([]string{}, s.options.Categories...),
		Years:      append([]int{}, s.options.Years...),
	}
}

// Query filters and sorts the store for display
func (s *EventStore) Query(sel FilterSelection) ([]Event, error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}
	return SortByYear(Filter(s.events, sel)), nil
}
