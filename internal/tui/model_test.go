package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/klabast/wb-services/timeline/internal/app"
)

const testEvents = `[
  {"id": 1, "year": 1969, "title": "Moon Landing", "description": "Apollo 11 lands on the Moon.", "category": "Science"},
  {"id": 2, "year": 1989, "title": "Fall of the Berlin Wall", "description": "The wall opens.", "category": "Politics"},
  {"id": 3, "year": 1953, "title": "DNA Structure", "description": "The double helix.", "category": "Science"}
]`

type stubSource struct {
	data []byte
	err  error
}

func (s stubSource) Fetch(ctx context.Context) ([]byte, error) { return s.data, s.err }
func (s stubSource) String() string                             { return "stub" }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded returns a model after its initial load has completed
func loaded(t *testing.T, src app.Source) Model {
	t.Helper()
	m := New(src, app.NewThemeState(nil), 0)
	msg := m.Init()()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, msgs ...tea.KeyMsg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModelLoad(t *testing.T) {
	m := New(stubSource{data: []byte(testEvents)}, nil, 0)
	if !strings.Contains(m.View(), app.MsgLoading) {
		t.Error("View before load should show the loading message")
	}

	m = loaded(t, stubSource{data: []byte(testEvents)})
	if m.Session().Status() != app.StatusReady {
		t.Fatalf("Status = %s, want ready", m.Session().Status())
	}
	view := m.View()
	if strings.Index(view, "DNA Structure") > strings.Index(view, "Moon Landing") {
		t.Error("Events should be listed by year")
	}
}

func TestModelLoadError(t *testing.T) {
	m := loaded(t, stubSource{err: &app.FetchError{Source: "stub", Err: errors.New("offline")}})

	if m.Session().Status() != app.StatusError {
		t.Fatalf("Status = %s, want error", m.Session().Status())
	}
	if !strings.Contains(m.View(), app.MsgLoadFailed) {
		t.Error("View should show the load failure")
	}

	_, cmd := m.Update(runes("r"))
	if cmd == nil {
		t.Error("Reload in the error state should start a new load")
	}
}

func TestModelOpenAndDismiss(t *testing.T) {
	m := loaded(t, stubSource{data: []byte(testEvents)})

	m = press(m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	ev, ok := m.Session().Selected()
	if !ok || ev.ID != 1 {
		t.Fatalf("Selected() = %+v, %v; want the 1969 event", ev, ok)
	}
	if !strings.Contains(m.View(), "Apollo 11 lands on the Moon.") {
		t.Error("Detail view should show the description")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.Session().Selected(); ok {
		t.Error("Esc should close the detail view")
	}
}

func TestModelCursorBounds(t *testing.T) {
	m := loaded(t, stubSource{data: []byte(testEvents)})

	m = press(m, runes("k"))
	if m.cursor != 0 {
		t.Errorf("Cursor should stop at the top, got %d", m.cursor)
	}
	m = press(m, runes("j"), runes("j"), runes("j"), runes("j"))
	if m.cursor != 2 {
		t.Errorf("Cursor should stop at the last event, got %d", m.cursor)
	}
}

func TestModelFilterKeys(t *testing.T) {
	m := loaded(t, stubSource{data: []byte(testEvents)})

	m = press(m, runes("c"))
	if got := m.Session().Selection().Category; got != "Politics" {
		t.Errorf("Category after c = %q, want Politics", got)
	}
	m = press(m, runes("C"), runes("C"))
	if got := m.Session().Selection().Category; got != "Science" {
		t.Errorf("Category after C C = %q, want Science", got)
	}

	m = press(m, runes("y"))
	if got := m.Session().Selection().Year.String(); got != "1953" {
		t.Errorf("Year after y = %q, want 1953", got)
	}
	if got := len(m.Session().Display()); got != 1 {
		t.Errorf("Expected 1 event for Science/1953, got %d", got)
	}

	m = press(m, runes("x"))
	if m.Session().Selection() != app.DefaultSelection {
		t.Errorf("Selection after clear = %+v", m.Session().Selection())
	}
}

func TestModelEmptyState(t *testing.T) {
	m := loaded(t, stubSource{data: []byte(testEvents)})

	// Politics has no events in 1953
	m = press(m, runes("c"), runes("y"))
	if !strings.Contains(m.View(), app.MsgEmpty) {
		t.Error("View should show the empty message")
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := m.Session().Selected(); ok {
		t.Error("Enter on an empty list should not open anything")
	}
}

func TestModelToggleTheme(t *testing.T) {
	m := loaded(t, stubSource{data: []byte(testEvents)})

	m = press(m, runes("t"))
	if m.Session().Theme() != app.ThemeDark {
		t.Errorf("Theme after t = %s, want dark", m.Session().Theme())
	}
	if !strings.Contains(m.View(), "dark") {
		t.Error("Header should show the dark theme")
	}
}

func TestCycle(t *testing.T) {
	values := []string{"All", "a", "b"}

	tests := []struct {
		current string
		step    int
		want    string
	}{
		{current: "All", step: 1, want: "a"},
		{current: "b", step: 1, want: "All"},
		{current: "All", step: -1, want: "b"},
		{current: "missing", step: 1, want: "a"},
	}
	for _, tt := range tests {
		if got := cycle(values, tt.current, tt.step); got != tt.want {
			t.Errorf("cycle(%q, %d) = %q, want %q", tt.current, tt.step, got, tt.want)
		}
	}

	if got := cycle(nil, "x", 1); got != "x" {
		t.Errorf("cycle on empty values = %q, want x", got)
	}
}
