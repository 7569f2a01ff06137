// Package tui is the terminal front end of the timeline viewer.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/klabast/wb-services/timeline/internal/app"
)

// loadedMsg carries the result of the initial load into the update loop
type loadedMsg struct {
	store *app.EventStore
	err   error
}

// Model holds the UI state for the bubbletea program
type Model struct {
	sess          *app.Session
	source        app.Source
	theme         *app.ThemeState
	excerptLength int

	keys   keyMap
	help   help.Model
	cursor int
	width  int
	height int
	status string // transient status line, e.g. a failed theme save
}

// New creates a model that loads events from src when started
func New(src app.Source, theme *app.ThemeState, excerptLength int) Model {
	return Model{
		sess:          app.NewSession(theme, excerptLength),
		source:        src,
		theme:         theme,
		excerptLength: excerptLength,
		keys:          defaultKeys(),
		help:          help.New(),
		width:         80,
		height:        24,
	}
}

// Session exposes the session driven by the model
func (m Model) Session() *app.Session {
	return m.sess
}

// Init starts the load, the only blocking step of a session
func (m Model) Init() tea.Cmd {
	return loadCmd(m.source)
}

func loadCmd(src app.Source) tea.Cmd {
	return func() tea.Msg {
		store, err := app.LoadEvents(context.Background(), src)
		return loadedMsg{store: store, err: err}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		m.sess.Attach(msg.store, msg.err)
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		if key.Matches(msg, m.keys.Theme) {
			if err := m.sess.OnToggleTheme(); err != nil {
				m.status = "Could not save theme: " + err.Error()
			}
			return m, nil
		}
		if _, open := m.sess.Selected(); open {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

// updateDetail handles keys while the detail overlay is open
func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Quit):
		m.sess.OnDismiss()
	}
	return m, nil
}

// updateList handles keys on the timeline
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	display := m.sess.Display()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(display)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(display) {
			_ = m.sess.OnItemSelected(display[m.cursor].ID)
		}

	case key.Matches(msg, m.keys.NextCategory), key.Matches(msg, m.keys.PrevCategory):
		step := 1
		if key.Matches(msg, m.keys.PrevCategory) {
			step = -1
		}
		opts := m.sess.Options()
		m.sess.OnCategoryChange(cycle(append([]string{app.All}, opts.Categories...), m.sess.Selection().Category, step))
		m.cursor = 0

	case key.Matches(msg, m.keys.NextYear), key.Matches(msg, m.keys.PrevYear):
		step := 1
		if key.Matches(msg, m.keys.PrevYear) {
			step = -1
		}
		years := []string{app.All}
		for _, y := range m.sess.Options().Years {
			years = append(years, fmt.Sprint(y))
		}
		next, err := app.ParseYearFilter(cycle(years, m.sess.Selection().Year.String(), step))
		if err == nil {
			m.sess.OnYearChange(next)
		}
		m.cursor = 0

	case key.Matches(msg, m.keys.Clear):
		m.sess.OnClearFilters()
		m.cursor = 0

	case key.Matches(msg, m.keys.Reload):
		if m.sess.Status() == app.StatusError {
			m.sess = app.NewSession(m.theme, m.excerptLength)
			m.cursor = 0
			return m, loadCmd(m.source)
		}
	}
	return m, nil
}

// cycle returns the value step positions after current in values,
// wrapping at both ends. An unknown current value starts from the first.
func cycle(values []string, current string, step int) string {
	if len(values) == 0 {
		return current
	}
	idx := 0
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	idx = ((idx+step)%len(values) + len(values)) % len(values)
	return values[idx]
}

// View renders the current frame
func (m Model) View() string {
	v := app.Project(m.sess)
	st := stylesFor(v.Theme)

	var b strings.Builder
	b.WriteString(st.Header.Render(fmt.Sprintf("Timeline  %s", themeLabel(v.Theme))))
	b.WriteString("\n")
	b.WriteString(st.Filters.Render(fmt.Sprintf("Category: %s   Year: %s   (%d of %d)", v.Category, v.Year, len(v.Events), v.Total)))
	b.WriteString("\n\n")

	if v.Detail != nil {
		b.WriteString(m.renderDetail(st, v.Detail))
	} else {
		switch v.Status {
		case app.StatusError:
			b.WriteString(st.Error.Render(v.Message))
		case app.StatusLoading, app.StatusEmpty:
			b.WriteString(st.Message.Render(v.Message))
		default:
			b.WriteString(m.renderList(st, v.Events))
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(st.Error.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderList draws the cards around the cursor that fit the window
func (m Model) renderList(st styles, events []app.EventSummary) string {
	const linesPerCard = 3
	visible := (m.height - 6) / linesPerCard
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(events) {
		end = len(events)
	}

	wrap := m.width - 6
	if wrap < 20 {
		wrap = 20
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		e := events[i]
		marker := "  "
		if i == m.cursor {
			marker = st.Cursor.Render("▸ ")
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n", marker, st.Year.Render(fmt.Sprint(e.Year)), st.Title.Render(e.Title), st.Category.Render(e.Category))
		excerpt := strings.SplitN(wordwrap.String(e.Excerpt, wrap), "\n", 2)[0]
		fmt.Fprintf(&b, "    %s\n\n", st.Excerpt.Render(excerpt))
	}
	return b.String()
}

func (m Model) renderDetail(st styles, d *app.EventDetail) string {
	width := m.width - 8
	if width > 76 {
		width = 76
	}
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(st.Title.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(st.Year.Render(fmt.Sprint(d.Year)))
	b.WriteString("\n\n")
	b.WriteString(wordwrap.String(d.Description, width))
	b.WriteString("\n\n")
	if d.ImageURL != "" {
		b.WriteString(st.Excerpt.Render("Image: " + d.ImageURL))
		b.WriteString("\n")
	}
	b.WriteString(st.Category.Render(d.Category))
	return st.Modal.Width(width + 4).Render(b.String())
}

func themeLabel(t app.Theme) string {
	if t == app.ThemeDark {
		return "🌙 dark"
	}
	return "🌞 light"
}

// Run starts the interactive program on the alternate screen
func Run(src app.Source, theme *app.ThemeState, excerptLength int) error {
	p := tea.NewProgram(New(src, theme, excerptLength), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
