package app

import (
	"fmt"
)

// EventSummary is the card shown for one event in the timeline
type EventSummary struct {
	ID       int    `json:"id"`
	Year     int    `json:"year"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
	Side     string `json:"side"`
	Label    string `json:"label"`
}

// EventDetail is the expanded view of a single event
type EventDetail struct {
	ID          int    `json:"id"`
	Year        int    `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageURL,omitempty"`
}

// TimelineView is everything a front end needs to draw one frame
type TimelineView struct {
	Status   Status         `json:"status"`
	Message  string         `json:"message,omitempty"`
	Theme    Theme          `json:"theme"`
	Category string         `json:"category"`
	Year     string         `json:"year"`
	Options  FilterOptions  `json:"options"`
	Events   []EventSummary `json:"events"`
	Detail   *EventDetail   `json:"detail,omitempty"`
	Total    int            `json:"total"`
}

// Project builds the view model for the session's current state
func Project(s *Session) TimelineView {
	sel := s.Selection()
	v := TimelineView{
		Status:   s.Status(),
		Theme:    s.Theme(),
		Category: NormalizeCategory(sel.Category),
		Year:     sel.Year.String(),
		Options:  s.Options(),
		Events:   []EventSummary{},
		Total:    s.store.Len(),
	}

	switch v.Status {
	case StatusLoading:
		v.Message = MsgLoading
		return v
	case StatusError:
		v.Message = ErrorMessage(s.Err())
		return v
	case StatusEmpty:
		v.Message = MsgEmpty
	}

	for i, e := range s.Display() {
		v.Events = append(v.Events, Summarize(e, i, s.excerptLength))
	}
	if ev, ok := s.Selected(); ok {
		d := Detail(ev)
		v.Detail = &d
	}
	return v
}

// Summarize projects an event into its timeline card. Cards alternate
// sides by position.
func Summarize(e Event, position, excerptLength int) EventSummary {
	side := "left"
	if position%2 == 1 {
		side = "right"
	}
	return EventSummary{
		ID:       e.ID,
		Year:     e.Year,
		Title:    e.Title,
		Excerpt:  Truncate(e.Description, excerptLength),
		Category: e.Category,
		Side:     side,
		Label:    fmt.Sprintf("%s, %d, %s", e.Title, e.Year, e.Category),
	}
}

// Detail projects an event into the detail view
func Detail(e Event) EventDetail {
	return EventDetail{
		ID:          e.ID,
		Year:        e.Year,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		ImageURL:    e.ImageURL,
	}
}

// ErrorMessage returns the user-facing text for a load error
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsLoadError(err) {
		return MsgLoadFailed + " (" + err.Error() + ")"
	}
	return MsgLoadFailed
}
