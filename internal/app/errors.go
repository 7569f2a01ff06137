package app

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded indicates the event store has not finished loading
	ErrNotLoaded = errors.New("timeline events not loaded yet")
)

// FetchError reports a failure to read the event resource
type FetchError struct {
	Source string
	Status int // HTTP status, 0 when the request never completed
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: HTTP status %d", e.Source, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SchemaError reports malformed event data. Index is -1 for errors about
// the document as a whole.
type SchemaError struct {
	Reason   string
	Field    string
	Index    int
	Expected string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Index < 0:
		return "invalid event data: " + e.Reason
	case e.Field == "":
		return fmt.Sprintf("invalid event at index %d: %s", e.Index, e.Reason)
	default:
		return fmt.Sprintf("invalid event at index %d: '%s' must be %s", e.Index, e.Field, e.Expected)
	}
}

// LookupError reports a detail request for an unknown event id
type LookupError struct {
	ID int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("event with ID %d not found", e.ID)
}

// IsLoadError reports whether err ends a load (fetch or schema failure)
func IsLoadError(err error) bool {
	var fe *FetchError
	var se *SchemaError
	return errors.As(err, &fe) || errors.As(err, &se)
}
