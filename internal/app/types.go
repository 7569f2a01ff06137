package app

import (
	"strconv"
	"strings"
)

// Event represents a single timeline record
type Event struct {
	ID          int    `json:"id"`
	Year        int    `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageURL,omitempty"`
}

// All is the unconstrained value of a filter selector
const All = "All"

// YearFilter is either a specific year or All
type YearFilter struct {
	year int
	set  bool
}

// AnyYear matches every year
var AnyYear = YearFilter{}

// OnlyYear matches a single year
func OnlyYear(year int) YearFilter {
	return YearFilter{year: year, set: true}
}

// Year returns the selected year and whether one is selected
func (y YearFilter) Year() (int, bool) {
	return y.year, y.set
}

// Matches reports whether year passes the filter
func (y YearFilter) Matches(year int) bool {
	return !y.set || y.year == year
}

func (y YearFilter) String() string {
	if !y.set {
		return All
	}
	return strconv.Itoa(y.year)
}

// ParseYearFilter parses a selector value. Empty and "All" mean AnyYear.
func ParseYearFilter(s string) (YearFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == All {
		return AnyYear, nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return AnyYear, err
	}
	return OnlyYear(year), nil
}

// FilterSelection is the user's current category/year constraint
type FilterSelection struct {
	Category string
	Year     YearFilter
}

// DefaultSelection is the unconstrained selection
var DefaultSelection = FilterSelection{Category: All, Year: AnyYear}

// NormalizeCategory maps an empty selector value to All
func NormalizeCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return All
	}
	return category
}

// FilterOptions holds the selector values derived from the loaded events
type FilterOptions struct {
	Categories []string `json:"categories"`
	Years      []int    `json:"years"`
}

// Theme is the display preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme for s, defaulting to light
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggled returns the other theme
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Status describes what the timeline area currently shows
type Status string

const (
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusEmpty   Status = "empty"
	StatusReady   Status = "ready"
)
