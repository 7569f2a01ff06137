package app

import (
	"log"
)

// ThemePreferenceKey is the preference slot holding the theme
const ThemePreferenceKey = "theme"

// ThemeState tracks the light/dark preference and persists every change
type ThemeState struct {
	prefs   PreferenceStore
	current Theme
}

// NewThemeState reads the persisted theme, defaulting to light when the
// slot is empty, unreadable or holds an unknown value
func NewThemeState(prefs PreferenceStore) *ThemeState {
	t := &ThemeState{prefs: prefs, current: ThemeLight}
	if prefs == nil {
		return t
	}
	v, ok, err := prefs.Get(ThemePreferenceKey)
	if err != nil {
		log.Printf("Error reading theme preference: %v", err)
		return t
	}
	if ok {
		t.current = ParseTheme(v)
	}
	return t
}

// Current returns the last applied theme
func (t *ThemeState) Current() Theme {
	return t.current
}

// Toggle flips the theme and persists the new value
func (t *ThemeState) Toggle() error {
	return t.Set(t.current.Toggled())
}

// Set applies a theme and persists it. The theme is applied even when
// persisting fails.
func (t *ThemeState) Set(theme Theme) error {
	t.current = ParseTheme(string(theme))
	if t.prefs == nil {
		return nil
	}
	return t.prefs.Set(ThemePreferenceKey, string(t.current))
}
