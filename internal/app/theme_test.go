package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestThemeStateDefaults(t *testing.T) {
	tests := []struct {
		name  string
		prefs PreferenceStore
		want  Theme
	}{
		{name: "No store", prefs: nil, want: ThemeLight},
		{name: "Empty slot", prefs: &memPrefs{}, want: ThemeLight},
		{name: "Stored dark", prefs: &memPrefs{values: map[string]string{ThemePreferenceKey: "dark"}}, want: ThemeDark},
		{name: "Unknown value", prefs: &memPrefs{values: map[string]string{ThemePreferenceKey: "sepia"}}, want: ThemeLight},
		{name: "Unreadable store", prefs: &memPrefs{getErr: errors.New("boom")}, want: ThemeLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewThemeState(tt.prefs).Current(); got != tt.want {
				t.Errorf("Current() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestThemeToggleRoundTrip(t *testing.T) {
	prefs := &memPrefs{}
	theme := NewThemeState(prefs)

	if err := theme.Toggle(); err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if theme.Current() != ThemeDark || prefs.values[ThemePreferenceKey] != "dark" {
		t.Errorf("After first toggle: %s, stored %q", theme.Current(), prefs.values[ThemePreferenceKey])
	}

	if err := theme.Toggle(); err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}
	if theme.Current() != ThemeLight || prefs.values[ThemePreferenceKey] != "light" {
		t.Errorf("After second toggle: %s, stored %q", theme.Current(), prefs.values[ThemePreferenceKey])
	}
}

func TestThemeToggleAppliesWhenSaveFails(t *testing.T) {
	theme := NewThemeState(&memPrefs{setErr: errors.New("read-only")})

	if err := theme.Toggle(); err == nil {
		t.Error("Expected the save error to be reported")
	}
	if theme.Current() != ThemeDark {
		t.Errorf("Theme should still be applied, got %s", theme.Current())
	}
}

func TestFilePreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.json")
	prefs := NewFilePreferences(path)

	if _, ok, err := prefs.Get(ThemePreferenceKey); err != nil || ok {
		t.Fatalf("Get() on missing file = ok %v, err %v; want nothing", ok, err)
	}

	if err := prefs.Set(ThemePreferenceKey, "dark"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if _, err := os.Stat(path + TmpSuffix); !os.IsNotExist(err) {
		t.Error("Temp file should be renamed away")
	}

	// A fresh store sees the persisted value
	theme := NewThemeState(NewFilePreferences(path))
	if theme.Current() != ThemeDark {
		t.Errorf("Reloaded theme = %s, want dark", theme.Current())
	}
}

func TestFilePreferencesKeepsOtherKeys(t *testing.T) {
	prefs := NewFilePreferences(filepath.Join(t.TempDir(), "preferences.json"))

	if err := prefs.Set("other", "value"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := prefs.Set(ThemePreferenceKey, "dark"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	if v, ok, _ := prefs.Get("other"); !ok || v != "value" {
		t.Errorf("Get(other) = %q, %v; want value", v, ok)
	}
}

func TestFilePreferencesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	theme := NewThemeState(NewFilePreferences(path))
	if theme.Current() != ThemeLight {
		t.Errorf("Corrupt file should fall back to light, got %s", theme.Current())
	}
	if err := theme.Toggle(); err != nil {
		t.Fatalf("Toggle() should overwrite the corrupt file: %v", err)
	}
	if v, _, err := NewFilePreferences(path).Get(ThemePreferenceKey); err != nil || v != "dark" {
		t.Errorf("Stored theme = %q, err %v; want dark", v, err)
	}
}

func TestCookiePreferences(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: ThemePreferenceKey, Value: "dark"})
	w := httptest.NewRecorder()

	theme := NewThemeState(NewCookiePreferences(w, req))
	if theme.Current() != ThemeDark {
		t.Fatalf("Cookie theme = %s, want dark", theme.Current())
	}
	if err := theme.Toggle(); err != nil {
		t.Fatalf("Toggle() failed: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != ThemePreferenceKey || c.Value != "light" {
		t.Errorf("Cookie = %s=%s, want theme=light", c.Name, c.Value)
	}
	if c.Path != "/" || !c.HttpOnly {
		t.Errorf("Cookie should be site-wide and HttpOnly: %+v", c)
	}
}
