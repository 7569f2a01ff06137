package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// PreferenceStore is a durable key-value slot for user preferences
type PreferenceStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// FilePreferences stores preferences as a small JSON object on disk
type FilePreferences struct {
	Path string
	mu   sync.Mutex
}

// NewFilePreferences returns a store backed by path
func NewFilePreferences(path string) *FilePreferences {
	return &FilePreferences{Path: path}
}

// DefaultPreferencesPath returns the per-user preferences file location
func DefaultPreferencesPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultPreferencesFile
	}
	return filepath.Join(dir, AppName, DefaultPreferencesFile)
}

func (p *FilePreferences) Get(key string) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prefs, err := p.read()
	if err != nil {
		return "", false, err
	}
	v, ok := prefs[key]
	return v, ok, nil
}

// Set writes the value through a temp file so a crash never leaves a
// half-written preferences file behind
func (p *FilePreferences) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	prefs, err := p.read()
	if err != nil {
		log.Printf("⚠️  Ignoring unreadable preferences file %s: %v", p.Path, err)
		prefs = map[string]string{}
	}
	prefs[key] = value

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.Path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	tmpFile := p.Path + TmpSuffix
	if err := os.WriteFile(tmpFile, data, FilePermissions); err != nil {
		return err
	}
	return os.Rename(tmpFile, p.Path)
}

func (p *FilePreferences) read() (map[string]string, error) {
	data, err := os.ReadFile(p.Path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	prefs := map[string]string{}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.Path, err)
	}
	return prefs, nil
}

// CookiePreferences keeps preferences in browser cookies for the
// duration of one request
type CookiePreferences struct {
	w http.ResponseWriter
	r *http.Request
}

// NewCookiePreferences binds a preference store to a request/response pair
func NewCookiePreferences(w http.ResponseWriter, r *http.Request) *CookiePreferences {
	return &CookiePreferences{w: w, r: r}
}

func (c *CookiePreferences) Get(key string) (string, bool, error) {
	cookie, err := c.r.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return cookie.Value, true, nil
}

func (c *CookiePreferences) Set(key, value string) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(PreferenceCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
