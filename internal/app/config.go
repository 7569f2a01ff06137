package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Constants
const (
	AppName                = "timeline"
	DefaultConfigFile      = "timeline.yml"
	DefaultEventsFile      = "data/events.json"
	DefaultPreferencesFile = "preferences.json"
	DefaultListenAddress   = ":8080"
	DefaultExcerptLength   = 100
	DefaultUserAgent       = "timeline/1.0"
	TmpSuffix              = ".tmp"
	FilePermissions        = 0644
	PreferenceCookieTTL    = 365 * 24 * time.Hour

	// Error messages
	ErrInvalidYear     = "Invalid year"
	ErrInvalidID       = "Invalid event id"
	ErrInvalidFormat   = "Invalid format"
	ErrEventNotFound   = "Event not found"
	ErrNotReady        = "Timeline events not available"
	ErrInternalServer  = "Internal server error"
	ErrFailedToGenJSON = "Failed to generate JSON"
	ErrFailedToGenCSV  = "Failed to generate CSV"

	// Timeline area messages
	MsgLoading    = "Loading timeline events..."
	MsgEmpty      = "No events found matching your filters."
	MsgLoadFailed = "Failed to load timeline events. Please try again later."

	// Mode strings
	ModeServe = "serve"
	ModeList  = "list"
	ModeTUI   = "tui"
	ModeTheme = "theme"

	// ConfigEnv names the environment variable holding the config path
	ConfigEnv = "TIMELINE_CONFIG"
)

// ServerConfig holds the HTTP viewer settings
type ServerConfig struct {
	ListenAddress string        `yaml:"listen_address"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
}

// SourceConfig describes where the event document comes from
type SourceConfig struct {
	Location  string        `yaml:"location"` // file path or http(s) URL
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// DisplayConfig controls the summary cards
type DisplayConfig struct {
	ExcerptLength int `yaml:"excerpt_length"`
}

// PreferencesConfig locates the preferences file used by terminal front ends
type PreferencesConfig struct {
	Path string `yaml:"path"`
}

// Config is the complete application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Source      SourceConfig      `yaml:"source"`
	Display     DisplayConfig     `yaml:"display"`
	Preferences PreferencesConfig `yaml:"preferences"`
}

// LoadConfig reads a YAML config file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse yaml: %w", err)
			}
		}
	}
	c.applyDefaults()
	if c.Display.ExcerptLength < 0 {
		return nil, fmt.Errorf("display.excerpt_length must not be negative")
	}
	return &c, nil
}

// ConfigPath returns the config path from the environment or the default
func ConfigPath() string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	return DefaultConfigFile
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = DefaultListenAddress
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 5 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Source.Location == "" {
		c.Source.Location = DefaultEventsFile
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = 10 * time.Second
	}
	if c.Source.UserAgent == "" {
		c.Source.UserAgent = DefaultUserAgent
	}
	if c.Display.ExcerptLength == 0 {
		c.Display.ExcerptLength = DefaultExcerptLength
	}
	if c.Preferences.Path == "" {
		c.Preferences.Path = DefaultPreferencesPath()
	}
}

// NewSource builds the event source described by c
func (c *Config) NewSource() Source {
	return NewSource(c.Source.Location, c.Source.Timeout, c.Source.UserAgent)
}
