// Package config loads the keyforge.toml application configuration.
//
// The file lives in the user config directory and is optional: a missing
// file means defaults. Loading goes through a FileSystem seam so tests
// can feed documents without touching disk.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the application configuration.
type Config struct {
	Capture CaptureConfig `toml:"capture"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// CaptureConfig tunes key capture.
type CaptureConfig struct {
	// ChordWindowMS is how long a first keystroke waits for a chord
	// partner, in milliseconds.
	ChordWindowMS int `toml:"chord_window_ms"`
}

// StorageConfig locates the keybindings document.
type StorageConfig struct {
	// Path of the keybindings document. Empty means
	// <UserConfigDir>/keyforge/keybindings.json.
	Path string `toml:"path"`
	// Watch enables reloading when the document changes externally.
	Watch bool `toml:"watch"`
}

// LogConfig tunes logging.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `toml:"level"`
	// File receives log output. Empty means stderr; the TUI discards
	// logs entirely unless a file is set.
	File string `toml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Capture: CaptureConfig{ChordWindowMS: 1500},
		Storage: StorageConfig{Watch: true},
		Log:     LogConfig{Level: "info"},
	}
}

// ChordWindow returns the chord window as a duration.
func (c *Config) ChordWindow() time.Duration {
	return time.Duration(c.Capture.ChordWindowMS) * time.Millisecond
}

// Load reads the configuration at path. A missing file yields Default().
// The result is always validated.
func Load(fsys FileSystem, path string) (*Config, error) {
	cfg := Default()

	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values, returning the first problem found.
func (c *Config) Validate() error {
	if c.Capture.ChordWindowMS <= 0 {
		return &ValidationError{
			Field:   "capture.chord_window_ms",
			Value:   c.Capture.ChordWindowMS,
			Message: "must be positive",
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{
			Field:   "log.level",
			Value:   c.Log.Level,
			Message: "must be one of debug, info, warn, error",
		}
	}
	return nil
}

// DefaultPath returns the conventional keyforge.toml location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keyforge", "keyforge.toml"), nil
}

// BindingsPath resolves the keybindings document path: the configured
// path when set, the conventional location otherwise.
func (c *Config) BindingsPath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keyforge", "keybindings.json"), nil
}
