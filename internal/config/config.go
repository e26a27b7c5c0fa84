// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management
// for ragdeck.
//
// Configuration is TOML with sensible defaults, a .env file pass for
// local development, and environment variable overrides.
//
// Locations (in order of precedence):
//   - Environment variables (RAGDECK_*)
//   - ~/.ragdeck/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/ragdeck-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete ragdeck configuration.
type Config struct {
	Version string `toml:"version"`

	// Backend connection settings
	Backend BackendConfig `toml:"backend"`

	// Upload flow settings
	Upload UploadConfig `toml:"upload"`

	// UI settings
	UI UIConfig `toml:"ui"`

	// Storage settings for the local session database
	Storage StorageConfig `toml:"storage"`

	// Telemetry settings for the operational log
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// BackendConfig describes how to reach the ragdeck backend.
type BackendConfig struct {
	// URL is the backend base URL.
	URL string `toml:"url"`
	// AskTimeoutSecs bounds question requests.
	AskTimeoutSecs int `toml:"ask_timeout_secs"`
	// UploadTimeoutSecs bounds ingestion requests. Ingestion embeds every
	// file server-side, so this is much longer than the ask timeout.
	UploadTimeoutSecs int `toml:"upload_timeout_secs"`
}

// UploadConfig controls the admin upload flow.
type UploadConfig struct {
	// DropDir, when set, is watched for new files to offer as upload
	// candidates. Empty disables the watcher.
	DropDir string `toml:"drop_dir"`
	// WatchDebounceMs is how long a dropped file must stay quiet before
	// it is offered.
	WatchDebounceMs int `toml:"watch_debounce_ms"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme selects the color scheme: "auto", "dark", or "light".
	Theme string `toml:"theme"`
	// Markdown renders bot answers as markdown when true.
	Markdown bool `toml:"markdown"`
	// WordWrap is the render width for markdown answers.
	WordWrap int `toml:"word_wrap"`
}

// StorageConfig controls local session persistence.
type StorageConfig struct {
	// Enabled turns session persistence on.
	Enabled bool `toml:"enabled"`
	// Path is the SQLite database file (empty = ~/.ragdeck/sessions.db).
	Path string `toml:"path"`
}

// TelemetryConfig controls the operational log file.
type TelemetryConfig struct {
	// Enabled turns request logging on.
	Enabled bool `toml:"enabled"`
	// LogPath is the log file (empty = ~/.ragdeck/ragdeck.log).
	LogPath string `toml:"log_path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Backend: BackendConfig{
			// Explicit IPv4 address instead of localhost to avoid IPv6
			// resolution issues on Windows
			URL:               "http://127.0.0.1:8000",
			AskTimeoutSecs:    30,
			UploadTimeoutSecs: 120,
		},
		Upload: UploadConfig{
			WatchDebounceMs: 500,
		},
		UI: UIConfig{
			Theme:    "auto",
			Markdown: true,
			WordWrap: 80,
		},
		Storage: StorageConfig{
			Enabled: true,
		},
		Telemetry: TelemetryConfig{
			Enabled: true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the ragdeck configuration directory (~/.ragdeck).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".ragdeck"), nil
}

// ConfigPath returns the path to the TOML configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// SessionDBPath resolves the session database path, honoring the
// configured override.
func (c *Config) SessionDBPath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions.db"), nil
}

// LogPath resolves the telemetry log path, honoring the configured
// override.
func (c *Config) LogPath() (string, error) {
	if c.Telemetry.LogPath != "" {
		return c.Telemetry.LogPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ragdeck.log"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file, fills defaults, and applies
// environment overrides. A missing file is not an error; defaults are
// returned.
func Load() (*Config, error) {
	// A .env in the working directory feeds the override pass below.
	_ = godotenv.Load()

	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadFromPath(cfg, path); err != nil {
				return nil, err
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath decodes the TOML file at path into cfg.
func LoadFromPath(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to the default path atomically.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath encodes the configuration as TOML and writes it atomically.
func SaveToPath(cfg *Config, path string) error {
	var sb strings.Builder
	sb.WriteString("# ragdeck configuration\n\n")
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(sb.String()), 0600)
}

// =============================================================================
// OVERRIDES AND VALIDATION
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides. The
// BACKEND_URL fallback matches the variable the backend's own tooling
// uses, so one .env can serve both sides.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RAGDECK_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	} else if v := os.Getenv("BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("RAGDECK_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("RAGDECK_DROP_DIR"); v != "" {
		c.Upload.DropDir = v
	}
	if v := os.Getenv("RAGDECK_LOG"); v != "" {
		c.Telemetry.LogPath = v
	}
}

// SetDefaults fills zero values with defaults. Useful after decoding a
// partial file.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Backend.URL == "" {
		c.Backend.URL = d.Backend.URL
	}
	if c.Backend.AskTimeoutSecs <= 0 {
		c.Backend.AskTimeoutSecs = d.Backend.AskTimeoutSecs
	}
	if c.Backend.UploadTimeoutSecs <= 0 {
		c.Backend.UploadTimeoutSecs = d.Backend.UploadTimeoutSecs
	}
	if c.Upload.WatchDebounceMs <= 0 {
		c.Upload.WatchDebounceMs = d.Upload.WatchDebounceMs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.WordWrap <= 0 {
		c.UI.WordWrap = d.UI.WordWrap
	}
}

// Validate checks the configuration for coherence.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.url %q is not a valid URL", c.Backend.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.url scheme must be http or https, got %q", u.Scheme)
	}

	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("ui.theme must be auto, dark, or light, got %q", c.UI.Theme)
	}

	return nil
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value by dot-notation key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "backend.url":
		return c.Backend.URL, nil
	case "upload.drop_dir":
		return c.Upload.DropDir, nil
	case "ui.theme":
		return c.UI.Theme, nil
	case "storage.path":
		return c.Storage.Path, nil
	case "telemetry.log_path":
		return c.Telemetry.LogPath, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Set updates a configuration value by dot-notation key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend.url":
		c.Backend.URL = value
	case "upload.drop_dir":
		c.Upload.DropDir = value
	case "ui.theme":
		c.UI.Theme = value
	case "storage.path":
		c.Storage.Path = value
	case "telemetry.log_path":
		c.Telemetry.LogPath = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return c.Validate()
}

// Keys lists the keys Get and Set understand.
func Keys() []string {
	return []string{
		"backend.url",
		"upload.drop_dir",
		"ui.theme",
		"storage.path",
		"telemetry.log_path",
	}
}

// =============================================================================
// GLOBAL INSTANCE
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance, loading it on first
// use. Load failures fall back to defaults.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}
