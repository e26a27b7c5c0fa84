// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/ragdeck-tui/internal/api"
	"github.com/jeranaias/ragdeck-tui/internal/config"
	"github.com/jeranaias/ragdeck-tui/internal/telemetry"
)

// =============================================================================
// SHARED SETUP
// =============================================================================

// NewClient builds the backend client from the loaded configuration and
// CLI overrides.
func NewClient(cfg *config.Config, args Args) *api.Client {
	clientCfg := api.DefaultConfig()
	clientCfg.BaseURL = cfg.Backend.URL
	if args.BackendURL != "" {
		clientCfg.BaseURL = args.BackendURL
	}
	clientCfg.Timeout = time.Duration(cfg.Backend.AskTimeoutSecs) * time.Second
	clientCfg.UploadTimeout = time.Duration(cfg.Backend.UploadTimeoutSecs) * time.Second
	clientCfg.Logger = NewLogger(cfg)

	return api.NewClientWithConfig(clientCfg)
}

// NewLogger builds the telemetry logger, falling back to a discard
// logger when the file cannot be opened.
func NewLogger(cfg *config.Config) *telemetry.Logger {
	if !cfg.Telemetry.Enabled {
		return telemetry.Discard()
	}
	path, err := cfg.LogPath()
	if err != nil {
		return telemetry.Discard()
	}
	logger, err := telemetry.NewFileLogger(path)
	if err != nil {
		return telemetry.Discard()
	}
	return logger
}

// LoadConfig loads the configuration, exiting on a malformed file.
func LoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		Fatal("config error: %v", err)
	}
	return cfg
}

// Fatal prints an error to stderr and exits with status 1.
func Fatal(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "ragdeck: "+format+"\n", a...)
	os.Exit(1)
}
