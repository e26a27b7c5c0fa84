// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry provides the operational log sink for the ragdeck client.
package telemetry

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeranaias/ragdeck-tui/internal/util"
)

// =============================================================================
// REQUEST LOGGER
// =============================================================================

// Logger records outbound HTTP activity for diagnostics. It is an
// operational sink: nothing written here is ever rendered in the UI.
type Logger struct {
	mu  sync.Mutex
	out *log.Logger

	// closer is non-nil when the logger owns its sink (file-backed).
	closer io.Closer
}

// NewLogger creates a logger writing to the given sink.
func NewLogger(w io.Writer) *Logger {
	return &Logger{
		out: log.New(w, "", log.LstdFlags|log.LUTC),
	}
}

// NewFileLogger creates a logger appending to the given path,
// creating parent directories as needed.
func NewFileLogger(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewLogger(f)
	l.closer = f
	return l, nil
}

// Discard returns a logger that drops everything. Used as the default so
// callers never have to nil-check.
func Discard() *Logger {
	return NewLogger(io.Discard)
}

// Request logs an outbound request: method and resolved URL.
func (l *Logger) Request(method, url string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("request %s %s", method, url)
}

// RequestError logs a failed request with status and response body.
// The body is truncated so a large error payload cannot bloat the log.
func (l *Logger) RequestError(method, url string, status int, body string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("error %s %s status=%d body=%s", method, url, status, util.TruncateRunes(body, 2048))
}

// Printf logs an arbitrary operational message.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf(format, args...)
}

// Close releases the underlying sink if the logger owns one.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer != nil {
		err := l.closer.Close()
		l.closer = nil
		return err
	}
	return nil
}
