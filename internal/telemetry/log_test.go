// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_Request(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Request("GET", "http://127.0.0.1:8000/ask?question=hi")

	out := buf.String()
	if !strings.Contains(out, "request GET http://127.0.0.1:8000/ask?question=hi") {
		t.Errorf("log output = %q, want method and URL", out)
	}
}

func TestLogger_RequestError(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.RequestError("POST", "http://127.0.0.1:8000/admin/upload", 500, `{"detail":"disk full"}`)

	out := buf.String()
	for _, want := range []string{"POST", "/admin/upload", "status=500", "disk full"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestLogger_RequestErrorTruncatesBody(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.RequestError("GET", "http://x", 500, strings.Repeat("a", 10000))

	if len(buf.String()) > 4096 {
		t.Errorf("oversized body should be truncated, got %d bytes", len(buf.String()))
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ragdeck.log")

	l, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	l.Request("GET", "http://127.0.0.1:8000/health")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "/health") {
		t.Errorf("file log missing entry: %q", data)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	// Must not panic and must accept writes.
	l.Request("GET", "http://x")
	l.Printf("noop %d", 1)
	if err := l.Close(); err != nil {
		t.Errorf("Close on discard logger: %v", err)
	}
}
