// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T, dir string, debounce time.Duration) *Watcher {
	t.Helper()
	w, err := NewWatcher(dir, debounce)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func TestWatcher_DeliversSettledFile(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir, 50*time.Millisecond)

	path := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Files:
		if got != path {
			t.Errorf("delivered %q, want %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("settled file was never delivered")
	}
}

func TestWatcher_RemovedBeforeSettleIsDropped(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir, 300*time.Millisecond)

	path := filepath.Join(dir, "draft.txt")
	if err := os.WriteFile(path, []byte("partial"), 0644); err != nil {
		t.Fatal(err)
	}
	// Removed well inside the debounce window.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Files:
		t.Fatalf("removed file %q was delivered", got)
	case <-time.After(900 * time.Millisecond):
	}
}

func TestWatcher_IgnoresExtensionlessFiles(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir, 50*time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "LICENSE"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Files:
		t.Fatalf("extensionless file %q was delivered", got)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestNewWatcher_DefaultDebounce(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if w.debounce != 500*time.Millisecond {
		t.Errorf("debounce = %v, want 500ms default", w.debounce)
	}
}
