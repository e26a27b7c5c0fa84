// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdeck-tui/internal/api"
	"github.com/jeranaias/ragdeck-tui/internal/ui/styles"
)

func newTestModel() Model {
	return New(styles.NewTheme("dark"), api.NewClient())
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func writeTempFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAddFiles_MixedBatchAdoptsAcceptedSubset(t *testing.T) {
	m := newTestModel()

	pdf := writeTempFile(t, "catalog.pdf", 2048)
	exe := writeTempFile(t, "setup.exe", 10)

	m, _ = m.Update(AddFilesMsg{Paths: []string{pdf, exe}})

	if m.Selection().Len() != 1 {
		t.Fatalf("selection len = %d, want 1", m.Selection().Len())
	}
	if m.Selection().Files()[0].Name != "catalog.pdf" {
		t.Errorf("selection = %v", m.Selection().Files())
	}
}

func TestAddFiles_MissingPathRejected(t *testing.T) {
	m := newTestModel()

	m, cmd := m.Update(AddFilesMsg{Paths: []string{"/nonexistent/report.pdf"}})

	if m.Selection().Len() != 0 {
		t.Errorf("selection len = %d, want 0", m.Selection().Len())
	}
	if cmd == nil {
		t.Error("rejection should surface a toast command")
	}
}

func TestSubmit_EmptySelectionNoNetwork(t *testing.T) {
	m := newTestModel()

	m, _ = m.Update(SubmitMsg{})

	if m.Status() != StatusIdle {
		t.Errorf("status = %v, want StatusIdle: empty submit must not start an upload", m.Status())
	}
	if m.Progress() != 0 {
		t.Errorf("progress = %v, want 0", m.Progress())
	}
}

func submitWithFile(t *testing.T, m Model) Model {
	t.Helper()
	pdf := writeTempFile(t, "doc.pdf", 100)
	m, _ = m.Update(AddFilesMsg{Paths: []string{pdf}})
	m, _ = m.Update(SubmitMsg{})
	if m.Status() != StatusSubmitting {
		t.Fatalf("status after submit = %v, want StatusSubmitting", m.Status())
	}
	return m
}

func TestProgress_TicksAndCeiling(t *testing.T) {
	m := submitWithFile(t, newTestModel())

	// 30 ticks at +5 would be 150; the bar must hold at the ceiling.
	for i := 0; i < 30; i++ {
		m, _ = m.Update(ProgressTickMsg{Time: time.Now()})
	}

	if m.Progress() != 80 {
		t.Errorf("progress = %v, want capped at 80", m.Progress())
	}
}

func TestProgress_TickIgnoredWhenIdle(t *testing.T) {
	m := newTestModel()

	m, cmd := m.Update(ProgressTickMsg{Time: time.Now()})

	if m.Progress() != 0 {
		t.Errorf("progress = %v, want 0", m.Progress())
	}
	if cmd != nil {
		t.Error("idle tick should not reschedule")
	}
}

func TestUploadResult_Success(t *testing.T) {
	m := submitWithFile(t, newTestModel())

	m, _ = m.Update(UploadResultMsg{Response: &api.UploadResponse{
		Message:        "Successfully processed 1 files",
		ProcessedFiles: []string{"doc.pdf"},
		TotalFiles:     1,
	}})

	if m.Status() != StatusSucceeded {
		t.Errorf("status = %v, want StatusSucceeded", m.Status())
	}
	if m.Progress() != 100 {
		t.Errorf("progress = %v, want 100", m.Progress())
	}
	if !m.Selection().IsEmpty() {
		t.Error("selection should be cleared on success")
	}
}

func TestUploadResult_SuccessThenReset(t *testing.T) {
	m := submitWithFile(t, newTestModel())
	m, _ = m.Update(UploadResultMsg{Response: &api.UploadResponse{Message: "ok"}})

	m, _ = m.Update(ProgressResetMsg{})

	if m.Status() != StatusIdle {
		t.Errorf("status = %v, want StatusIdle after reset", m.Status())
	}
	if m.Progress() != 0 {
		t.Errorf("progress = %v, want 0 after reset", m.Progress())
	}
}

func TestUploadResult_FailurePreservesSelection(t *testing.T) {
	m := submitWithFile(t, newTestModel())

	m, _ = m.Update(UploadResultMsg{Err: errors.New("disk full")})

	if m.Status() != StatusFailed {
		t.Errorf("status = %v, want StatusFailed", m.Status())
	}
	if m.Progress() != 0 {
		t.Errorf("progress = %v, want 0 immediately on failure", m.Progress())
	}
	if m.Selection().IsEmpty() {
		t.Error("selection must be preserved on failure so the user can retry")
	}
}

func TestCancel_IsCosmetic(t *testing.T) {
	m := submitWithFile(t, newTestModel())

	m, _ = m.Update(CancelMsg{})

	if m.Status() != StatusCancelled {
		t.Errorf("status = %v, want StatusCancelled", m.Status())
	}
	if m.Progress() != 0 {
		t.Errorf("progress = %v, want 0", m.Progress())
	}

	// A late result for the dismissed upload is dropped.
	m, _ = m.Update(UploadResultMsg{Response: &api.UploadResponse{Message: "late"}})
	if m.Status() != StatusCancelled {
		t.Errorf("status = %v, late result should not revive the flow", m.Status())
	}
}

func TestCancel_NoOpWhenIdle(t *testing.T) {
	m := newTestModel()

	m, cmd := m.Update(CancelMsg{})

	if m.Status() != StatusIdle || cmd != nil {
		t.Error("cancel outside an upload should be a no-op")
	}
}

func TestSubmit_RejectedWhileInFlight(t *testing.T) {
	m := submitWithFile(t, newTestModel())

	before := m.Progress()
	m, _ = m.Update(SubmitMsg{})

	if m.Status() != StatusSubmitting {
		t.Errorf("status = %v, want still StatusSubmitting", m.Status())
	}
	if m.Progress() != before {
		t.Errorf("second submit reset progress: %v -> %v", before, m.Progress())
	}
}

func TestResetModeToggle(t *testing.T) {
	m := newTestModel()
	if m.ResetMode() {
		t.Fatal("reset mode should default to off")
	}

	m, _ = m.handleKey(keyMsg("r"))
	if !m.ResetMode() {
		t.Error("reset mode should toggle on")
	}
	m, _ = m.handleKey(keyMsg("r"))
	if m.ResetMode() {
		t.Error("reset mode should toggle off")
	}
}
