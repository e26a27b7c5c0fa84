// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdeck-tui/internal/api"
	"github.com/jeranaias/ragdeck-tui/internal/ui/components"
	"github.com/jeranaias/ragdeck-tui/internal/upload"
)

// Cosmetic progress parameters. The bar advances on a fixed tick while
// the request is in flight and holds below completion until the backend
// answers, so it communicates liveness rather than real progress.
const (
	progressTickInterval = 300 * time.Millisecond
	progressStep         = 5
	progressCeiling      = 80
	progressResetDelay   = 2 * time.Second
)

// =============================================================================
// COMMANDS
// =============================================================================

// UploadCmd submits the selection to the backend.
func UploadCmd(client *api.Client, paths []string, reset bool) tea.Cmd {
	return func() tea.Msg {
		var resp *api.UploadResponse
		var err error
		if reset {
			resp, err = client.ResetUpload(context.Background(), paths)
		} else {
			resp, err = client.UploadFiles(context.Background(), paths)
		}
		return UploadResultMsg{Response: resp, Err: err}
	}
}

// StatusCmd fetches the backend's index status.
func StatusCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Status(context.Background())
		return StatusResultMsg{Response: resp, Err: err}
	}
}

// ProgressTickCmd schedules the next cosmetic progress advance.
func ProgressTickCmd() tea.Cmd {
	return tea.Tick(progressTickInterval, func(t time.Time) tea.Msg {
		return ProgressTickMsg{Time: t}
	})
}

// ProgressResetCmd schedules the post-success progress reset.
func ProgressResetCmd() tea.Cmd {
	return tea.Tick(progressResetDelay, func(time.Time) tea.Msg {
		return ProgressResetMsg{}
	})
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case AddFilesMsg:
		return m.handleAddFiles(msg.Paths)

	case DroppedFileMsg:
		return m.handleAddFiles([]string{msg.Path})

	case SubmitMsg:
		return m.handleSubmit()

	case CancelMsg:
		return m.handleCancel()

	case ProgressTickMsg:
		if m.status == StatusSubmitting {
			m.progress += progressStep
			if m.progress > progressCeiling {
				m.progress = progressCeiling
			}
			cmds = append(cmds, ProgressTickCmd())
		}

	case ProgressResetMsg:
		if m.status == StatusSucceeded {
			m.progress = 0
			m.status = StatusIdle
		}

	case UploadResultMsg:
		return m.handleUploadResult(msg)

	case StatusResultMsg:
		if msg.Err == nil {
			m.indexStatus = msg.Response
		}

	case components.ToastTickMsg:
		if m.toasts.HasToasts() {
			m.toasts.TickToasts()
			cmds = append(cmds, components.ToastTickCmd())
		}
	}

	if m.entering {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey routes key presses for list navigation and flow control.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Path entry mode swallows all keys except enter/esc.
	if m.entering {
		switch msg.String() {
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			m.entering = false
			m.input.SetValue("")
			m.input.Blur()
			if path == "" {
				return m, nil
			}
			return m.handleAddFiles([]string{path})
		case "esc":
			m.entering = false
			m.input.SetValue("")
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "a":
		m.entering = true
		m.input.Focus()
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < m.selection.Len()-1 {
			m.cursor++
		}

	case "d", "x":
		m.selection.Remove(m.cursor)
		if m.cursor >= m.selection.Len() && m.cursor > 0 {
			m.cursor--
		}

	case "r":
		m.resetMode = !m.resetMode

	case "s", "enter":
		return m.handleSubmit()

	case "esc", "c":
		return m.handleCancel()
	}

	return m, nil
}

// handleAddFiles validates candidates and adopts the accepted subset.
func (m Model) handleAddFiles(paths []string) (Model, tea.Cmd) {
	files, statRejections := upload.StatFiles(paths)
	outcome := m.selection.Add(files)

	rejected := append(statRejections, outcome.Rejected...)
	if len(rejected) > 0 {
		msg := upload.Outcome{Rejected: rejected}.RejectionMessage()
		m.toasts.AddWarning(msg)
		return m, components.ToastTickCmd()
	}
	return m, nil
}

// handleSubmit starts the upload if there is anything to send.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	if m.status == StatusSubmitting {
		m.toasts.AddWarning("An upload is already in progress")
		return m, components.ToastTickCmd()
	}
	if m.selection.IsEmpty() {
		// No network call for an empty selection.
		m.toasts.AddError(EmptySelectionMessage)
		return m, components.ToastTickCmd()
	}

	m.status = StatusSubmitting
	m.progress = 0

	return m, tea.Batch(
		UploadCmd(m.client, m.selection.Paths(), m.resetMode),
		ProgressTickCmd(),
	)
}

// handleCancel dismisses the in-flight upload from the UI. The request
// itself is not aborted; the backend may still complete the ingestion.
func (m Model) handleCancel() (Model, tea.Cmd) {
	if m.status != StatusSubmitting {
		return m, nil
	}

	m.status = StatusCancelled
	m.progress = 0
	m.toasts.AddWarning("Upload dismissed. The server may still finish processing it.")
	return m, components.ToastTickCmd()
}

// handleUploadResult finishes the flow for a completed request.
func (m Model) handleUploadResult(msg UploadResultMsg) (Model, tea.Cmd) {
	// A result arriving after a cosmetic cancel is dropped silently;
	// the user already dismissed this upload.
	if m.status != StatusSubmitting {
		return m, nil
	}

	if msg.Err != nil {
		m.status = StatusFailed
		m.progress = 0
		// Selection is preserved so the user can retry.
		m.toasts.AddError(msg.Err.Error())
		return m, components.ToastTickCmd()
	}

	m.status = StatusSucceeded
	m.progress = 100
	m.selection.Clear()
	m.cursor = 0

	// The backend's summary message is surfaced verbatim.
	m.toasts.AddSuccess(msg.Response.Message)

	return m, tea.Batch(
		ProgressResetCmd(),
		StatusCmd(m.client),
		components.ToastTickCmd(),
	)
}
