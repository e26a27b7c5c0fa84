// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdeck-tui/internal/api"
	"github.com/jeranaias/ragdeck-tui/internal/storage"
	"github.com/jeranaias/ragdeck-tui/internal/ui/components"
)

// =============================================================================
// COMMANDS
// =============================================================================

// AskCmd sends a question to the backend.
func AskCmd(client *api.Client, question string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Ask(context.Background(), question)
		return AskResultMsg{Response: resp, Err: err}
	}
}

// SaveSessionCmd persists the transcript.
func SaveSessionCmd(store *storage.SessionStore, m Model) tea.Cmd {
	transcript := m.transcript
	return func() tea.Msg {
		err := store.Save(transcript)
		return SessionSavedMsg{ID: transcript.ID, Err: err}
	}
}

// ListSessionsCmd fetches saved session metadata.
func ListSessionsCmd(store *storage.SessionStore) tea.Cmd {
	return func() tea.Msg {
		metas, err := store.List()
		return SessionsListedMsg{Sessions: metas, Err: err}
	}
}

// LoadSessionCmd loads a saved session by ID.
func LoadSessionCmd(store *storage.SessionStore, id string) tea.Cmd {
	return func() tea.Msg {
		tr, err := store.Load(id)
		return SessionLoadedMsg{Transcript: tr, Err: err}
	}
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
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			content := m.input.Value()
			m.input.SetValue("")
			return m.Update(SubmitInputMsg{Content: content})
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case SubmitInputMsg:
		return m.handleSubmit(msg.Content)

	case AskResultMsg:
		return m.handleAskResult(msg)

	case SessionSavedMsg:
		if msg.Err != nil {
			m.toasts.AddError("Failed to save session: " + msg.Err.Error())
		} else {
			m.toasts.AddSuccess("Session saved")
		}
		return m, components.ToastTickCmd()

	case SessionsListedMsg:
		if msg.Err != nil {
			m.toasts.AddError("Failed to list sessions: " + msg.Err.Error())
			return m, components.ToastTickCmd()
		}
		m.sessionList = msg.Sessions
		return m, nil

	case SessionLoadedMsg:
		if msg.Err != nil {
			m.toasts.AddError("Failed to load session: " + msg.Err.Error())
			return m, components.ToastTickCmd()
		}
		m.transcript = msg.Transcript
		m.sessionList = nil
		m.refreshViewport()
		return m, nil

	case components.ToastTickMsg:
		if m.toasts.HasToasts() {
			m.toasts.TickToasts()
			cmds = append(cmds, components.ToastTickCmd())
		}

	case spinner.TickMsg:
		if m.state == StateWaiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleSubmit processes submitted input: slash commands run locally,
// anything else goes to the backend as a question.
func (m Model) handleSubmit(content string) (Model, tea.Cmd) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		// Whitespace-only input is dropped without a network call.
		return m, nil
	}

	if strings.HasPrefix(trimmed, "/") {
		return m.handleCommand(trimmed)
	}

	// One question in flight at a time.
	if m.state == StateWaiting {
		m.toasts.AddWarning("Still waiting for the previous answer")
		return m, components.ToastTickCmd()
	}

	m.transcript.AppendUser(trimmed)
	m.state = StateWaiting
	m.refreshViewport()

	return m, tea.Batch(
		AskCmd(m.client, trimmed),
		m.spinner.Tick,
	)
}

// handleAskResult appends the bot's turn for a completed question.
func (m Model) handleAskResult(msg AskResultMsg) (Model, tea.Cmd) {
	m.state = StateReady

	if msg.Err != nil {
		// The transcript still gets a bot turn so the exchange reads
		// complete; the real error goes to a toast.
		m.transcript.AppendBot(FallbackAnswer, nil)
		m.toasts.AddError(msg.Err.Error())
		m.refreshViewport()
		return m, components.ToastTickCmd()
	}

	m.transcript.AppendBot(msg.Response.Answer, msg.Response.Sources)
	m.refreshViewport()
	return m, nil
}

// refreshViewport re-renders the transcript into the viewport and
// follows the newest turn.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}
