// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - Slash command registry: each command is an individual,
// testable handler keyed by name.

package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdeck-tui/internal/model"
	"github.com/jeranaias/ragdeck-tui/internal/ui/components"
)

// =============================================================================
// COMMAND HANDLER REGISTRY
// =============================================================================

// CommandHandler handles one slash command. It receives the model and
// the command arguments and returns the updated model and a command.
type CommandHandler func(m Model, args []string) (Model, tea.Cmd)

// commandHandlers maps command names to their handler functions.
var commandHandlers = map[string]CommandHandler{
	// Help & meta
	"help": handleHelpCommand,
	"h":    handleHelpCommand,
	"?":    handleHelpCommand,
	"quit": handleQuitCommand,
	"q":    handleQuitCommand,
	"exit": handleQuitCommand,

	// Session management
	"new":      handleNewCommand,
	"n":        handleNewCommand,
	"clear":    handleNewCommand,
	"save":     handleSaveCommand,
	"s":        handleSaveCommand,
	"load":     handleLoadCommand,
	"l":        handleLoadCommand,
	"sessions": handleListCommand,
	"list":     handleListCommand,
}

// handleCommand parses and dispatches a slash command.
func (m Model) handleCommand(input string) (Model, tea.Cmd) {
	parts := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(parts) == 0 {
		return m, nil
	}

	handler, ok := commandHandlers[parts[0]]
	if !ok {
		m.toasts.AddWarning("Unknown command: /" + parts[0])
		return m, components.ToastTickCmd()
	}
	return handler(m, parts[1:])
}

// =============================================================================
// HANDLERS
// =============================================================================

func handleHelpCommand(m Model, _ []string) (Model, tea.Cmd) {
	m.toasts.AddStatus("Commands: /new /save /load <id> /sessions /quit")
	return m, components.ToastTickCmd()
}

func handleQuitCommand(m Model, _ []string) (Model, tea.Cmd) {
	return m, tea.Quit
}

func handleNewCommand(m Model, _ []string) (Model, tea.Cmd) {
	m.transcript = model.NewTranscript()
	m.sessionList = nil
	m.refreshViewport()
	m.toasts.AddStatus("Started a new session")
	return m, components.ToastTickCmd()
}

func handleSaveCommand(m Model, _ []string) (Model, tea.Cmd) {
	if m.store == nil {
		m.toasts.AddWarning("Session storage is disabled")
		return m, components.ToastTickCmd()
	}
	if m.transcript.IsEmpty() {
		m.toasts.AddWarning("Nothing to save yet")
		return m, components.ToastTickCmd()
	}
	return m, SaveSessionCmd(m.store, m)
}

func handleLoadCommand(m Model, args []string) (Model, tea.Cmd) {
	if m.store == nil {
		m.toasts.AddWarning("Session storage is disabled")
		return m, components.ToastTickCmd()
	}
	if len(args) != 1 {
		m.toasts.AddWarning("Usage: /load <session-id>")
		return m, components.ToastTickCmd()
	}
	return m, LoadSessionCmd(m.store, args[0])
}

func handleListCommand(m Model, _ []string) (Model, tea.Cmd) {
	if m.store == nil {
		m.toasts.AddWarning("Session storage is disabled")
		return m, components.ToastTickCmd()
	}
	return m, ListSessionsCmd(m.store)
}
