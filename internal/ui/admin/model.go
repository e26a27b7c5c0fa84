// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdeck-tui/internal/api"
	"github.com/jeranaias/ragdeck-tui/internal/ui/components"
	"github.com/jeranaias/ragdeck-tui/internal/ui/styles"
	"github.com/jeranaias/ragdeck-tui/internal/upload"
)

// EmptySelectionMessage is shown when submit is pressed with nothing
// selected.
const EmptySelectionMessage = "please select files to upload"

// =============================================================================
// UPLOAD STATUS
// =============================================================================

// Status represents the state of the upload flow.
type Status int

const (
	StatusIdle       Status = iota // Nothing in flight
	StatusSubmitting               // Upload request in flight
	StatusSucceeded                // Last upload completed
	StatusFailed                   // Last upload failed
	StatusCancelled                // User dismissed the in-flight upload
)

// String returns the display label for the status.
func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "Uploading"
	case StatusSucceeded:
		return "Done"
	case StatusFailed:
		return "Failed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Ready"
	}
}

// =============================================================================
// ADMIN MODEL
// =============================================================================

// Model is the Bubble Tea model for the admin upload view.
type Model struct {
	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// File selection
	selection *upload.Selection
	cursor    int

	// Upload flow
	status   Status
	progress float64
	// resetMode wipes the backend index before ingesting when true.
	resetMode bool

	// Backend client
	client *api.Client

	// Path entry mode
	entering bool
	input    textinput.Model

	// Backend index status, refreshed on entry and after uploads
	indexStatus *api.StatusResponse

	// Toast notifications
	toasts *components.ToastManager
}

// New creates an admin model.
func New(theme *styles.Theme, client *api.Client) Model {
	input := textinput.New()
	input.Placeholder = "Path to a file (pdf, txt, docx, doc, csv, md)..."
	input.Prompt = "> "
	input.CharLimit = 1024

	return Model{
		theme:     theme,
		selection: upload.NewSelection(),
		status:    StatusIdle,
		client:    client,
		input:     input,
		toasts:    components.NewToastManager(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return StatusCmd(m.client)
}

// Selection exposes the selection for the app model and tests.
func (m Model) Selection() *upload.Selection {
	return m.selection
}

// Status exposes the flow status for tests.
func (m Model) Status() Status {
	return m.status
}

// Progress exposes the cosmetic progress percentage for tests.
func (m Model) Progress() float64 {
	return m.progress
}

// ResetMode exposes whether submissions wipe the index first.
func (m Model) ResetMode() bool {
	return m.resetMode
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}
