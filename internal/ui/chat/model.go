// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/ragdeck-tui/internal/api"
	"github.com/jeranaias/ragdeck-tui/internal/model"
	"github.com/jeranaias/ragdeck-tui/internal/storage"
	"github.com/jeranaias/ragdeck-tui/internal/ui/components"
	"github.com/jeranaias/ragdeck-tui/internal/ui/styles"
)

// FallbackAnswer is shown as the bot's reply when a question fails, so
// the transcript keeps its user-then-bot rhythm even on errors.
const FallbackAnswer = "Sorry, I encountered an error while processing your question. Please try again."

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // A question is in flight
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation
	transcript *model.Transcript

	// Backend client
	client *api.Client

	// Session persistence. Nil when storage is disabled.
	store *storage.SessionStore

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Markdown rendering for bot answers. Nil when disabled.
	renderer *glamour.TermRenderer

	// Toast notifications
	toasts *components.ToastManager

	// Saved session list shown by the /sessions command
	sessionList []model.TranscriptMeta
}

// Options configures a chat model.
type Options struct {
	Theme    *styles.Theme
	Client   *api.Client
	Store    *storage.SessionStore
	Markdown bool
	WordWrap int
}

// New creates a chat model.
func New(opts Options) Model {
	input := textinput.New()
	input.Placeholder = "Ask a question about your documents..."
	input.Prompt = "> "
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: styles.DotsSpinner.Frames,
		FPS:    styles.DotsSpinner.Duration(),
	}
	sp.Style = opts.Theme.Spinner

	var renderer *glamour.TermRenderer
	if opts.Markdown {
		wrap := opts.WordWrap
		if wrap <= 0 {
			wrap = 80
		}
		// Renderer creation only fails on invalid options; fall back to
		// plain text if it does.
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
	}

	return Model{
		state:      StateReady,
		theme:      opts.Theme,
		transcript: model.NewTranscript(),
		client:     opts.Client,
		store:      opts.Store,
		viewport:   viewport.New(80, 20),
		input:      input,
		spinner:    sp,
		renderer:   renderer,
		toasts:     components.NewToastManager(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Transcript exposes the transcript for the app model and tests.
func (m Model) Transcript() *model.Transcript {
	return m.transcript
}

// State exposes the current state for tests.
func (m Model) State() State {
	return m.state
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	// Header, input box, and status bar take vertical room.
	contentHeight := height - 7
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.viewport.Height = contentHeight
	m.input.Width = width - 6
}
