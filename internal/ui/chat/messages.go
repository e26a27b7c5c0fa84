// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// messages.go - Bubble Tea message types used by the chat view:
//   - Input: user input submission
//   - Ask: question dispatch and results
//   - Session: save, load, and list operations against the local store

package chat

import (
	"github.com/jeranaias/ragdeck-tui/internal/api"
	"github.com/jeranaias/ragdeck-tui/internal/model"
)

// =============================================================================
// INPUT MESSAGES
// =============================================================================

// SubmitInputMsg signals that the user submitted input.
type SubmitInputMsg struct {
	Content string
}

// =============================================================================
// ASK MESSAGES
// =============================================================================

// AskResultMsg delivers the backend's answer (or failure) for a question.
type AskResultMsg struct {
	Response *api.AskResponse
	Err      error
}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionSavedMsg confirms a session save.
type SessionSavedMsg struct {
	ID  string
	Err error
}

// SessionsListedMsg delivers the saved session list.
type SessionsListedMsg struct {
	Sessions []model.TranscriptMeta
	Err      error
}

// SessionLoadedMsg delivers a loaded session.
type SessionLoadedMsg struct {
	Transcript *model.Transcript
	Err        error
}
