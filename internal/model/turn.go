// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SPEAKER TYPE
// =============================================================================

// Speaker identifies the author of a turn.
type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

// String returns the string representation of the speaker.
func (s Speaker) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the speaker.
func (s Speaker) DisplayName() string {
	switch s {
	case SpeakerUser:
		return "You"
	case SpeakerBot:
		return "Assistant"
	default:
		return string(s)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one message exchange unit in a transcript, authored by either
// the user or the assistant.
type Turn struct {
	ID        string    `json:"id"`
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	// Sources lists the document labels the answer was grounded on.
	// Only set on bot turns; empty when the backend provided none.
	Sources []string `json:"sources,omitempty"`
}

// NewTurn creates a new turn with a generated ID and the current time.
func NewTurn(speaker Speaker, text string) Turn {
	return Turn{
		ID:        generateTurnID(),
		Speaker:   speaker,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewUserTurn creates a user turn.
func NewUserTurn(text string) Turn {
	return NewTurn(SpeakerUser, text)
}

// NewBotTurn creates a bot turn with optional source labels.
func NewBotTurn(text string, sources []string) Turn {
	t := NewTurn(SpeakerBot, text)
	t.Sources = sources
	return t
}

// ClockTime formats the timestamp for display as localized hour:minute.
// The full timestamp is retained on the turn regardless of display format.
func (t Turn) ClockTime() string {
	return t.Timestamp.Local().Format("15:04")
}

// HasSources returns true if the turn carries source citations.
func (t Turn) HasSources() bool {
	return len(t.Sources) > 0
}

// Preview returns a truncated single-line preview of the turn text.
// Uses rune-based truncation to handle Unicode correctly.
func (t Turn) Preview(maxLen int) string {
	runes := []rune(t.Text)
	if len(runes) <= maxLen {
		return t.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateTurnID creates a unique turn ID.
func generateTurnID() string {
	return "turn_" + uuid.New().String()
}
