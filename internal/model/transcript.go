// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript holds the ordered history of a chat session.
//
// Turns are append-only: they are never reordered, edited, or deleted, and
// the transcript grows for the lifetime of the session. Ordering is strictly
// chronological by append.
type Transcript struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Turns []Turn `json:"turns"`
}

// NewTranscript creates an empty transcript with a generated ID.
func NewTranscript() *Transcript {
	now := time.Now()
	return &Transcript{
		ID:        generateTranscriptID(),
		CreatedAt: now,
		UpdatedAt: now,
		Turns:     make([]Turn, 0),
	}
}

// =============================================================================
// TURN MANAGEMENT
// =============================================================================

// Append adds a turn to the end of the transcript.
func (tr *Transcript) Append(t Turn) {
	tr.Turns = append(tr.Turns, t)
	tr.UpdatedAt = time.Now()
	tr.updateTitle()
}

// AppendUser creates and appends a user turn, returning it.
func (tr *Transcript) AppendUser(text string) Turn {
	t := NewUserTurn(text)
	tr.Append(t)
	return t
}

// AppendBot creates and appends a bot turn, returning it.
func (tr *Transcript) AppendBot(text string, sources []string) Turn {
	t := NewBotTurn(text, sources)
	tr.Append(t)
	return t
}

// Last returns the most recent turn and true, or a zero turn and false
// when the transcript is empty.
func (tr *Transcript) Last() (Turn, bool) {
	if len(tr.Turns) == 0 {
		return Turn{}, false
	}
	return tr.Turns[len(tr.Turns)-1], true
}

// LastUser returns the most recent user turn.
func (tr *Transcript) LastUser() (Turn, bool) {
	for i := len(tr.Turns) - 1; i >= 0; i-- {
		if tr.Turns[i].Speaker == SpeakerUser {
			return tr.Turns[i], true
		}
	}
	return Turn{}, false
}

// Len returns the number of turns.
func (tr *Transcript) Len() int {
	return len(tr.Turns)
}

// IsEmpty returns true if there are no turns.
func (tr *Transcript) IsEmpty() bool {
	return len(tr.Turns) == 0
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// updateTitle auto-generates a title from the first user turn if not set.
func (tr *Transcript) updateTitle() {
	if tr.Title != "" {
		return
	}
	for _, t := range tr.Turns {
		if t.Speaker == SpeakerUser {
			tr.Title = t.Preview(50)
			return
		}
	}
}

// SetTitle manually sets the transcript title.
func (tr *Transcript) SetTitle(title string) {
	tr.Title = title
	tr.UpdatedAt = time.Now()
}

// GetTitle returns the transcript title or a default.
func (tr *Transcript) GetTitle() string {
	if tr.Title != "" {
		return tr.Title
	}
	return "New Session"
}

// =============================================================================
// METADATA
// =============================================================================

// TranscriptMeta holds lightweight metadata for listing sessions.
type TranscriptMeta struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	TurnCount int       `json:"turn_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meta returns metadata about the transcript.
func (tr *Transcript) Meta() TranscriptMeta {
	return TranscriptMeta{
		ID:        tr.ID,
		Title:     tr.GetTitle(),
		TurnCount: len(tr.Turns),
		CreatedAt: tr.CreatedAt,
		UpdatedAt: tr.UpdatedAt,
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateTranscriptID creates a unique transcript ID.
func generateTranscriptID() string {
	return "sess_" + uuid.New().String()
}
