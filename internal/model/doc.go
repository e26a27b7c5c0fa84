// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts.
//
// A Transcript is the append-only history of one chat session; a Turn is
// one exchange unit authored by either the user or the assistant. Bot turns
// may carry source citations returned by the backend.
//
// # Invariants
//
//   - Turns are never reordered, edited, or removed
//   - Ordering is strictly chronological by append
//   - The full timestamp is retained; display formatting (hh:mm) is a view
//     concern handled by Turn.ClockTime
package model
