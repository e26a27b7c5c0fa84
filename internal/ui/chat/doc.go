// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The view owns an append-only transcript. Submitting input appends a
// user turn and dispatches the question to the backend; the answer (or
// a fixed fallback on failure) is appended as the bot's turn, so every
// exchange reads user-then-bot regardless of outcome. Whitespace-only
// input is dropped without a network call, and only one question can be
// in flight at a time.
//
// Slash commands (/save, /load, /sessions, /new) manage persistence
// through the local session store.
package chat
