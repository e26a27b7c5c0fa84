// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists chat sessions in a local SQLite database.
//
// The store lives at ~/.ragdeck/sessions.db by default. Sessions are
// saved wholesale: the transcript row is upserted and its turns are
// rewritten in order, so the on-disk state always mirrors the in-memory
// transcript.
package storage
