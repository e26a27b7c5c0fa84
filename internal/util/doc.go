// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the ragdeck client.
//
// String utilities are width-aware (go-runewidth) so that truncation never
// corrupts multi-byte content in terminal output. AtomicWriteFile is the
// crash-safe write used for config and history files.
package util
