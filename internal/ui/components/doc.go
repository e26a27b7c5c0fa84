// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the ragdeck TUI:
// non-blocking toast notifications and the upload file list renderer.
package components
