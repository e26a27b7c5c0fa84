// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ragdeck TUI.
//
// The package defines the adaptive color palette, the Theme holding all
// configured lipgloss styles, and ASCII-safe spinner and progress bar
// primitives. Colors use lipgloss.AdaptiveColor so the palette follows
// the terminal's light or dark background automatically; the config
// ui.theme key can force either variant.
package styles
