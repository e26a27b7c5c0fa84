// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER AND TAB STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	SourceTag  lipgloss.Style
	Timestamp  lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// FILE SELECTION STYLES
	// ==========================================================================

	FileItem         lipgloss.Style
	FileItemSelected lipgloss.Style
	FileSize         lipgloss.Style

	// ==========================================================================
	// PROGRESS AND SPINNER STYLES
	// ==========================================================================

	ProgressLabel lipgloss.Style
	ProgressBar   lipgloss.Style
	Spinner       lipgloss.Style
	ThinkingText  lipgloss.Style

	// ==========================================================================
	// SESSION LIST STYLES
	// ==========================================================================

	SessionItem         lipgloss.Style
	SessionItemSelected lipgloss.Style
	SessionMeta         lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured. The
// preference forces the light or dark palette; "auto" (or any other
// value) keeps terminal detection.
func NewTheme(preference string) *Theme {
	switch preference {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}

	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header and tabs
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 2)

	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 2)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		Background(BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.SourceTag = lipgloss.NewStyle().
		Foreground(SourceTagFg).
		Background(SourceTagBg).
		Padding(0, 1)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(FocusRing).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// File selection
	t.FileItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.FileItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Padding(0, 1)

	t.FileSize = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Progress and spinner
	t.ProgressLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ProgressBar = lipgloss.NewStyle().
		Foreground(Purple)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Session list
	t.SessionItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.SessionItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true)

	t.SessionMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status styles
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true)
}

// SetSize updates the theme's layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the layout mode for the current width.
func (t *Theme) GetLayoutMode() LayoutMode {
	switch {
	case t.Width < 60:
		return LayoutCompact
	case t.Width < 100:
		return LayoutNormal
	default:
		return LayoutWide
	}
}

// LayoutMode describes how much horizontal room the UI has.
type LayoutMode int

const (
	LayoutCompact LayoutMode = iota
	LayoutNormal
	LayoutWide
)
