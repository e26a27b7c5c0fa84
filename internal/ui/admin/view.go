// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"fmt"
	"strings"

	"github.com/jeranaias/ragdeck-tui/internal/ui/components"
	"github.com/jeranaias/ragdeck-tui/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.renderIndexStatus())
	sb.WriteString("\n\n")

	sb.WriteString(components.RenderFileList(m.theme, m.selection.Files(), m.cursor, m.width))
	sb.WriteString("\n")
	if summary := components.RenderSelectionSummary(m.theme, m.selection.Len(), m.selection.TotalBytes()); summary != "" {
		sb.WriteString(summary)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if m.entering {
		sb.WriteString(m.theme.InputContainer.Width(m.width - 2).Render(m.input.View()))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderProgress())
	sb.WriteString("\n")
	sb.WriteString(m.renderStatusBar())

	base := sb.String()
	if m.toasts.HasToasts() {
		return base + "\n" + components.RenderToastStack(m.toasts.GetToasts(), m.width, 0)
	}
	return base
}

// renderIndexStatus renders the backend document index summary line.
func (m Model) renderIndexStatus() string {
	mode := "append"
	if m.resetMode {
		mode = "replace index"
	}
	modeLabel := m.theme.InfoStyle.Render("[" + mode + "]")

	if m.indexStatus == nil {
		return m.theme.SessionMeta.Render("Index status unknown") + " " + modeLabel
	}
	line := fmt.Sprintf("%d documents indexed", m.indexStatus.DocumentCount)
	if !m.indexStatus.IndexReady {
		line += " (index not ready)"
	}
	return m.theme.SessionMeta.Render(line) + " " + modeLabel
}

// renderProgress renders the upload progress line.
func (m Model) renderProgress() string {
	label := m.theme.ProgressLabel.Render(m.status.String())

	barWidth := m.width - 20
	if barWidth < 10 {
		barWidth = 10
	}
	bar := m.theme.ProgressBar.Render(styles.RenderProgressBar(barWidth, m.progress))

	return fmt.Sprintf("%s %s %3.0f%%", label, bar, m.progress)
}

// renderStatusBar renders the shortcut hints line.
func (m Model) renderStatusBar() string {
	hints := []string{
		m.theme.ShortcutKey.Render("a") + m.theme.ShortcutDesc.Render(" add"),
		m.theme.ShortcutKey.Render("d") + m.theme.ShortcutDesc.Render(" remove"),
		m.theme.ShortcutKey.Render("r") + m.theme.ShortcutDesc.Render(" toggle replace"),
		m.theme.ShortcutKey.Render("s") + m.theme.ShortcutDesc.Render(" submit"),
		m.theme.ShortcutKey.Render("esc") + m.theme.ShortcutDesc.Render(" dismiss"),
		m.theme.ShortcutKey.Render("tab") + m.theme.ShortcutDesc.Render(" switch view"),
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(hints, "  "))
}
