// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragdeck-tui/internal/model"
	"github.com/jeranaias/ragdeck-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")

	if m.state == StateWaiting {
		sb.WriteString(m.theme.ThinkingText.Render("Thinking" + m.spinner.View()))
		sb.WriteString("\n")
	}

	sb.WriteString(m.theme.InputContainer.Width(m.width - 2).Render(m.input.View()))
	sb.WriteString("\n")
	sb.WriteString(m.renderStatusBar())

	base := sb.String()
	if m.toasts.HasToasts() {
		return base + "\n" + components.RenderToastStack(m.toasts.GetToasts(), m.width, 0)
	}
	return base
}

// renderStatusBar renders the shortcut hints line.
func (m Model) renderStatusBar() string {
	hints := []string{
		m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" send"),
		m.theme.ShortcutKey.Render("/help") + m.theme.ShortcutDesc.Render(" commands"),
		m.theme.ShortcutKey.Render("tab") + m.theme.ShortcutDesc.Render(" switch view"),
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(hints, "  "))
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// renderTranscript renders all turns, oldest first.
func (m *Model) renderTranscript() string {
	if m.transcript.IsEmpty() && len(m.sessionList) == 0 {
		return m.theme.ThinkingText.Render("Ask a question to get started.")
	}

	var blocks []string
	for i := range m.transcript.Turns {
		blocks = append(blocks, m.renderTurn(&m.transcript.Turns[i]))
	}
	if len(m.sessionList) > 0 {
		blocks = append(blocks, m.renderSessionList())
	}
	return strings.Join(blocks, "\n\n")
}

// renderTurn renders a single turn as a bubble with timestamp.
func (m *Model) renderTurn(t *model.Turn) string {
	label := t.Speaker.DisplayName()

	maxWidth := m.width - 12
	if maxWidth < 20 {
		maxWidth = 20
	}

	switch t.Speaker {
	case model.SpeakerUser:
		bubble := m.theme.UserBubble.MaxWidth(maxWidth).Render(t.Text)
		header := m.theme.Timestamp.Render(label + " " + t.ClockTime())
		return lipgloss.JoinVertical(lipgloss.Right, header, bubble)

	default:
		text := t.Text
		if m.renderer != nil {
			if rendered, err := m.renderer.Render(text); err == nil {
				text = strings.TrimRight(rendered, "\n")
			}
		}
		bubble := m.theme.BotBubble.MaxWidth(maxWidth).Render(text)
		header := m.theme.Timestamp.Render(label + " " + t.ClockTime())

		parts := []string{header, bubble}
		if t.HasSources() {
			parts = append(parts, m.renderSources(t.Sources))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
}

// renderSources renders the document names an answer was grounded on.
func (m *Model) renderSources(sources []string) string {
	tags := make([]string, 0, len(sources))
	for _, s := range sources {
		tags = append(tags, m.theme.SourceTag.Render(s))
	}
	return m.theme.Timestamp.Render("Sources: ") + strings.Join(tags, " ")
}

// renderSessionList renders the /sessions output inline in the viewport.
func (m *Model) renderSessionList() string {
	var sb strings.Builder
	sb.WriteString(m.theme.SessionMeta.Render("Saved sessions (load with /load <id>):"))
	sb.WriteString("\n")
	for _, meta := range m.sessionList {
		line := meta.ID + "  " + meta.Title
		sb.WriteString(m.theme.SessionItem.Render(line))
		sb.WriteString(m.theme.SessionMeta.Render("  " + meta.UpdatedAt.Format("2006-01-02 15:04")))
		sb.WriteString("\n")
	}
	return sb.String()
}
