// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler for the ragdeck CLI.
//
// Handles "ragdeck ask", which sends one question to the backend and
// prints the answer.
//
// Examples:
//   ragdeck ask "What does the onboarding doc say about laptops?"
//   ragdeck ask --json "List the refund policy exceptions"
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragdeck-tui/internal/ui/styles"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the global glamour renderer for markdown output.
var markdownRenderer *glamour.TermRenderer

func init() {
	if !IsStdoutTTY() {
		// Piped output stays plain.
		return
	}
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown to the terminal, or returns the text
// unchanged when the renderer is unavailable.
func renderMarkdown(text string) string {
	if markdownRenderer == nil {
		return text
	}
	rendered, err := markdownRenderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(rendered, "\n")
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// HandleAsk runs the ask command.
func HandleAsk(args Args) {
	question := strings.TrimSpace(args.Query)
	if question == "" {
		Fatal("usage: ragdeck ask \"question\"")
	}

	cfg := LoadConfig()
	client := NewClient(cfg, args)

	resp, err := client.Ask(context.Background(), question)
	if err != nil {
		Fatal("%v", err)
	}

	if args.JSON {
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			Fatal("failed to encode response: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Println(renderMarkdown(resp.Answer))

	if len(resp.Sources) > 0 && !args.Quiet {
		sourceStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		fmt.Fprintln(os.Stderr, sourceStyle.Render("Sources: "+strings.Join(resp.Sources, ", ")))
	}
	if args.Verbose {
		metaStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		fmt.Fprintln(os.Stderr, metaStyle.Render(fmt.Sprintf("Answered in %.2fs", resp.ProcessingTime)))
	}
}
