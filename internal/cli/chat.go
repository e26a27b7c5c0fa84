// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the ragdeck CLI.
//
// Handles "ragdeck chat", an interactive REPL against the backend's
// question-answering endpoint with readline-style input history.
//
// Interactive commands (during chat):
//   /help, /h           Show available commands
//   /save               Save the session to the local store
//   /sessions           List saved sessions
//   /new                Start a fresh session
//   /quit, /q           Exit chat
//   Ctrl+C, Ctrl+D      Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/ragdeck-tui/internal/config"
	"github.com/jeranaias/ragdeck-tui/internal/model"
	"github.com/jeranaias/ragdeck-tui/internal/storage"
	"github.com/jeranaias/ragdeck-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt. Supports
// history navigation with arrow keys.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChat runs the interactive chat REPL.
func HandleChat(args Args) {
	cfg := LoadConfig()
	client := NewClient(cfg, args)

	var store *storage.SessionStore
	if cfg.Storage.Enabled {
		if path, err := cfg.SessionDBPath(); err == nil {
			store, _ = storage.NewSessionStore(path)
		}
	}
	if store != nil {
		defer store.Close()
	}

	input := NewChatCLI()
	defer input.Close()

	transcript := model.NewTranscript()

	if !args.Quiet {
		fmt.Println(welcomeStyle.Render("ragdeck chat"))
		fmt.Println(infoStyle.Render("Ask questions about your documents. /help for commands, /quit to exit."))
		fmt.Println()
	}

	for {
		line, err := input.ReadInput(promptStyle.Render("you> "))
		if err != nil {
			// Ctrl+C or Ctrl+D ends the session.
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
			}
			break
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "/") {
			if quit := runChatCommand(trimmed, transcript, store); quit {
				break
			}
			continue
		}

		transcript.AppendUser(trimmed)

		resp, err := client.Ask(context.Background(), trimmed)
		if err != nil {
			transcript.AppendBot("Sorry, I encountered an error while processing your question. Please try again.", nil)
			fmt.Println(warningStyle.Render("error: " + err.Error()))
			continue
		}

		transcript.AppendBot(resp.Answer, resp.Sources)
		fmt.Println(renderMarkdown(resp.Answer))
		if len(resp.Sources) > 0 {
			fmt.Println(infoStyle.Render("Sources: " + strings.Join(resp.Sources, ", ")))
		}
		fmt.Println()
	}
}

// runChatCommand executes a slash command. Returns true to exit.
func runChatCommand(input string, transcript *model.Transcript, store *storage.SessionStore) bool {
	parts := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(parts) == 0 {
		return false
	}

	switch parts[0] {
	case "quit", "q", "exit":
		return true

	case "help", "h":
		fmt.Println(infoStyle.Render("Commands: /save /sessions /new /quit"))

	case "new", "clear":
		*transcript = *model.NewTranscript()
		fmt.Println(infoStyle.Render("Started a new session."))

	case "save":
		if store == nil {
			fmt.Println(warningStyle.Render("Session storage is disabled."))
			return false
		}
		if transcript.IsEmpty() {
			fmt.Println(warningStyle.Render("Nothing to save yet."))
			return false
		}
		if err := store.Save(transcript); err != nil {
			fmt.Println(warningStyle.Render("Save failed: " + err.Error()))
			return false
		}
		fmt.Println(infoStyle.Render("Saved as " + transcript.ID))

	case "sessions", "list":
		if store == nil {
			fmt.Println(warningStyle.Render("Session storage is disabled."))
			return false
		}
		metas, err := store.List()
		if err != nil {
			fmt.Println(warningStyle.Render("List failed: " + err.Error()))
			return false
		}
		if len(metas) == 0 {
			fmt.Println(infoStyle.Render("No saved sessions."))
			return false
		}
		for _, meta := range metas {
			fmt.Printf("%s  %-40s  %s\n",
				meta.ID, meta.Title, meta.UpdatedAt.Format("2006-01-02 15:04"))
		}

	default:
		fmt.Println(warningStyle.Render("Unknown command: /" + parts[0]))
	}
	return false
}
