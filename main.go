// ragdeck - A terminal client for retrieval-augmented document QA.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragdeck-tui/internal/api"
	"github.com/jeranaias/ragdeck-tui/internal/cli"
	"github.com/jeranaias/ragdeck-tui/internal/config"
	"github.com/jeranaias/ragdeck-tui/internal/storage"
	"github.com/jeranaias/ragdeck-tui/internal/ui/admin"
	"github.com/jeranaias/ragdeck-tui/internal/ui/chat"
	"github.com/jeranaias/ragdeck-tui/internal/ui/styles"
	"github.com/jeranaias/ragdeck-tui/internal/upload"
)

// Version information (set at build time)
var Version = "1.0.0"

func init() {
	cli.Version = Version
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdUpload:
		cli.HandleUpload(args)
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		runTUI(args)
	}
}

// =============================================================================
// TUI SETUP
// =============================================================================

func runTUI(args cli.Args) {
	cfg := cli.LoadConfig()
	config.SetGlobal(cfg)

	logger := cli.NewLogger(cfg)
	defer logger.Close()

	client := cli.NewClient(cfg, args)
	theme := styles.NewTheme(cfg.UI.Theme)

	var store *storage.SessionStore
	if cfg.Storage.Enabled {
		path, err := cfg.SessionDBPath()
		if err == nil {
			store, err = storage.NewSessionStore(path)
		}
		if err != nil {
			logger.Printf("session store unavailable: %v", err)
		}
	}
	if store != nil {
		defer store.Close()
	}

	var watcher *upload.Watcher
	if cfg.Upload.DropDir != "" {
		w, err := upload.NewWatcher(cfg.Upload.DropDir,
			time.Duration(cfg.Upload.WatchDebounceMs)*time.Millisecond)
		if err != nil {
			logger.Printf("drop dir watcher unavailable: %v", err)
		} else if err := w.Start(); err != nil {
			logger.Printf("drop dir watcher failed to start: %v", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	app := NewApp(theme, client, store, watcher, cfg)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ragdeck: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// APP MODEL
// =============================================================================

// Tab identifies the active view.
type Tab int

const (
	TabChat Tab = iota
	TabAdmin
)

// App is the top-level model. It owns the chat and admin views and
// routes messages to whichever tab is active.
type App struct {
	tab     Tab
	chat    chat.Model
	admin   admin.Model
	theme   *styles.Theme
	watcher *upload.Watcher
	width   int
	height  int
}

func NewApp(theme *styles.Theme, client *api.Client, store *storage.SessionStore, watcher *upload.Watcher, cfg *config.Config) *App {
	return &App{
		tab: TabChat,
		chat: chat.New(chat.Options{
			Theme:    theme,
			Client:   client,
			Store:    store,
			Markdown: cfg.UI.Markdown,
			WordWrap: cfg.UI.WordWrap,
		}),
		admin:   admin.New(theme, client),
		theme:   theme,
		watcher: watcher,
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.chat.Init(), a.admin.Init()}
	if a.watcher != nil {
		cmds = append(cmds, waitForDrop(a.watcher))
	}
	return tea.Batch(cmds...)
}

// waitForDrop blocks on the watcher channel and converts settled files
// into admin messages. Re-armed after each delivery.
func waitForDrop(w *upload.Watcher) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-w.Files
		if !ok {
			return nil
		}
		return admin.DroppedFileMsg{Path: path}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		// Reserve two rows for the header.
		a.chat.SetSize(msg.Width, msg.Height-2)
		a.admin.SetSize(msg.Width, msg.Height-2)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "tab", "shift+tab":
			if a.tab == TabChat {
				a.tab = TabAdmin
			} else {
				a.tab = TabChat
			}
			return a, nil
		}

	case admin.DroppedFileMsg:
		var cmd tea.Cmd
		a.admin, cmd = a.admin.Update(msg)
		return a, tea.Batch(cmd, waitForDrop(a.watcher))
	}

	// Admin background messages must reach the admin model even while
	// the chat tab is in front, and vice versa. Key input only goes to
	// the active tab.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		return a.updateActive(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.chat, cmd = a.chat.Update(msg)
	cmds = append(cmds, cmd)
	a.admin, cmd = a.admin.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a *App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if a.tab == TabChat {
		a.chat, cmd = a.chat.Update(msg)
	} else {
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	var body string
	if a.tab == TabChat {
		body = a.chat.View()
	} else {
		body = a.admin.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), body)
}

func (a *App) renderHeader() string {
	brand := a.theme.HeaderBrand.Render("ragdeck")

	chatTab := a.theme.TabInactive.Render(" Chat ")
	adminTab := a.theme.TabInactive.Render(" Documents ")
	if a.tab == TabChat {
		chatTab = a.theme.TabActive.Render(" Chat ")
	} else {
		adminTab = a.theme.TabActive.Render(" Documents ")
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, brand, "  ", chatTab, adminTab)
	return a.theme.Header.Width(a.width).Render(row)
}
