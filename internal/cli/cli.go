// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the headless command-line interface for ragdeck.
//
// Running with no arguments starts the TUI; subcommands cover one-shot
// questions, document uploads, backend status, and configuration.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version is the ragdeck release version.
var Version = "1.0.0"

// =============================================================================
// COMMANDS
// =============================================================================

// Command identifies the requested subcommand.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdUpload
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet      bool
	Verbose    bool
	JSON       bool
	BackendURL string

	// Command-specific
	Query     string
	Files     []string
	Reset     bool
	ConfigKey string
	ConfigVal string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `ragdeck - terminal client for your document QA backend

Ragdeck lets you query a retrieval-augmented document index and manage
its contents from the terminal.

Usage:
  ragdeck                      Start the TUI (default)
  ragdeck ask "question"       Ask a single question
  ragdeck chat                 Interactive chat REPL
  ragdeck upload FILE...       Upload documents to the index
  ragdeck upload --reset FILE...
                               Replace the index with the given documents
  ragdeck status               Show backend health and index status
  ragdeck config get KEY       Show a configuration value
  ragdeck config set KEY VAL   Change a configuration value
  ragdeck config list          List configuration keys
  ragdeck version              Show version
  ragdeck help                 Show this help

Global flags:
  --backend URL    Override the backend URL for this invocation
  --json           Output results as JSON (ask, status)
  -q, --quiet      Minimal output
  -v, --verbose    Verbose output

Accepted document types: pdf, txt, docx, doc, csv, md (10 MiB max each).

Configuration lives at ~/.ragdeck/config.toml. The backend URL can also
be set with RAGDECK_BACKEND_URL or BACKEND_URL.
`

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes the version line to stdout.
func PrintVersion() {
	fmt.Printf("ragdeck %s (%s/%s)\n", Version, runtime.GOOS, runtime.GOARCH)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse interprets os.Args into a command and its arguments.
func Parse() (Command, Args) {
	return parse(os.Args[1:])
}

func parse(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := remaining[0]
	rest := remaining[1:]

	switch cmd {
	case "ask":
		args.Query = strings.Join(rest, " ")
		return CmdAsk, args

	case "chat":
		return CmdChat, args

	case "upload":
		for _, a := range rest {
			if a == "--reset" {
				args.Reset = true
				continue
			}
			args.Files = append(args.Files, a)
		}
		return CmdUpload, args

	case "status", "s":
		return CmdStatus, args

	case "config":
		parseConfigArgs(&args, rest)
		return CmdConfig, args

	case "version", "-V", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		// Unknown word: treat a leading flag as help, anything else as
		// an implicit question.
		if strings.HasPrefix(cmd, "-") {
			return CmdHelp, args
		}
		args.Query = strings.Join(remaining, " ")
		return CmdAsk, args
	}
}

// parseGlobalFlags strips global flags from argv.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var args Args
	var remaining []string

	for i := 0; i < len(argv); i++ {
		switch argv[i] {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--json":
			args.JSON = true
		case "--backend":
			if i+1 < len(argv) {
				i++
				args.BackendURL = argv[i]
			}
		default:
			remaining = append(remaining, argv[i])
		}
	}

	args.Raw = remaining
	return remaining, args
}

// parseConfigArgs interprets the config subcommand forms.
func parseConfigArgs(args *Args, rest []string) {
	if len(rest) == 0 {
		args.ConfigKey = "list"
		return
	}
	switch rest[0] {
	case "get":
		if len(rest) > 1 {
			args.ConfigKey = rest[1]
		}
	case "set":
		if len(rest) > 2 {
			args.ConfigKey = rest[1]
			args.ConfigVal = rest[2]
		}
	case "list":
		args.ConfigKey = "list"
	default:
		args.ConfigKey = rest[0]
	}
}
