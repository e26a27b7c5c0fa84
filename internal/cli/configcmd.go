// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// configcmd.go - Configuration command handler for the ragdeck CLI.
//
// Handles "ragdeck config get|set|list".
package cli

import (
	"fmt"

	"github.com/jeranaias/ragdeck-tui/internal/config"
	"github.com/jeranaias/ragdeck-tui/internal/ui/styles"
)

// HandleConfig runs the config command.
func HandleConfig(args Args) {
	cfg := LoadConfig()

	switch {
	case args.ConfigKey == "" || args.ConfigKey == "list":
		for _, key := range config.Keys() {
			value, err := cfg.Get(key)
			if err != nil {
				continue
			}
			fmt.Printf("%-20s %s\n", key, value)
		}

	case args.ConfigVal != "":
		if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
			Fatal("%v", err)
		}
		if err := config.Save(cfg); err != nil {
			Fatal("failed to save config: %v", err)
		}
		if !args.Quiet {
			fmt.Println(styles.RenderSuccess(args.ConfigKey + " = " + args.ConfigVal))
		}

	default:
		value, err := cfg.Get(args.ConfigKey)
		if err != nil {
			Fatal("%v", err)
		}
		fmt.Println(value)
	}
}
