// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend status command handler for the ragdeck CLI.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jeranaias/ragdeck-tui/internal/ui/styles"
)

// HandleStatus runs the status command.
func HandleStatus(args Args) {
	cfg := LoadConfig()
	client := NewClient(cfg, args)
	ctx := context.Background()

	health, healthErr := client.Health(ctx)

	if healthErr != nil {
		if args.JSON {
			printStatusJSON(map[string]any{"reachable": false, "error": healthErr.Error()})
			return
		}
		fmt.Println(styles.RenderError("Backend unreachable: " + healthErr.Error()))
		return
	}

	status, statusErr := client.Status(ctx)

	if args.JSON {
		out := map[string]any{"reachable": true, "health": health}
		if statusErr == nil {
			out["index"] = status
		}
		printStatusJSON(out)
		return
	}

	fmt.Println(styles.RenderSuccess("Backend is " + health.Status))
	if statusErr != nil {
		fmt.Println(styles.RenderWarning("Index status unavailable: " + statusErr.Error()))
		return
	}

	fmt.Println(styles.RenderStatus(status.IndexReady, fmt.Sprintf("Index ready: %v", status.IndexReady)))
	fmt.Println(styles.RenderInfo(fmt.Sprintf("Documents indexed: %d", status.DocumentCount)))
}

func printStatusJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Fatal("failed to encode status: %v", err)
	}
	fmt.Println(string(out))
}
