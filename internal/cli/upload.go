// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// upload.go - Document upload command handler for the ragdeck CLI.
//
// Handles "ragdeck upload", which validates the given files locally and
// sends the accepted ones to the backend. With --reset the backend
// replaces its index instead of appending.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jeranaias/ragdeck-tui/internal/api"
	"github.com/jeranaias/ragdeck-tui/internal/ui/styles"
	"github.com/jeranaias/ragdeck-tui/internal/upload"
)

// HandleUpload runs the upload command.
func HandleUpload(args Args) {
	if len(args.Files) == 0 {
		Fatal("usage: ragdeck upload [--reset] FILE...")
	}

	files, statRejections := upload.StatFiles(args.Files)
	outcome := upload.Validate(files)

	rejections := append(statRejections, outcome.Rejected...)
	if len(rejections) > 0 {
		warn := upload.Outcome{Rejected: rejections}
		fmt.Fprintln(os.Stderr, styles.RenderWarning(warn.RejectionMessage()))
	}

	if len(outcome.Accepted) == 0 {
		Fatal("please select files to upload")
	}

	var paths []string
	for _, f := range outcome.Accepted {
		paths = append(paths, f.Path)
	}

	cfg := LoadConfig()
	client := NewClient(cfg, args)

	if !args.Quiet {
		verb := "Uploading"
		if args.Reset {
			verb = "Replacing index with"
		}
		fmt.Println(styles.RenderInfo(fmt.Sprintf("%s %d file(s)...", verb, len(paths))))
	}

	var resp *api.UploadResponse
	var err error
	if args.Reset {
		resp, err = client.ResetUpload(context.Background(), paths)
	} else {
		resp, err = client.UploadFiles(context.Background(), paths)
	}
	if err != nil {
		Fatal("%v", err)
	}

	fmt.Println(styles.RenderSuccess(resp.Message))

	if args.Verbose {
		for _, name := range resp.ProcessedFiles {
			fmt.Println(styles.RenderStatus(true, "processed "+name))
		}
		for _, name := range resp.FailedFiles {
			fmt.Println(styles.RenderStatus(false, "failed "+name))
		}
	}
}
