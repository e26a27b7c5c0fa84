// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/ragdeck-tui/internal/ui/styles"
	"github.com/jeranaias/ragdeck-tui/internal/upload"
	"github.com/jeranaias/ragdeck-tui/internal/util"
)

// =============================================================================
// FILE LIST
// =============================================================================

// RenderFileList renders the upload selection with the cursor row
// highlighted. Names wider than the available space are truncated with
// an ellipsis; sizes are right-aligned.
func RenderFileList(theme *styles.Theme, files []upload.FileInfo, cursor, width int) string {
	if len(files) == 0 {
		return theme.FileSize.Render("No files selected. Press 'a' to add files.")
	}

	const sizeColumn = 10
	nameWidth := width - sizeColumn - 4
	if nameWidth < 10 {
		nameWidth = 10
	}

	var sb strings.Builder
	for i, f := range files {
		name := util.TruncateWidth(f.Name, nameWidth)
		size := FormatBytes(f.SizeBytes)
		row := fmt.Sprintf("%s %s", util.PadRight(name, nameWidth), theme.FileSize.Render(size))

		if i == cursor {
			sb.WriteString(theme.FileItemSelected.Render("> " + row))
		} else {
			sb.WriteString(theme.FileItem.Render("  " + row))
		}
		if i < len(files)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// RenderSelectionSummary renders the "N files, X total" footer line.
func RenderSelectionSummary(theme *styles.Theme, count int, totalBytes int64) string {
	if count == 0 {
		return ""
	}
	noun := "files"
	if count == 1 {
		noun = "file"
	}
	return theme.FileSize.Render(fmt.Sprintf("%d %s, %s total", count, noun, FormatBytes(totalBytes)))
}

// FormatBytes renders a byte count in human-readable form.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
