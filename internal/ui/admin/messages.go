// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// messages.go - Bubble Tea message types used by the admin view:
//   - Selection: adding candidate files (manual entry or drop watcher)
//   - Upload: submission, cosmetic progress ticks, and results
//   - Status: backend index status refreshes

package admin

import (
	"time"

	"github.com/jeranaias/ragdeck-tui/internal/api"
)

// =============================================================================
// SELECTION MESSAGES
// =============================================================================

// AddFilesMsg requests adding the given paths to the selection.
type AddFilesMsg struct {
	Paths []string
}

// DroppedFileMsg reports a file that settled in the watched drop
// directory.
type DroppedFileMsg struct {
	Path string
}

// =============================================================================
// UPLOAD MESSAGES
// =============================================================================

// SubmitMsg requests submitting the current selection.
type SubmitMsg struct{}

// CancelMsg requests cancelling the in-flight upload. The cancellation
// is cosmetic: the request is not aborted and the backend may still
// complete the ingestion.
type CancelMsg struct{}

// ProgressTickMsg advances the cosmetic progress bar.
type ProgressTickMsg struct {
	Time time.Time
}

// ProgressResetMsg returns the progress bar to zero after a completed
// upload has been shown.
type ProgressResetMsg struct{}

// UploadResultMsg delivers the backend's ingestion result.
type UploadResultMsg struct {
	Response *api.UploadResponse
	Err      error
}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// StatusResultMsg delivers the backend's index status.
type StatusResultMsg struct {
	Response *api.StatusResponse
	Err      error
}
