// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package admin provides the document upload view for the TUI.
//
// The view owns the file selection and the upload flow. Candidates are
// validated on add; the accepted subset is adopted even when some files
// are rejected, and the rejections surface as one aggregate warning.
// Submitting with an empty selection shows an error without touching
// the network.
//
// Progress is cosmetic: the bar advances on a fixed tick while the
// request is in flight and holds at 80% until the backend answers,
// then jumps to 100 on success or drops to 0 on failure. Cancelling is
// likewise cosmetic; the request is not aborted and the backend may
// still complete the ingestion.
package admin
