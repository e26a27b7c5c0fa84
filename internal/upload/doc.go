// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package upload provides file validation and selection state for the
// admin upload flow.
//
// Validate is a pure function applying the backend's acceptance policy:
// an extension allow-list (pdf, txt, docx, doc, csv, md) and a 10 MiB
// per-file ceiling. The type check runs first and is independent of
// size; the size check only applies to files of a valid type.
//
// Selection holds the ordered accepted files awaiting submission. A
// partial rejection never blocks adoption of the accepted subset.
//
// Watcher optionally observes a drop directory so files copied into it
// can be offered as upload candidates.
package upload
