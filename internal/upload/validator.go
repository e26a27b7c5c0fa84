// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"strings"
)

// =============================================================================
// POLICY CONSTANTS
// =============================================================================

// MaxFileSize is the per-file size ceiling accepted by the backend (10 MiB).
const MaxFileSize = 10 * 1024 * 1024

// Rejection reasons. These exact strings surface in the aggregate
// validation message shown to the user.
const (
	ReasonInvalidType = "invalid file type"
	ReasonTooLarge    = "file too large"
)

// AllowedExtensions is the extension allow-list the backend accepts.
var AllowedExtensions = map[string]bool{
	"pdf":  true,
	"txt":  true,
	"docx": true,
	"doc":  true,
	"csv":  true,
	"md":   true,
}

// =============================================================================
// TYPES
// =============================================================================

// FileInfo describes one candidate file for upload.
type FileInfo struct {
	// Name is the file name (base name, no directory).
	Name string

	// Path is the absolute or relative path used to open the file at
	// submission time. May be empty in tests that validate names only.
	Path string

	// SizeBytes is the file size.
	SizeBytes int64
}

// Extension returns the lower-cased substring after the last '.' in the
// file name, or "" when the name has no extension.
func (f FileInfo) Extension() string {
	idx := strings.LastIndex(f.Name, ".")
	if idx < 0 || idx == len(f.Name)-1 {
		return ""
	}
	return strings.ToLower(f.Name[idx+1:])
}

// Rejection records one rejected file and the reason.
type Rejection struct {
	Name   string
	Reason string
}

// Outcome partitions a candidate list into accepted and rejected files.
type Outcome struct {
	Accepted []FileInfo
	Rejected []Rejection
}

// HasRejections returns true when at least one file was rejected.
func (o Outcome) HasRejections() bool {
	return len(o.Rejected) > 0
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate partitions files into accepted and rejected by the extension
// allow-list and size ceiling. Pure: no side effects, no I/O.
//
// The type check runs first and is independent of size; the size check
// only applies to files whose type is valid. Accepted files preserve
// their input order.
func Validate(files []FileInfo) Outcome {
	out := Outcome{}

	for _, f := range files {
		if !AllowedExtensions[f.Extension()] {
			out.Rejected = append(out.Rejected, Rejection{Name: f.Name, Reason: ReasonInvalidType})
			continue
		}
		if f.SizeBytes > MaxFileSize {
			out.Rejected = append(out.Rejected, Rejection{Name: f.Name, Reason: ReasonTooLarge})
			continue
		}
		out.Accepted = append(out.Accepted, f)
	}

	return out
}

// RejectionMessage builds the human-readable aggregate error listing each
// rejected file and its reason. Returns "" when nothing was rejected.
func (o Outcome) RejectionMessage() string {
	if len(o.Rejected) == 0 {
		return ""
	}

	parts := make([]string, 0, len(o.Rejected))
	for _, r := range o.Rejected {
		parts = append(parts, r.Name+": "+r.Reason)
	}
	return "Some files were not added - " + strings.Join(parts, "; ")
}
