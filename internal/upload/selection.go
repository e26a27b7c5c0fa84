// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"os"
	"path/filepath"
)

// =============================================================================
// SELECTION
// =============================================================================

// Selection is the ordered set of accepted files awaiting submission.
// It is mutated only through Add/Remove/Clear and is owned by a single
// admin view instance; no locking is needed under the UI event loop.
type Selection struct {
	files []FileInfo
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{files: make([]FileInfo, 0)}
}

// Add validates the candidates and adopts the accepted subset, appending
// in input order. The accepted subset is adopted even when other files
// were rejected; the returned Outcome carries the rejections so the
// caller can surface the aggregate message.
func (s *Selection) Add(candidates []FileInfo) Outcome {
	out := Validate(candidates)
	s.files = append(s.files, out.Accepted...)
	return out
}

// Remove deletes the entry at index. Out-of-bounds indices are a no-op.
func (s *Selection) Remove(index int) {
	if index < 0 || index >= len(s.files) {
		return
	}
	s.files = append(s.files[:index], s.files[index+1:]...)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.files = s.files[:0]
}

// Len returns the number of selected files.
func (s *Selection) Len() int {
	return len(s.files)
}

// IsEmpty returns true when nothing is selected.
func (s *Selection) IsEmpty() bool {
	return len(s.files) == 0
}

// Files returns the selected files in order. The returned slice is a
// copy; mutating it does not affect the selection.
func (s *Selection) Files() []FileInfo {
	out := make([]FileInfo, len(s.files))
	copy(out, s.files)
	return out
}

// Paths returns the selected file paths in order.
func (s *Selection) Paths() []string {
	paths := make([]string, 0, len(s.files))
	for _, f := range s.files {
		paths = append(paths, f.Path)
	}
	return paths
}

// TotalBytes returns the summed size of the selection.
func (s *Selection) TotalBytes() int64 {
	var total int64
	for _, f := range s.files {
		total += f.SizeBytes
	}
	return total
}

// =============================================================================
// FILESYSTEM HELPERS
// =============================================================================

// StatFiles builds FileInfo descriptors for the given paths. Paths that
// cannot be stat'ed or that are directories are reported as rejections
// so the user sees why a path was dropped.
func StatFiles(paths []string) ([]FileInfo, []Rejection) {
	var files []FileInfo
	var rejected []Rejection

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			rejected = append(rejected, Rejection{Name: filepath.Base(p), Reason: "file not found"})
			continue
		}
		if info.IsDir() {
			rejected = append(rejected, Rejection{Name: filepath.Base(p), Reason: "is a directory"})
			continue
		}
		files = append(files, FileInfo{
			Name:      filepath.Base(p),
			Path:      p,
			SizeBytes: info.Size(),
		})
	}

	return files, rejected
}
