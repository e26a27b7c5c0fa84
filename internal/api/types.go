// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// AskResponse is the backend's answer to a question.
type AskResponse struct {
	// Answer is the generated answer text (may contain markdown).
	Answer string `json:"answer"`

	// Sources lists the document names the answer was grounded on.
	Sources []string `json:"sources"`

	// ProcessingTime is the backend-side latency in seconds.
	ProcessingTime float64 `json:"processing_time"`
}

// UploadResponse summarizes a document ingestion run.
type UploadResponse struct {
	// Message is the backend's human-readable summary, surfaced verbatim.
	Message string `json:"message"`

	// ProcessedFiles lists the files that were ingested.
	ProcessedFiles []string `json:"processed_files"`

	// FailedFiles lists the files the backend could not ingest.
	FailedFiles []string `json:"failed_files"`

	// TotalFiles is the number of files in the request.
	TotalFiles int `json:"total_files"`
}

// HealthResponse reports backend liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatusResponse reports the state of the backend's document index.
type StatusResponse struct {
	Status        string `json:"status"`
	DocumentCount int    `json:"document_count"`
	IndexReady    bool   `json:"index_ready"`
}

// =============================================================================
// ERROR PAYLOAD
// =============================================================================

// apiError is the backend's error body shape. FastAPI-style handlers
// put the message under "detail"; some proxies use "message" instead.
type apiError struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// text resolves the error body to a message, preferring detail over
// message. Returns "" when neither field is present.
func (e apiError) text() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}
