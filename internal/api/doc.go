// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the ragdeck backend.
//
// The backend exposes a question-answering endpoint (GET /ask), admin
// document-ingestion endpoints (POST /admin/upload, POST
// /admin/reset_upload) and introspection endpoints (GET /health, GET
// /admin/status). All client methods take a context and return typed
// responses or a *ClientError.
//
// The client rate-limits itself to the backend's published budgets (30
// questions and 10 uploads per minute) so a busy user is slowed locally
// instead of receiving 429 responses.
package api
