// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/ragdeck-tui/internal/telemetry"
)

func newTestClient(baseURL string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	return NewClientWithConfig(cfg)
}

// =============================================================================
// ASK TESTS
// =============================================================================

func TestAsk_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ask" {
			t.Errorf("path = %q, want /ask", r.URL.Path)
		}
		if got := r.URL.Query().Get("question"); got != "what is ragdeck?" {
			t.Errorf("question = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"answer": "A terminal client.",
			"sources": ["readme.md", "guide.pdf"],
			"processing_time": 0.42
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Ask(context.Background(), "what is ragdeck?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if resp.Answer != "A terminal client." {
		t.Errorf("Answer = %q", resp.Answer)
	}
	if len(resp.Sources) != 2 || resp.Sources[0] != "readme.md" || resp.Sources[1] != "guide.pdf" {
		t.Errorf("Sources = %v", resp.Sources)
	}
	if resp.ProcessingTime != 0.42 {
		t.Errorf("ProcessingTime = %v", resp.ProcessingTime)
	}
}

func TestAsk_ErrorDetailPreferred(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "index is empty", "message": "ignored"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Ask(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "index is empty" {
		t.Errorf("error = %q, want the detail field verbatim", err.Error())
	}
}

func TestAsk_ErrorMessageFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message": "upstream gone"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Ask(context.Background(), "anything")
	if err == nil || err.Error() != "upstream gone" {
		t.Errorf("error = %v, want the message field", err)
	}
}

func TestAsk_ErrorGenericFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>nginx</html>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Ask(context.Background(), "anything")
	if err == nil || err.Error() != "The question could not be answered" {
		t.Errorf("error = %v, want the generic fallback", err)
	}
}

func TestAsk_RateLimitedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"detail": "Rate limit exceeded"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Ask(context.Background(), "anything")
	ce, ok := err.(*ClientError)
	if !ok {
		t.Fatalf("error = %T, want *ClientError", err)
	}
	if ce.Type != ErrTypeRateLimited {
		t.Errorf("Type = %v, want ErrTypeRateLimited", ce.Type)
	}
}

func TestAsk_Unreachable(t *testing.T) {
	// Port 1 on loopback should refuse connections.
	client := newTestClient("http://127.0.0.1:1")
	_, err := client.Ask(context.Background(), "anything")
	if !IsUnreachable(err) {
		t.Errorf("err = %v, want unreachable", err)
	}
}

// =============================================================================
// UPLOAD TESTS
// =============================================================================

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUploadFiles_MultipartShape(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.txt", "alpha")
	b := writeTestFile(t, dir, "b.md", "bravo")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/admin/upload" {
			t.Errorf("%s %s, want POST /admin/upload", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		files := r.MultipartForm.File["files"]
		if len(files) != 2 {
			t.Fatalf("files parts = %d, want 2", len(files))
		}
		if files[0].Filename != "a.txt" || files[1].Filename != "b.md" {
			t.Errorf("filenames = %q, %q", files[0].Filename, files[1].Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"message": "Successfully processed 2 files",
			"processed_files": ["a.txt", "b.md"],
			"failed_files": [],
			"total_files": 2
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.UploadFiles(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("UploadFiles: %v", err)
	}

	if resp.Message != "Successfully processed 2 files" {
		t.Errorf("Message = %q", resp.Message)
	}
	if resp.TotalFiles != 2 || len(resp.ProcessedFiles) != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestResetUpload_HitsResetEndpoint(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.txt", "alpha")

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "ok", "processed_files": ["a.txt"], "failed_files": [], "total_files": 1}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.ResetUpload(context.Background(), []string{a}); err != nil {
		t.Fatalf("ResetUpload: %v", err)
	}
	if gotPath != "/admin/reset_upload" {
		t.Errorf("path = %q, want /admin/reset_upload", gotPath)
	}
}

func TestUploadFiles_ErrorDetailVerbatim(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.txt", "alpha")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInsufficientStorage)
		w.Write([]byte(`{"detail": "disk full"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.UploadFiles(context.Background(), []string{a})
	if err == nil || err.Error() != "disk full" {
		t.Errorf("error = %v, want the backend detail verbatim", err)
	}
}

func TestUploadFiles_MissingFile(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	_, err := client.UploadFiles(context.Background(), []string{"/nonexistent/file.pdf"})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// =============================================================================
// RATE LIMITER TESTS
// =============================================================================

func TestAsk_SecondRequestBlocksOnBudget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": "ok", "sources": [], "processing_time": 0.1}`))
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.AskPerMinute = 1
	client := NewClientWithConfig(cfg)

	// The single budgeted token covers the first question.
	if _, err := client.Ask(context.Background(), "first"); err != nil {
		t.Fatalf("first Ask: %v", err)
	}

	// The second cannot acquire a token before the deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Ask(ctx, "second")
	ce, ok := err.(*ClientError)
	if !ok {
		t.Fatalf("error = %T (%v), want *ClientError", err, err)
	}
	if ce.Type != ErrTypeRateLimited {
		t.Errorf("Type = %v, want ErrTypeRateLimited", ce.Type)
	}
}

func TestAsk_CancelledContextAbortsLimiterWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient("http://127.0.0.1:1")
	_, err := client.Ask(ctx, "anything")
	ce, ok := err.(*ClientError)
	if !ok {
		t.Fatalf("error = %T (%v), want *ClientError", err, err)
	}
	if ce.Type != ErrTypeRateLimited {
		t.Errorf("Type = %v, want ErrTypeRateLimited", ce.Type)
	}
}

func TestUpload_CancelledContextAbortsLimiterWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient("http://127.0.0.1:1")
	// The limiter is consulted before any file is opened, so a missing
	// path must not mask the rate-limit classification.
	_, err := client.UploadFiles(ctx, []string{"/nonexistent/file.pdf"})
	ce, ok := err.(*ClientError)
	if !ok {
		t.Fatalf("error = %T (%v), want *ClientError", err, err)
	}
	if ce.Type != ErrTypeRateLimited {
		t.Errorf("Type = %v, want ErrTypeRateLimited", ce.Type)
	}
}

// =============================================================================
// REQUEST LOG TESTS
// =============================================================================

func TestAsk_LogsResolvedURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": "ok", "sources": [], "processing_time": 0.1}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.Logger = telemetry.NewLogger(&buf)
	client := NewClientWithConfig(cfg)

	if _, err := client.Ask(context.Background(), "where is it?"); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if !strings.Contains(buf.String(), server.URL+"/ask") {
		t.Errorf("log = %q, want the resolved backend URL", buf.String())
	}
}

func TestStatusError_LogsResolvedURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "broken"}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.Logger = telemetry.NewLogger(&buf)
	client := NewClientWithConfig(cfg)

	if _, err := client.Health(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if !strings.Contains(buf.String(), server.URL+"/health") {
		t.Errorf("log = %q, want the resolved backend URL on the error line", buf.String())
	}
}

// =============================================================================
// INTROSPECTION TESTS
// =============================================================================

func TestHealthAndStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/health":
			w.Write([]byte(`{"status": "healthy"}`))
		case "/admin/status":
			w.Write([]byte(`{"status": "ready", "document_count": 12, "index_ready": true}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	h, err := client.Health(context.Background())
	if err != nil || h.Status != "healthy" {
		t.Errorf("Health = %+v, %v", h, err)
	}

	s, err := client.Status(context.Background())
	if err != nil || s.DocumentCount != 12 || !s.IndexReady {
		t.Errorf("Status = %+v, %v", s, err)
	}
}
