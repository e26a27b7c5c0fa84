// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// =============================================================================
// DOCUMENT INGESTION
// =============================================================================

// UploadFiles submits the given files to the backend's ingestion
// endpoint, appending them to the existing document index.
func (c *Client) UploadFiles(ctx context.Context, paths []string) (*UploadResponse, error) {
	return c.upload(ctx, "/admin/upload", paths)
}

// ResetUpload wipes the backend's document index and ingests the given
// files as the new corpus.
func (c *Client) ResetUpload(ctx context.Context, paths []string) (*UploadResponse, error) {
	return c.upload(ctx, "/admin/reset_upload", paths)
}

func (c *Client) upload(ctx context.Context, path string, paths []string) (*UploadResponse, error) {
	if err := c.uploadLimiter.Wait(ctx); err != nil {
		return nil, &ClientError{Type: ErrTypeRateLimited, Message: "upload rate limit wait aborted", Cause: err}
	}

	body, contentType, err := buildMultipart(paths)
	if err != nil {
		return nil, err
	}

	u := c.config.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", contentType)

	c.log.Request(http.MethodPost, u)
	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return nil, c.transportError(http.MethodPost, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(http.MethodPost, u, resp, "Upload failed. Please try again.")
	}

	var result UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return &result, nil
}

// buildMultipart assembles a multipart/form-data body with each file
// under the repeated "files" field, the shape the backend expects.
func buildMultipart(paths []string) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, "", &ClientError{Type: ErrTypeUnknown, Message: "failed to open " + filepath.Base(p), Cause: err}
		}

		part, err := writer.CreateFormFile("files", filepath.Base(p))
		if err != nil {
			f.Close()
			return nil, "", &ClientError{Type: ErrTypeUnknown, Message: "failed to build upload body", Cause: err}
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, "", &ClientError{Type: ErrTypeUnknown, Message: "failed to read " + filepath.Base(p), Cause: err}
		}
		f.Close()
	}

	if err := writer.Close(); err != nil {
		return nil, "", &ClientError{Type: ErrTypeUnknown, Message: "failed to build upload body", Cause: err}
	}

	return &buf, writer.FormDataContentType(), nil
}
