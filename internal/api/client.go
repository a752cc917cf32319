// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the RAG
// backend API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	// Detail is the backend's error detail, when the response carried one.
	Detail string
	// Status is the raw HTTP status text of a non-2xx response,
	// e.g. "502 Bad Gateway".
	Status string
	Cause  error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeNotFound
	ErrTypeServer
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning = &ClientError{Type: ErrTypeNotRunning, Message: "backend is not running"}
	ErrTimeout    = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrNotFound   = &ClientError{Type: ErrTypeNotFound, Message: "not found"}
)

// IsNotRunning checks if an error indicates the backend is unreachable.
func IsNotRunning(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNotRunning
	}
	return errors.Is(err, ErrNotRunning)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsNotFound checks if an error is a 404 from the backend.
func IsNotFound(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNotFound
	}
	return errors.Is(err, ErrNotFound)
}

// UserFacingMessage converts a client error into the text shown in the
// conversation in place of an answer.
func UserFacingMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsNotRunning(err) || IsTimeout(err) {
		return "Cannot connect to backend. Ensure the backend is running."
	}
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		switch {
		case clientErr.Detail != "":
			return "Error: " + clientErr.Detail
		case clientErr.Type == ErrTypeServer || clientErr.Type == ErrTypeNotFound:
			if clientErr.Status != "" {
				return "Error: " + clientErr.Status
			}
			return "Error: " + clientErr.Message
		}
	}
	return "Sorry, I encountered an error. Please try again."
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend API base URL (default: http://localhost:8000)
	BaseURL string

	// Timeout for chat and history requests (default: 120s).
	// Retrieval plus generation can take a while.
	Timeout time.Duration

	// UploadTimeout for document uploads (default: 300s)
	UploadTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://localhost:8000",
		Timeout:       120 * time.Second,
		UploadTimeout: 300 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the RAG backend API.
//
// The Client is thread-safe for concurrent use.
type Client struct {
	config       *ClientConfig
	httpClient   *http.Client
	uploadClient *http.Client
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	if config.UploadTimeout == 0 {
		config.UploadTimeout = 300 * time.Second
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		uploadClient: &http.Client{
			Timeout: config.UploadTimeout,
		},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// Health verifies that the backend is reachable and healthy.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var result HealthResponse
	if err := c.getJSON(ctx, "/health", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckRunning probes the backend root endpoint. It is the cheap
// reachability check used by the connectivity monitor.
func (c *Client) CheckRunning(ctx context.Context) error {
	var result struct {
		Message string `json:"message"`
	}
	return c.getJSON(ctx, "/", &result)
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends a question to the backend and returns the generated answer.
// The backend echoes sessionID in the response.
func (c *Client) Chat(ctx context.Context, question, sessionID, language string) (*ChatResponse, error) {
	reqBody := ChatRequest{
		Question:  question,
		SessionID: sessionID,
		Language:  language,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// HISTORY AND SESSIONS
// =============================================================================

// History fetches the stored exchanges for a session. An unknown session
// yields an empty slice, not an error.
func (c *Client) History(ctx context.Context, sessionID string) ([]HistoryMessage, error) {
	var result HistoryResponse
	if err := c.getJSON(ctx, "/history/"+url.PathEscape(sessionID), &result); err != nil {
		return nil, err
	}
	return result.History, nil
}

// Sessions lists all stored sessions, most recently updated first.
func (c *Client) Sessions(ctx context.Context) ([]SessionInfo, error) {
	var result SessionsResponse
	if err := c.getJSON(ctx, "/sessions", &result); err != nil {
		return nil, err
	}
	return result.Sessions, nil
}

// DeleteHistory deletes the stored history for a session.
func (c *Client) DeleteHistory(ctx context.Context, sessionID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.config.BaseURL+"/history/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	var result DeleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	if !result.Success {
		return &ClientError{Type: ErrTypeServer, Message: "delete failed: " + result.Message}
	}

	return nil
}

// Share fetches shareability info for a session. Returns ErrNotFound for
// sessions with no stored history.
func (c *Client) Share(ctx context.Context, sessionID string) (*ShareInfo, error) {
	var result ShareInfo
	if err := c.getJSON(ctx, "/share/"+url.PathEscape(sessionID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// FEATURES
// =============================================================================

// Features fetches the backend's advertised feature list.
func (c *Client) Features(ctx context.Context) ([]string, error) {
	var result FeaturesResponse
	if err := c.getJSON(ctx, "/features", &result); err != nil {
		return nil, err
	}
	return result.Features, nil
}

// =============================================================================
// UPLOAD
// =============================================================================

// Upload sends a document to the backend for ingestion into the knowledge
// base. The file is streamed as multipart form data under the "file" field.
func (c *Client) Upload(ctx context.Context, path string) (*UploadResponse, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to open file", Cause: err}
	}
	defer file.Close()

	return c.UploadReader(ctx, filepath.Base(path), file)
}

// UploadReader uploads document content read from r under the given filename.
func (c *Client) UploadReader(ctx context.Context, filename string, r io.Reader) (*UploadResponse, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/upload", pr)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var result UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return nil
}

// transportError maps a transport-level failure to a ClientError.
func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return ErrTimeout
	}
	return &ClientError{Type: ErrTypeNotRunning, Message: "backend is not running", Cause: err}
}

// checkResponse maps non-2xx responses to ClientErrors, extracting the
// FastAPI error detail when present.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var detail string
	var apiErr apiError
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(body, &apiErr); err == nil {
		detail = apiErr.Detail
	}

	errType := ErrTypeServer
	if resp.StatusCode == http.StatusNotFound {
		errType = ErrTypeNotFound
	}

	msg := fmt.Sprintf("request failed: %s", resp.Status)
	return &ClientError{Type: errType, Message: msg, Detail: detail, Status: resp.Status}
}
