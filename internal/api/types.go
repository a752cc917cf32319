// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"time"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the body of a POST /chat request.
type ChatRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
	Language  string `json:"language"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the backend's answer to a chat request. SessionID echoes
// the id the question was asked under, which callers use to discard
// responses that arrive after the user switched sessions.
type ChatResponse struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id"`
}

// HistoryMessage is one stored question/answer exchange.
type HistoryMessage struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Language string `json:"language"`
	// Timestamp is kept as the backend's raw ISO string. It carries no
	// timezone, so parsing is deferred to ParseTimestamp.
	Timestamp string `json:"timestamp"`
}

// HistoryResponse is the body of a GET /history/{session_id} response.
type HistoryResponse struct {
	History []HistoryMessage `json:"history"`
}

// SessionInfo summarizes one stored session.
type SessionInfo struct {
	SessionID    string `json:"session_id"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	MessageCount int    `json:"message_count"`
}

// SessionsResponse is the body of a GET /sessions response. Sessions are
// ordered most recently updated first.
type SessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}

// UploadResponse is the body of a POST /upload response.
type UploadResponse struct {
	Success  bool   `json:"success"`
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
	Chunks   int    `json:"chunks"`
	Message  string `json:"message"`
}

// DeleteResponse is the body of a DELETE /history/{session_id} response.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ShareInfo is the body of a GET /share/{session_id} response.
type ShareInfo struct {
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
	Shareable    bool   `json:"shareable"`
}

// HealthResponse is the body of a GET /health response.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// FeaturesResponse is the body of a GET /features response.
type FeaturesResponse struct {
	Features []string `json:"features"`
}

// apiError is the FastAPI-style error body.
type apiError struct {
	Detail string `json:"detail"`
}

// =============================================================================
// TIMESTAMP PARSING
// =============================================================================

// Backend timestamps are Python isoformat strings without a timezone,
// e.g. "2024-05-01T12:30:45.123456". RFC3339 layouts reject them.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

// ParseTimestamp parses a backend timestamp string. Naive timestamps are
// interpreted in local time. Returns the zero time if no layout matches.
func ParseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
