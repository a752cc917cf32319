// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	return client, srv
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestChat(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("path = %q, want /chat", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Question != "what is RAG?" {
			t.Errorf("question = %q", req.Question)
		}
		if req.Language != "english" {
			t.Errorf("language = %q", req.Language)
		}

		json.NewEncoder(w).Encode(ChatResponse{
			Answer:    "Retrieval augmented generation.",
			SessionID: req.SessionID,
		})
	}))

	resp, err := client.Chat(context.Background(), "what is RAG?", "session-1", "english")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if resp.Answer != "Retrieval augmented generation." {
		t.Errorf("Answer = %q", resp.Answer)
	}
	if resp.SessionID != "session-1" {
		t.Errorf("SessionID = %q, want session-1", resp.SessionID)
	}
}

func TestChatServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "vector store unavailable"})
	}))

	_, err := client.Chat(context.Background(), "q", "s", "english")
	if err == nil {
		t.Fatal("Chat() error = nil, want server error")
	}

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("error type = %T, want *ClientError", err)
	}
	if clientErr.Type != ErrTypeServer {
		t.Errorf("Type = %v, want ErrTypeServer", clientErr.Type)
	}
	if clientErr.Detail != "vector store unavailable" {
		t.Errorf("Detail = %q", clientErr.Detail)
	}
}

func TestChatNoDetailSurfacesStatusText(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream gone", http.StatusBadGateway)
	}))

	_, err := client.Chat(context.Background(), "q", "s", "english")
	if err == nil {
		t.Fatal("Chat() error = nil, want server error")
	}

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("error type = %T, want *ClientError", err)
	}
	if clientErr.Status != "502 Bad Gateway" {
		t.Errorf("Status = %q, want %q", clientErr.Status, "502 Bad Gateway")
	}
	if got := UserFacingMessage(err); got != "Error: 502 Bad Gateway" {
		t.Errorf("UserFacingMessage() = %q, want %q", got, "Error: 502 Bad Gateway")
	}
}

func TestCheckRunning(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			t.Errorf("path = %q, want /", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "DocChat API is running"})
	}))

	if err := client.CheckRunning(context.Background()); err != nil {
		t.Errorf("CheckRunning() error: %v", err)
	}
}

func TestChatConnectionRefused(t *testing.T) {
	// Point at a closed server.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: url})
	_, err := client.Chat(context.Background(), "q", "s", "english")
	if !IsNotRunning(err) {
		t.Errorf("IsNotRunning(%v) = false, want true", err)
	}
}

// =============================================================================
// HISTORY AND SESSION TESTS
// =============================================================================

func TestHistory(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/history/session-abc" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(HistoryResponse{History: []HistoryMessage{
			{Question: "hi", Answer: "hello", Language: "english", Timestamp: "2024-05-01T12:30:45.123456"},
		}})
	}))

	history, err := client.History(context.Background(), "session-abc")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("len(history) = %d, want 1", len(history))
	}
	if history[0].Question != "hi" || history[0].Answer != "hello" {
		t.Errorf("history[0] = %+v", history[0])
	}
}

func TestHistoryEmptyForUnknownSession(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(HistoryResponse{History: []HistoryMessage{}})
	}))

	history, err := client.History(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("len(history) = %d, want 0", len(history))
	}
}

func TestSessions(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sessions" {
			t.Errorf("path = %q, want /sessions", r.URL.Path)
		}
		json.NewEncoder(w).Encode(SessionsResponse{Sessions: []SessionInfo{
			{SessionID: "s2", MessageCount: 5, UpdatedAt: "2024-05-02T10:00:00"},
			{SessionID: "s1", MessageCount: 2, UpdatedAt: "2024-05-01T10:00:00"},
		}})
	}))

	sessions, err := client.Sessions(context.Background())
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len(sessions) = %d, want 2", len(sessions))
	}
	if sessions[0].SessionID != "s2" {
		t.Errorf("sessions[0].SessionID = %q, want most recent first", sessions[0].SessionID)
	}
}

func TestDeleteHistory(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(DeleteResponse{Success: true, Message: "Chat history deleted"})
	}))

	if err := client.DeleteHistory(context.Background(), "session-x"); err != nil {
		t.Fatalf("DeleteHistory() error = %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", gotMethod)
	}
	if gotPath != "/history/session-x" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestShareNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Session not found"})
	}))

	_, err := client.Share(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
}

// =============================================================================
// UPLOAD TESTS
// =============================================================================

func TestUploadReader(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "notes.pdf" {
			t.Errorf("filename = %q, want notes.pdf", header.Filename)
		}

		json.NewEncoder(w).Encode(UploadResponse{
			Success:  true,
			FileID:   "abc-123",
			Filename: header.Filename,
			Chunks:   7,
			Message:  "Document processed and added to knowledge base",
		})
	}))

	resp, err := client.UploadReader(context.Background(), "notes.pdf", strings.NewReader("fake pdf bytes"))
	if err != nil {
		t.Fatalf("UploadReader() error = %v", err)
	}
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if resp.Chunks != 7 {
		t.Errorf("Chunks = %d, want 7", resp.Chunks)
	}
}

// =============================================================================
// ERROR CLASSIFICATION TESTS
// =============================================================================

func TestUserFacingMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"not running", ErrNotRunning, "Cannot connect to backend. Ensure the backend is running."},
		{"timeout", ErrTimeout, "Cannot connect to backend. Ensure the backend is running."},
		{
			"server detail",
			&ClientError{Type: ErrTypeServer, Message: "request failed: 500", Detail: "boom"},
			"Error: boom",
		},
		{
			"server no detail",
			&ClientError{Type: ErrTypeServer, Message: "request failed: 502 Bad Gateway", Status: "502 Bad Gateway"},
			"Error: 502 Bad Gateway",
		},
		{
			"server no detail and no status text",
			&ClientError{Type: ErrTypeServer, Message: "request failed"},
			"Error: request failed",
		},
		{
			"decode failure",
			&ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response"},
			"Sorry, I encountered an error. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserFacingMessage(tt.err); got != tt.want {
				t.Errorf("UserFacingMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

// =============================================================================
// TIMESTAMP TESTS
// =============================================================================

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		valid bool
	}{
		{"python isoformat with micros", "2024-05-01T12:30:45.123456", true},
		{"python isoformat no fraction", "2024-05-01T12:30:45", true},
		{"rfc3339", "2024-05-01T12:30:45Z", true},
		{"garbage", "yesterday", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(tt.in)
			if got.IsZero() == tt.valid {
				t.Errorf("ParseTimestamp(%q).IsZero() = %v, want %v", tt.in, got.IsZero(), !tt.valid)
			}
			if tt.valid && tt.in != "" && got.Year() != 2024 {
				t.Errorf("ParseTimestamp(%q).Year() = %d, want 2024", tt.in, got.Year())
			}
		})
	}
}

func TestClientTimeout(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Health(ctx)
	if !IsTimeout(err) {
		t.Errorf("IsTimeout(%v) = false, want true", err)
	}
}
