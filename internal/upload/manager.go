// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package upload tracks batches of documents being sent to the backend's
// knowledge base, with per-file status and persisted metadata for files
// that made it in.
package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docchat/docchat/internal/api"
	"github.com/docchat/docchat/internal/state"
)

// =============================================================================
// ITEM STATUS
// =============================================================================

// Status is the upload state of one file.
type Status int

const (
	StatusPending Status = iota
	StatusUploading
	StatusSuccess
	StatusError
)

// String returns a short label for the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusUploading:
		return "uploading"
	case StatusSuccess:
		return "done"
	case StatusError:
		return "failed"
	default:
		return "unknown"
	}
}

// Item is one file in an upload batch.
type Item struct {
	Path     string
	Filename string
	Size     int64
	Status   Status
	// Message is the backend's message on success, or the error text.
	Message string
	Chunks  int
	FileID  string
}

// =============================================================================
// MESSAGES
// =============================================================================

// ResultMsg carries the outcome of one file upload.
type ResultMsg struct {
	Index    int
	Response *api.UploadResponse
	Err      error
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager runs an upload batch one file at a time and records results.
// Successful uploads are persisted to the state store so the uploads view
// survives restarts.
type Manager struct {
	client *api.Client
	store  *state.Store
	items  []Item
}

// NewManager creates an upload manager.
func NewManager(client *api.Client, store *state.Store) *Manager {
	return &Manager{client: client, store: store}
}

// Add queues files for upload. Unreadable paths are queued as failed so
// the batch report covers every requested file.
func (m *Manager) Add(paths ...string) {
	for _, p := range paths {
		item := Item{
			Path:     p,
			Filename: filepath.Base(p),
			Status:   StatusPending,
		}
		if info, err := os.Stat(p); err != nil {
			item.Status = StatusError
			item.Message = fmt.Sprintf("cannot read file: %v", err)
		} else if info.IsDir() {
			item.Status = StatusError
			item.Message = "is a directory"
		} else {
			item.Size = info.Size()
		}
		m.items = append(m.items, item)
	}
}

// Items returns a copy of the batch.
func (m *Manager) Items() []Item {
	return append([]Item(nil), m.items...)
}

// InProgress reports whether any file is pending or uploading.
func (m *Manager) InProgress() bool {
	for _, item := range m.items {
		if item.Status == StatusPending || item.Status == StatusUploading {
			return true
		}
	}
	return false
}

// Summary returns counts of succeeded and failed files.
func (m *Manager) Summary() (done, failed int) {
	for _, item := range m.items {
		switch item.Status {
		case StatusSuccess:
			done++
		case StatusError:
			failed++
		}
	}
	return done, failed
}

// NextCmd marks the next pending item as uploading and returns the
// command that uploads it. Returns nil when no files are pending.
func (m *Manager) NextCmd() tea.Cmd {
	for i := range m.items {
		if m.items[i].Status != StatusPending {
			continue
		}
		m.items[i].Status = StatusUploading

		idx := i
		path := m.items[i].Path
		client := m.client
		return func() tea.Msg {
			resp, err := client.Upload(context.Background(), path)
			return ResultMsg{Index: idx, Response: resp, Err: err}
		}
	}
	return nil
}

// Apply records an upload result and persists metadata on success.
func (m *Manager) Apply(msg ResultMsg) {
	if msg.Index < 0 || msg.Index >= len(m.items) {
		return
	}
	item := &m.items[msg.Index]

	if msg.Err != nil {
		item.Status = StatusError
		item.Message = api.UserFacingMessage(msg.Err)
		return
	}
	if msg.Response == nil || !msg.Response.Success {
		item.Status = StatusError
		item.Message = "upload rejected by backend"
		return
	}

	item.Status = StatusSuccess
	item.Message = msg.Response.Message
	item.Chunks = msg.Response.Chunks
	item.FileID = msg.Response.FileID

	if m.store != nil {
		// Persistence failure does not fail the upload itself.
		_ = m.store.AddUploadedFile(state.UploadedFile{
			FileID:     msg.Response.FileID,
			Filename:   item.Filename,
			Size:       item.Size,
			Chunks:     msg.Response.Chunks,
			UploadedAt: time.Now(),
		})
	}
}

// UploadAll runs the whole batch synchronously. Used by the CLI, where
// there is no event loop to drive NextCmd.
func (m *Manager) UploadAll(ctx context.Context) []Item {
	for i := range m.items {
		if m.items[i].Status != StatusPending {
			continue
		}
		m.items[i].Status = StatusUploading
		resp, err := m.client.Upload(ctx, m.items[i].Path)
		m.Apply(ResultMsg{Index: i, Response: resp, Err: err})
	}
	return m.Items()
}
