// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state persists the client's local state between runs: the
// active session id, theme and language choices, and uploaded-file
// metadata. The backend owns the conversation history itself; this file
// only remembers where the client left off.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/docchat/docchat/internal/util"
)

// =============================================================================
// STATE TYPES
// =============================================================================

// UploadedFile records metadata for a document sent to the backend.
// The file content lives in the backend's knowledge base; only the
// metadata is kept locally.
type UploadedFile struct {
	FileID     string    `json:"file_id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	Chunks     int       `json:"chunks"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ClientState is the persisted local state.
type ClientState struct {
	// SessionID is the active chat session, restored on startup.
	SessionID string `json:"session_id"`
	// Theme is the last selected UI theme.
	Theme string `json:"theme,omitempty"`
	// Language is the last selected answer language.
	Language string `json:"language,omitempty"`
	// UploadedFiles is the metadata of documents sent to the backend.
	UploadedFiles []UploadedFile `json:"uploaded_files,omitempty"`
}

// =============================================================================
// STORE
// =============================================================================

// Store loads and saves ClientState with write-through semantics: every
// mutation is persisted immediately so a killed process loses nothing.
//
// The Store is thread-safe for concurrent use.
type Store struct {
	path  string
	mu    sync.Mutex
	state ClientState
}

// DefaultPath returns the default state file path, ~/.docchat/state.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".docchat", "state.json"), nil
}

// NewStore creates a store backed by the file at path, loading existing
// state if the file exists. A corrupt state file is treated as empty
// rather than failing startup.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		// Corrupt state is recoverable; start fresh.
		s.state = ClientState{}
	}

	return s, nil
}

// Get returns a copy of the current state.
func (s *Store) Get() ClientState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.UploadedFiles = append([]UploadedFile(nil), s.state.UploadedFiles...)
	return st
}

// SetSessionID persists the active session id.
func (s *Store) SetSessionID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SessionID = id
	return s.save()
}

// SessionID returns the persisted session id, or "" if none.
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SessionID
}

// SetTheme persists the selected theme.
func (s *Store) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Theme = theme
	return s.save()
}

// SetLanguage persists the selected answer language.
func (s *Store) SetLanguage(lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Language = lang
	return s.save()
}

// AddUploadedFile appends upload metadata and persists it.
func (s *Store) AddUploadedFile(f UploadedFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UploadedFiles = append(s.state.UploadedFiles, f)
	return s.save()
}

// UploadedFiles returns the persisted upload metadata, newest last.
func (s *Store) UploadedFiles() []UploadedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]UploadedFile(nil), s.state.UploadedFiles...)
}

// ClearUploadedFiles removes all upload metadata.
func (s *Store) ClearUploadedFiles() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UploadedFiles = nil
	return s.save()
}

// save writes the state to disk. Caller must hold s.mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := util.AtomicWriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}
