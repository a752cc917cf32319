// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/docchat/docchat/internal/api"
)

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript holds the exchanges of one chat session, oldest first.
type Transcript struct {
	SessionID string   `json:"session_id"`
	Entries   []*Entry `json:"entries"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTranscript creates an empty transcript for a session.
func NewTranscript(sessionID string) *Transcript {
	now := time.Now()
	return &Transcript{
		SessionID: sessionID,
		Entries:   make([]*Entry, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FromHistory builds a transcript from the backend's stored history.
func FromHistory(sessionID string, history []api.HistoryMessage) *Transcript {
	t := NewTranscript(sessionID)
	for _, msg := range history {
		entry := &Entry{
			ID:       generateID(),
			Question: msg.Question,
			Answer:   msg.Answer,
			Language: msg.Language,
		}
		if ts := api.ParseTimestamp(msg.Timestamp); !ts.IsZero() {
			entry.Timestamp = ts
		}
		t.Entries = append(t.Entries, entry)
	}
	if n := len(t.Entries); n > 0 {
		if !t.Entries[0].Timestamp.IsZero() {
			t.CreatedAt = t.Entries[0].Timestamp
		}
		if !t.Entries[n-1].Timestamp.IsZero() {
			t.UpdatedAt = t.Entries[n-1].Timestamp
		}
	}
	return t
}

// =============================================================================
// ENTRY MANAGEMENT
// =============================================================================

// Append adds an entry to the transcript.
func (t *Transcript) Append(e *Entry) {
	t.Entries = append(t.Entries, e)
	t.UpdatedAt = time.Now()
}

// Last returns the most recent entry, or nil for an empty transcript.
func (t *Transcript) Last() *Entry {
	if len(t.Entries) == 0 {
		return nil
	}
	return t.Entries[len(t.Entries)-1]
}

// Len returns the number of exchanges.
func (t *Transcript) Len() int {
	return len(t.Entries)
}

// IsEmpty reports whether the transcript has no exchanges.
func (t *Transcript) IsEmpty() bool {
	return len(t.Entries) == 0
}

// HasPending reports whether a question is currently awaiting its answer.
func (t *Transcript) HasPending() bool {
	last := t.Last()
	return last != nil && last.Pending
}

// Title returns a short label derived from the first question.
func (t *Transcript) Title() string {
	if len(t.Entries) == 0 {
		return "New Chat"
	}
	const max = 50
	title := t.Entries[0].Question
	runes := []rune(title)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return title
}
