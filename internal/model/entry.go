// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for transcripts and entries.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a transcript line.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry is one question/answer exchange in a transcript. While a question
// is in flight the entry holds only the question; the answer is filled in
// when the backend responds.
type Entry struct {
	// Identity
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Question string `json:"question"`
	Answer   string `json:"answer"`

	// Language the question was asked in
	Language string `json:"language"`

	// Pending is true while the answer is still being generated.
	// Not persisted.
	Pending bool `json:"-"`

	// IsError marks answers that are client-side error text rather than
	// backend output. Not persisted.
	IsError bool `json:"-"`
}

// NewEntry creates a pending entry for a just-submitted question.
func NewEntry(question, language string) *Entry {
	return &Entry{
		ID:        generateID(),
		Question:  question,
		Language:  language,
		Timestamp: time.Now(),
		Pending:   true,
	}
}

// Resolve fills in the answer and clears the pending flag.
func (e *Entry) Resolve(answer string) {
	e.Answer = answer
	e.Pending = false
	e.IsError = false
}

// Fail records error text in place of an answer.
func (e *Entry) Fail(message string) {
	e.Answer = message
	e.Pending = false
	e.IsError = true
}

// generateID returns a random hex id for an entry.
func generateID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "entry-" + time.Now().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(b)
}
