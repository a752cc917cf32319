// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages the client's session identity: which chat
// session is active, how new session ids are minted, and how shared
// session links are adopted.
package session

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docchat/docchat/internal/state"
)

// =============================================================================
// SESSION ID GENERATION
// =============================================================================

// Generate mints a new session id. The wall-clock prefix keeps ids
// roughly sortable; the uuid suffix keeps rapid successive calls unique.
func Generate() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("session-%d-%s", time.Now().UnixMilli(), suffix)
}

// =============================================================================
// OVERRIDE PARSING
// =============================================================================

// ParseOverride extracts a session id from a --session argument. Accepts
// either a bare id or a shared chat link carrying a ?session= parameter.
// Returns an error for empty or unusable input.
func ParseOverride(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("empty session argument")
	}

	if strings.Contains(arg, "://") {
		u, err := url.Parse(arg)
		if err != nil {
			return "", fmt.Errorf("invalid share link: %w", err)
		}
		id := u.Query().Get("session")
		if id == "" {
			return "", fmt.Errorf("share link %q carries no session parameter", arg)
		}
		return id, nil
	}

	return arg, nil
}

// =============================================================================
// IDENTITY
// =============================================================================

// Identity tracks the active session id, persisting every change so a
// restart resumes the same conversation.
type Identity struct {
	store  *state.Store
	active string
}

// Initialize resolves the active session id on startup.
//
// Resolution order: an explicit override (bare id or share link) wins,
// then the persisted id from the previous run, then a freshly minted id.
// Whatever wins is persisted immediately, so an override is consumed
// once and then behaves like any other session.
func Initialize(store *state.Store, override string) (*Identity, error) {
	ident := &Identity{store: store}

	if override != "" {
		id, err := ParseOverride(override)
		if err != nil {
			return nil, err
		}
		if err := ident.SetActive(id); err != nil {
			return nil, err
		}
		return ident, nil
	}

	if id := store.SessionID(); id != "" {
		ident.active = id
		return ident, nil
	}

	if err := ident.SetActive(Generate()); err != nil {
		return nil, err
	}
	return ident, nil
}

// Active returns the current session id.
func (i *Identity) Active() string {
	return i.active
}

// SetActive switches to the given session id and persists it.
func (i *Identity) SetActive(id string) error {
	if err := i.store.SetSessionID(id); err != nil {
		return err
	}
	i.active = id
	return nil
}

// StartNewChat mints a fresh session id, makes it active, and returns it.
// The previous session's history remains on the backend untouched.
func (i *Identity) StartNewChat() (string, error) {
	id := Generate()
	if err := i.SetActive(id); err != nil {
		return "", err
	}
	return id, nil
}
