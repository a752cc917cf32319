// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/docchat/docchat/internal/state"
)

func newTestStore(t *testing.T) (*state.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := state.NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return s, path
}

func TestGenerateFormat(t *testing.T) {
	id := Generate()

	if !strings.HasPrefix(id, "session-") {
		t.Errorf("Generate() = %q, want session- prefix", id)
	}
	if parts := strings.Split(id, "-"); len(parts) != 3 {
		t.Errorf("Generate() = %q, want session-<millis>-<suffix>", id)
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := Generate()
		if seen[id] {
			t.Fatalf("duplicate session id %q at iteration %d", id, i)
		}
		seen[id] = true
	}
}

func TestParseOverride(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{"bare id", "session-123-abcd", "session-123-abcd", false},
		{"share link", "http://localhost:5173/?session=session-9-ff", "session-9-ff", false},
		{"share link extra params", "https://chat.example.com/?view=chat&session=s1", "s1", false},
		{"whitespace trimmed", "  session-1  ", "session-1", false},
		{"url without session", "http://localhost:5173/", "", true},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOverride(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOverride(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOverride(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func TestInitializeFreshStore(t *testing.T) {
	store, _ := newTestStore(t)

	ident, err := Initialize(store, "")
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if ident.Active() == "" {
		t.Fatal("Active() is empty")
	}
	if store.SessionID() != ident.Active() {
		t.Error("fresh session id was not persisted")
	}
}

func TestInitializeRestoresPersisted(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.SetSessionID("session-prev"); err != nil {
		t.Fatalf("SetSessionID() error = %v", err)
	}

	ident, err := Initialize(store, "")
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if got := ident.Active(); got != "session-prev" {
		t.Errorf("Active() = %q, want session-prev", got)
	}
}

func TestInitializeOverrideWins(t *testing.T) {
	store, path := newTestStore(t)
	if err := store.SetSessionID("session-prev"); err != nil {
		t.Fatalf("SetSessionID() error = %v", err)
	}

	ident, err := Initialize(store, "http://localhost:5173/?session=session-shared")
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if got := ident.Active(); got != "session-shared" {
		t.Errorf("Active() = %q, want session-shared", got)
	}

	// The override is consumed: the next run without one resumes the
	// shared session from persisted state.
	store2, err := state.NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	ident2, err := Initialize(store2, "")
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if got := ident2.Active(); got != "session-shared" {
		t.Errorf("second run Active() = %q, want session-shared", got)
	}
}

func TestInitializeBadOverride(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := Initialize(store, "http://localhost:5173/"); err == nil {
		t.Error("Initialize() error = nil, want error for link without session")
	}
}

func TestStartNewChat(t *testing.T) {
	store, _ := newTestStore(t)
	ident, err := Initialize(store, "")
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	old := ident.Active()
	id, err := ident.StartNewChat()
	if err != nil {
		t.Fatalf("StartNewChat() error = %v", err)
	}
	if id == old {
		t.Error("StartNewChat() returned the previous session id")
	}
	if ident.Active() != id {
		t.Errorf("Active() = %q, want %q", ident.Active(), id)
	}
	if store.SessionID() != id {
		t.Error("new session id was not persisted")
	}
}
