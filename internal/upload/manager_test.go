// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/docchat/docchat/internal/api"
	"github.com/docchat/docchat/internal/state"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func newTestManager(t *testing.T, handler http.Handler) (*Manager, *state.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: srv.URL})
	return NewManager(client, store), store
}

func uploadOKHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		json.NewEncoder(w).Encode(api.UploadResponse{
			Success:  true,
			FileID:   "id-" + header.Filename,
			Filename: header.Filename,
			Chunks:   3,
			Message:  "Document processed and added to knowledge base",
		})
	})
}

func TestAddMissingFile(t *testing.T) {
	m, _ := newTestManager(t, uploadOKHandler(t))
	m.Add(filepath.Join(t.TempDir(), "nope.pdf"))

	items := m.Items()
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Status != StatusError {
		t.Errorf("Status = %v, want StatusError for missing file", items[0].Status)
	}
	if m.InProgress() {
		t.Error("InProgress() = true, want false")
	}
}

func TestUploadAll(t *testing.T) {
	m, store := newTestManager(t, uploadOKHandler(t))
	m.Add(
		writeTempFile(t, "a.pdf", "aaa"),
		writeTempFile(t, "b.docx", "bbbb"),
	)

	items := m.UploadAll(context.Background())

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.Status != StatusSuccess {
			t.Errorf("%s: Status = %v, want StatusSuccess (%s)", item.Filename, item.Status, item.Message)
		}
		if item.Chunks != 3 {
			t.Errorf("%s: Chunks = %d, want 3", item.Filename, item.Chunks)
		}
	}

	done, failed := m.Summary()
	if done != 2 || failed != 0 {
		t.Errorf("Summary() = (%d, %d), want (2, 0)", done, failed)
	}

	// Metadata persisted for both files.
	files := store.UploadedFiles()
	if len(files) != 2 {
		t.Fatalf("persisted files = %d, want 2", len(files))
	}
	if files[0].Filename != "a.pdf" {
		t.Errorf("files[0].Filename = %q", files[0].Filename)
	}
}

func TestUploadAllBackendError(t *testing.T) {
	m, store := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "unsupported file type"})
	}))
	m.Add(writeTempFile(t, "bad.xyz", "data"))

	items := m.UploadAll(context.Background())

	if items[0].Status != StatusError {
		t.Fatalf("Status = %v, want StatusError", items[0].Status)
	}
	if items[0].Message != "Error: unsupported file type" {
		t.Errorf("Message = %q", items[0].Message)
	}
	if len(store.UploadedFiles()) != 0 {
		t.Error("failed upload was persisted")
	}
}

func TestNextCmdDrivesBatch(t *testing.T) {
	m, _ := newTestManager(t, uploadOKHandler(t))
	m.Add(writeTempFile(t, "a.pdf", "aaa"))

	cmd := m.NextCmd()
	if cmd == nil {
		t.Fatal("NextCmd() = nil, want command for pending file")
	}
	if !m.InProgress() {
		t.Error("InProgress() = false while uploading")
	}

	msg, ok := cmd().(ResultMsg)
	if !ok {
		t.Fatal("command did not return ResultMsg")
	}
	m.Apply(msg)

	if m.Items()[0].Status != StatusSuccess {
		t.Errorf("Status = %v, want StatusSuccess", m.Items()[0].Status)
	}
	if m.NextCmd() != nil {
		t.Error("NextCmd() != nil after batch drained")
	}
}

func TestApplyOutOfRange(t *testing.T) {
	m, _ := newTestManager(t, uploadOKHandler(t))
	m.Apply(ResultMsg{Index: 5})
}
