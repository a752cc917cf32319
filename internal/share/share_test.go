// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package share

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/docchat/docchat/internal/model"
)

func sampleTranscript() *model.Transcript {
	t := model.NewTranscript("session-1-abcd")
	e1 := model.NewEntry("hi", "english")
	e1.Resolve("hello")
	t.Append(e1)
	return t
}

func TestLink(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		session string
		want    string
	}{
		{"plain", "http://localhost:8000", "session-1", "http://localhost:8000?session=session-1"},
		{"trailing slash", "http://localhost:8000/", "session-1", "http://localhost:8000?session=session-1"},
		{"escaping", "http://localhost:8000", "a b", "http://localhost:8000?session=a+b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Link(tt.base, tt.session); got != tt.want {
				t.Errorf("Link() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExportText(t *testing.T) {
	got := ExportText(sampleTranscript())
	want := "Q: hi\n\nA: hello"
	if got != want {
		t.Errorf("ExportText() = %q, want %q", got, want)
	}
}

func TestExportTextMultipleEntries(t *testing.T) {
	tr := sampleTranscript()
	e := model.NewEntry("how are you?", "english")
	e.Resolve("fine")
	tr.Append(e)

	got := ExportText(tr)
	want := "Q: hi\n\nA: hello\n\nQ: how are you?\n\nA: fine"
	if got != want {
		t.Errorf("ExportText() = %q, want %q", got, want)
	}
}

func TestExportTextPendingEntry(t *testing.T) {
	tr := sampleTranscript()
	tr.Append(model.NewEntry("still thinking", "english"))

	got := ExportText(tr)
	want := "Q: hi\n\nA: hello\n\nQ: still thinking"
	if got != want {
		t.Errorf("ExportText() = %q, want %q", got, want)
	}
}

func TestExportTextEmpty(t *testing.T) {
	if got := ExportText(model.NewTranscript("s")); got != "" {
		t.Errorf("ExportText() = %q, want empty", got)
	}
}

func TestMarkdownExporter(t *testing.T) {
	out, err := MarkdownExporter{}.Export(sampleTranscript())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	md := string(out)
	for _, want := range []string{"# hi", "## You", "## Assistant", "hello", "session-1-abcd"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdownExporterEmptyTranscript(t *testing.T) {
	if _, err := (MarkdownExporter{}).Export(model.NewTranscript("s")); err == nil {
		t.Error("Export() error = nil, want error for empty transcript")
	}
}

func TestJSONExporter(t *testing.T) {
	out, err := JSONExporter{}.Export(sampleTranscript())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded model.Transcript
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.SessionID != "session-1-abcd" {
		t.Errorf("SessionID = %q", decoded.SessionID)
	}
	if len(decoded.Entries) != 1 {
		t.Errorf("len(Entries) = %d, want 1", len(decoded.Entries))
	}
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportToFile(sampleTranscript(), TextExporter{}, dir)
	if err != nil {
		t.Fatalf("ExportToFile() error = %v", err)
	}

	if !strings.HasPrefix(path, dir) {
		t.Errorf("path = %q, want under %q", path, dir)
	}
	if !strings.HasSuffix(path, ".txt") {
		t.Errorf("path = %q, want .txt extension", path)
	}
	if !strings.Contains(path, "chat-session-1-abcd-") {
		t.Errorf("path = %q, want chat-<session>-<date> name", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "Q: hi\n\nA: hello" {
		t.Errorf("file content = %q", string(data))
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := sanitizeFilename("a/b\\c:d"); got != "a_b_c_d" {
		t.Errorf("sanitizeFilename() = %q, want a_b_c_d", got)
	}
}
