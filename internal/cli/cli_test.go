// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

// =============================================================================
// ARGUMENT PARSING TESTS
// =============================================================================

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Command
	}{
		{"no args defaults to TUI", nil, CmdTUI},
		{"explicit tui", []string{"tui"}, CmdTUI},
		{"ask", []string{"ask", "hello"}, CmdAsk},
		{"ask alias q", []string{"q", "hello"}, CmdAsk},
		{"upload", []string{"upload", "a.pdf"}, CmdUpload},
		{"upload alias add", []string{"add", "a.pdf"}, CmdUpload},
		{"sessions", []string{"sessions"}, CmdSessions},
		{"history", []string{"history"}, CmdHistory},
		{"delete", []string{"delete", "session-1-ab"}, CmdDelete},
		{"export", []string{"export"}, CmdExport},
		{"share", []string{"share"}, CmdShare},
		{"status", []string{"status"}, CmdStatus},
		{"status alias s", []string{"s"}, CmdStatus},
		{"features", []string{"features"}, CmdFeatures},
		{"config", []string{"config", "show"}, CmdConfig},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"help flag", []string{"-h"}, CmdHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := ParseArgs(tt.args)
			if cmd != tt.want {
				t.Errorf("ParseArgs(%v) = %v, want %v", tt.args, cmd, tt.want)
			}
		})
	}
}

func TestParseArgs_BareQuestionIsAsk(t *testing.T) {
	cmd, args := ParseArgs([]string{"what", "is", "in", "the", "contract"})
	if cmd != CmdAsk {
		t.Fatalf("ParseArgs() = %v, want CmdAsk", cmd)
	}
	if args.Query != "what is in the contract" {
		t.Errorf("Query = %q, want %q", args.Query, "what is in the contract")
	}
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{
		"--session", "session-123-abc",
		"--language", "hindi",
		"--backend", "http://example.com:8000",
		"--json", "-q",
		"ask", "hello", "world",
	})
	if cmd != CmdAsk {
		t.Fatalf("ParseArgs() = %v, want CmdAsk", cmd)
	}
	if args.Session != "session-123-abc" {
		t.Errorf("Session = %q, want %q", args.Session, "session-123-abc")
	}
	if args.Language != "hindi" {
		t.Errorf("Language = %q, want %q", args.Language, "hindi")
	}
	if args.Backend != "http://example.com:8000" {
		t.Errorf("Backend = %q, want %q", args.Backend, "http://example.com:8000")
	}
	if !args.JSON {
		t.Error("JSON should be true")
	}
	if !args.Quiet {
		t.Error("Quiet should be true")
	}
	if args.Query != "hello world" {
		t.Errorf("Query = %q, want %q", args.Query, "hello world")
	}
}

func TestParseArgs_EqualsFlagForm(t *testing.T) {
	_, args := ParseArgs([]string{"--session=session-9-ff", "--lang=hinglish", "sessions"})
	if args.Session != "session-9-ff" {
		t.Errorf("Session = %q, want %q", args.Session, "session-9-ff")
	}
	if args.Language != "hinglish" {
		t.Errorf("Language = %q, want %q", args.Language, "hinglish")
	}
}

func TestParseArgs_ShareLinkSessionFlag(t *testing.T) {
	link := "http://localhost:3000?session=session-1700000000000-ab12cd34"
	_, args := ParseArgs([]string{"--session", link, "history"})
	if args.Session != link {
		t.Errorf("Session = %q, want the raw link %q", args.Session, link)
	}
}

func TestParseArgs_Export(t *testing.T) {
	cmd, args := ParseArgs([]string{"export", "--format", "markdown", "-o", "/tmp/out", "session-5-aa"})
	if cmd != CmdExport {
		t.Fatalf("ParseArgs() = %v, want CmdExport", cmd)
	}
	if args.Format != "markdown" {
		t.Errorf("Format = %q, want %q", args.Format, "markdown")
	}
	if args.Output != "/tmp/out" {
		t.Errorf("Output = %q, want %q", args.Output, "/tmp/out")
	}
	if args.Subcommand != "session-5-aa" {
		t.Errorf("Subcommand = %q, want %q", args.Subcommand, "session-5-aa")
	}
}

func TestParseArgs_ExportDefaultsToText(t *testing.T) {
	_, args := ParseArgs([]string{"export"})
	if args.Format != "text" {
		t.Errorf("Format = %q, want %q", args.Format, "text")
	}
}

func TestParseArgs_ConfigSet(t *testing.T) {
	cmd, args := ParseArgs([]string{"config", "set", "chat.language", "hindi"})
	if cmd != CmdConfig {
		t.Fatalf("ParseArgs() = %v, want CmdConfig", cmd)
	}
	if args.Subcommand != "set" || args.ConfigKey != "chat.language" || args.ConfigVal != "hindi" {
		t.Errorf("parsed config args = (%q, %q, %q), want (set, chat.language, hindi)",
			args.Subcommand, args.ConfigKey, args.ConfigVal)
	}
}

// =============================================================================
// EXPORTER SELECTION TESTS
// =============================================================================

func TestExporterFor(t *testing.T) {
	for _, format := range []string{"", "text", "txt", "markdown", "md", "json"} {
		if _, err := exporterFor(format); err != nil {
			t.Errorf("exporterFor(%q) returned error: %v", format, err)
		}
	}
	if _, err := exporterFor("pdf"); err == nil {
		t.Error("exporterFor(pdf) should return an error")
	}
}
