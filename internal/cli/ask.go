// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler for the docchat CLI.
//
// Handles "docchat ask" which sends one question to the backend and
// prints the answer to stdout.
//
// Command: ask [question]
// Aliases: q
//
// Examples:
//   docchat ask "What is the refund policy?"
//   docchat ask --language hindi "Summarize the report"
//   docchat ask --session session-123-abc "And the deadline?"
//   docchat ask --json "List the key findings"
//
// The question joins the active session, so follow-up questions keep
// their conversational context across invocations.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/docchat/docchat/internal/api"
	"github.com/docchat/docchat/internal/session"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the global glamour renderer for markdown output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or the renderer is
// unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayAnswer prints an answer, rendering markdown only when stdout
// is a TTY so piped output stays plain.
func displayAnswer(answer string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(answer))
		return
	}
	fmt.Println(answer)
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// askResult is the JSON output shape for --json.
type askResult struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	SessionID string `json:"session_id"`
	Language  string `json:"language"`
}

// HandleAskCommand sends a single question and prints the answer.
func HandleAskCommand(args Args) error {
	question := strings.TrimSpace(args.Query)
	if question == "" {
		return fmt.Errorf("usage: docchat ask \"question\"")
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}

	ident, err := session.Initialize(store, args.Session)
	if err != nil {
		return err
	}

	client := newClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Backend.RequestTimeoutSecs)*time.Second)
	defer cancel()

	if !args.Quiet && IsStdoutTTY() {
		fmt.Fprintln(os.Stderr, "Thinking...")
	}

	resp, err := client.Chat(ctx, question, ident.Active(), cfg.Chat.Language)
	if err != nil {
		return fmt.Errorf("%s", api.UserFacingMessage(err))
	}

	// The backend may reassign the session id; keep the echo
	if resp.SessionID != "" && resp.SessionID != ident.Active() {
		if err := ident.SetActive(resp.SessionID); err != nil {
			return err
		}
	}

	if args.JSON {
		out, err := json.MarshalIndent(askResult{
			Question:  question,
			Answer:    resp.Answer,
			SessionID: resp.SessionID,
			Language:  cfg.Chat.Language,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	displayAnswer(resp.Answer)

	if args.Verbose {
		fmt.Fprintf(os.Stderr, "\nSession: %s\n", ident.Active())
	}
	return nil
}
