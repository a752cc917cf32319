// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// sessions.go - Session management command handlers for the docchat CLI.
//
// Commands:
//   sessions           List sessions stored on the backend
//   history [SESSION]  Print a session transcript
//   delete SESSION     Delete a session's history
//
// Examples:
//   docchat sessions
//   docchat history
//   docchat history session-1700000000000-ab12cd34
//   docchat delete session-1700000000000-ab12cd34
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/docchat/docchat/internal/api"
	"github.com/docchat/docchat/internal/model"
	"github.com/docchat/docchat/internal/util"
)

// HandleSessions lists all sessions stored on the backend.
func HandleSessions(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	client := newClient(cfg)

	sessions, err := client.Sessions(context.Background())
	if err != nil {
		return fmt.Errorf("%s", api.UserFacingMessage(err))
	}

	if args.JSON {
		out, err := json.MarshalIndent(sessions, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	active := ""
	if store, err := openStore(); err == nil {
		active = store.SessionID()
	}

	fmt.Printf("%-44s %-10s %s\n", "SESSION", "MESSAGES", "UPDATED")
	for _, s := range sessions {
		marker := "  "
		if s.SessionID == active {
			marker = "* "
		}
		updated := s.UpdatedAt
		if t := api.ParseTimestamp(s.UpdatedAt); !t.IsZero() {
			updated = t.Format("Jan 2 15:04")
		}
		fmt.Printf("%s%-42s %-10d %s\n",
			marker, util.TruncateRunes(s.SessionID, 42), s.MessageCount, updated)
	}
	return nil
}

// HandleHistory prints the transcript of a session.
func HandleHistory(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	sessionID, err := resolveSession(args, args.Subcommand)
	if err != nil {
		return err
	}
	client := newClient(cfg)

	history, err := client.History(context.Background(), sessionID)
	if err != nil {
		return fmt.Errorf("%s", api.UserFacingMessage(err))
	}

	if args.JSON {
		out, err := json.MarshalIndent(history, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(history) == 0 {
		fmt.Printf("Session %s has no messages.\n", sessionID)
		return nil
	}

	transcript := model.FromHistory(sessionID, history)
	for i, entry := range transcript.Entries {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("You: %s\n", entry.Question)
		if IsStdoutTTY() {
			fmt.Printf("Assistant:\n%s", renderMarkdown(entry.Answer))
		} else {
			fmt.Printf("Assistant: %s\n", entry.Answer)
		}
	}
	return nil
}

// HandleDelete deletes a session's history from the backend.
func HandleDelete(args Args) error {
	if args.Subcommand == "" {
		return fmt.Errorf("usage: docchat delete SESSION")
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	sessionID, err := resolveSession(args, args.Subcommand)
	if err != nil {
		return err
	}
	client := newClient(cfg)

	if err := client.DeleteHistory(context.Background(), sessionID); err != nil {
		return fmt.Errorf("%s", api.UserFacingMessage(err))
	}

	// Forget the persisted id if we just deleted the active session
	if store, err := openStore(); err == nil && store.SessionID() == sessionID {
		if err := store.SetSessionID(""); err != nil {
			return err
		}
	}

	if !args.Quiet {
		fmt.Printf("Deleted session %s\n", sessionID)
	}
	return nil
}
