// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export.go - Transcript export and share link command handlers.
//
// Commands:
//   export [SESSION]   Write a transcript to a file
//   share [SESSION]    Print a shareable session link
//
// Examples:
//   docchat export
//   docchat export --format markdown session-1700000000000-ab12cd34
//   docchat export --format json -o ~/exports
//   docchat share
package cli

import (
	"context"
	"fmt"

	"github.com/docchat/docchat/internal/api"
	"github.com/docchat/docchat/internal/model"
	"github.com/docchat/docchat/internal/share"
)

// exporterFor maps a format name to an exporter.
func exporterFor(format string) (share.Exporter, error) {
	switch format {
	case "", "text", "txt":
		return share.TextExporter{}, nil
	case "markdown", "md":
		return share.MarkdownExporter{}, nil
	case "json":
		return share.JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (supported: text, markdown, json)", format)
	}
}

// HandleExport writes a session transcript to a file.
func HandleExport(args Args) error {
	exporter, err := exporterFor(args.Format)
	if err != nil {
		return err
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

	history, err := client.History(context.Background(), sessionID)
	if err != nil {
		return fmt.Errorf("%s", api.UserFacingMessage(err))
	}
	if len(history) == 0 {
		return fmt.Errorf("session %s has no messages to export", sessionID)
	}

	transcript := model.FromHistory(sessionID, history)

	dir := args.Output
	if dir == "" {
		dir = "."
	}
	path, err := share.ExportToFile(transcript, exporter, dir)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if !args.Quiet {
		fmt.Printf("Exported %d exchange(s) to %s\n", transcript.Len(), path)
	}
	return nil
}

// HandleShare prints a shareable link for a session.
//
// The backend is consulted first so the link is only handed out for
// sessions that actually exist.
func HandleShare(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	sessionID, err := resolveSession(args, args.Subcommand)
	if err != nil {
		return err
	}
	client := newClient(cfg)

	info, err := client.Share(context.Background(), sessionID)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("session %s not found on the backend", sessionID)
		}
		return fmt.Errorf("%s", api.UserFacingMessage(err))
	}

	link := share.Link(cfg.ShareBase(), info.SessionID)
	if args.JSON {
		fmt.Printf("{\"session_id\":%q,\"message_count\":%d,\"link\":%q}\n",
			info.SessionID, info.MessageCount, link)
		return nil
	}

	fmt.Println(link)
	if args.Verbose {
		fmt.Printf("Session %s has %d message(s).\n", info.SessionID, info.MessageCount)
	}
	return nil
}
