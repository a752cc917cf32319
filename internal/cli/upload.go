// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// upload.go - Document upload command handler for the docchat CLI.
//
// Command: upload FILE...
// Aliases: add
//
// Examples:
//   docchat upload report.pdf
//   docchat upload notes.docx slides.pptx diagram.png
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/docchat/docchat/internal/upload"
)

// HandleUpload uploads one or more documents to the knowledge base.
func HandleUpload(args Args) error {
	if len(args.Raw) == 0 {
		return fmt.Errorf("usage: docchat upload FILE...")
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}

	mgr := upload.NewManager(newClient(cfg), store)
	mgr.Add(args.Raw...)

	items := mgr.UploadAll(context.Background())

	if args.JSON {
		out, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		for _, item := range items {
			switch item.Status {
			case upload.StatusSuccess:
				fmt.Printf("  ✓ %s (%d chunks)\n", item.Filename, item.Chunks)
			case upload.StatusError:
				fmt.Printf("  ✗ %s: %s\n", item.Filename, item.Message)
			}
		}
	}

	done, failed := mgr.Summary()
	if !args.Quiet && !args.JSON {
		fmt.Printf("\n%d uploaded, %d failed\n", done, failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d upload(s) failed", failed)
	}
	return nil
}
