// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend status and feature listing command handlers.
//
// Commands:
//   status     Check backend connectivity
//   features   List capabilities advertised by the backend
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/docchat/docchat/internal/api"
)

// HandleStatus checks backend connectivity and prints a summary.
func HandleStatus(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	client := newClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Backend.ProbeTimeoutSecs)*time.Second)
	defer cancel()

	health, healthErr := client.Health(ctx)

	if args.JSON {
		out := map[string]interface{}{
			"backend":   client.BaseURL(),
			"connected": healthErr == nil,
		}
		if healthErr != nil {
			out["error"] = api.UserFacingMessage(healthErr)
		} else {
			out["status"] = health.Status
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		if healthErr != nil {
			return fmt.Errorf("backend unreachable")
		}
		return nil
	}

	fmt.Printf("Backend:  %s\n", client.BaseURL())
	if healthErr != nil {
		fmt.Println("Status:   ✗ offline")
		fmt.Printf("          %s\n", api.UserFacingMessage(healthErr))
		return fmt.Errorf("backend unreachable")
	}
	fmt.Printf("Status:   ✓ %s\n", health.Status)

	if store, err := openStore(); err == nil {
		if id := store.SessionID(); id != "" {
			fmt.Printf("Session:  %s\n", id)
		}
		if files := store.UploadedFiles(); len(files) > 0 {
			fmt.Printf("Uploads:  %d file(s) in the knowledge base\n", len(files))
		}
	}
	fmt.Printf("Language: %s\n", cfg.Chat.Language)
	return nil
}

// HandleFeatures lists the capabilities advertised by the backend.
func HandleFeatures(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	client := newClient(cfg)

	features, err := client.Features(context.Background())
	if err != nil {
		return fmt.Errorf("%s", api.UserFacingMessage(err))
	}

	if args.JSON {
		out, err := json.MarshalIndent(features, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(features) == 0 {
		fmt.Println("The backend advertises no features.")
		return nil
	}
	for _, f := range features {
		fmt.Printf("  ✓ %s\n", f)
	}
	return nil
}
