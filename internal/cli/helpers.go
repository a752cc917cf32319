// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared setup for docchat CLI command handlers.
package cli

import (
	"fmt"
	"time"

	"github.com/docchat/docchat/internal/api"
	"github.com/docchat/docchat/internal/config"
	"github.com/docchat/docchat/internal/session"
	"github.com/docchat/docchat/internal/state"
)

// loadConfig loads configuration and applies command-line overrides.
func loadConfig(args Args) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if args.Backend != "" {
		cfg.Backend.URL = args.Backend
	}
	if args.Language != "" {
		if !config.IsSupportedLanguage(args.Language) {
			return nil, fmt.Errorf("unsupported language %q (supported: english, hindi, hinglish)", args.Language)
		}
		cfg.Chat.Language = args.Language
	}
	return cfg, nil
}

// newClient builds a backend client from the resolved configuration.
func newClient(cfg *config.Config) *api.Client {
	return api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:       cfg.Backend.URL,
		Timeout:       time.Duration(cfg.Backend.RequestTimeoutSecs) * time.Second,
		UploadTimeout: time.Duration(cfg.Backend.UploadTimeoutSecs) * time.Second,
	})
}

// openStore opens the persistent client state store.
func openStore() (*state.Store, error) {
	path, err := state.DefaultPath()
	if err != nil {
		return nil, err
	}
	return state.NewStore(path)
}

// resolveSession returns the session id a command should operate on.
//
// A positional argument wins, then the --session flag, then the
// persisted active session. Positional and flag values may be bare ids
// or share links.
func resolveSession(args Args, positional string) (string, error) {
	candidate := positional
	if candidate == "" {
		candidate = args.Session
	}
	if candidate != "" {
		return session.ParseOverride(candidate)
	}

	store, err := openStore()
	if err != nil {
		return "", err
	}
	if id := store.SessionID(); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("no session specified and no previous session found")
}
