// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command handler for the docchat CLI.
//
// Command: config [show|set|path]
//
// Examples:
//   docchat config
//   docchat config show
//   docchat config set backend.url http://localhost:8000
//   docchat config set chat.language hindi
//   docchat config path
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/docchat/docchat/internal/config"
)

// HandleConfig shows or modifies the configuration file.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "set":
		return configSet(args)
	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	default:
		return fmt.Errorf("unknown config subcommand %q (supported: show, set, path)", args.Subcommand)
	}
}

func configShow(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if args.JSON {
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("backend.url            = %s\n", cfg.Backend.URL)
	fmt.Printf("backend.share_base_url = %s\n", cfg.ShareBase())
	fmt.Printf("chat.language          = %s\n", cfg.Chat.Language)
	fmt.Printf("ui.theme               = %s\n", cfg.UI.Theme)
	fmt.Printf("log.level              = %s\n", cfg.Log.Level)
	return nil
}

func configSet(args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return fmt.Errorf("usage: docchat config set KEY VALUE")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	key, val := args.ConfigKey, args.ConfigVal
	switch key {
	case "backend.url":
		cfg.Backend.URL = val
	case "backend.share_base_url":
		cfg.Backend.ShareBaseURL = val
	case "chat.language":
		if !config.IsSupportedLanguage(val) {
			return fmt.Errorf("unsupported language %q (supported: english, hindi, hinglish)", val)
		}
		cfg.Chat.Language = val
	case "ui.theme":
		if val != "dark" && val != "light" {
			return fmt.Errorf("unsupported theme %q (supported: dark, light)", val)
		}
		cfg.UI.Theme = val
	case "log.level":
		cfg.Log.Level = val
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	if !args.Quiet {
		fmt.Printf("Set %s = %s\n", key, val)
	}
	return nil
}
