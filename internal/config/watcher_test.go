// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	require.NoError(t, SaveTOML(cfg, path))

	changes := make(chan *Config, 1)
	w, err := NewWatcher(path, func(c *Config) {
		select {
		case changes <- c:
		default:
		}
	})
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	cfg.Chat.Language = "hindi"
	require.NoError(t, SaveTOML(cfg, path))

	select {
	case got := <-changes:
		require.Equal(t, "hindi", got.Chat.Language)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report the config change")
	}
}

func TestWatcherCloseStopsCallbacks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	w, err := NewWatcher(path, func(*Config) {})
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	require.NoError(t, w.Close())
}
