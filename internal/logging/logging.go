// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the debug log for the docchat client.
//
// The TUI owns stdout, so all diagnostics go to a log file instead.
// History-fetch failures and discarded stale responses are logged here
// rather than surfaced in the conversation.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.Mutex
	logger *logrus.Logger
)

// Setup initializes the package logger, writing to <dir>/docchat.log.
// Level accepts logrus level names ("debug", "info", "warn", "error");
// an unknown level falls back to info.
func Setup(dir, level string) (*logrus.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(dir, "docchat.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	l.SetOutput(f)

	logger = l
	return l, nil
}

// L returns the configured logger. Before Setup is called (or if it
// failed) a silent logger is returned so callers never need nil checks.
func L() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return logger
}
