// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/docchat/docchat/internal/connectivity"
	"github.com/docchat/docchat/internal/ui/styles"
	"github.com/docchat/docchat/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar renders the bottom bar: connectivity, session, language, and
// key hints.
type StatusBar struct {
	theme *styles.Theme
	width int
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

// SetTheme swaps the theme.
func (s *StatusBar) SetTheme(theme *styles.Theme) {
	s.theme = theme
}

// SetWidth sets the render width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// Render draws the status bar.
func (s *StatusBar) Render(status connectivity.Status, sessionID, language string, hints []string) string {
	var conn string
	switch status {
	case connectivity.StatusConnected:
		conn = s.theme.StatusOK.Render("● online")
	case connectivity.StatusDisconnected:
		conn = s.theme.StatusBad.Render("● offline")
	default:
		conn = s.theme.ShortcutDesc.Render("● checking")
	}

	parts := []string{
		conn,
		util.TruncateRunes(sessionID, 28),
		language,
	}

	if len(hints) > 0 {
		keyed := make([]string, 0, len(hints))
		for _, hint := range hints {
			if k, d, ok := strings.Cut(hint, " "); ok {
				keyed = append(keyed, s.theme.ShortcutKey.Render(k)+" "+s.theme.ShortcutDesc.Render(d))
			} else {
				keyed = append(keyed, s.theme.ShortcutDesc.Render(hint))
			}
		}
		parts = append(parts, strings.Join(keyed, "  "))
	}

	line := strings.Join(parts, "  │  ")
	if s.width > 0 {
		return s.theme.StatusBar.Width(s.width).Render(line)
	}
	return s.theme.StatusBar.Render(line)
}
