// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI pieces shared across views.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/docchat/docchat/internal/ui/styles"
)

// =============================================================================
// HEADER
// =============================================================================

// Header renders the top bar: app title plus the view tabs.
type Header struct {
	theme *styles.Theme
	width int
}

// NewHeader creates a header.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{theme: theme}
}

// SetTheme swaps the theme.
func (h *Header) SetTheme(theme *styles.Theme) {
	h.theme = theme
}

// SetWidth sets the render width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// Render draws the header with the named tabs, highlighting active.
func (h *Header) Render(tabs []string, active string) string {
	title := h.theme.HeaderTitle.Render("DocChat")

	rendered := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if tab == active {
			rendered = append(rendered, h.theme.TabActive.Render(tab))
		} else {
			rendered = append(rendered, h.theme.Tab.Render(tab))
		}
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center,
		title,
		"  ",
		strings.Join(rendered, " "),
	)

	if h.width > 0 {
		return h.theme.Header.Width(h.width).Render(line)
	}
	return h.theme.Header.Render(line)
}
