// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package features shows the backend's advertised feature list.
package features

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docchat/docchat/internal/api"
	"github.com/docchat/docchat/internal/ui/styles"
)

// LoadedMsg carries the fetched feature list.
type LoadedMsg struct {
	Features []string
	Err      error
}

// Model is the Bubble Tea model for the features view.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	features []string
	loading  bool
	errText  string
}

// New creates the features view.
func New(client *api.Client, theme *styles.Theme) Model {
	return Model{theme: theme, client: client}
}

// SetTheme swaps the theme.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
}

// Refresh returns the command that fetches the feature list.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	m.errText = ""
	client := m.client
	return func() tea.Msg {
		features, err := client.Features(context.Background())
		return LoadedMsg{Features: features, Err: err}
	}
}

// Update handles messages for the features view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = api.UserFacingMessage(msg.Err)
			return m, nil
		}
		m.features = msg.Features
	}
	return m, nil
}

// View renders the feature list.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.ListTitle.Render("Features"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.theme.ThinkingText.Render("Loading..."))
	case m.errText != "":
		b.WriteString(m.theme.ErrorStyle.Render(m.errText))
	case len(m.features) == 0:
		b.WriteString(m.theme.ListMeta.Render("No feature information available."))
	default:
		for _, f := range m.features {
			b.WriteString(m.theme.SuccessStyle.Render("  ✓ "))
			b.WriteString(f)
			b.WriteString("\n")
		}
	}

	return b.String()
}
