// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view: the transcript viewport,
// the question input, and the sending spinner.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/docchat/docchat/internal/transcript"
	"github.com/docchat/docchat/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	theme *styles.Theme
	ctrl  *transcript.Controller

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Markdown rendering for assistant answers. Nil means plain text.
	renderer *glamour.TermRenderer

	keyMap KeyMap

	width  int
	height int
	ready  bool
}

// New creates the chat view around an existing controller.
func New(ctrl *transcript.Controller, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "Ask a question about your documents..."
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		renderer = nil
	}

	return Model{
		theme:    theme,
		ctrl:     ctrl,
		input:    input,
		spinner:  sp,
		renderer: renderer,
		keyMap:   DefaultKeyMap(),
	}
}

// Init starts the history load for the active session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.ctrl.Init(), textinput.Blink)
}

// Controller exposes the transcript controller for the app model.
func (m *Model) Controller() *transcript.Controller {
	return m.ctrl
}

// SetTheme swaps the theme.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.spinner.Style = theme.Spinner
	m.refreshViewport()
}

// renderMarkdown renders an answer for terminal display, falling back to
// the raw text if rendering fails.
func (m *Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
