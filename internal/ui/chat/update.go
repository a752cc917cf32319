// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/docchat/docchat/internal/transcript"
)

// Update handles messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Submit):
			if cmd := m.ctrl.Submit(m.input.Value()); cmd != nil {
				m.input.Reset()
				m.refreshViewport()
				m.viewport.GotoBottom()
				return m, tea.Batch(cmd, m.spinner.Tick)
			}
			return m, nil

		case key.Matches(msg, m.keyMap.PageUp):
			m.viewport.HalfViewUp()
			return m, nil

		case key.Matches(msg, m.keyMap.PageDown):
			m.viewport.HalfViewDown()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case transcript.HistoryLoadedMsg:
		m.ctrl.ApplyHistory(msg)
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case transcript.ChatResultMsg:
		m.ctrl.ApplyChat(msg)
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Phase() == transcript.PhaseSending || m.ctrl.Phase() == transcript.PhaseLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// NewChat clears the view for a freshly minted session.
func (m *Model) NewChat() error {
	if _, err := m.ctrl.StartNewChat(); err != nil {
		return err
	}
	m.input.Reset()
	m.refreshViewport()
	return nil
}

// SwitchTo loads another session into the view.
func (m *Model) SwitchTo(sessionID string) (tea.Cmd, error) {
	cmd, err := m.ctrl.SwitchTo(sessionID)
	if err != nil {
		return nil, err
	}
	m.input.Reset()
	m.refreshViewport()
	return tea.Batch(cmd, m.spinner.Tick), nil
}

// ClearActive empties the view after the active session's history was
// deleted on the backend.
func (m *Model) ClearActive() {
	m.ctrl.ClearActive()
	m.refreshViewport()
}

// resize lays out the viewport and input for a new terminal size.
// Reserved rows: header, status bar, input area with border.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	const reserved = 6
	vpHeight := height - reserved
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.viewport = newViewport(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.Width = width - 6

	m.refreshViewport()
	m.viewport.GotoBottom()
}
