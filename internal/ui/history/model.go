// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history provides the session browser view: all stored chat
// sessions, most recently updated first, with open and delete actions.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docchat/docchat/internal/api"
	"github.com/docchat/docchat/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SessionsLoadedMsg carries the fetched session list.
type SessionsLoadedMsg struct {
	Sessions []api.SessionInfo
	Err      error
}

// DeletedMsg reports a completed session delete.
type DeletedMsg struct {
	SessionID string
	Err       error
}

// OpenSessionMsg asks the app to switch the chat view to a session.
type OpenSessionMsg struct {
	SessionID string
}

// =============================================================================
// HISTORY MODEL
// =============================================================================

// Model is the Bubble Tea model for the session browser.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	sessions []api.SessionInfo
	cursor   int
	loading  bool
	errText  string

	// activeSession is highlighted and, when deleted, triggers a chat
	// view clear in the app.
	activeSession string

	width  int
	height int
}

// New creates the session browser.
func New(client *api.Client, theme *styles.Theme) Model {
	return Model{theme: theme, client: client}
}

// SetTheme swaps the theme.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
}

// SetActiveSession marks which session the chat view currently shows.
func (m *Model) SetActiveSession(id string) {
	m.activeSession = id
}

// Refresh returns the command that reloads the session list.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	m.errText = ""
	client := m.client
	return func() tea.Msg {
		sessions, err := client.Sessions(context.Background())
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

// Update handles messages for the session browser.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SessionsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = api.UserFacingMessage(msg.Err)
			return m, nil
		}
		m.sessions = msg.Sessions
		if m.cursor >= len(m.sessions) {
			m.cursor = 0
		}
		return m, nil

	case DeletedMsg:
		if msg.Err != nil {
			m.errText = api.UserFacingMessage(msg.Err)
			return m, nil
		}
		return m, m.Refresh()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.sessions)-1 {
			m.cursor++
		}
	case "enter":
		if s, ok := m.selected(); ok {
			id := s.SessionID
			return m, func() tea.Msg { return OpenSessionMsg{SessionID: id} }
		}
	case "d", "delete":
		if s, ok := m.selected(); ok {
			return m, m.deleteCmd(s.SessionID)
		}
	case "r":
		return m, m.Refresh()
	}
	return m, nil
}

func (m Model) selected() (api.SessionInfo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.sessions) {
		return api.SessionInfo{}, false
	}
	return m.sessions[m.cursor], true
}

func (m *Model) deleteCmd(sessionID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteHistory(context.Background(), sessionID)
		return DeletedMsg{SessionID: sessionID, Err: err}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the session list.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.ListTitle.Render("Chat History"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.theme.ThinkingText.Render("Loading sessions..."))
	case m.errText != "":
		b.WriteString(m.theme.ErrorStyle.Render(m.errText))
	case len(m.sessions) == 0:
		b.WriteString(m.theme.ListMeta.Render("No saved conversations yet."))
	default:
		for i, s := range m.sessions {
			b.WriteString(m.renderSession(i, s))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.ListMeta.Render("enter open · d delete · r refresh"))
	return b.String()
}

func (m Model) renderSession(i int, s api.SessionInfo) string {
	marker := "  "
	if s.SessionID == m.activeSession {
		marker = m.theme.SuccessStyle.Render("● ")
	}

	label := fmt.Sprintf("%s%s  %s", marker, s.SessionID,
		m.theme.ListMeta.Render(fmt.Sprintf("%d messages · %s", s.MessageCount, shortTime(s.UpdatedAt))))

	if i == m.cursor {
		return m.theme.ListItemSelected.Render(label)
	}
	return m.theme.ListItem.Render(label)
}

// shortTime formats a backend timestamp for list display.
func shortTime(raw string) string {
	t := api.ParseTimestamp(raw)
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2 15:04")
}
