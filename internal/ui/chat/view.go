// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/docchat/docchat/internal/model"
	"github.com/docchat/docchat/internal/transcript"
)

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	return vp
}

// View renders the chat view: transcript, thinking line, input.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.ctrl.Phase() == transcript.PhaseSending {
		b.WriteString(m.spinner.View())
		b.WriteString(m.theme.ThinkingText.Render(" Thinking..."))
		b.WriteString("\n")
	}

	input := m.theme.InputPrompt.Render("> ") + m.input.View()
	b.WriteString(m.theme.InputContainer.Width(m.width).Render(input))

	return b.String()
}

// refreshViewport rebuilds the transcript content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
}

// renderTranscript draws all exchanges as alternating bubbles.
func (m *Model) renderTranscript() string {
	tr := m.ctrl.Transcript()

	switch m.ctrl.Phase() {
	case transcript.PhaseLoading:
		return m.theme.ThinkingText.Render("Loading conversation...")
	case transcript.PhaseEmpty:
		return m.emptyView()
	}

	bubbleWidth := m.width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var b strings.Builder
	for _, entry := range tr.Entries {
		b.WriteString(m.renderEntry(entry, bubbleWidth))
	}
	return b.String()
}

func (m *Model) renderEntry(entry *model.Entry, bubbleWidth int) string {
	var b strings.Builder

	user := m.theme.UserBubble.MaxWidth(bubbleWidth).Render(entry.Question)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Right, user))
	b.WriteString("\n")

	if !entry.Pending {
		style := m.theme.BotBubble
		answer := entry.Answer
		if entry.IsError {
			style = m.theme.ErrorBubble
		} else {
			answer = strings.TrimRight(m.renderMarkdown(answer), "\n")
		}
		b.WriteString(style.MaxWidth(bubbleWidth).Render(answer))
		b.WriteString("\n")

		if !entry.Timestamp.IsZero() {
			b.WriteString(m.theme.Timestamp.Render(entry.Timestamp.Format("15:04")))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	return b.String()
}

// emptyView shows the welcome hint for a session with no exchanges.
func (m *Model) emptyView() string {
	lines := []string{
		"",
		m.theme.ListTitle.Render("Welcome to DocChat"),
		"",
		"Upload documents, then ask questions about them.",
		"",
		m.theme.ListMeta.Render("Try: \"What documents do I have?\""),
		m.theme.ListMeta.Render("     \"Summarize the uploaded PDF\""),
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		strings.Join(lines, "\n"))
}
