// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package uploads provides the document upload view: a path prompt, the
// current batch with per-file progress, and previously uploaded files.
package uploads

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/docchat/docchat/internal/state"
	"github.com/docchat/docchat/internal/ui/styles"
	"github.com/docchat/docchat/internal/upload"
)

// =============================================================================
// UPLOADS MODEL
// =============================================================================

// Model is the Bubble Tea model for the uploads view.
type Model struct {
	theme   *styles.Theme
	manager *upload.Manager
	store   *state.Store

	input textinput.Model

	width  int
	height int
}

// New creates the uploads view.
func New(manager *upload.Manager, store *state.Store, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "Path to a document (pdf, docx, ppt, png...)"
	input.CharLimit = 1024

	return Model{
		theme:   theme,
		manager: manager,
		store:   store,
		input:   input,
	}
}

// SetTheme swaps the theme.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
}

// Focus gives the path input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes focus from the path input.
func (m *Model) Blur() {
	m.input.Blur()
}

// Update handles messages for the uploads view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 6
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				return m, nil
			}
			m.input.Reset()
			m.manager.Add(path)
			if !m.uploading() {
				return m, m.manager.NextCmd()
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case upload.ResultMsg:
		m.manager.Apply(msg)
		// Files upload one at a time; start the next when one finishes.
		return m, m.manager.NextCmd()
	}

	return m, nil
}

// uploading reports whether a file is actively transferring (as opposed
// to merely queued).
func (m Model) uploading() bool {
	for _, item := range m.manager.Items() {
		if item.Status == upload.StatusUploading {
			return true
		}
	}
	return false
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the uploads view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.ListTitle.Render("Upload Documents"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.InputPrompt.Render("> ") + m.input.View())
	b.WriteString("\n\n")

	items := m.manager.Items()
	if len(items) > 0 {
		b.WriteString(m.theme.BubbleLabel.Render("This session"))
		b.WriteString("\n")
		for _, item := range items {
			b.WriteString(m.renderItem(item))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	saved := m.store.UploadedFiles()
	if len(saved) > 0 {
		b.WriteString(m.theme.BubbleLabel.Render("Knowledge base"))
		b.WriteString("\n")
		for _, f := range saved {
			line := fmt.Sprintf("  %s  %s", f.Filename,
				m.theme.ListMeta.Render(fmt.Sprintf("%d chunks · %s", f.Chunks, f.UploadedAt.Format("Jan 2"))))
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else if len(items) == 0 {
		b.WriteString(m.theme.ListMeta.Render("No documents uploaded yet. Enter a file path above."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderItem(item upload.Item) string {
	var status string
	switch item.Status {
	case upload.StatusPending:
		status = m.theme.ListMeta.Render("waiting")
	case upload.StatusUploading:
		status = m.theme.InfoStyle.Render("uploading...")
	case upload.StatusSuccess:
		status = m.theme.SuccessStyle.Render(fmt.Sprintf("done (%d chunks)", item.Chunks))
	case upload.StatusError:
		status = m.theme.ErrorStyle.Render(item.Message)
	}
	return fmt.Sprintf("  %s  %s", item.Filename, status)
}
