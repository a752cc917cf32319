// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript owns the chat view's state machine: which session
// is shown, its loaded exchanges, and the lifecycle of an in-flight
// question.
//
// The controller is driven the bubbletea way: mutations happen through
// Submit/Apply* calls on the UI goroutine, network work happens inside
// returned tea.Cmds.
package transcript

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docchat/docchat/internal/api"
	"github.com/docchat/docchat/internal/logging"
	"github.com/docchat/docchat/internal/model"
	"github.com/docchat/docchat/internal/session"
)

// =============================================================================
// PHASE
// =============================================================================

// Phase is the chat view's observable state.
type Phase int

const (
	// PhaseEmpty: no exchanges and nothing in flight.
	PhaseEmpty Phase = iota
	// PhaseLoading: history fetch in progress, transcript not yet shown.
	PhaseLoading
	// PhaseReady: transcript shown, input accepted.
	PhaseReady
	// PhaseSending: a question is awaiting its answer.
	PhaseSending
)

// String returns a short label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseSending:
		return "sending"
	default:
		return "unknown"
	}
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller manages the transcript for the active session.
type Controller struct {
	client *api.Client
	ident  *session.Identity

	language   string
	transcript *model.Transcript

	loading bool
	sending bool

	// loadGen invalidates history fetches: only the result matching the
	// latest started load is applied.
	loadGen int
}

// NewController creates a controller for the identity's active session.
func NewController(client *api.Client, ident *session.Identity, language string) *Controller {
	return &Controller{
		client:     client,
		ident:      ident,
		language:   language,
		transcript: model.NewTranscript(ident.Active()),
	}
}

// Phase returns the current observable state.
func (c *Controller) Phase() Phase {
	switch {
	case c.loading:
		return PhaseLoading
	case c.sending:
		return PhaseSending
	case c.transcript.IsEmpty():
		return PhaseEmpty
	default:
		return PhaseReady
	}
}

// Transcript returns the current transcript.
func (c *Controller) Transcript() *model.Transcript {
	return c.transcript
}

// SessionID returns the active session id.
func (c *Controller) SessionID() string {
	return c.ident.Active()
}

// Language returns the current answer language.
func (c *Controller) Language() string {
	return c.language
}

// SetLanguage changes the answer language for subsequent questions.
// Entries already in the transcript keep the language they were asked in.
func (c *Controller) SetLanguage(lang string) {
	c.language = lang
}

// =============================================================================
// HISTORY LOADING
// =============================================================================

// Init returns the command that loads the active session's history.
func (c *Controller) Init() tea.Cmd {
	return c.loadCmd()
}

// loadCmd starts a history fetch for the active session, superseding any
// fetch still in flight.
func (c *Controller) loadCmd() tea.Cmd {
	c.loading = true
	c.loadGen++

	gen := c.loadGen
	sessionID := c.ident.Active()
	client := c.client
	return func() tea.Msg {
		history, err := client.History(context.Background(), sessionID)
		return HistoryLoadedMsg{SessionID: sessionID, Gen: gen, History: history, Err: err}
	}
}

// ApplyHistory applies a history fetch result. Results for a superseded
// load or a no-longer-active session are dropped. A failed fetch
// degrades to an empty transcript; the conversation view never shows a
// history error.
func (c *Controller) ApplyHistory(msg HistoryLoadedMsg) {
	if msg.Gen != c.loadGen || msg.SessionID != c.ident.Active() {
		logging.L().WithField("session", msg.SessionID).Debug("discarding stale history result")
		return
	}

	c.loading = false

	if msg.Err != nil {
		logging.L().WithField("session", msg.SessionID).WithError(msg.Err).Warn("history fetch failed")
		c.transcript = model.NewTranscript(msg.SessionID)
		return
	}

	c.transcript = model.FromHistory(msg.SessionID, msg.History)
}

// =============================================================================
// SUBMITTING QUESTIONS
// =============================================================================

// Submit sends a question to the backend. The question is appended to
// the transcript immediately as a pending entry.
//
// Blank input is a no-op, as is submitting while a question is already
// in flight or while history is loading. Returns nil for no-ops.
func (c *Controller) Submit(input string) tea.Cmd {
	question := strings.TrimSpace(input)
	if question == "" {
		return nil
	}
	if c.sending || c.loading {
		return nil
	}

	c.transcript.Append(model.NewEntry(question, c.language))
	c.sending = true

	sessionID := c.ident.Active()
	language := c.language
	client := c.client
	return func() tea.Msg {
		resp, err := client.Chat(context.Background(), question, sessionID, language)
		return ChatResultMsg{SessionID: sessionID, Question: question, Response: resp, Err: err}
	}
}

// ApplyChat applies a chat result. Answers for a session the user has
// since left are dropped; the entry they would have resolved is gone
// with the old transcript.
func (c *Controller) ApplyChat(msg ChatResultMsg) {
	if msg.SessionID != c.ident.Active() {
		logging.L().WithField("session", msg.SessionID).Debug("discarding answer for inactive session")
		return
	}

	c.sending = false

	last := c.transcript.Last()
	if last == nil || !last.Pending {
		return
	}

	if msg.Err != nil {
		last.Fail(api.UserFacingMessage(msg.Err))
		return
	}
	if msg.Response == nil {
		last.Fail("Sorry, I encountered an error. Please try again.")
		return
	}

	last.Resolve(msg.Response.Answer)
}

// =============================================================================
// SESSION SWITCHING
// =============================================================================

// StartNewChat switches to a freshly minted session. The transcript is
// cleared synchronously; no history fetch is needed for a brand-new id.
// The old session's history stays on the backend.
func (c *Controller) StartNewChat() (string, error) {
	id, err := c.ident.StartNewChat()
	if err != nil {
		return "", err
	}

	c.transcript = model.NewTranscript(id)
	c.loading = false
	c.sending = false
	// Invalidate any fetch or answer still in flight for the old session.
	c.loadGen++

	return id, nil
}

// SwitchTo makes sessionID active and starts loading its history. Any
// in-flight work for the previous session is abandoned.
func (c *Controller) SwitchTo(sessionID string) (tea.Cmd, error) {
	if err := c.ident.SetActive(sessionID); err != nil {
		return nil, err
	}

	c.transcript = model.NewTranscript(sessionID)
	c.sending = false

	return c.loadCmd(), nil
}

// ClearActive empties the transcript for the active session, used after
// its backend history has been deleted.
func (c *Controller) ClearActive() {
	c.transcript = model.NewTranscript(c.ident.Active())
	c.loading = false
	c.sending = false
	c.loadGen++
}
