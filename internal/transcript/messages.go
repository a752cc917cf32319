// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"github.com/docchat/docchat/internal/api"
)

// =============================================================================
// MESSAGES
// =============================================================================

// HistoryLoadedMsg carries the result of a history fetch. SessionID and
// Gen identify which load this answers; results for a superseded load
// are discarded.
type HistoryLoadedMsg struct {
	SessionID string
	Gen       int
	History   []api.HistoryMessage
	Err       error
}

// ChatResultMsg carries the backend's answer to a submitted question.
// SessionID is the id the question was asked under.
type ChatResultMsg struct {
	SessionID string
	Question  string
	Response  *api.ChatResponse
	Err       error
}
