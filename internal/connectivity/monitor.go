// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package connectivity polls the backend's health endpoint and tracks
// whether the backend is reachable. The result drives the status banner
// and never blocks chat: submissions are attempted regardless, and the
// request's own failure is authoritative.
package connectivity

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docchat/docchat/internal/api"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the current connectivity verdict.
type Status int

const (
	// StatusUnknown means no probe has completed yet.
	StatusUnknown Status = iota
	// StatusConnected means the last probe succeeded.
	StatusConnected
	// StatusDisconnected means the last probe failed.
	StatusDisconnected
)

// String returns a short label for the status.
func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	default:
		return "checking"
	}
}

// DisconnectedMessage is shown in the banner while the backend is down.
const DisconnectedMessage = "Backend server is not running. Please start the backend server."

// =============================================================================
// MESSAGES
// =============================================================================

// ProbeResultMsg carries the outcome of one health probe.
type ProbeResultMsg struct {
	Status Status
	Err    error
}

// TickMsg signals that the next periodic probe is due.
type TickMsg struct{}

// =============================================================================
// MONITOR
// =============================================================================

// Monitor issues periodic health probes against the backend.
type Monitor struct {
	client   *api.Client
	interval time.Duration
	timeout  time.Duration
	status   Status
}

// NewMonitor creates a monitor polling client every interval, with the
// given per-probe timeout.
func NewMonitor(client *api.Client, interval, timeout time.Duration) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Monitor{
		client:   client,
		interval: interval,
		timeout:  timeout,
		status:   StatusUnknown,
	}
}

// Status returns the current verdict.
func (m *Monitor) Status() Status {
	return m.status
}

// Apply records a probe result and reports whether the verdict changed.
func (m *Monitor) Apply(msg ProbeResultMsg) bool {
	changed := m.status != msg.Status
	m.status = msg.Status
	return changed
}

// ProbeCmd returns a command that runs one health probe.
func (m *Monitor) ProbeCmd() tea.Cmd {
	client := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := client.CheckRunning(ctx); err != nil {
			return ProbeResultMsg{Status: StatusDisconnected, Err: err}
		}
		return ProbeResultMsg{Status: StatusConnected}
	}
}

// TickCmd returns a command that fires TickMsg after the probe interval.
func (m *Monitor) TickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}
