// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Name is "dark" or "light".
	Name         string
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	ErrorBubble lipgloss.Style
	BubbleLabel lipgloss.Style
	Timestamp   lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusOK     lipgloss.Style
	StatusBad    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// BANNER STYLES
	// ==========================================================================

	WarningBanner lipgloss.Style
	InfoBanner    lipgloss.Style

	// ==========================================================================
	// LIST STYLES
	// ==========================================================================

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListTitle        lipgloss.Style
	ListMeta         lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// STATUS INDICATOR STYLES
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a theme for the given name ("dark" or "light").
func NewTheme(name string) *Theme {
	if name != "light" {
		name = "dark"
	}
	t := &Theme{
		Name:         name,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles(PaletteFor(name))
	return t
}

// Toggle returns the theme with the opposite name.
func (t *Theme) Toggle() *Theme {
	if t.Name == "dark" {
		return NewTheme("light")
	}
	return NewTheme("dark")
}

// initStyles initializes all the lip gloss styles from a palette.
func (t *Theme) initStyles(p Palette) {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Secondary).
		Background(p.SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	t.Tab = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Padding(0, 1)

	t.TabActive = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Underline(true).
		Padding(0, 1)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.UserBubbleFg).
		Background(p.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(p.BotBubbleFg).
		Background(p.BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.BotBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(p.ErrorBubbleFg).
		Background(p.ErrorBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.ErrorBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.BubbleLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextSecondary)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(p.SurfaceDim).
		Foreground(p.TextSecondary).
		Padding(0, 1)

	t.StatusOK = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)

	t.StatusBad = lipgloss.NewStyle().
		Foreground(p.Danger).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Banners
	t.WarningBanner = lipgloss.NewStyle().
		Foreground(p.TextInverse).
		Background(p.Danger).
		Bold(true).
		Padding(0, 1)

	t.InfoBanner = lipgloss.NewStyle().
		Foreground(p.TextInverse).
		Background(p.Secondary).
		Padding(0, 1)

	// Lists
	t.ListItem = lipgloss.NewStyle().
		Foreground(p.TextPrimary).
		Padding(0, 1)

	t.ListItemSelected = lipgloss.NewStyle().
		Foreground(p.TextInverse).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)

	t.ListTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	t.ListMeta = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Spinner
	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Primary)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Italic(true)

	// Status indicators
	t.SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(p.Danger)
	t.WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	t.InfoStyle = lipgloss.NewStyle().Foreground(p.Secondary)
}
