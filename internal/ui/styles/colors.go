// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the docchat TUI.
// Unlike terminal-detected themes, the palette follows the user's explicit
// dark/light choice so it can be toggled at runtime and persisted.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette holds the colors for one theme.
type Palette struct {
	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color

	// Surfaces
	Surface       lipgloss.Color
	SurfaceDim    lipgloss.Color
	SurfaceBright lipgloss.Color
	Overlay       lipgloss.Color

	// Text
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextInverse   lipgloss.Color

	// Bubbles
	UserBubbleBg      lipgloss.Color
	UserBubbleFg      lipgloss.Color
	UserBubbleBorder  lipgloss.Color
	BotBubbleBg       lipgloss.Color
	BotBubbleFg       lipgloss.Color
	BotBubbleBorder   lipgloss.Color
	ErrorBubbleBg     lipgloss.Color
	ErrorBubbleFg     lipgloss.Color
	ErrorBubbleBorder lipgloss.Color
}

// DarkPalette is the default theme.
func DarkPalette() Palette {
	return Palette{
		Primary:   "#A78BFA",
		Secondary: "#22D3EE",
		Success:   "#34D399",
		Warning:   "#FBBF24",
		Danger:    "#FB7185",

		Surface:       "#1E1E2E",
		SurfaceDim:    "#181825",
		SurfaceBright: "#313244",
		Overlay:       "#45475A",

		TextPrimary:   "#CDD6F4",
		TextSecondary: "#A6ADC8",
		TextMuted:     "#6C7086",
		TextInverse:   "#1E1E2E",

		UserBubbleBg:     "#1D4ED8",
		UserBubbleFg:     "#E0F2FE",
		UserBubbleBorder: "#3B82F6",

		BotBubbleBg:     "#3B3655",
		BotBubbleFg:     "#E9E4F5",
		BotBubbleBorder: "#A78BFA",

		ErrorBubbleBg:     "#881337",
		ErrorBubbleFg:     "#FECDD3",
		ErrorBubbleBorder: "#FB7185",
	}
}

// LightPalette mirrors the web client's light mode.
func LightPalette() Palette {
	return Palette{
		Primary:   "#7C3AED",
		Secondary: "#0891B2",
		Success:   "#059669",
		Warning:   "#D97706",
		Danger:    "#E11D48",

		Surface:       "#FFFFFF",
		SurfaceDim:    "#F5F5F5",
		SurfaceBright: "#FAFAFA",
		Overlay:       "#D4D4D4",

		TextPrimary:   "#1F2937",
		TextSecondary: "#6B7280",
		TextMuted:     "#9CA3AF",
		TextInverse:   "#FFFFFF",

		UserBubbleBg:     "#DBEAFE",
		UserBubbleFg:     "#1E40AF",
		UserBubbleBorder: "#3B82F6",

		BotBubbleBg:     "#F5F3FF",
		BotBubbleFg:     "#5B4B8A",
		BotBubbleBorder: "#C4B5FD",

		ErrorBubbleBg:     "#FFF1F2",
		ErrorBubbleFg:     "#BE123C",
		ErrorBubbleBorder: "#FB7185",
	}
}

// PaletteFor returns the palette for a theme name, defaulting to dark.
func PaletteFor(theme string) Palette {
	if theme == "light" {
		return LightPalette()
	}
	return DarkPalette()
}
