// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	dark := NewTheme("dark")
	if dark.Name != "dark" {
		t.Errorf("Name = %q, want dark", dark.Name)
	}

	light := NewTheme("light")
	if light.Name != "light" {
		t.Errorf("Name = %q, want light", light.Name)
	}

	// Unknown names fall back to dark.
	if got := NewTheme("solarized").Name; got != "dark" {
		t.Errorf("NewTheme(solarized).Name = %q, want dark", got)
	}
}

func TestToggle(t *testing.T) {
	theme := NewTheme("dark")

	toggled := theme.Toggle()
	if toggled.Name != "light" {
		t.Errorf("Toggle().Name = %q, want light", toggled.Name)
	}
	if back := toggled.Toggle(); back.Name != "dark" {
		t.Errorf("double Toggle().Name = %q, want dark", back.Name)
	}
}

func TestPaletteFor(t *testing.T) {
	if PaletteFor("light").Surface != LightPalette().Surface {
		t.Error("PaletteFor(light) != LightPalette()")
	}
	if PaletteFor("dark").Surface != DarkPalette().Surface {
		t.Error("PaletteFor(dark) != DarkPalette()")
	}
	if PaletteFor("bogus").Surface != DarkPalette().Surface {
		t.Error("PaletteFor(bogus) did not default to dark")
	}
}
