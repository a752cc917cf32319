// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// LanguageDisplayName returns the user-facing name for an answer language,
// e.g. "english" -> "English".
func LanguageDisplayName(lang string) string {
	return titleCaser.String(lang)
}

// NextLanguage returns the language after lang in the supported cycle,
// wrapping around. Unknown languages start the cycle over.
func NextLanguage(lang string) string {
	for i, l := range SupportedLanguages {
		if l == lang {
			return SupportedLanguages[(i+1)%len(SupportedLanguages)]
		}
	}
	return SupportedLanguages[0]
}
