// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package share builds shareable session links and exports transcripts
// to plain text, Markdown, and JSON files.
package share

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docchat/docchat/internal/model"
)

// =============================================================================
// SHARE LINKS
// =============================================================================

// Link builds a shareable URL for a session. Anyone opening the client
// with this link adopts the session and sees its history.
func Link(baseURL, sessionID string) string {
	return strings.TrimRight(baseURL, "/") + "?session=" + url.QueryEscape(sessionID)
}

// =============================================================================
// EXPORTERS
// =============================================================================

// Exporter converts a transcript to a target format.
type Exporter interface {
	// Export renders the transcript and returns the content.
	Export(t *model.Transcript) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".txt").
	FileExtension() string
}

// ExportText renders a transcript in the plain Q/A format used for
// downloaded chats. Exchanges are separated by blank lines; a pending
// entry contributes only its question.
func ExportText(t *model.Transcript) string {
	var lines []string
	for _, e := range t.Entries {
		lines = append(lines, "Q: "+e.Question)
		if !e.Pending {
			lines = append(lines, "A: "+e.Answer)
		}
	}
	return strings.Join(lines, "\n\n")
}

// TextExporter exports transcripts as plain text.
type TextExporter struct{}

func (TextExporter) Export(t *model.Transcript) ([]byte, error) {
	return []byte(ExportText(t)), nil
}

func (TextExporter) FileExtension() string { return ".txt" }

// =============================================================================
// FILE EXPORT
// =============================================================================

// DefaultFilename returns the download-style filename for a transcript
// export, chat-<session>-<date><ext>.
func DefaultFilename(sessionID string, ext string) string {
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("chat-%s-%s%s", sanitizeFilename(sessionID), date, ext)
}

// ExportToFile writes a transcript to dir using the given exporter and
// returns the output path.
func ExportToFile(t *model.Transcript, exporter Exporter, dir string) (string, error) {
	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outputPath := filepath.Join(dir, DefaultFilename(t.SessionID, exporter.FileExtension()))
	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return outputPath, nil
}

// sanitizeFilename strips characters that are unsafe in filenames.
func sanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
