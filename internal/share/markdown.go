// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package share

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/docchat/docchat/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown format.
type MarkdownExporter struct{}

// Export converts a transcript to Markdown.
func (MarkdownExporter) Export(t *model.Transcript) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript is nil")
	}
	if len(t.Entries) == 0 {
		return nil, fmt.Errorf("transcript has no entries")
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", t.Title()))
	sb.WriteString(fmt.Sprintf("- **Session**: %s\n", t.SessionID))
	if !t.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Created**: %s\n", t.CreatedAt.Format("2006-01-02 15:04:05")))
	}
	sb.WriteString(fmt.Sprintf("- **Exchanges**: %d\n", t.Len()))
	sb.WriteString(fmt.Sprintf("- **Exported**: %s\n", time.Now().Format(time.RFC3339)))
	sb.WriteString("\n---\n\n")

	for _, e := range t.Entries {
		sb.WriteString("## You\n\n")
		sb.WriteString(e.Question)
		sb.WriteString("\n\n")
		if !e.Pending {
			sb.WriteString("## Assistant\n\n")
			sb.WriteString(e.Answer)
			sb.WriteString("\n\n")
		}
	}

	return []byte(sb.String()), nil
}

func (MarkdownExporter) FileExtension() string { return ".md" }

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports transcripts as indented JSON.
type JSONExporter struct{}

func (JSONExporter) Export(t *model.Transcript) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript is nil")
	}
	return json.MarshalIndent(t, "", "  ")
}

func (JSONExporter) FileExtension() string { return ".json" }
