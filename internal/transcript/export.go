package transcript

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ExportFormat represents the format for exporting a transcript
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ParseExportFormat maps a config value to an ExportFormat. Unknown or
// empty values fall back to markdown.
func ParseExportFormat(s string) ExportFormat {
	if ExportFormat(s) == ExportFormatJSON {
		return ExportFormatJSON
	}
	return ExportFormatMarkdown
}

// Export renders the transcript in the given format, returning the
// content and the file extension it should be saved with.
func Export(turns []Turn, format ExportFormat) (content, ext string, err error) {
	if format == ExportFormatJSON {
		content, err = ExportJSON(turns)
		return content, "json", err
	}
	return ExportMarkdown(turns), "md", nil
}

// ExportMarkdown renders the transcript as a Markdown document.
func ExportMarkdown(turns []Turn) string {
	var sb strings.Builder

	sb.WriteString("# Chat transcript\n\n")
	sb.WriteString("**Exported:** ")
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	sb.WriteString("\n\n---\n\n")

	for _, turn := range turns {
		switch turn.Role {
		case RoleUser:
			sb.WriteString("## You\n\n")
		case RoleModel:
			sb.WriteString("## Model\n\n")
		}
		sb.WriteString(turn.Text)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// exportedTurn is the JSON shape of a single turn.
type exportedTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// ExportJSON renders the transcript as indented JSON.
func ExportJSON(turns []Turn) (string, error) {
	out := make([]exportedTurn, 0, len(turns))
	for _, turn := range turns {
		out = append(out, exportedTurn{Role: turn.Role, Text: turn.Text})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal transcript: %w", err)
	}
	return string(data), nil
}
