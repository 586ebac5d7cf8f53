package transcript

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestExportMarkdown(t *testing.T) {
	turns := []Turn{
		{Role: RoleUser, Text: "What is Go?"},
		{Role: RoleModel, Text: "A programming language."},
	}

	out := ExportMarkdown(turns)

	if !strings.Contains(out, "## You\n\nWhat is Go?") {
		t.Errorf("Missing user turn in export:\n%s", out)
	}
	if !strings.Contains(out, "## Model\n\nA programming language.") {
		t.Errorf("Missing model turn in export:\n%s", out)
	}
}

func TestExportMarkdown_Empty(t *testing.T) {
	out := ExportMarkdown(nil)
	if !strings.Contains(out, "# Chat transcript") {
		t.Errorf("Expected header even for empty transcript, got:\n%s", out)
	}
}

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ExportFormat
	}{
		{"json", ExportFormatJSON},
		{"markdown", ExportFormatMarkdown},
		{"", ExportFormatMarkdown},
		{"yaml", ExportFormatMarkdown},
	}

	for _, tt := range tests {
		if got := ParseExportFormat(tt.input); got != tt.expected {
			t.Errorf("ParseExportFormat(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestExport_FormatDispatch(t *testing.T) {
	turns := []Turn{
		{Role: RoleUser, Text: "hi"},
		{Role: RoleModel, Text: "hello"},
	}

	content, ext, err := Export(turns, ExportFormatMarkdown)
	if err != nil {
		t.Fatalf("Export(markdown) failed: %v", err)
	}
	if ext != "md" {
		t.Errorf("Expected extension 'md', got %q", ext)
	}
	if !strings.Contains(content, "# Chat transcript") {
		t.Errorf("Markdown export missing header:\n%s", content)
	}

	content, ext, err = Export(turns, ExportFormatJSON)
	if err != nil {
		t.Fatalf("Export(json) failed: %v", err)
	}
	if ext != "json" {
		t.Errorf("Expected extension 'json', got %q", ext)
	}
	var decoded []map[string]string
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		t.Fatalf("JSON export is not valid JSON: %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	turns := []Turn{
		{Role: RoleUser, Text: "hi"},
		{Role: RoleModel, Text: "hello"},
	}

	out, err := ExportJSON(turns)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var decoded []map[string]string
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("Expected 2 turns, got %d", len(decoded))
	}
	if decoded[0]["role"] != "user" || decoded[1]["role"] != "model" {
		t.Errorf("Unexpected roles in %v", decoded)
	}
}
