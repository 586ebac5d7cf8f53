package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	apierrors "github.com/andrevm/gemchat/internal/errors"
)

func TestStreamPrinter_PrintsOnlyNewSuffix(t *testing.T) {
	var buf bytes.Buffer
	print := newStreamPrinter(&buf)

	print("Hel")
	print("Hello")
	print("Hello, world")

	if got := buf.String(); got != "Hello, world" {
		t.Errorf("Expected incremental output 'Hello, world', got %q", got)
	}
}

func TestStreamPrinter_IgnoresRepeatedCumulative(t *testing.T) {
	var buf bytes.Buffer
	print := newStreamPrinter(&buf)

	print("abc")
	print("abc")

	if got := buf.String(); got != "abc" {
		t.Errorf("Repeated cumulative text must not reprint, got %q", got)
	}
}

func TestRunQuery_EmptyPrompt(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\n\t"} {
		if err := runQuery(prompt, true); err == nil {
			t.Errorf("Expected error for empty prompt %q", prompt)
		}
	}
}

func TestFormatErrorMessage(t *testing.T) {
	if got := formatErrorMessage(nil, "context"); got != "" {
		t.Errorf("Expected empty string for nil error, got %q", got)
	}

	err := &apierrors.APIError{StatusCode: 503, Endpoint: "https://example.com", Message: "unavailable"}
	msg := formatErrorMessage(err, "Request failed")
	if !strings.Contains(msg, "Request failed") {
		t.Errorf("Missing context in %q", msg)
	}
	if !strings.Contains(msg, "503") {
		t.Errorf("Missing HTTP status in %q", msg)
	}
}

func TestFormatErrorMessage_NetworkHint(t *testing.T) {
	err := &apierrors.NetworkError{Op: "request", Endpoint: "https://example.com", Err: errors.New("refused")}
	msg := formatErrorMessage(err, "Request failed")
	if !strings.Contains(msg, "Hint") {
		t.Errorf("Expected hint for network error, got %q", msg)
	}
}
