package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/andrevm/gemchat/internal/errors"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient("http://localhost:8000/api/chat")
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}
	if client.Endpoint() != "http://localhost:8000/api/chat" {
		t.Errorf("Unexpected endpoint: %s", client.Endpoint())
	}
}

func TestNewClient_EmptyEndpoint(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("Expected error for empty endpoint")
	}
}

func TestStreamMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got '%s'", ct)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		flusher, _ := w.(http.Flusher)

		fmt.Fprint(w, "data: {\"text\":\"Hel\"}\n\n")
		flusher.Flush()
		fmt.Fprint(w, "data: {\"text\":\"lo\"}\n\n")
		flusher.Flush()
		fmt.Fprint(w, "data: {\"done\": true}\n\n")
	}))
	defer server.Close()

	client, err := NewClient(server.URL + "/api/chat")
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}

	var deltas []string
	got, err := client.StreamMessage("hi there", func(cumulative string) {
		deltas = append(deltas, cumulative)
	})
	if err != nil {
		t.Fatalf("StreamMessage() returned error: %v", err)
	}

	if got != "Hello" {
		t.Errorf("Expected 'Hello', got '%s'", got)
	}
	if len(deltas) == 0 || deltas[len(deltas)-1] != "Hello" {
		t.Errorf("Expected final cumulative delta 'Hello', got %v", deltas)
	}
}

func TestStreamMessage_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL + "/api/chat")
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}

	calls := 0
	_, err = client.StreamMessage("hi", func(string) { calls++ })
	if err == nil {
		t.Fatal("Expected error for HTTP 500")
	}
	if status := apierrors.GetHTTPStatus(err); status != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d (%v)", status, err)
	}
	if calls != 0 {
		t.Errorf("No deltas should be delivered on transport failure, got %d", calls)
	}
}

func TestStreamMessage_EmptyMessage(t *testing.T) {
	client, err := NewClient("http://localhost:8000/api/chat")
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}

	for _, message := range []string{"", "   ", "\n\t"} {
		if _, err := client.StreamMessage(message, nil); err != apierrors.ErrEmptyMessage {
			t.Errorf("Expected ErrEmptyMessage for %q, got %v", message, err)
		}
	}
}

func TestStreamMessage_Unreachable(t *testing.T) {
	// Port 1 is essentially never listening.
	client, err := NewClient("http://127.0.0.1:1/api/chat")
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}

	_, err = client.StreamMessage("hi", nil)
	if err == nil {
		t.Fatal("Expected error for unreachable backend")
	}
	if !apierrors.IsNetworkError(err) {
		t.Errorf("Expected NetworkError, got %T: %v", err, err)
	}
}
