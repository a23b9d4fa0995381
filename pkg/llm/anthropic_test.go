package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicProviderStream(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("expected api key header")
		}
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.System != "be helpful" {
			t.Errorf("expected system prompt split out, got %q", req.System)
		}
		if len(req.Messages) != 1 {
			t.Errorf("expected one non-system message, got %d", len(req.Messages))
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\":\"content_block_start\",\"content_block\":{\"type\":\"text\",\"text\":\"\"}}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"content_block_delta\",\"delta\":{\"text\":\"Hi \"}}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"content_block_delta\",\"delta\":{\"text\":\"there\"}}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"message_stop\"}\n\n")
	}))
	defer server.Close()

	provider := NewAnthropicProvider(Config{
		APIURL: server.URL,
		APIKey: "test-key",
		Model:  "claude-test",
	})

	stream, err := provider.Complete(context.Background(), []Message{
		{Role: "system", Content: "be helpful"},
		{Role: "user", Content: "hi"},
	}, Options{Temperature: 0.4})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	content, err := Collect(stream)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if content != "Hi there" {
		t.Fatalf("expected %q, got %q", "Hi there", content)
	}
}

func TestAnthropicProviderRequiresModel(t *testing.T) {
	t.Parallel()

	provider := NewAnthropicProvider(Config{})
	if _, err := provider.Complete(context.Background(), nil, Options{}); err == nil {
		t.Fatal("expected error without model")
	}
}
