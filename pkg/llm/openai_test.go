package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIProviderStream(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("expected auth header")
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req openAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !req.Stream {
			t.Errorf("expected stream true")
		}
		if req.Temperature != 0.7 {
			t.Errorf("expected temperature 0.7, got %v", req.Temperature)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hello \"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"world\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	provider := NewOpenAIProvider(Config{
		APIURL: server.URL,
		APIKey: "test-key",
		Model:  "gpt-test",
	})

	stream, err := provider.Complete(context.Background(), []Message{
		{Role: "user", Content: "hi"},
	}, Options{Temperature: 0.7})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	content, err := Collect(stream)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if content != "Hello world" {
		t.Fatalf("expected %q, got %q", "Hello world", content)
	}
}

func TestOpenAIProviderAppliesTokenCeiling(t *testing.T) {
	t.Parallel()

	var got openAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	provider := NewOpenAIProvider(Config{APIURL: server.URL, Model: "gpt-test", MaxTokens: 2048})

	stream, err := provider.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, Options{})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	_ = stream.Close()
	if got.MaxTokens != 2048 {
		t.Fatalf("max_tokens = %d, want 2048", got.MaxTokens)
	}

	// Per-request option overrides the configured ceiling.
	stream, err = provider.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, Options{MaxTokens: 64})
	if err != nil {
		t.Fatalf("complete with override: %v", err)
	}
	_ = stream.Close()
	if got.MaxTokens != 64 {
		t.Fatalf("max_tokens = %d, want 64", got.MaxTokens)
	}
}

func TestOpenAIProviderDefaultTokenCeiling(t *testing.T) {
	t.Parallel()

	var got openAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	provider := NewOpenAIProvider(Config{APIURL: server.URL, Model: "gpt-test"})

	stream, err := provider.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, Options{})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	_ = stream.Close()
	if got.MaxTokens != defaultOpenAIMaxTokens {
		t.Fatalf("max_tokens = %d, want %d", got.MaxTokens, defaultOpenAIMaxTokens)
	}
}

func TestOpenAIProviderRequiresModel(t *testing.T) {
	t.Parallel()

	provider := NewOpenAIProvider(Config{})
	if _, err := provider.Complete(context.Background(), nil, Options{}); err == nil {
		t.Fatal("expected error without model")
	}
}

func TestOpenAIProviderSurfacesHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"bad prompt"}`)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(Config{APIURL: server.URL, Model: "gpt-test"})
	if _, err := provider.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, Options{}); err == nil {
		t.Fatal("expected error for 400 response")
	}
}
