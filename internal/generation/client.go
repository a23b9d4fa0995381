// Package generation wraps the LLM provider behind a typed client that
// handles timeouts, fence stripping, and structured JSON responses.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"atelier/editorial/pkg/llm"
	"atelier/editorial/pkg/logging"
)

const (
	// DefaultTimeout bounds a single generation call end to end,
	// including the provider's internal retries.
	DefaultTimeout = 45 * time.Second

	// jsonTemperature keeps structured responses deterministic enough to parse.
	jsonTemperature = 0.4
)

// ErrNotConfigured is returned when no provider is wired, e.g. the service was
// started without LLM credentials.
var ErrNotConfigured = errors.New("generation: provider not configured")

// Error wraps a provider or parse failure with the stage it occurred in.
type Error struct {
	Stage string // "complete" or "parse"
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("generation %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type Config struct {
	Provider llm.Provider
	Timeout  time.Duration
	Logger   logging.Logger
}

type Client struct {
	provider llm.Provider
	timeout  time.Duration
	logger   logging.Logger
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		provider: cfg.Provider,
		timeout:  cfg.Timeout,
		logger:   cfg.Logger,
	}
}

// Configured reports whether a provider is wired.
func (c *Client) Configured() bool { return c.provider != nil }

// GenerateText runs a single completion and returns the trimmed full response.
func (c *Client) GenerateText(ctx context.Context, system, user string, temperature float64) (string, error) {
	return c.complete(ctx, "text", system, user, temperature)
}

// GenerateJSON runs a completion at a low fixed temperature, strips Markdown
// code fences the model may wrap the payload in, and unmarshals into out.
func (c *Client) GenerateJSON(ctx context.Context, system, user string, out any) error {
	user += "\n\nRespond with pure JSON only. No code fences, no commentary."

	raw, err := c.complete(ctx, "json", system, user, jsonTemperature)
	if err != nil {
		return err
	}

	cleaned := stripCodeFences(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		generationParseFailures.Inc()
		if c.logger != nil {
			c.logger.WithError(err).WithField("response_length", len(raw)).Warn("Generation: response is not valid JSON")
		}
		return &Error{Stage: "parse", Err: err}
	}
	return nil
}

func (c *Client) complete(ctx context.Context, kind, system, user string, temperature float64) (string, error) {
	if c.provider == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	stream, err := c.provider.Complete(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, llm.Options{Temperature: temperature})
	if err != nil {
		generationCallsTotal.WithLabelValues(kind, "error").Inc()
		return "", &Error{Stage: "complete", Err: err}
	}

	content, err := llm.Collect(stream)
	generationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		generationCallsTotal.WithLabelValues(kind, "error").Inc()
		return "", &Error{Stage: "complete", Err: err}
	}

	generationCallsTotal.WithLabelValues(kind, "ok").Inc()
	return content, nil
}

// stripCodeFences removes a leading ```json (or bare ```) fence and its
// closing fence. Models add these despite instructions not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag on the opening fence line.
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
