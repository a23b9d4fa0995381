package guard

import (
	"errors"
	"strings"
	"testing"
)

func TestForbiddenTermFailsBothDirections(t *testing.T) {
	g := New()
	for _, text := range []string{
		"# Draft\nThis post was written by openai tooling.",
		"# Draft\nOpenAI is mentioned here.",
		"# Draft\nOPENAI in caps.",
	} {
		if err := g.ValidateInput(text); err == nil {
			t.Fatalf("expected input violation for %q", text)
		}
		if err := g.ValidateOutput(text); err == nil {
			t.Fatalf("expected output violation for %q", text)
		}
	}
}

func TestViolationCarriesRuleName(t *testing.T) {
	g := New()
	err := g.ValidateOutput("# Heading\nact now and save big")
	if err == nil {
		t.Fatal("expected violation")
	}
	var v *Violation
	if !errors.As(err, &v) {
		t.Fatalf("expected *Violation, got %T", err)
	}
	if v.Rule != "forbidden_term" {
		t.Fatalf("expected forbidden_term rule, got %q", v.Rule)
	}
}

func TestInputMinLength(t *testing.T) {
	g := New()
	if err := g.ValidateInput("short"); err == nil {
		t.Fatal("expected violation for degenerate prompt")
	}
	if err := g.ValidateInput("a prompt long enough to pass the policy"); err != nil {
		t.Fatalf("unexpected violation: %v", err)
	}
}

func TestOutputRequiresHeading(t *testing.T) {
	g := New()
	if err := g.ValidateOutput("a wall of text with no structure at all"); err == nil {
		t.Fatal("expected violation for unstructured output")
	}
	if err := g.ValidateOutput("# Title\n\nbody"); err != nil {
		t.Fatalf("unexpected violation: %v", err)
	}
}

func TestOutputHasNoMinLengthRule(t *testing.T) {
	g := New()
	if err := g.ValidateOutput("# ok"); err != nil {
		t.Fatalf("short structured output should pass: %v", err)
	}
}

func TestInjectContextFraming(t *testing.T) {
	out := InjectContext("Write the post.", []string{"Cloud Migration", "DevOps"}, "confident but plain")
	if !strings.Contains(out, "Cloud Migration, DevOps") {
		t.Fatalf("expected niches in framing: %s", out)
	}
	if !strings.Contains(out, "confident but plain") {
		t.Fatalf("expected brand voice in framing: %s", out)
	}
	if !strings.HasSuffix(out, "Write the post.") {
		t.Fatalf("expected original prompt at the end: %s", out)
	}
}

func TestNewWithRulesOrdering(t *testing.T) {
	calls := []string{}
	mk := func(name string) Rule {
		return Rule{Name: name, Check: func(string) string {
			calls = append(calls, name)
			return ""
		}}
	}
	g := NewWithRules([]Rule{mk("first"), mk("second")}, nil)
	if err := g.ValidateInput("anything at all"); err != nil {
		t.Fatalf("unexpected violation: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("rules ran out of order: %v", calls)
	}
}
