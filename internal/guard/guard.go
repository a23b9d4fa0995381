package guard

import (
	"fmt"
	"strings"
)

const minInputLength = 10

// Violation is returned when text fails the safety policy. The pipeline fails
// closed on any violation: no partial output is surfaced.
type Violation struct {
	Rule   string
	Detail string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("policy violation (%s): %s", v.Rule, v.Detail)
}

// Rule is a single ordered policy predicate. Check returns a non-empty detail
// string when the text violates the rule.
type Rule struct {
	Name  string
	Check func(text string) string
}

// forbiddenTerms is the fixed policy list applied symmetrically to prompts and
// generated output: oracle vendor leakage, AI self-reference, aggressive sales
// language, and competitor names.
var forbiddenTerms = []string{
	"openai",
	"chatgpt",
	"gpt-4",
	"anthropic",
	"claude",
	"as an ai",
	"as a language model",
	"i am an ai",
	"buy now",
	"act now",
	"limited time offer",
	"money-back guarantee",
	"pixelforge",
	"codesmiths",
	"devhaus",
}

func forbiddenTermRule() Rule {
	return Rule{
		Name: "forbidden_term",
		Check: func(text string) string {
			lowered := strings.ToLower(text)
			for _, term := range forbiddenTerms {
				if strings.Contains(lowered, term) {
					return fmt.Sprintf("contains forbidden term %q", term)
				}
			}
			return ""
		},
	}
}

func minLengthRule() Rule {
	return Rule{
		Name: "min_length",
		Check: func(text string) string {
			if len(strings.TrimSpace(text)) < minInputLength {
				return fmt.Sprintf("input shorter than %d characters", minInputLength)
			}
			return ""
		},
	}
}

func structureRule() Rule {
	return Rule{
		Name: "structure",
		Check: func(text string) string {
			if !strings.Contains(text, "#") {
				return "output contains no heading marker"
			}
			return ""
		},
	}
}

// Guard validates text flowing into and out of the generation oracle against
// ordered rule lists. Rules are composable so term lists, regex checks or
// future semantic filters can be added without touching callers.
type Guard struct {
	inputRules  []Rule
	outputRules []Rule
}

// New returns a Guard carrying the default editorial policy.
func New() *Guard {
	return &Guard{
		inputRules:  []Rule{minLengthRule(), forbiddenTermRule()},
		outputRules: []Rule{forbiddenTermRule(), structureRule()},
	}
}

// NewWithRules builds a Guard from explicit rule lists.
func NewWithRules(input, output []Rule) *Guard {
	return &Guard{inputRules: input, outputRules: output}
}

// ValidateInput checks a prompt before it reaches the oracle.
func (g *Guard) ValidateInput(text string) error {
	return run(g.inputRules, text)
}

// ValidateOutput checks generated text before it is persisted or surfaced.
func (g *Guard) ValidateOutput(text string) error {
	return run(g.outputRules, text)
}

func run(rules []Rule, text string) error {
	for _, rule := range rules {
		if detail := rule.Check(text); detail != "" {
			violationsTotal.WithLabelValues(rule.Name).Inc()
			return &Violation{Rule: rule.Name, Detail: detail}
		}
	}
	return nil
}

// InjectContext prepends the editorial system framing to a prompt. Pure string
// composition; no validation happens here.
func InjectContext(prompt string, niches []string, brandVoice string) string {
	var b strings.Builder
	b.WriteString("You are the content engine for a software agency. Write for its marketing site.\n")
	if len(niches) > 0 {
		fmt.Fprintf(&b, "Target niches: %s.\n", strings.Join(niches, ", "))
	}
	if brandVoice != "" {
		fmt.Fprintf(&b, "Brand voice: %s.\n", brandVoice)
	}
	b.WriteString("\n")
	b.WriteString(prompt)
	return b.String()
}
