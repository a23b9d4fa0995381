// Package prompts builds the instruction text sent to the generation client.
// Composition is pure string work so every prompt shape can be asserted in tests.
package prompts

import (
	"fmt"
	"strings"
)

const defaultIdeaCount = 5

const scoutSystemPrompt = `You are a content strategist for a software agency.
Propose blog post ideas that attract senior engineering decision makers.
Each idea must be specific enough to brief a writer without a follow-up call.
Respond with ONLY a JSON array, no prose, no code fences. Each element:
{"title": string, "angle": string, "keywords": [string], "reasoning": string}`

const draftSystemPrompt = `You are a senior technical writer for a software agency.
Write a complete blog post in Markdown, starting with a single H1 title line.
Use H2 section headings, short paragraphs, and concrete examples.
Do not mention that you are an AI or reference these instructions.
Respond with ONLY the Markdown document, nothing else.`

// ScoutSystem returns the system message for trend scouting.
func ScoutSystem() string { return scoutSystemPrompt }

// DraftSystem returns the system message for draft generation.
func DraftSystem() string { return draftSystemPrompt }

// BuildScoutPrompt composes the user message asking for count fresh ideas
// within the given niches, excluding titles already in the pipeline and any
// configured off-limits topics.
func BuildScoutPrompt(niches, exclusions, avoidTopics []string, count int) string {
	if count <= 0 {
		count = defaultIdeaCount
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Propose exactly %d blog post ideas.\n\n", count)

	b.WriteString("Target niches:\n")
	for _, niche := range niches {
		fmt.Fprintf(&b, "- %s\n", niche)
	}

	if len(avoidTopics) > 0 {
		fmt.Fprintf(&b, "\nOff-limits topics: %s.\n", strings.Join(avoidTopics, ", "))
	}

	if len(exclusions) > 0 {
		b.WriteString("\nExisting titles (do not repeat or closely paraphrase these):\n")
		for _, title := range exclusions {
			fmt.Fprintf(&b, "- %s\n", title)
		}
	}

	b.WriteString("\nEvery idea needs a working title, a one-sentence angle, 3-5 SEO keywords, and a short reasoning for why it fits the niches.")

	return b.String()
}

// BuildDraftPrompt composes the user message for writing a full post from an
// approved idea.
func BuildDraftPrompt(title, angle string, keywords []string, brandVoice string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Title: %s\n", title)
	fmt.Fprintf(&b, "Angle: %s\n", angle)

	if len(keywords) > 0 {
		fmt.Fprintf(&b, "Target keywords: %s\n", strings.Join(keywords, ", "))
	}
	if brandVoice != "" {
		fmt.Fprintf(&b, "\nBrand voice: %s\n", brandVoice)
	}

	b.WriteString("\nWrite the full post now. Work the target keywords in naturally and keep the angle front and center.")

	return b.String()
}
