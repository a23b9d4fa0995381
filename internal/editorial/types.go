// Package editorial implements the idea lifecycle: trend scouting, approval,
// and draft generation, backed by Postgres.
package editorial

import (
	"strings"
	"time"
)

// IdeaStatus is the lifecycle state of an idea. Transitions only move forward:
// PROPOSED -> APPROVED -> DRAFTED, with REJECTED as a terminal branch.
type IdeaStatus string

const (
	StatusProposed IdeaStatus = "PROPOSED"
	StatusApproved IdeaStatus = "APPROVED"
	StatusDrafted  IdeaStatus = "DRAFTED"
	StatusRejected IdeaStatus = "REJECTED"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s IdeaStatus) bool {
	switch s {
	case StatusProposed, StatusApproved, StatusDrafted, StatusRejected:
		return true
	}
	return false
}

// Idea is a persisted content idea.
type Idea struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Angle          string         `json:"angle"`
	Keywords       []string       `json:"keywords"`
	Reasoning      string         `json:"reasoning,omitempty"`
	Score          int            `json:"score"`
	ScoreBreakdown map[string]int `json:"score_breakdown,omitempty"`
	Status         IdeaStatus     `json:"status"`
	PostID         string         `json:"post_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Candidate is a scored scout result that has not been persisted yet.
type Candidate struct {
	Title          string         `json:"title"`
	Angle          string         `json:"angle"`
	Keywords       []string       `json:"keywords"`
	Reasoning      string         `json:"reasoning,omitempty"`
	Score          int            `json:"score"`
	ScoreBreakdown map[string]int `json:"score_breakdown"`
}

// Post is a generated draft article.
type Post struct {
	ID           string    `json:"id"`
	IdeaID       string    `json:"idea_id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	BodyMarkdown string    `json:"body_markdown"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// PostStatusDraft is the only status generated posts are created in.
// Publishing is a separate concern outside this service.
const PostStatusDraft = "DRAFT"

// Settings is the single-row editorial configuration.
type Settings struct {
	Niches         []string `json:"niches"`
	ExcludedTopics []string `json:"excluded_topics"`
	BrandVoice     string   `json:"brand_voice"`
	IdeasPerScout  int      `json:"ideas_per_scout"`
}

// Validate checks that the settings can drive a scout run.
func (s Settings) Validate() error {
	niches := 0
	for _, n := range s.Niches {
		if strings.TrimSpace(n) != "" {
			niches++
		}
	}
	if niches == 0 {
		return ErrNoNiches
	}
	return nil
}
