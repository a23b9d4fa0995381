package editorial

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"atelier/editorial/internal/guard"
	"atelier/editorial/internal/prompts"
	"atelier/editorial/internal/scoring"
	"atelier/editorial/pkg/logging"
)

// draftTemperature is deliberately higher than the structured-scout
// temperature: long-form prose benefits from variation.
const draftTemperature = 0.7

// TextGenerator is the generation surface the orchestrator needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, user string, temperature float64) (string, error)
	GenerateJSON(ctx context.Context, system, user string, out any) error
}

// PolicyGuard validates text in both directions of the oracle conversation.
type PolicyGuard interface {
	ValidateInput(text string) error
	ValidateOutput(text string) error
}

// RateLimiter enforces the per-actor request budget on generation calls.
type RateLimiter interface {
	CheckAndConsume(ctx context.Context, actorID string) error
}

type OrchestratorConfig struct {
	Store     ContentStore
	Generator TextGenerator
	Guard     PolicyGuard
	Limiter   RateLimiter
	Logger    logging.Logger
}

// Orchestrator coordinates the idea lifecycle. Every entry point is a finite
// sequence with early exit on error; no partial state is committed.
type Orchestrator struct {
	store     ContentStore
	generator TextGenerator
	guard     PolicyGuard
	limiter   RateLimiter
	logger    logging.Logger
}

func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	return &Orchestrator{
		store:     cfg.Store,
		generator: cfg.Generator,
		guard:     cfg.Guard,
		limiter:   cfg.Limiter,
		logger:    cfg.Logger,
	}
}

// rawCandidate is the shape the oracle is asked to return.
type rawCandidate struct {
	Title     string   `json:"title"`
	Angle     string   `json:"angle"`
	Keywords  []string `json:"keywords"`
	Reasoning string   `json:"reasoning"`
}

// ScoutTrends asks the oracle for fresh idea candidates, scores them, and
// returns them sorted by score descending. Candidates are transient; nothing
// is persisted until ApproveIdeas.
func (o *Orchestrator) ScoutTrends(ctx context.Context, actorID string) (candidates []Candidate, err error) {
	defer observe("scout", time.Now())(&err)

	if err = o.limiter.CheckAndConsume(ctx, actorID); err != nil {
		return nil, err
	}

	settings, err := o.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if err = settings.Validate(); err != nil {
		return nil, err
	}

	exclusions, err := o.store.FindIdeaTitles(ctx)
	if err != nil {
		return nil, err
	}

	userPrompt := prompts.BuildScoutPrompt(settings.Niches, exclusions, settings.ExcludedTopics, settings.IdeasPerScout)
	if err = o.guard.ValidateInput(userPrompt); err != nil {
		return nil, err
	}

	// Two-stage decode: malformed JSON is a generation failure, but valid
	// JSON of the wrong shape is the caller-retryable validation case.
	var payload json.RawMessage
	if err = o.generator.GenerateJSON(ctx, prompts.ScoutSystem(), userPrompt, &payload); err != nil {
		return nil, err
	}
	var raw []rawCandidate
	if err = json.Unmarshal(payload, &raw); err != nil {
		return nil, &ValidationError{Field: "ideas", Detail: "oracle response is not an idea list"}
	}
	if len(raw) == 0 {
		return nil, &ValidationError{Field: "ideas", Detail: "oracle returned an empty idea list"}
	}

	candidates = make([]Candidate, 0, len(raw))
	for i, r := range raw {
		if strings.TrimSpace(r.Title) == "" {
			return nil, &ValidationError{Field: "ideas", Detail: fmt.Sprintf("idea %d has no title", i)}
		}
		if strings.TrimSpace(r.Angle) == "" {
			return nil, &ValidationError{Field: "ideas", Detail: fmt.Sprintf("idea %d has no angle", i)}
		}
		result := scoring.Score(scoring.Input{
			Title:    r.Title,
			Angle:    r.Angle,
			Keywords: r.Keywords,
		}, settings.Niches)
		candidates = append(candidates, Candidate{
			Title:          r.Title,
			Angle:          r.Angle,
			Keywords:       r.Keywords,
			Reasoning:      r.Reasoning,
			Score:          result.Total,
			ScoreBreakdown: result.Breakdown.Map(),
		})
	}

	// Stable sort preserves oracle order between equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	o.logger.WithFields(logging.Fields{
		"actor_id":   actorID,
		"candidates": len(candidates),
	}).Info("Scout run complete")
	return candidates, nil
}

// ApproveIdeas persists the given candidates as APPROVED, filtering out any
// whose title already exists among non-rejected ideas. Resubmitting a batch
// inserts nothing and reports zero, so callers can retry safely.
func (o *Orchestrator) ApproveIdeas(ctx context.Context, batch []Candidate) (count int, err error) {
	defer observe("approve", time.Now())(&err)

	if len(batch) == 0 {
		return 0, &ValidationError{Field: "ideas", Detail: "batch is empty"}
	}
	for i, c := range batch {
		if strings.TrimSpace(c.Title) == "" {
			return 0, &ValidationError{Field: "ideas", Detail: fmt.Sprintf("idea %d has no title", i)}
		}
		if strings.TrimSpace(c.Angle) == "" {
			return 0, &ValidationError{Field: "ideas", Detail: fmt.Sprintf("idea %d has no angle", i)}
		}
		if c.Score < 0 || c.Score > 100 {
			return 0, &ValidationError{Field: "ideas", Detail: fmt.Sprintf("idea %d score %d outside [0,100]", i, c.Score)}
		}
		for factor, v := range c.ScoreBreakdown {
			if v < 0 || v > 100 {
				return 0, &ValidationError{Field: "ideas", Detail: fmt.Sprintf("idea %d factor %s score %d outside [0,100]", i, factor, v)}
			}
		}
	}

	existing, err := o.store.FindIdeaTitles(ctx)
	if err != nil {
		return 0, err
	}
	taken := make(map[string]bool, len(existing))
	for _, title := range existing {
		taken[strings.ToLower(title)] = true
	}

	var fresh []Idea
	for _, c := range batch {
		key := strings.ToLower(strings.TrimSpace(c.Title))
		if taken[key] {
			continue
		}
		taken[key] = true // dedupe within the batch too
		fresh = append(fresh, Idea{
			Title:          strings.TrimSpace(c.Title),
			Angle:          c.Angle,
			Keywords:       c.Keywords,
			Reasoning:      c.Reasoning,
			Score:          c.Score,
			ScoreBreakdown: c.ScoreBreakdown,
		})
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	inserted, err := o.store.InsertIdeas(ctx, fresh)
	if err != nil {
		return 0, err
	}

	ideasApprovedTotal.Add(float64(len(inserted)))
	o.logger.WithFields(logging.Fields{
		"submitted": len(batch),
		"inserted":  len(inserted),
	}).Info("Ideas approved")
	return len(inserted), nil
}

// GenerateDraft turns an approved idea into a draft post through a guarded
// generation pass, then transitions the idea to DRAFTED.
func (o *Orchestrator) GenerateDraft(ctx context.Context, ideaID, actorID string) (post Post, err error) {
	defer observe("draft", time.Now())(&err)

	if err = o.limiter.CheckAndConsume(ctx, actorID); err != nil {
		return Post{}, err
	}

	idea, err := o.store.FindIdeaByID(ctx, ideaID)
	if err != nil {
		return Post{}, err
	}
	settings, err := o.store.GetSettings(ctx)
	if err != nil {
		return Post{}, err
	}
	if idea.Status != StatusApproved {
		return Post{}, fmt.Errorf("idea %s in status %s: %w", idea.ID, idea.Status, ErrIdeaNotApproved)
	}

	userPrompt := prompts.BuildDraftPrompt(idea.Title, idea.Angle, idea.Keywords, settings.BrandVoice)
	framed := guard.InjectContext(userPrompt, settings.Niches, settings.BrandVoice)
	if err = o.guard.ValidateInput(framed); err != nil {
		return Post{}, err
	}

	body, err := o.generator.GenerateText(ctx, prompts.DraftSystem(), framed, draftTemperature)
	if err != nil {
		return Post{}, err
	}
	// Fail closed: a violating draft is discarded entirely, never saved.
	if err = o.guard.ValidateOutput(body); err != nil {
		return Post{}, err
	}

	slug := Slugify(idea.Title)
	exists, err := o.store.SlugExists(ctx, slug)
	if err != nil {
		return Post{}, err
	}
	if exists {
		slug = WithRandomSuffix(slug)
	}

	post, err = o.store.CreatePost(ctx, Post{
		IdeaID:       idea.ID,
		Slug:         slug,
		Title:        idea.Title,
		BodyMarkdown: body,
		Status:       PostStatusDraft,
	})
	if err != nil {
		return Post{}, err
	}

	if err = o.store.UpdateIdeaStatus(ctx, idea.ID, StatusDrafted, post.ID); err != nil {
		return Post{}, err
	}

	o.logger.WithFields(logging.Fields{
		"actor_id": actorID,
		"idea_id":  idea.ID,
		"post_id":  post.ID,
		"slug":     post.Slug,
	}).Info("Draft generated")
	return post, nil
}

// ListIdeas returns persisted ideas, optionally filtered by status.
func (o *Orchestrator) ListIdeas(ctx context.Context, status IdeaStatus) ([]Idea, error) {
	if status != "" && !ValidStatus(status) {
		return nil, &ValidationError{Field: "status", Detail: fmt.Sprintf("unknown status %q", status)}
	}
	return o.store.ListIdeas(ctx, status)
}

func observe(op string, start time.Time) func(*error) {
	return func(err *error) {
		status := "ok"
		if *err != nil {
			status = "error"
		}
		lifecycleOpsTotal.WithLabelValues(op, status).Inc()
		lifecycleDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
