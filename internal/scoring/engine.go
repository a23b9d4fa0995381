package scoring

import (
	"math"
	"strings"
)

// Factor weights. These are contract values: changing them breaks scoring
// compatibility with previously persisted ideas.
const (
	weightRelevance = 0.35
	weightSEO       = 0.20
	weightAuthority = 0.20
	weightNovelty   = 0.15
	weightClarity   = 0.10
)

// Input is the scored shape of an idea candidate.
type Input struct {
	Title    string
	Angle    string
	Keywords []string
}

// Breakdown holds the per-factor scores, each in [0,100].
type Breakdown struct {
	Relevance int `json:"relevance"`
	SEO       int `json:"seo"`
	Authority int `json:"authority"`
	Novelty   int `json:"novelty"`
	Clarity   int `json:"clarity"`
}

// Result is the weighted composite plus its breakdown.
type Result struct {
	Total     int
	Breakdown Breakdown
}

// searchIntentTerms signal query-shaped keywords.
var searchIntentTerms = []string{"guide", "strategy", "vs", "comparison", "how to", "checklist", "trends"}

// expertTerms raise the authority factor; beginnerTerms lower it.
var (
	expertTerms   = []string{"scalable", "architecture", "enterprise", "distributed", "microservices", "infrastructure", "kubernetes"}
	beginnerTerms = []string{"easy", "tutorial", "basics", "beginner", "simple", "introduction"}
)

// Score computes the deterministic weighted composite for an idea against the
// configured niches. Pure and side-effect free.
func Score(in Input, niches []string) Result {
	b := Breakdown{
		Relevance: relevance(in, niches),
		SEO:       seo(in.Keywords),
		Authority: authority(in),
		Novelty:   novelty(in.Title),
		Clarity:   clarity(in.Title),
	}
	total := weightRelevance*float64(b.Relevance) +
		weightSEO*float64(b.SEO) +
		weightAuthority*float64(b.Authority) +
		weightNovelty*float64(b.Novelty) +
		weightClarity*float64(b.Clarity)
	return Result{
		Total:     int(math.Round(total)),
		Breakdown: b,
	}
}

// Map renders the breakdown as a factor-name map for persistence.
func (b Breakdown) Map() map[string]int {
	return map[string]int{
		"relevance": b.Relevance,
		"seo":       b.SEO,
		"authority": b.Authority,
		"novelty":   b.Novelty,
		"clarity":   b.Clarity,
	}
}

func relevance(in Input, niches []string) int {
	text := strings.ToLower(in.Title + " " + in.Angle)
	lowered := make([]string, len(niches))
	for i, niche := range niches {
		lowered[i] = strings.ToLower(niche)
	}

	score := 0
	for _, niche := range lowered {
		for _, word := range strings.Fields(niche) {
			if len(word) > 3 && strings.Contains(text, word) {
				score += 15
			}
		}
	}
	// Each keyword earns its bonus once, no matter how many niches it matches.
	for _, keyword := range in.Keywords {
		k := strings.ToLower(keyword)
		for _, niche := range lowered {
			if strings.Contains(niche, k) {
				score += 10
				break
			}
		}
	}
	return clamp(score)
}

func seo(keywords []string) int {
	joined := strings.ToLower(strings.Join(keywords, " "))
	score := 0
	for _, term := range searchIntentTerms {
		if strings.Contains(joined, term) {
			score += 20
			break
		}
	}
	if len(keywords) >= 3 {
		score += 30
	}
	if len(keywords) >= 5 {
		score += 20
	}
	for _, keyword := range keywords {
		if len(strings.Fields(keyword)) > 2 {
			score += 15
		}
	}
	return clamp(score)
}

func authority(in Input) int {
	text := strings.ToLower(in.Title + " " + in.Angle + " " + strings.Join(in.Keywords, " "))
	score := 50
	for _, term := range expertTerms {
		if strings.Contains(text, term) {
			score += 10
		}
	}
	for _, term := range beginnerTerms {
		if strings.Contains(text, term) {
			score -= 15
		}
	}
	if score < 0 {
		return 0
	}
	return clamp(score)
}

// novelty is a placeholder heuristic. A real implementation would compare the
// candidate against existing content for semantic similarity; only two listicle
// title shapes are penalized today.
func novelty(title string) int {
	switch {
	case strings.HasPrefix(title, "Top 10"):
		return 40
	case strings.HasPrefix(title, "5 Best"):
		return 50
	default:
		return 90
	}
}

func clarity(title string) int {
	switch {
	case len(title) < 20:
		return 30
	case len(title) > 100:
		return 60
	case strings.Contains(title, "Things"):
		return 40
	default:
		return 100
	}
}

func clamp(score int) int {
	if score > 100 {
		return 100
	}
	return score
}
