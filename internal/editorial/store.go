package editorial

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code for unique constraint breaches.
const uniqueViolation = "23505"

// ContentStore is the persistence surface the orchestrator needs.
type ContentStore interface {
	GetSettings(ctx context.Context) (Settings, error)
	FindIdeaTitles(ctx context.Context) ([]string, error)
	InsertIdeas(ctx context.Context, ideas []Idea) ([]Idea, error)
	ListIdeas(ctx context.Context, status IdeaStatus) ([]Idea, error)
	FindIdeaByID(ctx context.Context, id string) (Idea, error)
	UpdateIdeaStatus(ctx context.Context, id string, status IdeaStatus, postID string) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	CreatePost(ctx context.Context, post Post) (Post, error)
}

type SQLContentStore struct {
	db *sql.DB
}

func NewContentStore(db *sql.DB) *SQLContentStore {
	return &SQLContentStore{db: db}
}

func (s *SQLContentStore) GetSettings(ctx context.Context) (Settings, error) {
	if s == nil || s.db == nil {
		return Settings{}, errors.New("content store unavailable")
	}

	var settings Settings
	var brandVoice sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT niches, excluded_topics, brand_voice, ideas_per_scout
		FROM editorial.settings
		LIMIT 1
	`).Scan(pq.Array(&settings.Niches), pq.Array(&settings.ExcludedTopics), &brandVoice, &settings.IdeasPerScout)
	if errors.Is(err, sql.ErrNoRows) {
		return Settings{}, ErrSettingsNotConfigured
	}
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if brandVoice.Valid {
		settings.BrandVoice = brandVoice.String
	}
	return settings, nil
}

// FindIdeaTitles returns the titles of all non-rejected ideas, used to keep
// scouting from proposing duplicates.
func (s *SQLContentStore) FindIdeaTitles(ctx context.Context) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("content store unavailable")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT title FROM editorial.ideas
		WHERE status <> 'REJECTED'
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list idea titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan idea title: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate idea titles: %w", err)
	}
	return titles, nil
}

// InsertIdeas persists the given ideas as APPROVED. Ideas whose title collides
// with an existing non-rejected idea are skipped, not failed, which keeps bulk
// approval idempotent even when two callers race; only the ideas actually
// written are returned.
func (s *SQLContentStore) InsertIdeas(ctx context.Context, ideas []Idea) ([]Idea, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("content store unavailable")
	}

	var inserted []Idea
	for _, idea := range ideas {
		breakdownJSON, err := json.Marshal(idea.ScoreBreakdown)
		if err != nil {
			return nil, fmt.Errorf("encode score breakdown: %w", err)
		}
		if idea.ID == "" {
			idea.ID = uuid.NewString()
		}
		idea.Status = StatusApproved

		err = s.db.QueryRowContext(ctx, `
			INSERT INTO editorial.ideas (
				id, title, angle, keywords, reasoning, score, score_breakdown, status, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			RETURNING created_at, updated_at
		`,
			idea.ID,
			idea.Title,
			idea.Angle,
			pq.Array(idea.Keywords),
			idea.Reasoning,
			idea.Score,
			breakdownJSON,
			string(idea.Status),
		).Scan(&idea.CreatedAt, &idea.UpdatedAt)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
				continue
			}
			return nil, fmt.Errorf("insert idea: %w", err)
		}
		inserted = append(inserted, idea)
	}
	return inserted, nil
}

func (s *SQLContentStore) ListIdeas(ctx context.Context, status IdeaStatus) ([]Idea, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("content store unavailable")
	}

	query := `
		SELECT id, title, angle, keywords, reasoning, score, score_breakdown, status, post_id, created_at, updated_at
		FROM editorial.ideas
	`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY score DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	defer rows.Close()

	var ideas []Idea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ideas: %w", err)
	}
	return ideas, nil
}

func (s *SQLContentStore) FindIdeaByID(ctx context.Context, id string) (Idea, error) {
	if s == nil || s.db == nil {
		return Idea{}, errors.New("content store unavailable")
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, angle, keywords, reasoning, score, score_breakdown, status, post_id, created_at, updated_at
		FROM editorial.ideas
		WHERE id = $1
	`, id)
	idea, err := scanIdea(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Idea{}, ErrIdeaNotFound
	}
	if err != nil {
		return Idea{}, err
	}
	return idea, nil
}

func (s *SQLContentStore) UpdateIdeaStatus(ctx context.Context, id string, status IdeaStatus, postID string) error {
	if s == nil || s.db == nil {
		return errors.New("content store unavailable")
	}

	var post any
	if postID != "" {
		post = postID
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE editorial.ideas
		SET status = $2, post_id = COALESCE($3, post_id), updated_at = NOW()
		WHERE id = $1
	`, id, string(status), post)
	if err != nil {
		return fmt.Errorf("update idea status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update idea status: %w", err)
	}
	if affected == 0 {
		return ErrIdeaNotFound
	}
	return nil
}

func (s *SQLContentStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	if s == nil || s.db == nil {
		return false, errors.New("content store unavailable")
	}

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM editorial.posts WHERE slug = $1)`,
		slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

func (s *SQLContentStore) CreatePost(ctx context.Context, post Post) (Post, error) {
	if s == nil || s.db == nil {
		return Post{}, errors.New("content store unavailable")
	}

	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.Status == "" {
		post.Status = PostStatusDraft
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO editorial.posts (id, idea_id, slug, title, body_markdown, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`,
		post.ID,
		post.IdeaID,
		post.Slug,
		post.Title,
		post.BodyMarkdown,
		post.Status,
	).Scan(&post.CreatedAt)
	if err != nil {
		return Post{}, fmt.Errorf("insert post: %w", err)
	}
	return post, nil
}

type ideaScanner interface {
	Scan(dest ...any) error
}

func scanIdea(row ideaScanner) (Idea, error) {
	var idea Idea
	var status string
	var reasoning sql.NullString
	var postID sql.NullString
	var breakdownJSON []byte
	if err := row.Scan(
		&idea.ID,
		&idea.Title,
		&idea.Angle,
		pq.Array(&idea.Keywords),
		&reasoning,
		&idea.Score,
		&breakdownJSON,
		&status,
		&postID,
		&idea.CreatedAt,
		&idea.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Idea{}, err
		}
		return Idea{}, fmt.Errorf("scan idea: %w", err)
	}
	idea.Status = IdeaStatus(status)
	if reasoning.Valid {
		idea.Reasoning = reasoning.String
	}
	if postID.Valid {
		idea.PostID = postID.String
	}
	if len(breakdownJSON) > 0 {
		if err := json.Unmarshal(breakdownJSON, &idea.ScoreBreakdown); err != nil {
			return Idea{}, fmt.Errorf("decode score breakdown: %w", err)
		}
	}
	return idea, nil
}
