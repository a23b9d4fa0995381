package editorial

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements are idempotent; EnsureSchema runs them at startup so a
// fresh database is usable without an external migration step.
//
// The partial unique index enforces title uniqueness among non-rejected ideas
// at the database level. The orchestrator's dedupe pass is advisory; this
// index is what holds under concurrent approvals.
var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS editorial`,
	`CREATE TABLE IF NOT EXISTS editorial.settings (
		id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		niches TEXT[] NOT NULL DEFAULT '{}',
		excluded_topics TEXT[] NOT NULL DEFAULT '{}',
		brand_voice TEXT,
		ideas_per_scout INT NOT NULL DEFAULT 5,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS editorial.ideas (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		angle TEXT NOT NULL,
		keywords TEXT[] NOT NULL DEFAULT '{}',
		reasoning TEXT,
		score INT NOT NULL DEFAULT 0,
		score_breakdown JSONB,
		status TEXT NOT NULL,
		post_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ideas_title_active_idx
		ON editorial.ideas (LOWER(title))
		WHERE status <> 'REJECTED'`,
	`CREATE INDEX IF NOT EXISTS ideas_status_idx ON editorial.ideas (status)`,
	`CREATE TABLE IF NOT EXISTS editorial.posts (
		id UUID PRIMARY KEY,
		idea_id UUID NOT NULL REFERENCES editorial.ideas(id),
		slug TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		body_markdown TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'DRAFT',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates the editorial schema objects if missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure editorial schema: %w", err)
		}
	}
	return nil
}
