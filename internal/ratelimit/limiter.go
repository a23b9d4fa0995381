package ratelimit

import (
	"context"
	"fmt"
	"time"

	"atelier/editorial/pkg/logging"
)

const (
	// DefaultWindow and DefaultLimit are the reference budget: 10 requests
	// per trailing 60 seconds per actor.
	DefaultWindow = 60 * time.Second
	DefaultLimit  = 10
)

// ExceededError is returned when an actor is over budget. Retryable once
// RetryAfter has elapsed.
type ExceededError struct {
	ActorID    string
	RetryAfter time.Duration
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("rate limit exceeded for actor %s, retry after %s", e.ActorID, e.RetryAfter.Round(time.Second))
}

// Store tracks per-actor request timestamps inside a sliding window. Take must
// be atomic per actor: two concurrent calls for the same actor must never both
// succeed when a single slot remains.
type Store interface {
	// Take prunes entries older than now-window, then either records now and
	// reports admission, or reports how long until the oldest entry expires.
	Take(ctx context.Context, actorID string, now time.Time, window time.Duration, limit int) (allowed bool, retryAfter time.Duration, err error)
}

type Config struct {
	Store  Store
	Window time.Duration
	Limit  int
	Logger logging.Logger

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// Limiter enforces a per-actor sliding-window request budget.
type Limiter struct {
	store  Store
	window time.Duration
	limit  int
	logger logging.Logger
	now    func() time.Time
}

func New(cfg Config) *Limiter {
	window := cfg.Window
	if window <= 0 {
		window = DefaultWindow
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	return &Limiter{
		store:  store,
		window: window,
		limit:  limit,
		logger: cfg.Logger,
		now:    now,
	}
}

// CheckAndConsume admits the request and consumes a slot, or returns
// *ExceededError. Check and increment are a single atomic step.
func (l *Limiter) CheckAndConsume(ctx context.Context, actorID string) error {
	allowed, retryAfter, err := l.store.Take(ctx, actorID, l.now(), l.window, l.limit)
	if err != nil {
		return fmt.Errorf("rate limit store: %w", err)
	}
	if !allowed {
		rejectionsTotal.Inc()
		if l.logger != nil {
			l.logger.WithFields(logging.Fields{
				"actor_id":    actorID,
				"retry_after": retryAfter,
			}).Warn("Rate limit exceeded")
		}
		return &ExceededError{ActorID: actorID, RetryAfter: retryAfter}
	}
	return nil
}
