package ratelimit

import (
	"context"
	"sync"
	"time"
)

// defaultHighWater is the tracked-actor count above which Take compacts
// fully-stale actors out of the map.
const defaultHighWater = 1024

// MemoryStore keeps per-actor timestamp windows in process memory. Best-effort
// per instance: state does not survive a restart and is not shared across
// replicas. Use RedisStore for horizontally-scaled deployments.
type MemoryStore struct {
	mu        sync.Mutex
	actors    map[string][]time.Time
	highWater int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		actors:    make(map[string][]time.Time),
		highWater: defaultHighWater,
	}
}

func (s *MemoryStore) Take(_ context.Context, actorID string, now time.Time, window time.Duration, limit int) (bool, time.Duration, error) {
	cutoff := now.Add(-window)

	s.mu.Lock()
	defer s.mu.Unlock()

	stamps := s.actors[actorID]
	pruned := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			pruned = append(pruned, ts)
		}
	}

	if len(pruned) >= limit {
		s.actors[actorID] = pruned
		retryAfter := pruned[0].Add(window).Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return false, retryAfter, nil
	}

	s.actors[actorID] = append(pruned, now)

	if len(s.actors) > s.highWater {
		s.compact(cutoff)
	}
	return true, 0, nil
}

// compact removes actors whose entire window is stale. Caller holds the lock.
func (s *MemoryStore) compact(cutoff time.Time) {
	for id, stamps := range s.actors {
		stale := true
		for _, ts := range stamps {
			if ts.After(cutoff) {
				stale = false
				break
			}
		}
		if stale {
			delete(s.actors, id)
		}
	}
}
