package sports

import (
	"context"
	"sync"
	"time"
)

// ScheduleCache holds the last fetched schedule behind a time-to-live guard.
// Refresh is idempotent; concurrent refreshes simply overwrite the slot.
type ScheduleCache struct {
	source ScheduleSource
	ttl    time.Duration

	mu        sync.Mutex
	games     []Game
	fetchedAt time.Time
}

// NewScheduleCache wraps a schedule source with a TTL cache.
func NewScheduleCache(source ScheduleSource, ttl time.Duration) *ScheduleCache {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &ScheduleCache{source: source, ttl: ttl}
}

// Schedule returns the cached schedule, refreshing it when stale or empty.
func (c *ScheduleCache) Schedule(ctx context.Context, team string) ([]Game, error) {
	c.mu.Lock()
	fresh := c.games != nil && time.Since(c.fetchedAt) < c.ttl
	if fresh {
		games := append([]Game(nil), c.games...)
		c.mu.Unlock()
		return games, nil
	}
	c.mu.Unlock()

	return c.Refresh(ctx, team)
}

// Refresh fetches the schedule unconditionally and replaces the cached slot.
// A fetch failure leaves the previous slot untouched.
func (c *ScheduleCache) Refresh(ctx context.Context, team string) ([]Game, error) {
	games, err := c.source.FetchSchedule(ctx, team)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.games = games
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	return append([]Game(nil), games...), nil
}

// Invalidate drops the cached slot, forcing the next read to refetch.
func (c *ScheduleCache) Invalidate() {
	c.mu.Lock()
	c.games = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
