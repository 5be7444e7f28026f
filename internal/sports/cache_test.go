package sports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls int
	games []Game
	err   error
}

func (s *countingSource) FetchSchedule(ctx context.Context, team string) ([]Game, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.games, nil
}

func TestScheduleCacheServesFromCacheWithinTTL(t *testing.T) {
	source := &countingSource{games: []Game{{Opponent: "Rivertown FC", Date: time.Now()}}}
	cache := NewScheduleCache(source, time.Hour)

	first, err := cache.Schedule(context.Background(), "home-team")
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := cache.Schedule(context.Background(), "home-team")
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, 1, source.calls)
}

func TestScheduleCacheRefreshReplacesSlot(t *testing.T) {
	source := &countingSource{games: []Game{{Opponent: "Rivertown FC"}}}
	cache := NewScheduleCache(source, time.Hour)

	_, err := cache.Schedule(context.Background(), "home-team")
	require.NoError(t, err)

	source.games = []Game{{Opponent: "Harbor City"}, {Opponent: "Rivertown FC"}}
	refreshed, err := cache.Refresh(context.Background(), "home-team")
	require.NoError(t, err)
	require.Len(t, refreshed, 2)
	require.Equal(t, 2, source.calls)

	cached, err := cache.Schedule(context.Background(), "home-team")
	require.NoError(t, err)
	require.Len(t, cached, 2)
	require.Equal(t, 2, source.calls)
}

func TestScheduleCacheInvalidateForcesRefetch(t *testing.T) {
	source := &countingSource{games: []Game{{Opponent: "Rivertown FC"}}}
	cache := NewScheduleCache(source, time.Hour)

	_, err := cache.Schedule(context.Background(), "home-team")
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.Schedule(context.Background(), "home-team")
	require.NoError(t, err)
	require.Equal(t, 2, source.calls)
}

func TestScheduleCacheFetchFailureKeepsPreviousSlot(t *testing.T) {
	source := &countingSource{games: []Game{{Opponent: "Rivertown FC"}}}
	cache := NewScheduleCache(source, time.Hour)

	_, err := cache.Schedule(context.Background(), "home-team")
	require.NoError(t, err)

	source.err = errors.New("upstream unavailable")
	_, err = cache.Refresh(context.Background(), "home-team")
	require.Error(t, err)

	// The stale-but-present slot still serves reads.
	games, err := cache.Schedule(context.Background(), "home-team")
	require.NoError(t, err)
	require.Len(t, games, 1)
}
