package stores

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func table(points ...int) []models.Standing {
	out := make([]models.Standing, len(points))
	for i, p := range points {
		out[i] = models.Standing{TeamID: i + 1, Points: p, Rank: i + 1}
	}
	return out
}

func TestStandingsCache_PutThenGet(t *testing.T) {
	c := NewStandingsCache()
	c.Put(1, table(9, 6, 3))

	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, table(9, 6, 3), got)

	got[0].Points = 100
	again, _ := c.Get(1)
	assert.Equal(t, 9, again[0].Points, "callers get copies")

	_, ok = c.Get(2)
	assert.False(t, ok)
}

func TestStandingsCache_ExpiresOnRead(t *testing.T) {
	clock := newFakeClock()
	c := NewStandingsCache(WithCacheClock(clock.Now))
	c.Put(1, table(3))

	clock.Advance(5*time.Minute + time.Second)
	assert.True(t, c.Exists(1), "exists is not TTL aware")

	_, ok := c.Get(1)
	assert.False(t, ok)
	assert.False(t, c.Exists(1), "expired entry is evicted by the read")
}

func TestStandingsCache_InvalidateOverridesTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewStandingsCache(WithCacheClock(clock.Now))
	c.Put(7, table(3, 1))

	clock.Advance(60 * time.Second)
	c.Invalidate(7)

	_, ok := c.Get(7)
	assert.False(t, ok)
}

func TestStandingsCache_InvalidateAll(t *testing.T) {
	c := NewStandingsCache()
	c.Put(1, table(1))
	c.Put(2, table(2))
	c.Put(3, table(3))

	c.InvalidateAll([]int{1, 3})
	assert.False(t, c.Exists(1))
	assert.True(t, c.Exists(2))
	assert.False(t, c.Exists(3))
}

func TestStandingsCache_PutAndUpdateVersions(t *testing.T) {
	c := NewStandingsCache()
	assert.Equal(t, 0, c.Version(1))

	c.Put(1, table(1))
	assert.Equal(t, 1, c.Version(1))
	c.Put(1, table(2))
	assert.Equal(t, 1, c.Version(1), "put never bumps the version")

	c.Update(1, table(3))
	c.Update(1, table(4))
	assert.Equal(t, 3, c.Version(1))
	got, _ := c.Get(1)
	assert.Equal(t, table(4), got)

	c.Update(2, table(1))
	assert.Equal(t, 1, c.Version(2))
}

func TestStandingsCache_GetOrCompute(t *testing.T) {
	c := NewStandingsCache()
	calls := 0
	compute := func() ([]models.Standing, error) {
		calls++
		return table(6, 3), nil
	}

	got, err := c.GetOrCompute(1, compute)
	require.NoError(t, err)
	assert.Equal(t, table(6, 3), got)

	got, err = c.GetOrCompute(1, compute)
	require.NoError(t, err)
	assert.Equal(t, table(6, 3), got)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err = c.GetOrCompute(2, func() ([]models.Standing, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Exists(2), "failed computations are not cached")
}

func TestStandingsCache_Stats(t *testing.T) {
	clock := newFakeClock()
	c := NewStandingsCache(WithCacheClock(clock.Now))

	c.Put(1, table(3, 2, 1))
	clock.Advance(6 * time.Minute)
	c.Put(2, table(1))
	clock.Advance(time.Minute)

	c.Get(2)
	c.Get(3)

	stats := c.Stats()
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 1, stats.Expired)
	assert.Equal(t, 4, stats.TotalRows)
	assert.InDelta(t, 420, stats.OldestAgeSeconds, 0.001)
	assert.InDelta(t, 60, stats.NewestAgeSeconds, 0.001)
	assert.InDelta(t, 300, stats.TTLSeconds, 0.001)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestStandingsCache_ConcurrentAccess(t *testing.T) {
	c := NewStandingsCache()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(groupID int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c.Update(groupID, table(i))
				c.Get(groupID)
				if i%10 == 0 {
					c.Invalidate(groupID)
				}
			}
		}(g % 4)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Stats().Entries, 4)
}
