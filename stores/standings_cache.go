package stores

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Dosada05/tournament-engine/models"
)

const DefaultStandingsTTL = 5 * time.Minute

type CacheOption func(*StandingsCache)

func WithTTL(ttl time.Duration) CacheOption {
	return func(c *StandingsCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *StandingsCache) {
		c.now = now
	}
}

// StandingsCache holds computed group tables. Entries older than the TTL are
// dropped when read; there is no background sweeper.
type StandingsCache struct {
	mu      sync.RWMutex
	entries map[int]*cacheEntry
	ttl     time.Duration
	now     func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// cacheEntry is never modified after it is stored.
type cacheEntry struct {
	standings []models.Standing
	writtenAt time.Time
	version   int
}

type CacheStats struct {
	Entries          int     `json:"entries"`
	Expired          int     `json:"expired"`
	TotalRows        int     `json:"total_rows"`
	OldestAgeSeconds float64 `json:"oldest_age_seconds"`
	NewestAgeSeconds float64 `json:"newest_age_seconds"`
	TTLSeconds       float64 `json:"ttl_seconds"`
	Hits             int64   `json:"hits"`
	Misses           int64   `json:"misses"`
}

func NewStandingsCache(opts ...CacheOption) *StandingsCache {
	c := &StandingsCache{
		entries: make(map[int]*cacheEntry),
		ttl:     DefaultStandingsTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached table for a group. An expired entry is evicted and
// reported as a miss.
func (c *StandingsCache) Get(groupID int) ([]models.Standing, bool) {
	c.mu.RLock()
	entry, ok := c.entries[groupID]
	c.mu.RUnlock()
	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	if c.expired(entry) {
		c.mu.Lock()
		if current, still := c.entries[groupID]; still && current == entry {
			delete(c.entries, groupID)
		}
		c.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return copyStandings(entry.standings), true
}

// Put stores a freshly computed table. The version starts at 1 and is kept
// as is on refresh.
func (c *StandingsCache) Put(groupID int, standings []models.Standing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	version := 1
	if existing, ok := c.entries[groupID]; ok {
		version = existing.version
	}
	c.entries[groupID] = &cacheEntry{
		standings: copyStandings(standings),
		writtenAt: c.now(),
		version:   version,
	}
}

// Update replaces the table and bumps its version.
func (c *StandingsCache) Update(groupID int, standings []models.Standing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	version := 1
	if existing, ok := c.entries[groupID]; ok {
		version = existing.version + 1
	}
	c.entries[groupID] = &cacheEntry{
		standings: copyStandings(standings),
		writtenAt: c.now(),
		version:   version,
	}
}

// Version returns the entry version, 0 when absent.
func (c *StandingsCache) Version(groupID int) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if entry, ok := c.entries[groupID]; ok {
		return entry.version
	}
	return 0
}

func (c *StandingsCache) Invalidate(groupID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, groupID)
}

func (c *StandingsCache) InvalidateAll(groupIDs []int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range groupIDs {
		delete(c.entries, id)
	}
}

// Exists checks key presence only. An expired entry that has not been read yet still exists.
func (c *StandingsCache) Exists(groupID int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[groupID]
	return ok
}

// GetOrCompute returns the cached table or computes and stores a new one.
// Concurrent misses may compute twice; the last Put wins.
func (c *StandingsCache) GetOrCompute(groupID int, compute func() ([]models.Standing, error)) ([]models.Standing, error) {
	if standings, ok := c.Get(groupID); ok {
		return standings, nil
	}
	standings, err := compute()
	if err != nil {
		return nil, err
	}
	c.Put(groupID, standings)
	return copyStandings(standings), nil
}

func (c *StandingsCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	stats := CacheStats{
		Entries:    len(c.entries),
		TTLSeconds: c.ttl.Seconds(),
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
	}
	first := true
	for _, entry := range c.entries {
		age := now.Sub(entry.writtenAt).Seconds()
		stats.TotalRows += len(entry.standings)
		if c.expired(entry) {
			stats.Expired++
		}
		if first || age > stats.OldestAgeSeconds {
			stats.OldestAgeSeconds = age
		}
		if first || age < stats.NewestAgeSeconds {
			stats.NewestAgeSeconds = age
		}
		first = false
	}
	return stats
}

func (c *StandingsCache) expired(entry *cacheEntry) bool {
	return c.now().Sub(entry.writtenAt) > c.ttl
}

func copyStandings(in []models.Standing) []models.Standing {
	if in == nil {
		return []models.Standing{}
	}
	out := make([]models.Standing, len(in))
	copy(out, in)
	return out
}
