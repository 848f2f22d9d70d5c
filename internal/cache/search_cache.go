// Package cache implements the in-memory search cache that fronts the
// contacts store. Entries are keyed by normalized query (text + pagination),
// bounded by a configurable capacity with least-recently-used eviction, and
// served only within a configurable TTL.
//
// The cache is an optimization layer only: any failure degrades to a miss,
// never to an error surfaced to the caller.
package cache

import (
	"container/list"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/models"
)

// FetchFunc issues a real search against the store. Used by Warm to
// pre-populate the cache.
type FetchFunc func(ctx context.Context, query string, page, limit int) (models.SearchResult, error)

// WarmQueries is the fixed set of known-common queries issued by Warm.
// Every entry must be non-blank: the search path answers blank queries
// with an empty page before consulting the cache, so a blank warm entry
// would never be read back.
var WarmQueries = []string{"tier1", "tier2", "tier3"}

// warmPageLimit is the page size used for warm fetches, matching the
// default search page size.
const warmPageLimit = 20

// Stats is a point-in-time snapshot of cache effectiveness counters.
// Hits and Misses accumulate since construction or the last Clear.
type Stats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hit_rate"`
	Size    int     `json:"size"`
}

type entry struct {
	key        string
	result     models.SearchResult
	insertedAt time.Time
}

// SearchCache maps a normalized query key to a previously fetched page of
// results. Safe for concurrent use by parallel request handlers.
type SearchCache struct {
	mu       sync.Mutex
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
	ttl      time.Duration
	capacity int
	hits     uint64
	misses   uint64

	logger *logger.Logger
}

// New constructs a SearchCache with the given TTL and capacity bound.
func New(ttl time.Duration, capacity int, log *logger.Logger) *SearchCache {
	log.Debug().Dur("ttl", ttl).Int("capacity", capacity).Msg("creating search cache")
	return &SearchCache{
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		ttl:      ttl,
		capacity: capacity,
		logger:   log,
	}
}

// Key builds the canonical cache key for a search request: query text
// lower-cased and trimmed, combined with page and page size. Distinct pages
// of the same text are distinct entries.
func Key(query string, page, limit int) string {
	return fmt.Sprintf("%s|%d|%d", strings.ToLower(strings.TrimSpace(query)), page, limit)
}

// Get returns the cached result for key if present and fresh. Expired
// entries are dropped and reported as misses.
func (c *SearchCache) Get(key string) (models.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.entries[key]
	if !ok {
		c.misses++
		return models.SearchResult{}, false
	}

	cached := element.Value.(*entry)
	if time.Since(cached.insertedAt) >= c.ttl {
		c.removeElement(element)
		c.misses++
		return models.SearchResult{}, false
	}

	c.order.MoveToFront(element)
	c.hits++
	return cached.result, true
}

// Put stores a result page under key, replacing any existing entry and
// evicting the least-recently-used entry when the capacity bound is
// exceeded.
func (c *SearchCache) Put(key string, result models.SearchResult) {
	if c.capacity <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.entries[key]; ok {
		cached := element.Value.(*entry)
		cached.result = result
		cached.insertedAt = time.Now()
		c.order.MoveToFront(element)
		return
	}

	element := c.order.PushFront(&entry{key: key, result: result, insertedAt: time.Now()})
	c.entries[key] = element

	for len(c.entries) > c.capacity {
		c.removeElement(c.order.Back())
	}
}

// Clear drops every entry and resets the hit/miss counters.
func (c *SearchCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.hits = 0
	c.misses = 0
}

// Invalidate drops every entry but keeps the effectiveness counters.
// Called after contact mutations, where stale pages must go but the
// hit-rate history should survive.
func (c *SearchCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Stats returns the current effectiveness counters. HitRate is a percentage
// in [0, 100].
func (c *SearchCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{
		Hits:   c.hits,
		Misses: c.misses,
		Size:   len(c.entries),
	}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total) * 100
	}

	return stats
}

// RemoveExpired drops every entry older than the TTL and returns the number
// removed. Called periodically by the cache janitor worker.
func (c *SearchCache) RemoveExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for element := c.order.Back(); element != nil; {
		previous := element.Prev()
		if time.Since(element.Value.(*entry).insertedAt) >= c.ttl {
			c.removeElement(element)
			removed++
		}
		element = previous
	}

	return removed
}

// Warm pre-populates the cache by issuing a real fetch for each of the
// known-common queries. Individual fetch failures are logged and skipped;
// Warm returns the number of pages cached.
func (c *SearchCache) Warm(ctx context.Context, fetch FetchFunc) int {
	warmed := 0
	for _, query := range WarmQueries {
		result, err := fetch(ctx, query, 1, warmPageLimit)
		if err != nil {
			c.logger.Warn().Err(err).Str("query", query).Msg("warm fetch failed")
			continue
		}

		c.Put(Key(query, 1, warmPageLimit), result)
		warmed++
	}

	c.logger.Info().Int("warmed", warmed).Msg("search cache warmed")
	return warmed
}

// removeElement must be called with c.mu held.
func (c *SearchCache) removeElement(element *list.Element) {
	if element == nil {
		return
	}
	cached := element.Value.(*entry)
	delete(c.entries, cached.key)
	c.order.Remove(element)
}
