package drone

import (
	"sync"
	"time"

	"github.com/emergent-company/dronemcp/internal/model"
)

const allKey = "all"

// DefaultCacheTTL is the freshness window for a cached status entry.
const DefaultCacheTTL = 30 * time.Second

type cacheEntry struct {
	value      any
	insertedAt time.Time
}

// statusCache is the short-TTL cache the drone service consults before
// refetching status from the backend. A single mutex serializes writers;
// concurrent readers are tolerated — this is the scale the design notes
// call for (no need for per-key locks or an external cache at fleet
// size).
type statusCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func newStatusCache(ttl time.Duration) *statusCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &statusCache{ttl: ttl, entries: make(map[string]cacheEntry)}
}

func (c *statusCache) getDrone(id string) (*model.DroneStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	if !ok || time.Since(e.insertedAt) >= c.ttl {
		return nil, false
	}
	status, ok := e.value.(model.DroneStatus)
	if !ok {
		return nil, false
	}
	return &status, true
}

func (c *statusCache) getAll() ([]model.DroneStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[allKey]
	if !ok || time.Since(e.insertedAt) >= c.ttl {
		return nil, false
	}
	list, ok := e.value.([]model.DroneStatus)
	if !ok {
		return nil, false
	}
	return list, true
}

func (c *statusCache) setDrone(id string, status model.DroneStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = cacheEntry{value: status, insertedAt: time.Now()}
}

func (c *statusCache) setAll(list []model.DroneStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[allKey] = cacheEntry{value: list, insertedAt: time.Now()}
}

// invalidate drops the per-drone entry and the "all" entry, per the
// invariant that every successful command invalidates both before
// returning.
func (c *statusCache) invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	delete(c.entries, allKey)
}

// invalidateAll drops the entire cache, used after scanForDrones.
func (c *statusCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// sweepStale evicts entries older than 2x the configured TTL. Expired
// entries are already treated as misses by getDrone/getAll, so this is
// pure housekeeping against unbounded growth across a large fleet, not a
// correctness requirement of any read path.
func (c *statusCache) sweepStale() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	cutoff := 2 * c.ttl
	evicted := 0
	for key, e := range c.entries {
		if time.Since(e.insertedAt) >= cutoff {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}
