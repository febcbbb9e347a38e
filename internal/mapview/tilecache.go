package mapview

import (
	"container/list"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// TileCache is a concurrent-safe LRU cache of basemap tiles with TTL expiry.
type TileCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	lru        *list.List // front = most recently used
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
	hits       atomic.Int64
	misses     atomic.Int64
}

type cachedTile struct {
	key         string
	data        []byte
	contentType string
	storedAt    time.Time
}

// CacheStats reports cache occupancy and hit rate.
type CacheStats struct {
	Entries    int     `json:"entries"`
	MaxEntries int     `json:"max_entries"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	HitRate    float64 `json:"hit_rate"`
}

// NewTileCache creates a cache holding at most maxEntries tiles for ttl each.
func NewTileCache(maxEntries int, ttl time.Duration) *TileCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &TileCache{
		entries:    make(map[string]*list.Element),
		lru:        list.New(),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

func tileKey(basemap string, z, x, y int) string {
	return fmt.Sprintf("%s/%d/%d/%d", basemap, z, x, y)
}

// Get returns a cached tile and its content type. ok is false on a miss or
// when the entry has expired.
func (c *TileCache) Get(basemap string, z, x, y int) (data []byte, contentType string, ok bool) {
	key := tileKey(basemap, z, x, y)

	c.mu.Lock()
	defer c.mu.Unlock()

	el, found := c.entries[key]
	if !found {
		c.misses.Add(1)
		return nil, "", false
	}
	tile := el.Value.(*cachedTile)
	if c.ttl > 0 && c.now().Sub(tile.storedAt) > c.ttl {
		c.lru.Remove(el)
		delete(c.entries, key)
		c.misses.Add(1)
		return nil, "", false
	}

	c.lru.MoveToFront(el)
	c.hits.Add(1)
	return tile.data, tile.contentType, true
}

// Put stores a tile, evicting the least recently used entry when full.
func (c *TileCache) Put(basemap string, z, x, y int, data []byte, contentType string) {
	key := tileKey(basemap, z, x, y)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, found := c.entries[key]; found {
		el.Value = &cachedTile{key: key, data: data, contentType: contentType, storedAt: c.now()}
		c.lru.MoveToFront(el)
		return
	}

	for c.lru.Len() >= c.maxEntries {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cachedTile).key)
	}

	c.entries[key] = c.lru.PushFront(&cachedTile{key: key, data: data, contentType: contentType, storedAt: c.now()})
}

// Stats returns cache statistics.
func (c *TileCache) Stats() CacheStats {
	c.mu.Lock()
	entries := c.lru.Len()
	c.mu.Unlock()

	hits, misses := c.hits.Load(), c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return CacheStats{
		Entries:    entries,
		MaxEntries: c.maxEntries,
		Hits:       hits,
		Misses:     misses,
		HitRate:    rate,
	}
}
