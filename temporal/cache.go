package temporal

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// SnapshotCache stores point-in-time snapshots keyed by as-of date.
// Implementations must be safe for concurrent use.
//
// Caching is a configuration choice: the default client has no cache and
// re-fetches on every query, which preserves apply idempotence exactly.
type SnapshotCache interface {
	// Get returns the cached snapshot for the as-of date. The boolean
	// reports whether an entry was found.
	Get(ctx context.Context, asOf time.Time) (*Snapshot, bool, error)

	// Put stores a snapshot under its as-of date, evicting older entries if
	// the cache is full.
	Put(ctx context.Context, asOf time.Time, snapshot *Snapshot) error
}

// DefaultCacheCapacity is the entry limit used when a non-positive capacity
// is requested.
const DefaultCacheCapacity = 32

// MemoryCache is an in-process LRU snapshot cache. It holds at most its
// configured capacity of snapshots and evicts the least recently used entry
// on overflow.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type memoryCacheEntry struct {
	key      string
	snapshot *Snapshot
}

// NewMemoryCache creates an LRU cache holding up to capacity snapshots.
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &MemoryCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns the cached snapshot for the as-of date and marks it as
// recently used.
func (c *MemoryCache) Get(_ context.Context, asOf time.Time) (*Snapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[dateKey(asOf)]
	if !ok {
		return nil, false, nil
	}

	c.order.MoveToFront(elem)
	return elem.Value.(*memoryCacheEntry).snapshot, true, nil
}

// Put stores a snapshot, evicting the least recently used entry when full.
func (c *MemoryCache) Put(_ context.Context, asOf time.Time, snapshot *Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := dateKey(asOf)
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*memoryCacheEntry).snapshot = snapshot
		c.order.MoveToFront(elem)
		return nil
	}

	c.entries[key] = c.order.PushFront(&memoryCacheEntry{key: key, snapshot: snapshot})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*memoryCacheEntry).key)
		}
	}

	return nil
}

// Len returns the number of cached snapshots.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
