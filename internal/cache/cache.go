package cache

import (
	"sort"
	"sync"
)

// Entry is any cached row keyed by its numeric identifier.
type Entry interface {
	Key() int64
}

// Cache is an id-keyed in-memory projection of one store table. It holds no
// durable state: it can always be rebuilt wholesale with Reset from a store
// re-query. All writes funnel through the apply queue, so Upsert and Remove
// never interleave; the lock exists because report reads come from HTTP
// goroutines.
type Cache[R Entry] struct {
	mu   sync.RWMutex
	rows map[int64]R
}

func New[R Entry]() *Cache[R] {
	return &Cache[R]{rows: make(map[int64]R)}
}

// Get returns the row with the given id, if cached.
func (c *Cache[R]) Get(id int64) (R, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	row, ok := c.rows[id]
	return row, ok
}

// Upsert replaces the row with the same key, or inserts it. Replace-by-id is
// idempotent, which is what makes duplicate change notifications harmless.
func (c *Cache[R]) Upsert(row R) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows[row.Key()] = row
}

// Remove deletes the row with the given id. Removing an absent id is a no-op.
func (c *Cache[R]) Remove(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rows, id)
}

func (c *Cache[R]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rows)
}

// Snapshot returns a copy of all rows, newest id first. Identifiers are
// store sequences, so descending key order matches insertion order.
func (c *Cache[R]) Snapshot() []R {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]R, 0, len(c.rows))
	for _, row := range c.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() > out[j].Key() })
	return out
}

// Reset discards the cache contents and replaces them with rows.
func (c *Cache[R]) Reset(rows []R) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = make(map[int64]R, len(rows))
	for _, row := range rows {
		c.rows[row.Key()] = row
	}
}
