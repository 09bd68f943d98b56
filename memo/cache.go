// Package memo memoizes computations in a bounded LRU cache.
//
// Concurrent callers asking for the same key share a single computation and
// failed computations are never cached:
//
//	cache := memo.New[regression.Summary](256)
//	sum, hit, err := cache.GetOrCompute(key, func() (regression.Summary, error) {
//	    return regression.Estimate(xs, ys)
//	})
package memo

import (
	"container/list"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DefaultCapacity is used when New receives a non-positive capacity.
const DefaultCapacity = 256

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
	Size      int    `json:"size"`
	Capacity  int    `json:"capacity"`
}

// HitRatio returns hits / (hits + misses), or 0 before the first lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

type item[V any] struct {
	key   Key
	value V
}

// Cache is a bounded LRU cache of computed values. It is safe for concurrent use.
type Cache[V any] struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[Key]*list.Element
	// epoch and gen are bumped by Purge and by invalidations respectively, so
	// computations started earlier do not store stale results.
	epoch uint64
	gen   map[string]uint64
	group singleflight.Group

	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates a Cache holding at most capacity entries.
func New[V any](capacity int) *Cache[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Cache[V]{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[Key]*list.Element),
		gen:      make(map[string]uint64),
	}
}

// Get returns the cached value for key without computing it.
func (c *Cache[V]) Get(key Key) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		c.hits++

		return el.Value.(*item[V]).value, true
	}
	c.misses++

	var zero V

	return zero, false
}

// GetOrCompute returns the cached value for key, or calls fn and caches its result.
//
// The bool result reports a cache hit. Callers that arrive while fn is running for
// the same key wait for it and share its result, unless the key was invalidated
// after that computation started. Errors returned by fn are passed
// to every waiting caller and are not cached.
func (c *Cache[V]) GetOrCompute(key Key, fn func() (V, error)) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	c.mu.Lock()
	snap := c.snapshot(key.Tag)
	c.mu.Unlock()

	v, err, _ := c.group.Do(flightKey(key, snap), func() (any, error) {
		value, err := fn()
		if err != nil {
			return value, err
		}
		c.add(key, value, snap)

		return value, nil
	})

	value, _ := v.(V)

	return value, false, err
}

// Invalidate removes one entry.
func (c *Cache[V]) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen[key.Tag]++
	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}
}

// InvalidateTag removes every entry whose key carries tag and returns how many
// were removed.
func (c *Cache[V]) InvalidateTag(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen[tag]++
	removed := 0
	for key, el := range c.items {
		if key.Tag == tag {
			c.removeElement(el)
			removed++
		}
	}

	return removed
}

// Purge removes every entry. Counters are kept.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	clear(c.gen)
	c.ll.Init()
	clear(c.items)
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ll.Len()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      c.ll.Len(),
		Capacity:  c.capacity,
	}
}

type generation struct {
	epoch uint64
	tag   uint64
}

func (c *Cache[V]) snapshot(tag string) generation {
	return generation{epoch: c.epoch, tag: c.gen[tag]}
}

// add stores value unless the key was invalidated after snap was taken.
func (c *Cache[V]) add(key Key, value V, snap generation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot(key.Tag) != snap {
		return
	}

	if el, ok := c.items[key]; ok {
		el.Value.(*item[V]).value = value
		c.ll.MoveToFront(el)

		return
	}

	c.items[key] = c.ll.PushFront(&item[V]{key: key, value: value})
	for c.ll.Len() > c.capacity {
		c.removeElement(c.ll.Back())
		c.evictions++
	}
}

func (c *Cache[V]) removeElement(el *list.Element) {
	c.ll.Remove(el)
	delete(c.items, el.Value.(*item[V]).key)
}

// flightKey includes the generation so callers arriving after an invalidation
// start a new computation instead of joining a stale one.
func flightKey(key Key, snap generation) string {
	return key.Tag + "\x00" + strconv.FormatUint(key.Sum, 16) +
		"\x00" + strconv.FormatUint(snap.epoch, 16) + "." + strconv.FormatUint(snap.tag, 16)
}
