package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultTTL             = 30 * time.Minute
	defaultCleanupInterval = time.Minute
)

// MemoryCache is a size-bounded in-memory cache that evicts the least
// recently used entries once the byte budget is exceeded
type MemoryCache struct {
	mu       sync.Mutex
	items    map[string]*list.Element
	order    *list.List // front is most recently used
	size     int64
	maxBytes int64
	now      func() time.Time

	hits, misses, sets, evictions atomic.Int64

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

type entry struct {
	key    string
	value  []byte
	expiry time.Time
}

func (e *entry) size() int64 {
	return int64(len(e.key) + len(e.value))
}

// NewMemoryCache creates a cache holding at most maxSizeMB megabytes.
// Zero means unbounded.
func NewMemoryCache(maxSizeMB int64) *MemoryCache {
	mc := &MemoryCache{
		items:    make(map[string]*list.Element),
		order:    list.New(),
		maxBytes: maxSizeMB * 1024 * 1024,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}

	mc.wg.Add(1)
	go mc.cleanupExpired(defaultCleanupInterval)

	return mc
}

// Get retrieves a value from the cache
func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	el, ok := mc.items[key]
	if !ok {
		mc.misses.Add(1)
		return nil, false
	}
	e := el.Value.(*entry)
	if mc.now().After(e.expiry) {
		mc.remove(el)
		mc.misses.Add(1)
		return nil, false
	}

	mc.order.MoveToFront(el)
	mc.hits.Add(1)
	return e.value, true
}

// Set stores a value in the cache with a TTL
func (mc *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	e := &entry{key: key, value: value, expiry: mc.now().Add(ttl)}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if el, ok := mc.items[key]; ok {
		mc.remove(el)
	}
	if mc.maxBytes > 0 && e.size() > mc.maxBytes {
		return nil
	}

	mc.items[key] = mc.order.PushFront(e)
	mc.size += e.size()
	mc.sets.Add(1)

	for mc.maxBytes > 0 && mc.size > mc.maxBytes {
		mc.remove(mc.order.Back())
		mc.evictions.Add(1)
	}
	return nil
}

// Delete removes a value from the cache
func (mc *MemoryCache) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if el, ok := mc.items[key]; ok {
		mc.remove(el)
	}
	return nil
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() Stats {
	mc.mu.Lock()
	entries, size := len(mc.items), mc.size
	mc.mu.Unlock()

	return Stats{
		Hits:      mc.hits.Load(),
		Misses:    mc.misses.Load(),
		Sets:      mc.sets.Load(),
		Evictions: mc.evictions.Load(),
		Entries:   entries,
		SizeBytes: size,
		MaxBytes:  mc.maxBytes,
	}
}

// Stop shuts down the cleanup goroutine. Safe to call more than once.
func (mc *MemoryCache) Stop() {
	mc.stopOnce.Do(func() { close(mc.stopCh) })
	mc.wg.Wait()
}

// remove must be called with mu held
func (mc *MemoryCache) remove(el *list.Element) {
	e := mc.order.Remove(el).(*entry)
	delete(mc.items, e.key)
	mc.size -= e.size()
}

func (mc *MemoryCache) cleanupExpired(interval time.Duration) {
	defer mc.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.removeExpired()
		case <-mc.stopCh:
			return
		}
	}
}

func (mc *MemoryCache) removeExpired() {
	now := mc.now()

	mc.mu.Lock()
	defer mc.mu.Unlock()
	for el := mc.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*entry).expiry) {
			mc.remove(el)
			mc.evictions.Add(1)
		}
		el = prev
	}
}
