package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// Memory is an in-process TTL map. Expired entries are invisible to Get and are
// reclaimed by the janitor started with RunJanitor.
type Memory[K comparable, V any] struct {
	store map[K]memoryEntry[V]
	mu    sync.RWMutex
	now   func() time.Time
}

func NewMemory[K comparable, V any]() *Memory[K, V] {
	return &Memory[K, V]{
		store: make(map[K]memoryEntry[V]),
		now:   time.Now,
	}
}

// WithClock replaces the time source; used by tests.
func (c *Memory[K, V]) WithClock(now func() time.Time) *Memory[K, V] {
	c.now = now
	return c
}

func (c *Memory[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = memoryEntry[V]{value: value, expiresAt: c.now().Add(ttl)}
}

func (c *Memory[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.store[key]
	if !ok || !c.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// DeleteFunc removes every live entry whose key satisfies match and returns how many were
// removed. Expired entries are dropped without being offered to match.
func (c *Memory[K, V]) DeleteFunc(match func(K) bool) int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.store {
		if !now.Before(e.expiresAt) {
			delete(c.store, k)
			continue
		}
		if match(k) {
			delete(c.store, k)
			removed++
		}
	}
	return removed
}

func (c *Memory[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Sweep drops expired entries.
func (c *Memory[K, V]) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.store {
		if !now.Before(e.expiresAt) {
			delete(c.store, k)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps on every tick until ctx is done.
func (c *Memory[K, V]) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}
