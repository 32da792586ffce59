// Package cache provides an in-memory TTL cache with get-or-create semantics.
//
// Concurrent GetOrCreate calls for a key that has no fresh entry share one
// in-flight computation. Each caller waits with its own context; the shared
// computation is cancelled only once every waiting caller has given up.
package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// call is one in-flight computation for a key.
type call[V any] struct {
	done    chan struct{}
	value   V
	err     error
	waiters int
	cancel  context.CancelFunc
}

// Cache maps string keys to values that expire after a per-entry TTL.
// It is safe for concurrent use.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	calls   map[string]*call[V]
	now     func() time.Time
}

// New creates an empty cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		calls:   make(map[string]*call[V]),
		now:     time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (c *Cache[V]) WithClock(now func() time.Time) *Cache[V] {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return c
}

// lookup must be called with mu held. Expired entries are dropped.
func (c *Cache[V]) lookup(key string) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Len returns the number of stored entries, fresh or not yet swept.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetOrCreate returns the fresh value for key or computes it with fn.
// A successful result is stored for ttl, replacing any earlier entry;
// errors are returned to every waiter and never stored.
func (c *Cache[V]) GetOrCreate(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) (V, error)) (V, error) {
	var zero V
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	c.mu.Lock()
	if v, ok := c.lookup(key); ok {
		c.mu.Unlock()
		return v, nil
	}

	cl, inFlight := c.calls[key]
	if inFlight {
		cl.waiters++
	} else {
		// The computation outlives any single caller; waiters control its
		// lifetime through the reference count.
		callCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		cl = &call[V]{done: make(chan struct{}), waiters: 1, cancel: cancel}
		c.calls[key] = cl
		go c.run(callCtx, key, ttl, cl, fn)
	}
	c.mu.Unlock()

	select {
	case <-cl.done:
		return cl.value, cl.err
	case <-ctx.Done():
		c.leave(key, cl)
		return zero, ctx.Err()
	}
}

func (c *Cache[V]) run(ctx context.Context, key string, ttl time.Duration, cl *call[V], fn func(ctx context.Context) (V, error)) {
	defer cl.cancel()

	value, err := fn(ctx)

	c.mu.Lock()
	cl.value, cl.err = value, err
	if c.calls[key] == cl {
		delete(c.calls, key)
		if err == nil {
			c.entries[key] = entry[V]{value: value, expires: c.now().Add(ttl)}
		}
	}
	c.mu.Unlock()

	close(cl.done)
}

// leave drops one waiter. The last waiter out cancels the computation and
// detaches it from the key so the next caller starts afresh.
func (c *Cache[V]) leave(key string, cl *call[V]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cl.waiters--
	if cl.waiters > 0 {
		return
	}
	if c.calls[key] == cl {
		delete(c.calls, key)
	}
	cl.cancel()
}
