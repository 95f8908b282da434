// Package locker serializes work per key inside one process.
//
// A key's entry lives only while somebody holds or waits for it, so the table
// does not grow with the number of rooms ever touched.
package locker

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	ch   chan struct{}
	refs int
}

// Keyed hands out one exclusive section per key.
type Keyed struct {
	mu      sync.Mutex
	entries map[string]*entry
}

var (
	shared     *Keyed
	sharedOnce sync.Once
)

func New() *Keyed {
	return &Keyed{entries: map[string]*entry{}}
}

// Get returns the process-wide locker. Every service guarding the same rows must use it.
func Get() *Keyed {
	sharedOnce.Do(func() {
		shared = New()
	})

	return shared
}

// Lock blocks until key is free or ctx is done. The returned func releases the key
// and is safe to call more than once.
func (k *Keyed) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()

	ent, ok := k.entries[key]
	if !ok {
		ent = &entry{ch: make(chan struct{}, 1)}
		k.entries[key] = ent
	}

	ent.refs++
	k.mu.Unlock()

	select {
	case ent.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, ent)

		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, ctx.Err())
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			<-ent.ch
			k.release(key, ent)
		})
	}, nil
}

func (k *Keyed) release(key string, ent *entry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	ent.refs--
	if ent.refs == 0 {
		delete(k.entries, key)
	}
}

// Len reports how many keys are currently held or awaited.
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.entries)
}

// LockWithin is Lock bounded by timeout. A non-positive timeout waits as long as ctx allows.
func (k *Keyed) LockWithin(ctx context.Context, key string, timeout time.Duration) (func(), error) {
	if timeout <= 0 {
		return k.Lock(ctx, key)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return k.Lock(ctx, key)
}
