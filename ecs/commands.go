package ecs

import (
	"sync"

	"github.com/kamstrup/intmap"
)

// Commands buffers structural changes issued during a frame. Systems may call
// it concurrently from parallel iteration; nothing takes effect until the
// scheduler flushes at the frame boundary, so a despawned entity stays
// visible to later systems within the same frame.
type Commands struct {
	mu      sync.Mutex
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.mu.Lock()
	c.spawns = append(c.spawns, components)
	c.mu.Unlock()
}

// Delete queues an entity despawn. Requesting the same entity more than once
// before the flush is harmless.
func (c *Commands) Delete(entity EntityId) {
	c.mu.Lock()
	c.deletes = append(c.deletes, entity)
	c.mu.Unlock()
}

// Defer queues an arbitrary function to run during the flush, after deletes
// and spawns have been applied.
func (c *Commands) Defer(fn func()) {
	c.mu.Lock()
	c.defers = append(c.defers, fn)
	c.mu.Unlock()
}

// Flush applies deletes, then spawns, then deferred functions, and resets the
// buffer. Called by the scheduler after all systems have run.
func (c *Commands) Flush(storage *Storage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deleted := intmap.New[EntityId, bool](len(c.deletes))
	for _, id := range c.deletes {
		if _, seen := deleted.Get(id); seen {
			continue
		}
		deleted.Put(id, true)
		storage.Delete(id)
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
}
