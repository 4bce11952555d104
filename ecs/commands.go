package ecs

// Commands buffers structural changes requested while systems run. The
// Scheduler flushes the buffer once every system of the frame has executed,
// so queries never observe a half-applied frame.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity creation.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues fn to run after the structural changes have been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending is the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies deletions, then spawns, then runs deferred functions in the
// order they were queued, and empties the buffer.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}
	for _, components := range c.spawns {
		storage.Spawn(components...)
	}
	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	clear(c.defers)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
}
