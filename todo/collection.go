package todo

import (
	"sync"
	"time"
)

// Collection is the in-memory mirror of the user's todos. Order is
// significant: new todos are prepended and upserts preserve position, matching
// the card list presentation.
//
// Remote calls complete on background goroutines while the UI reads current
// state, so access is guarded by a mutex.
type Collection struct {
	mu    sync.RWMutex
	todos []Todo
}

// NewCollection returns a collection seeded with the given todos.
func NewCollection(todos ...Todo) *Collection {
	collection := &Collection{}
	collection.Replace(todos)
	return collection
}

// Replace swaps the entire contents for the result of a remote fetch.
// Soft-deleted records are excluded.
func (c *Collection) Replace(todos []Todo) {
	replacement := make([]Todo, 0, len(todos))
	for _, item := range todos {
		if item.DeletedAt != nil {
			continue
		}
		replacement = append(replacement, item)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.todos = replacement
}

// Upsert inserts or replaces a todo by ID. A matching ID is replaced in
// place, preserving its position; a new ID is prepended. The collection never
// contains two entries with the same ID.
func (c *Collection) Upsert(item Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.todos {
		if c.todos[i].ID == item.ID {
			c.todos[i] = item
			return
		}
	}
	c.todos = append([]Todo{item}, c.todos...)
}

// Remove deletes the todo with the given ID. Removing an absent ID is a
// no-op, so the operation is idempotent.
func (c *Collection) Remove(id ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.todos {
		if c.todos[i].ID == id {
			c.todos = append(c.todos[:i], c.todos[i+1:]...)
			return
		}
	}
}

// Get returns a copy of the todo with the given ID.
func (c *Collection) Get(id ID) (Todo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.todos {
		if c.todos[i].ID == id {
			return c.todos[i], true
		}
	}
	return Todo{}, false
}

// Todos returns a copy of the collection in display order.
func (c *Collection) Todos() []Todo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Todo(nil), c.todos...)
}

// Len returns the number of todos in the collection.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.todos)
}

// Stats summarizes the collection for the dashboard view.
type Stats struct {
	Total     int
	Completed int
	Open      int
}

// Stats counts completed and open todos.
func (c *Collection) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats := Stats{Total: len(c.todos)}
	for _, item := range c.todos {
		if item.IsCompleted {
			stats.Completed++
		}
	}
	stats.Open = stats.Total - stats.Completed
	return stats
}

// Overdue returns the todos with a due date before now, in display order.
func (c *Collection) Overdue(now time.Time) []Todo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var overdue []Todo
	for _, item := range c.todos {
		if item.IsOverdue(now) {
			overdue = append(overdue, item)
		}
	}
	return overdue
}
