package progress

import "sync"

// Counter is the shared completion counter for one run. The total is fixed
// at construction; the completed count only ever increases. Safe for
// concurrent use from any number of workers.
type Counter struct {
	mu    sync.Mutex
	value int
	total int
}

// NewCounter returns a counter starting at zero with the given fixed total.
func NewCounter(total int) *Counter {
	if total < 0 {
		total = 0
	}
	return &Counter{total: total}
}

// Increment adds one to the completed count and returns the new value. The
// read-modify-write executes as a single critical section, so no two callers
// ever observe the same post-increment value.
func (c *Counter) Increment() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value++
	return c.value
}

// Read returns the current completed count.
func (c *Counter) Read() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Total returns the fixed item total for the run.
func (c *Counter) Total() int {
	return c.total
}
