package tracker

// Scheduler schedules fn to run on the next animation frame.
type Scheduler func(fn func())

// Coalescer collapses bursts of requests into one callback per frame.
// It is not safe for concurrent use; it lives on the event loop.
type Coalescer struct {
	pending bool
}

// Request schedules fn through schedule unless a pass is already pending.
// It reports whether a new frame was scheduled.
func (c *Coalescer) Request(schedule Scheduler, fn func()) bool {
	if c.pending {
		return false
	}
	c.pending = true
	schedule(func() {
		fn()
		c.pending = false
	})
	return true
}

// Pending reports whether a pass is scheduled but has not run yet.
func (c *Coalescer) Pending() bool {
	return c.pending
}
