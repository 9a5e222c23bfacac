// Package debounce coalesces bursts of requests into one deferred action.
package debounce

import "time"

// Coalescer holds at most one pending request. A new request replaces the
// pending one and restarts its delay; the owner polls Due from its frame
// loop, so no goroutine or timer is involved.
type Coalescer struct {
	Delay time.Duration

	pending bool
	due     time.Time
}

// New returns a coalescer with the given default delay
func New(delay time.Duration) *Coalescer {
	return &Coalescer{Delay: delay}
}

// Request schedules the action for now+Delay, replacing any pending request
func (c *Coalescer) Request(now time.Time) {
	c.RequestAfter(now, c.Delay)
}

// RequestAfter schedules the action for now+delay, replacing any pending request
func (c *Coalescer) RequestAfter(now time.Time, delay time.Duration) {
	c.pending = true
	c.due = now.Add(delay)
}

// Due reports whether a pending request has reached its deadline. A true
// result consumes the request.
func (c *Coalescer) Due(now time.Time) bool {
	if !c.pending || now.Before(c.due) {
		return false
	}
	c.pending = false
	return true
}

// Pending reports whether a request is waiting
func (c *Coalescer) Pending() bool {
	return c.pending
}

// Cancel drops the pending request, if any
func (c *Coalescer) Cancel() {
	c.pending = false
}

// Flush consumes the pending request immediately. It reports whether there
// was one.
func (c *Coalescer) Flush() bool {
	p := c.pending
	c.pending = false
	return p
}
