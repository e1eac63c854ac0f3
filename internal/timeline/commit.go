package timeline

import (
	"time"

	"daygrid/internal/block"
)

// DefaultCommitInterval is the minimum age a pending mutation must
// reach before FlushDue delivers it: one animation frame.
const DefaultCommitInterval = 16 * time.Millisecond

// Sink receives the time updates the committer decides to deliver.
// Calls are fire-and-forget requests to the external store.
type Sink func(id string, upd block.TimeUpdate)

// Committer throttles the stream of proposed mutations produced by a
// drag gesture. Proposals are never delivered on arrival: each block
// holds at most one pending mutation (last write wins, nothing is
// queued) and delivery happens on the trailing edge, either when
// FlushDue finds the throttle window elapsed or when Flush ends the
// gesture. A burst of proposals inside one window therefore reaches
// the store as a single commit reflecting the newest state. Cancel
// drops the pending mutation so an aborted gesture emits nothing.
// Proposals for the same block always reach the sink in source-event
// order.
type Committer struct {
	sink     Sink
	interval time.Duration
	now      func() time.Time

	pending map[string]block.TimeUpdate
	since   map[string]time.Time // when the pending window opened
}

// CommitterOption configures optional committer behavior.
type CommitterOption func(*Committer)

// WithInterval overrides the minimum inter-commit interval.
func WithInterval(d time.Duration) CommitterOption {
	return func(c *Committer) { c.interval = d }
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) CommitterOption {
	return func(c *Committer) { c.now = now }
}

// NewCommitter creates a committer delivering to the given sink.
func NewCommitter(sink Sink, opts ...CommitterOption) *Committer {
	c := &Committer{
		sink:     sink,
		interval: DefaultCommitInterval,
		now:      time.Now,
		pending:  make(map[string]block.TimeUpdate),
		since:    make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Propose submits a mutation for a block, replacing whatever proposal
// is already pending. The throttle window opens at the first proposal
// after a delivery; later proposals do not extend it.
func (c *Committer) Propose(id string, upd block.TimeUpdate) {
	if _, ok := c.pending[id]; !ok {
		c.since[id] = c.now()
	}
	c.pending[id] = upd
}

// Flush synchronously delivers the pending mutation for a block, if
// any, regardless of the throttle window.
func (c *Committer) Flush(id string) {
	upd, ok := c.pending[id]
	if !ok {
		return
	}
	c.deliver(id, upd)
}

// FlushDue delivers every pending mutation whose throttle window has
// elapsed. The TUI drives this from a frame tick while a gesture is in
// progress so a long drag still streams intermediate commits.
func (c *Committer) FlushDue() {
	now := c.now()
	for id, upd := range c.pending {
		if now.Sub(c.since[id]) >= c.interval {
			c.deliver(id, upd)
		}
	}
}

// Cancel drops any pending mutation for a block without delivering it.
func (c *Committer) Cancel(id string) {
	delete(c.pending, id)
	delete(c.since, id)
}

// HasPending reports whether a mutation is waiting on the throttle
// window for the given block.
func (c *Committer) HasPending(id string) bool {
	_, ok := c.pending[id]
	return ok
}

func (c *Committer) deliver(id string, upd block.TimeUpdate) {
	delete(c.pending, id)
	delete(c.since, id)
	c.sink(id, upd)
}
