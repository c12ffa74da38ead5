package mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/draftea/checkout-system/checkout-service/domain"
)

// FakeClock is a manually advanced domain.Clock. Callbacks due during Advance
// run synchronously on the caller's goroutine, in due order.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*fakeTimer
	fired   []time.Time
}

type fakeTimer struct {
	clock *FakeClock
	id    int
	due   time.Time
	f     func()
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) domain.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{clock: c, id: c.seq, due: c.now.Add(d), f: f}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves time forward by d, firing every callback that falls due.
// Callbacks scheduled by a firing callback also fire if they are due.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.popDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.due
		c.fired = append(c.fired, next.due)
		c.mu.Unlock()

		next.f()
	}
}

// Pending returns how many callbacks are waiting to fire
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Fired returns the clock time at which each callback fired
func (c *FakeClock) Fired() []time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Time(nil), c.fired...)
}

func (c *FakeClock) popDue(target time.Time) *fakeTimer {
	sort.SliceStable(c.pending, func(i, j int) bool {
		return c.pending[i].due.Before(c.pending[j].due)
	})
	if len(c.pending) == 0 || c.pending[0].due.After(target) {
		return nil
	}
	next := c.pending[0]
	c.pending = c.pending[1:]
	return next
}

func (t *fakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.pending {
		if p.id == t.id {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return true
		}
	}
	return false
}
