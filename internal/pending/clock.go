package pending

import (
	"sync"
	"time"
)

// ManualClock only moves when Advance is called.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	at    time.Time
	ch    chan time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) NewTimer(d time.Duration) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &manualTimer{clock: c, at: c.now.Add(d), ch: make(chan time.Time, 1)}
	if d <= 0 {
		t.ch <- c.now
		return t
	}
	c.timers = append(c.timers, t)
	return t
}

// Waiters reports how many timers are still pending. Fired and stopped timers are not counted.
func (c *ManualClock) Waiters() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Advance moves the clock forward and fires every timer that is now due.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
	remaining := c.timers[:0]
	for _, t := range c.timers {
		if !t.at.After(c.now) {
			t.ch <- c.now
			continue
		}
		remaining = append(remaining, t)
	}
	c.timers = remaining
}

func (t *manualTimer) C() <-chan time.Time { return t.ch }

// Stop reports whether the timer was still pending.
func (t *manualTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// InstantClock fires every timer immediately.
type InstantClock struct{}

func (InstantClock) Now() time.Time { return time.Now() }

func (InstantClock) NewTimer(time.Duration) Timer {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return firedTimer(ch)
}

type firedTimer chan time.Time

func (f firedTimer) C() <-chan time.Time { return f }
func (firedTimer) Stop() bool            { return false }
