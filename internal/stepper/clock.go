package stepper

import (
	"sync"
	"time"
)

// Timer is a cancellable deferred callback.
type Timer interface {
	Stop() bool
}

// Clock schedules deferred callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock schedules callbacks with time.AfterFunc.
func RealClock() Clock { return realClock{} }

// ManualClock only fires timers when told to. Callbacks run on the caller's
// goroutine, which makes scheduler behaviour fully deterministic.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	c       *ManualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{c: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Step fires the earliest pending timer and advances the clock to its
// deadline. It reports false when nothing is pending.
func (c *ManualClock) Step() bool {
	c.mu.Lock()
	c.prune()
	if len(c.timers) == 0 {
		c.mu.Unlock()
		return false
	}
	next := 0
	for i, t := range c.timers {
		if t.at < c.timers[next].at {
			next = i
		}
	}
	t := c.timers[next]
	t.fired = true
	c.now = t.at
	c.prune()
	c.mu.Unlock()

	t.f()
	return true
}

// Drain fires timers until none are pending or limit is reached, and
// returns how many fired.
func (c *ManualClock) Drain(limit int) int {
	n := 0
	for n < limit && c.Step() {
		n++
	}
	return n
}

// Pending returns the number of live timers.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune()
	return len(c.timers)
}

// Now returns the simulated time elapsed since the clock was created.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) prune() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(c.timers); i++ {
		c.timers[i] = nil
	}
	c.timers = live
}
