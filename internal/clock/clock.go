// Package clock abstracts time so timer-driven behavior (submission delays,
// draft autosave debounce, live status polling) can be driven by tests.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
	NewTicker(d time.Duration) Ticker
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realClock struct{}

func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

func (realClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{ticker: time.NewTicker(d)}
}

type realTicker struct {
	ticker *time.Ticker
}

func (t *realTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *realTicker) Stop() {
	t.ticker.Stop()
}

// Fake is a manually advanced clock. Timers and tickers fire only from
// Advance; like time.Ticker, a ticker drops ticks nobody has read yet.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	waiters []*fakeWaiter
}

type fakeWaiter struct {
	deadline time.Time
	period   time.Duration
	ch       chan time.Time
	stopped  bool
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- f.now
		return ch
	}
	f.waiters = append(f.waiters, &fakeWaiter{deadline: f.now.Add(d), ch: ch})
	return ch
}

func (f *Fake) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive ticker interval")
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	waiter := &fakeWaiter{deadline: f.now.Add(d), period: d, ch: make(chan time.Time, 1)}
	f.waiters = append(f.waiters, waiter)
	return &fakeTicker{clock: f, waiter: waiter}
}

// Advance moves the clock forward and fires every timer and ticker whose
// deadline has been reached.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
	remaining := f.waiters[:0]
	for _, waiter := range f.waiters {
		if waiter.stopped {
			continue
		}
		fired := false
		for !waiter.deadline.After(f.now) {
			select {
			case waiter.ch <- waiter.deadline:
			default:
			}
			if waiter.period == 0 {
				fired = true
				break
			}
			waiter.deadline = waiter.deadline.Add(waiter.period)
		}
		if !fired {
			remaining = append(remaining, waiter)
		}
	}
	f.waiters = remaining
}

// Pending reports how many timers and tickers are still armed.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, waiter := range f.waiters {
		if !waiter.stopped {
			count++
		}
	}
	return count
}

type fakeTicker struct {
	clock  *Fake
	waiter *fakeWaiter
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.waiter.ch
}

func (t *fakeTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.waiter.stopped = true
}
