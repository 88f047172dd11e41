package acquire

import (
	"sync"
	"time"
)

// Timer periodically invokes a notify function on its own goroutine. The
// notify path is the analogue of a timer interrupt handler: it must do
// exactly one non-blocking wake of the worker and return, never sampling,
// rendering or blocking.
//
// UpdatePeriod takes effect before the next fire; a fire already in flight
// is not retroactively affected.
type Timer struct {
	mu      sync.Mutex
	period  time.Duration
	notify  func()
	ticker  *time.Ticker
	done    chan struct{}
	started bool
}

// NewTimer creates a timer with the given initial period and notify
// function. The timer does not fire until Start is called, so the worker's
// wake latch exists before the first fire and no notification can be lost.
func NewTimer(period time.Duration, notify func()) *Timer {
	return &Timer{
		period: period,
		notify: notify,
	}
}

// Start begins periodic firing. Starting an already-started timer is a no-op.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return
	}

	t.ticker = time.NewTicker(t.period)
	t.done = make(chan struct{})
	t.started = true

	go t.run(t.ticker, t.done)
}

// UpdatePeriod reprograms the timer. The new period applies from the next
// fire onward.
func (t *Timer) UpdatePeriod(period time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.period = period
	if t.started {
		t.ticker.Reset(period)
	}
}

// Stop halts firing. Stopping a stopped timer is a no-op.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return
	}

	t.ticker.Stop()
	close(t.done)
	t.started = false
}

func (t *Timer) run(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			t.notify()
		}
	}
}
