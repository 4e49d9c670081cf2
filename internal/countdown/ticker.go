package countdown

import (
	"sync"
	"time"
)

// Ticker recomputes the breakdown once per second and publishes it on C.
// The channel holds only the latest value: a slow reader skips intermediate
// ticks rather than falling behind.
type Ticker struct {
	C <-chan Breakdown

	out  chan Breakdown
	stop chan struct{}
	once sync.Once
}

// NewTicker starts a ticker counting down to target.
func NewTicker(target time.Time) *Ticker {
	return newTicker(target, time.Second, time.Now)
}

func newTicker(target time.Time, interval time.Duration, now func() time.Time) *Ticker {
	t := &Ticker{
		out:  make(chan Breakdown, 1),
		stop: make(chan struct{}),
	}
	t.C = t.out

	go t.run(target, interval, now)
	return t
}

func (t *Ticker) run(target time.Time, interval time.Duration, now func() time.Time) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	t.publish(Until(target, now()))
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.publish(Until(target, now()))
		}
	}
}

func (t *Ticker) publish(b Breakdown) {
	// Drop the stale value if nobody consumed it yet.
	select {
	case <-t.out:
	default:
	}
	t.out <- b
}

// Stop tears down the ticker goroutine. Safe to call more than once.
func (t *Ticker) Stop() {
	t.once.Do(func() { close(t.stop) })
}
