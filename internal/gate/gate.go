// Package gate holds the intro overlay state: closed until the guest taps
// through, open forever after.
package gate

import (
	"sync"
	"time"
)

// Gate is a one-shot switch. It starts closed, opens exactly once, and
// never reverts. Open is idempotent.
type Gate struct {
	mu       sync.Mutex
	openedAt *time.Time
	now      func() time.Time
}

func New() *Gate {
	return &Gate{now: time.Now}
}

// Open transitions the gate to open and reports whether this call performed
// the transition. Subsequent calls are no-ops.
func (g *Gate) Open() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.openedAt != nil {
		return false
	}
	t := g.now()
	g.openedAt = &t
	return true
}

// Opened reports whether the gate has been opened.
func (g *Gate) Opened() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.openedAt != nil
}

// OpenedAt returns the time of the first Open call, if any.
func (g *Gate) OpenedAt() (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.openedAt == nil {
		return time.Time{}, false
	}
	return *g.openedAt, true
}
