package effect

import (
	"sync"
	"time"
)

// Renderable is a decorative effect the host can start and stop. Its
// absence never affects anything else.
type Renderable interface {
	Start()
	Stop()
}

// Runner drives a Field at a fixed frame interval and hands each frame to
// the supplied callback.
type Runner struct {
	field    *Field
	interval time.Duration
	frame    func([]Particle)

	start sync.Once
	stop  sync.Once
	done  chan struct{}
}

var _ Renderable = (*Runner)(nil)

func NewRunner(field *Field, interval time.Duration, frame func([]Particle)) *Runner {
	return &Runner{
		field:    field,
		interval: interval,
		frame:    frame,
		done:     make(chan struct{}),
	}
}

func (r *Runner) Start() {
	r.start.Do(func() { go r.run() })
}

func (r *Runner) run() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	dt := r.interval.Seconds()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.field.Step(dt)
			r.frame(r.field.Particles())
		}
	}
}

// Stop cancels the loop. Safe to call more than once, and before Start.
func (r *Runner) Stop() {
	r.stop.Do(func() { close(r.done) })
}
