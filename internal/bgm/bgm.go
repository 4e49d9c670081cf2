// Package bgm tracks background-music playback state over a lazily
// constructed audio resource.
package bgm

import (
	"fmt"
	"sync"
)

// Playable is the underlying audio resource.
type Playable interface {
	Play() error
	Pause() error
}

// Controller owns a single Playable, constructed on first use and reused
// for the rest of the controller's lifetime. Playing mirrors the resource's
// actual state: a failed Play leaves it false.
type Controller struct {
	mu       sync.Mutex
	open     func() (Playable, error)
	playable Playable
	playing  bool
}

func NewController(open func() (Playable, error)) *Controller {
	return &Controller{open: open}
}

// Play starts playback, constructing the resource on the first call.
func (c *Controller) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.play()
}

func (c *Controller) play() error {
	if c.playable == nil {
		p, err := c.open()
		if err != nil {
			return fmt.Errorf("opening audio resource: %w", err)
		}
		c.playable = p
	}

	if err := c.playable.Play(); err != nil {
		c.playing = false
		return fmt.Errorf("starting playback: %w", err)
	}
	c.playing = true
	return nil
}

// Pause stops playback. A pause before any Play is a no-op.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pause()
}

func (c *Controller) pause() error {
	if c.playable == nil {
		return nil
	}
	if err := c.playable.Pause(); err != nil {
		return fmt.Errorf("pausing playback: %w", err)
	}
	c.playing = false
	return nil
}

// Toggle flips between playing and paused.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.playing {
		return c.pause()
	}
	return c.play()
}

// Playing reports whether the resource is currently playing.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}
