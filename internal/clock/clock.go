// Package clock defines the song time source the game is judged against.
package clock

import "errors"

var ErrRegress = errors.New("clock: time moved backwards")

// Clock reports song time in seconds. Now never decreases except across Seek.
type Clock interface {
	Now() float64
	Seek(t float64) error
}

// ManualClock is advanced explicitly, for tests and offline scoring.
type ManualClock struct {
	now float64
}

func NewManual(start float64) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() float64 {
	return c.now
}

// Set moves the clock forward to t.
func (c *ManualClock) Set(t float64) error {
	if t < c.now {
		return ErrRegress
	}
	c.now = t
	return nil
}

func (c *ManualClock) Advance(d float64) {
	if d > 0 {
		c.now += d
	}
}

func (c *ManualClock) Seek(t float64) error {
	c.now = t
	return nil
}

// Monotonic wraps a clock whose readings may jitter backwards, such as one
// sampled from an audio buffer, and holds its last reading instead.
type Monotonic struct {
	Source Clock
	last   float64
	primed bool
}

func (m *Monotonic) Now() float64 {
	t := m.Source.Now()
	if !m.primed || t > m.last {
		m.last = t
		m.primed = true
	}
	return m.last
}

func (m *Monotonic) Seek(t float64) error {
	if err := m.Source.Seek(t); nil != err {
		return err
	}
	m.primed = false
	return nil
}
