// Package calibrate measures how early or late a player taps against a steady
// beat, giving the audio or judgement offset that cancels it out.
package calibrate

import (
	"errors"
	"math"
	"time"
)

var ErrNoTaps = errors.New("calibrate: no taps recorded")

type Mode string

const (
	Audio     Mode = "audio"     // Tap to the clicks
	Judgement Mode = "judgement" // Tap to the flashes
)

// Taps before the first beat by more than this are ignored.
const earliest = -0.2

// flash is how long the beat indicator stays lit, in seconds.
const flash = 0.1

type Calibrator struct {
	Mode      Mode
	BPM       float64
	Required  int
	NoteSpeed float64

	diffs []float64
}

type Result struct {
	Mean            float64       // Seconds, positive when tapping late
	AudioOffset     time.Duration // Rounded to the millisecond
	JudgementOffset float64       // World units at NoteSpeed
}

func (c *Calibrator) Interval() float64 {
	return 60 / c.BPM
}

// Flash reports whether the beat indicator is lit elapsed seconds after the
// first beat.
func (c *Calibrator) Flash(elapsed float64) bool {
	return elapsed >= 0 && math.Mod(elapsed, c.Interval()) < flash
}

// Tap records a tap elapsed seconds after the first beat and returns how far
// it was from the nearest beat.
func (c *Calibrator) Tap(elapsed float64) (float64, bool) {
	if elapsed < earliest || c.Done() {
		return 0, false
	}
	beat := math.Round(elapsed / c.Interval())
	diff := elapsed - beat*c.Interval()
	c.diffs = append(c.diffs, diff)
	return diff, true
}

func (c *Calibrator) Done() bool {
	return len(c.diffs) >= c.Required
}

func (c *Calibrator) Progress() (taps, required int) {
	return len(c.diffs), c.Required
}

func (c *Calibrator) Result() (Result, error) {
	if len(c.diffs) == 0 {
		return Result{}, ErrNoTaps
	}
	sum := 0.0
	for _, d := range c.diffs {
		sum += d
	}
	mean := sum / float64(len(c.diffs))
	return Result{
		Mean:            mean,
		AudioOffset:     time.Duration(math.Round(mean*1000)) * time.Millisecond,
		JudgementOffset: mean * c.NoteSpeed,
	}, nil
}
