package input

import (
	"time"

	"git.lost.host/meutraa/floorbeat/internal/game"
)

// Tracker infers lane releases from a terminal, which only reports key presses
// and their auto repeats. A held key is reported once, again after Delay, then
// at least every Gap.
type Tracker struct {
	Delay time.Duration
	Gap   time.Duration

	lanes [game.Lanes]lane
}

type lane struct {
	down      bool
	repeating bool
	seen      time.Time
}

// Key records a report of lane at t. It returns whether the lane went up and
// whether it went down: a report too early to be a repeat is a second tap.
func (t *Tracker) Key(i int, at time.Time) (released, pressed bool) {
	if i < 0 || i >= game.Lanes {
		return false, false
	}
	l := &t.lanes[i]
	defer func() { l.seen = at }()

	if !l.down {
		*l = lane{down: true}
		return false, true
	}

	dt := at.Sub(l.seen)
	switch {
	case l.repeating && dt <= t.Gap:
		return false, false
	case !l.repeating && dt >= t.Delay-t.Gap:
		l.repeating = true
		return false, false
	}
	l.repeating = false
	return true, true
}

// Expire releases every lane whose key has stopped repeating by at.
func (t *Tracker) Expire(at time.Time) []int {
	var released []int
	for i := range t.lanes {
		l := &t.lanes[i]
		if !l.down {
			continue
		}
		limit := t.Gap
		if !l.repeating {
			limit += t.Delay
		}
		if at.Sub(l.seen) > limit {
			*l = lane{}
			released = append(released, i)
		}
	}
	return released
}

func (t *Tracker) Down() (down [game.Lanes]bool) {
	for i, l := range t.lanes {
		down[i] = l.down
	}
	return down
}

// Steer moves a touch bar between the lowest and highest floor.
type Steer struct {
	Y float64
}

func (s *Steer) Select(floor int) {
	if floor >= 0 && floor < game.Floors {
		s.Y = game.FloorY[floor]
	}
}

func (s *Steer) Nudge(dy float64) {
	s.Y += dy
	if s.Y < game.FloorY[0] {
		s.Y = game.FloorY[0]
	} else if s.Y > game.FloorY[game.Floors-1] {
		s.Y = game.FloorY[game.Floors-1]
	}
}

func (s *Steer) Floor() int {
	return game.FloorAtHeight(s.Y)
}
