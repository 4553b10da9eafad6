// Package judge owns the notes in play and turns player actions into grades.
//
// Notes travel towards the judgement line at NoteSpeed. A note's head sits at
// distance (time - now) * NoteSpeed, always derived from the clock rather than
// accumulated, so a dropped frame never shifts a note.
package judge

import (
	"math"

	"git.lost.host/meutraa/floorbeat/internal/game"
)

type Config struct {
	NoteSpeed       float64 // Distance per second
	Offset          float64 // Seconds added to every note time
	JudgementOffset float64 // Distance subtracted before grading
	DestroyZ        float64 // Notes behind this distance are removed
	CurveTolerance  float64 // Allowed gap between touch bar and a curved hold
	HoldTick        float64 // Seconds of holding per tick
}

func DefaultConfig() Config {
	return Config{
		NoteSpeed:      10,
		DestroyZ:       -10,
		CurveTolerance: 1.25,
		HoldTick:       0.5,
	}
}

type Engine struct {
	cfg     Config
	notes   []*game.LiveNote
	spawned map[int]bool
}

func New(cfg Config) *Engine {
	return &Engine{cfg: cfg, spawned: map[int]bool{}}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Spawn makes a spec live. A spec index is only ever spawned once.
func (e *Engine) Spawn(index int, spec game.HitSpec) *game.LiveNote {
	if e.spawned[index] {
		return nil
	}
	e.spawned[index] = true
	n := &game.LiveNote{Spec: spec, Index: index, Head: math.Inf(1)}
	e.notes = append(e.notes, n)
	return n
}

// Notes returns the live notes in spawn order, for rendering.
func (e *Engine) Notes() []*game.LiveNote {
	return e.notes
}

// Outstanding counts notes that still need a judgement.
func (e *Engine) Outstanding() int {
	count := 0
	for _, n := range e.notes {
		if !n.Resolved() && !n.Unpressable() {
			count++
		}
	}
	return count
}

func (e *Engine) head(spec *game.HitSpec, now float64) float64 {
	return (spec.Time + e.cfg.Offset - now) * e.cfg.NoteSpeed
}

func (e *Engine) position(now float64) {
	for _, n := range e.notes {
		n.Head = e.head(&n.Spec, now)
	}
}

// late is the distance behind the line after which a note can no longer be hit.
func (e *Engine) late() float64 {
	return -game.Window(game.Bad, e.cfg.NoteSpeed) + e.cfg.JudgementOffset
}

func (e *Engine) grade(distance float64) game.Grade {
	return game.Judge(distance-e.cfg.JudgementOffset, e.cfg.NoteSpeed)
}

// PositionAtOffset is the lateral and vertical offset of a curved hold from
// its head cell, localDistance along the body from the head.
func (e *Engine) PositionAtOffset(n *game.LiveNote, localDistance float64) (float64, float64) {
	length := n.Length(e.cfg.NoteSpeed)
	fraction := 0.0
	if length > 0 {
		fraction = localDistance / length
	}
	x, y := n.Spec.PositionAt(fraction)
	return x - game.LaneX[n.Spec.Lane], y - game.FloorY[n.Spec.Floor]
}

// Update moves every note to its position at now and applies the judgements
// that need no input: late misses, hold ticks, over-holds and curve checks.
// held has the lanes whose key is down.
func (e *Engine) Update(now float64, held [game.Lanes]bool, bar game.Bar) []Event {
	e.position(now)

	var events []Event
	for _, n := range e.notes {
		switch {
		case n.Resolved():
		case n.Holding():
			events = append(events, e.updateHolding(n, now, held[n.Spec.Lane], bar)...)
		case n.Unpressable():
			if n.Tail(e.cfg.NoteSpeed) < e.cfg.DestroyZ {
				n.Resolve()
			}
		default:
			if n.Head >= e.late() && n.Head >= e.cfg.DestroyZ {
				continue
			}
			events = append(events, e.missLate(n))
		}
	}

	e.sweep()
	return events
}

// missLate resolves a note whose head passed the line unpressed.
func (e *Engine) missLate(n *game.LiveNote) Event {
	ev := newEvent(Missed, game.Miss, n)
	ev.Cause = CauseLate
	if n.Spec.Kind == game.Hold && n.Tail(e.cfg.NoteSpeed) >= e.cfg.DestroyZ {
		// The body keeps travelling but can no longer be judged
		n.MarkUnpressable()
	} else {
		n.Resolve()
	}
	return ev
}

func (e *Engine) updateHolding(n *game.LiveNote, now float64, down bool, bar game.Bar) []Event {
	var events []Event
	if down {
		n.HoldAccum += now - n.LastTick
		for n.HoldAccum >= e.cfg.HoldTick && e.cfg.HoldTick > 0 {
			n.HoldAccum -= e.cfg.HoldTick
			events = append(events, newEvent(HoldTick, game.Perfect, n))
		}
	} else {
		n.HoldAccum = 0
	}
	n.LastTick = now

	if n.Tail(e.cfg.NoteSpeed) < e.late() {
		ev := newEvent(Missed, game.Miss, n)
		ev.Cause = CauseOverHold
		n.Resolve()
		return append(events, ev)
	}

	if n.Spec.Curved() && !e.tracking(n, bar) {
		ev := newEvent(Missed, game.Miss, n)
		ev.Cause = CauseCurve
		n.MarkUnpressable()
		return append(events, ev)
	}
	return events
}

// tracking reports whether the touch bar follows the curve where it crosses
// the judgement line.
func (e *Engine) tracking(n *game.LiveNote, bar game.Bar) bool {
	if !bar.Active {
		return false
	}
	_, dy := e.PositionAtOffset(n, -n.Head)
	return math.Abs(game.FloorY[n.Spec.Floor]+dy-bar.Y) <= e.cfg.CurveTolerance
}

// Press judges a key press on lane while floor is selected.
func (e *Engine) Press(now float64, lane, floor int) []Event {
	if floor == game.NoFloor {
		return nil
	}
	e.position(now)

	// The note closest to, or furthest past, the line answers the press
	var target *game.LiveNote
	for _, n := range e.notes {
		if !n.Approaching() || n.Spec.Lane != lane || n.Spec.Floor != floor {
			continue
		}
		if nil == target || n.Head < target.Head || (n.Head == target.Head && n.Index < target.Index) {
			target = n
		}
	}
	if nil == target {
		return nil
	}

	g := e.grade(target.Head)
	if g == game.Miss {
		// Too early is ignored, too late misses the head
		if target.Head >= e.late() {
			return nil
		}
		ev := e.missLate(target)
		e.sweep()
		return []Event{ev}
	}

	if target.Spec.Kind == game.Hold {
		target.Hold(now)
		return []Event{newEvent(HoldStart, g, target)}
	}
	target.Resolve()
	e.sweep()
	return []Event{newEvent(Hit, g, target)}
}

// Release judges the tail of any note held on lane.
func (e *Engine) Release(now float64, lane int) []Event {
	e.position(now)

	var events []Event
	for _, n := range e.notes {
		if !n.Holding() || n.Spec.Lane != lane {
			continue
		}
		g := e.grade(n.Tail(e.cfg.NoteSpeed))
		if g == game.Miss {
			events = append(events, newEvent(Missed, game.Miss, n))
		} else {
			events = append(events, newEvent(Release, g, n))
		}
		n.Resolve()
	}
	e.sweep()
	return events
}

func (e *Engine) sweep() {
	live := e.notes[:0]
	for _, n := range e.notes {
		if !n.Resolved() {
			live = append(live, n)
		}
	}
	for i := len(live); i < len(e.notes); i++ {
		e.notes[i] = nil
	}
	e.notes = live
}
