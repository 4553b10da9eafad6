package game

import "math"

type NoteKind uint8

const (
	Tap NoteKind = iota
	Hold
)

func (k NoteKind) String() string {
	if k == Hold {
		return "hold"
	}
	return "tap"
}

// HitSpec is a parsed note, immutable once the parser has produced it.
type HitSpec struct {
	Time     float64 // Seconds the head should be hit
	Lane     int
	Floor    int
	Kind     NoteKind
	Duration float64 // Seconds the hold lasts
	Curve    []Cell  // Starts at the head cell, no consecutive duplicates
}

func (s *HitSpec) Cell() Cell {
	return Cell{Lane: s.Lane, Floor: s.Floor}
}

func (s *HitSpec) Curved() bool {
	return s.Kind == Hold && len(s.Curve) > 1
}

// PositionAt interpolates the world position along the curve, where fraction
// 0 is the head and 1 the tail.
func (s *HitSpec) PositionAt(fraction float64) (x, y float64) {
	if len(s.Curve) < 2 {
		return LaneX[s.Lane], FloorY[s.Floor]
	}
	fraction = math.Max(0, math.Min(1, fraction))
	segments := float64(len(s.Curve) - 1)
	pos := fraction * segments
	i := int(pos)
	if i >= len(s.Curve)-1 {
		last := s.Curve[len(s.Curve)-1]
		return LaneX[last.Lane], FloorY[last.Floor]
	}
	t := pos - float64(i)
	a, b := s.Curve[i], s.Curve[i+1]
	x = LaneX[a.Lane] + (LaneX[b.Lane]-LaneX[a.Lane])*t
	y = FloorY[a.Floor] + (FloorY[b.Floor]-FloorY[a.Floor])*t
	return x, y
}

// LiveNote is the judged state of a spawned HitSpec.
type LiveNote struct {
	Spec  HitSpec
	Index int // Position of Spec in the chart

	Head      float64 // Distance from the judgement line, positive while approaching
	HoldAccum float64 // Seconds of continuous hold not yet awarded
	LastTick  float64 // Song time HoldAccum was last advanced

	holding     bool
	unpressable bool
	resolved    bool
}

func (n *LiveNote) Holding() bool     { return n.holding }
func (n *LiveNote) Unpressable() bool { return n.unpressable }
func (n *LiveNote) Resolved() bool    { return n.resolved }

// Approaching notes are the only ones a press can select.
func (n *LiveNote) Approaching() bool {
	return !n.holding && !n.unpressable && !n.resolved
}

func (n *LiveNote) Hold(now float64) {
	if n.resolved || n.unpressable {
		return
	}
	n.holding = true
	n.HoldAccum = 0
	n.LastTick = now
}

func (n *LiveNote) MarkUnpressable() {
	if n.resolved {
		return
	}
	n.holding = false
	n.unpressable = true
}

func (n *LiveNote) Resolve() {
	n.holding = false
	n.resolved = true
}

// Length is the distance the note body covers at the given speed.
func (n *LiveNote) Length(speed float64) float64 {
	if n.Spec.Kind != Hold {
		return 0
	}
	return n.Spec.Duration * speed
}

func (n *LiveNote) Tail(speed float64) float64 {
	return n.Head + n.Length(speed)
}
