package game

type PointKind uint8

const (
	Uninherited PointKind = iota // Red line, sets the tempo
	Inherited                    // Green line, scales slider velocity
)

// DefaultBeatLength is used when no uninherited point precedes a query (100 BPM).
const DefaultBeatLength = 600.0

type TimingPoint struct {
	Time       float64 // Milliseconds from the start of the audio
	BeatLength float64 // ms per beat, or -100/multiplier for inherited points
	Kind       PointKind
}

func (tp TimingPoint) IsInherited() bool {
	return tp.Kind == Inherited
}

// Velocity returns the slider velocity multiplier an inherited point encodes.
// Uninherited points and malformed (non-negative) inherited points yield 1.
func (tp TimingPoint) Velocity() float64 {
	if tp.Kind != Inherited || tp.BeatLength >= 0 {
		return 1.0
	}
	return 100.0 / -tp.BeatLength
}
