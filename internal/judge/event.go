package judge

import "git.lost.host/meutraa/floorbeat/internal/game"

type EventKind uint8

const (
	Hit       EventKind = iota // Tap resolved with a grade
	HoldStart                  // Hold head pressed in a window
	HoldTick                   // Another stretch of a hold was held
	Release                    // Hold tail judged, Miss when outside every window
	Missed                     // Note resolved without being hit
)

var kindNames = [...]string{"hit", "hold", "tick", "release", "miss"}

func (k EventKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

type Cause uint8

const (
	CauseNone     Cause = iota
	CauseLate           // Head passed the judgement line unpressed
	CauseOverHold       // Tail passed the line while still held
	CauseCurve          // Touch bar left a curved hold
)

type Event struct {
	Kind  EventKind
	Grade game.Grade
	Cause Cause
	Index int // Spec index within the chart
	Lane  int
	Floor int
}

// Resolves reports whether the event is the final judgement of its note.
// Every note resolves exactly once.
func (e Event) Resolves() bool {
	return e.Kind == Hit || e.Kind == Release || e.Kind == Missed
}

func newEvent(kind EventKind, grade game.Grade, n *game.LiveNote) Event {
	return Event{
		Kind:  kind,
		Grade: grade,
		Index: n.Index,
		Lane:  n.Spec.Lane,
		Floor: n.Spec.Floor,
	}
}
