package judge

import (
	"testing"

	"git.lost.host/meutraa/floorbeat/internal/game"
)

var nothingHeld [game.Lanes]bool

func held(lanes ...int) [game.Lanes]bool {
	var h [game.Lanes]bool
	for _, l := range lanes {
		h[l] = true
	}
	return h
}

func tap(t float64, lane, floor int) game.HitSpec {
	return game.HitSpec{Time: t, Lane: lane, Floor: floor, Kind: game.Tap, Duration: 1}
}

func hold(t, duration float64, lane, floor int) game.HitSpec {
	return game.HitSpec{Time: t, Lane: lane, Floor: floor, Kind: game.Hold, Duration: duration,
		Curve: []game.Cell{{Lane: lane, Floor: floor}}}
}

func newEngine(specs ...game.HitSpec) *Engine {
	e := New(DefaultConfig())
	for i, s := range specs {
		e.Spawn(i, s)
	}
	return e
}

func expectOne(t *testing.T, events []Event, kind EventKind, grade game.Grade) Event {
	t.Helper()
	if len(events) != 1 {
		t.Fatalf("events = %+v, want one %v", events, kind)
	}
	if events[0].Kind != kind || events[0].Grade != grade {
		t.Fatalf("event = %+v, want %v %v", events[0], kind, grade)
	}
	return events[0]
}

func TestTapGrades(t *testing.T) {
	tests := []struct {
		at    float64
		grade game.Grade
	}{
		{10, game.Perfect},
		{9.97, game.Perfect},
		{10.07, game.Great},
		{9.9, game.Good},
		{10.13, game.Bad},
	}
	for _, test := range tests {
		e := newEngine(tap(10, 1, 2))
		expectOne(t, e.Press(test.at, 1, 2), Hit, test.grade)
		if e.Outstanding() != 0 || len(e.Notes()) != 0 {
			t.Errorf("press at %v left %v notes", test.at, len(e.Notes()))
		}
	}
}

func TestPressIgnored(t *testing.T) {
	e := newEngine(tap(10, 1, 2))
	if ev := e.Press(9, 1, 2); len(ev) != 0 {
		t.Errorf("press far from the note judged %+v", ev)
	}
	if ev := e.Press(10, 1, 1); len(ev) != 0 {
		t.Errorf("press on another floor judged %+v", ev)
	}
	if ev := e.Press(10, 0, 2); len(ev) != 0 {
		t.Errorf("press on another lane judged %+v", ev)
	}
	if ev := e.Press(10, 1, game.NoFloor); len(ev) != 0 {
		t.Errorf("press without a floor judged %+v", ev)
	}
	if e.Outstanding() != 1 {
		t.Errorf("outstanding = %v, want 1", e.Outstanding())
	}
}

func TestPressSelectsFurthestTravelled(t *testing.T) {
	e := newEngine(tap(10, 0, 0), tap(10.1, 0, 0))
	ev := expectOne(t, e.Press(10.02, 0, 0), Hit, game.Perfect)
	if ev.Index != 0 {
		t.Errorf("pressed note %v, want 0", ev.Index)
	}

	tie := newEngine(tap(10, 0, 0), tap(10, 0, 0))
	if ev := expectOne(t, tie.Press(10, 0, 0), Hit, game.Perfect); ev.Index != 0 {
		t.Errorf("tie resolved to %v, want 0", ev.Index)
	}
	if ev := expectOne(t, tie.Press(10, 0, 0), Hit, game.Perfect); ev.Index != 1 {
		t.Errorf("second press hit %v, want 1", ev.Index)
	}
}

func TestSpawnOnce(t *testing.T) {
	e := newEngine(tap(10, 0, 0))
	if n := e.Spawn(0, tap(10, 0, 0)); nil != n {
		t.Fatal("spec spawned twice")
	}
	if len(e.Notes()) != 1 {
		t.Fatalf("notes = %v", len(e.Notes()))
	}
}

func TestLateMiss(t *testing.T) {
	e := newEngine(tap(10, 3, 0))
	if ev := e.Update(10.1, nothingHeld, game.BarAt(0)); len(ev) != 0 {
		t.Fatalf("missed inside the bad window: %+v", ev)
	}
	ev := expectOne(t, e.Update(10.15, nothingHeld, game.BarAt(0)), Missed, game.Miss)
	if ev.Cause != CauseLate {
		t.Errorf("cause = %v, want late", ev.Cause)
	}
	if ev := e.Update(11, nothingHeld, game.BarAt(0)); len(ev) != 0 {
		t.Errorf("miss reported twice: %+v", ev)
	}
}

func TestHoldPerfect(t *testing.T) {
	e := newEngine(hold(10, 1, 2, 1))
	expectOne(t, e.Press(10, 2, 1), HoldStart, game.Perfect)
	if n := e.Notes()[0]; !n.Holding() || n.Resolved() {
		t.Fatal("hold head should start holding, not resolve")
	}
	if ev := e.Update(10.4, held(2), game.BarAt(1)); len(ev) != 0 {
		t.Fatalf("events while holding = %+v", ev)
	}
	expectOne(t, e.Release(11, 2), Release, game.Perfect)
	if e.Outstanding() != 0 {
		t.Error("released hold still outstanding")
	}
}

func TestHoldEarlyRelease(t *testing.T) {
	e := newEngine(hold(10, 2, 0, 0))
	expectOne(t, e.Press(10, 0, 0), HoldStart, game.Perfect)
	expectOne(t, e.Release(10.5, 0), Missed, game.Miss)
	if e.Outstanding() != 0 {
		t.Error("released hold still outstanding")
	}
}

func TestHoldTicks(t *testing.T) {
	e := newEngine(hold(10, 3, 0, 0))
	e.Press(10, 0, 0)
	ticks := 0
	for _, at := range []float64{10.25, 10.5, 10.75, 11, 11.25} {
		for _, ev := range e.Update(at, held(0), game.BarAt(0)) {
			if ev.Kind == HoldTick {
				ticks++
			}
		}
	}
	if ticks != 2 {
		t.Errorf("ticks = %v, want 2", ticks)
	}

	// Time spent released earns nothing
	e.Update(12, nothingHeld, game.BarAt(0))
	for _, ev := range e.Update(12.25, held(0), game.BarAt(0)) {
		if ev.Kind == HoldTick {
			t.Errorf("tick awarded for released time: %+v", ev)
		}
	}
}

func TestOverHold(t *testing.T) {
	e := newEngine(hold(10, 1, 1, 1))
	e.Press(10, 1, 1)
	if ev := e.Update(11.1, held(1), game.BarAt(1)); len(ev) != 2 {
		t.Fatalf("events = %+v, want two ticks", ev)
	}
	var miss *Event
	for _, ev := range e.Update(11.2, held(1), game.BarAt(1)) {
		if ev.Kind == Missed {
			ev := ev
			miss = &ev
		}
	}
	if nil == miss || miss.Cause != CauseOverHold {
		t.Fatalf("over-hold did not miss: %+v", miss)
	}
	// The key stays down forever without another judgement
	for at := 11.3; at < 20; at += 0.5 {
		if ev := e.Update(at, held(1), game.BarAt(1)); len(ev) != 0 {
			t.Fatalf("events after over-hold = %+v", ev)
		}
	}
	if ev := e.Release(20, 1); len(ev) != 0 {
		t.Fatalf("release after over-hold judged %+v", ev)
	}
}

func TestHoldHeadMissed(t *testing.T) {
	e := newEngine(hold(10, 2, 2, 2))
	ev := expectOne(t, e.Update(10.2, nothingHeld, game.BarAt(2)), Missed, game.Miss)
	if ev.Cause != CauseLate {
		t.Errorf("cause = %v", ev.Cause)
	}
	n := e.Notes()[0]
	if !n.Unpressable() {
		t.Fatal("missed hold should keep moving as unpressable")
	}
	if ev := e.Press(10.2, 2, 2); len(ev) != 0 {
		t.Errorf("unpressable note judged %+v", ev)
	}
	if e.Outstanding() != 0 {
		t.Error("unpressable note counted as outstanding")
	}
	// The tail passes the destroy boundary at 13
	e.Update(13.1, nothingHeld, game.BarAt(2))
	if len(e.Notes()) != 0 {
		t.Error("unpressable note never removed")
	}
}

func TestBadHeadHolds(t *testing.T) {
	e := newEngine(hold(10, 1, 0, 0))
	expectOne(t, e.Press(9.87, 0, 0), HoldStart, game.Bad)
	if !e.Notes()[0].Holding() {
		t.Fatal("bad head should still hold")
	}
}

func TestPressAfterHeadPassed(t *testing.T) {
	// No Update between spawn and press, the head is already 2 units past the line
	e := newEngine(hold(10, 2, 1, 1), tap(10, 2, 1))
	ev := expectOne(t, e.Press(10.2, 1, 1), Missed, game.Miss)
	if ev.Cause != CauseLate || ev.Index != 0 {
		t.Errorf("event = %+v", ev)
	}
	if n := e.Notes()[0]; !n.Unpressable() || n.Holding() {
		t.Error("late hold head should leave the note unpressable")
	}
	if ev := e.Update(10.3, held(1), game.BarAt(1)); len(ev) != 1 || ev[0].Index != 1 {
		t.Errorf("hold judged again after its head was missed: %+v", ev)
	}

	single := newEngine(tap(10, 0, 0))
	expectOne(t, single.Press(10.2, 0, 0), Missed, game.Miss)
	if len(single.Notes()) != 0 {
		t.Error("late tap not removed")
	}
}

func curved() game.HitSpec {
	s := hold(10, 2, 3, 0)
	s.Curve = []game.Cell{{Lane: 3, Floor: 0}, {Lane: 3, Floor: 2}}
	return s
}

func TestCurveTracking(t *testing.T) {
	e := newEngine(curved())
	e.Press(10, 3, 0)
	if ev := e.Update(10.25, held(3), game.BarAt(0)); len(ev) != 0 {
		t.Fatalf("events = %+v", ev)
	}
	// Halfway through the body the curve is at the middle floor
	if ev := e.Update(11, held(3), game.Bar{Y: 4.5, Active: true}); len(ev) != 2 {
		t.Fatalf("events = %+v, want two ticks", ev)
	}
	ev := expectOne(t, e.Update(11.2, held(3), game.BarAt(0)), Missed, game.Miss)
	if ev.Cause != CauseCurve {
		t.Errorf("cause = %v", ev.Cause)
	}
	n := e.Notes()[0]
	if n.Holding() || !n.Unpressable() {
		t.Error("note should be unpressable after leaving the curve")
	}
}

func TestCurveNeedsFloor(t *testing.T) {
	e := newEngine(curved())
	e.Press(10, 3, 0)
	ev := expectOne(t, e.Update(10.1, held(3), game.Bar{}), Missed, game.Miss)
	if ev.Cause != CauseCurve {
		t.Errorf("cause = %v", ev.Cause)
	}
}

func TestPositionAtOffset(t *testing.T) {
	e := newEngine(curved())
	n := e.Notes()[0]
	if x, y := e.PositionAtOffset(n, 10); x != 0 || y != 2.5 {
		t.Errorf("PositionAtOffset(10) = (%v, %v), want (0, 2.5)", x, y)
	}
	if x, y := e.PositionAtOffset(n, 40); x != 0 || y != 5 {
		t.Errorf("PositionAtOffset(40) = (%v, %v), want (0, 5)", x, y)
	}
}
