package game

import (
	"math"
	"testing"
)

func TestLiveNoteStates(t *testing.T) {
	n := &LiveNote{Spec: HitSpec{Kind: Hold, Duration: 1}}
	if !n.Approaching() {
		t.Fatal("new note should be approaching")
	}

	n.Hold(2)
	if !n.Holding() || n.Approaching() || n.LastTick != 2 {
		t.Fatal("note should be holding")
	}

	n.MarkUnpressable()
	if n.Holding() || !n.Unpressable() {
		t.Fatal("holding and unpressable must be exclusive")
	}

	// An unpressable note can never be held again
	n.Hold(3)
	if n.Holding() {
		t.Fatal("unpressable note returned to holding")
	}

	n.Resolve()
	n.MarkUnpressable()
	if !n.Resolved() || n.Holding() {
		t.Fatal("resolved must stay resolved")
	}
}

func TestTail(t *testing.T) {
	n := &LiveNote{Spec: HitSpec{Kind: Hold, Duration: 2.5}, Head: -1}
	if tail := n.Tail(10); tail != 24 {
		t.Errorf("tail = %v, want 24", tail)
	}
	tap := &LiveNote{Spec: HitSpec{Kind: Tap, Duration: 1}, Head: 3}
	if tail := tap.Tail(10); tail != 3 {
		t.Errorf("tap tail = %v, want 3", tail)
	}
}

func TestPositionAt(t *testing.T) {
	s := HitSpec{Kind: Hold, Lane: 0, Floor: 0, Curve: []Cell{{0, 0}, {0, 2}, {3, 2}}}
	tests := []struct {
		fraction float64
		x, y     float64
	}{
		{0, LaneX[0], FloorY[0]},
		{0.25, LaneX[0], FloorY[1]},
		{0.5, LaneX[0], FloorY[2]},
		{1, LaneX[3], FloorY[2]},
		{4, LaneX[3], FloorY[2]},
		{-1, LaneX[0], FloorY[0]},
	}
	for _, test := range tests {
		x, y := s.PositionAt(test.fraction)
		if math.Abs(x-test.x) > 1e-9 || math.Abs(y-test.y) > 1e-9 {
			t.Errorf("PositionAt(%v) = (%v, %v), want (%v, %v)", test.fraction, x, y, test.x, test.y)
		}
	}
}
