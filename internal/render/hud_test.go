package render

import (
	"image/color"
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/floorbeat/internal/game"
	"git.lost.host/meutraa/floorbeat/internal/judge"
	"git.lost.host/meutraa/floorbeat/internal/score"
	"git.lost.host/meutraa/floorbeat/internal/theme"
)

type cell struct{ row, col int }

// recorder keeps the last thing written to every cell.
type recorder struct {
	cells       map[cell]string
	decorations []string
}

func (r *recorder) Init() error      { return nil }
func (r *recorder) Deinit() error    { return nil }
func (r *recorder) Size() (int, int) { return 80, 24 }
func (r *recorder) Clear()           {}
func (r *recorder) Fill(row, col int, s string) {
	r.cells[cell{row, col}] = s
}
func (r *recorder) FillColor(row, col int, _ color.RGBA, s string) {
	r.Fill(row, col, s)
}
func (r *recorder) AddDecoration(col, row int, s string, _ time.Duration) {
	r.decorations = append(r.decorations, s)
	r.Fill(row, col, s)
}
func (r *recorder) RenderLoop(time.Duration, func(time.Time) bool) {}

func newHUD() (*HUD, *recorder) {
	rec := &recorder{cells: map[cell]string{}}
	h := &HUD{Renderer: rec, Theme: &theme.DefaultTheme{}, Speed: 10, Distance: 20}
	h.Layout(80, 24)
	return h, rec
}

func TestRow(t *testing.T) {
	h, _ := newHUD()
	// 20 rows between the top at 2 and the line at 22
	tests := []struct {
		distance float64
		row      int
		ok       bool
	}{
		{0, 22, true},
		{20, 2, true},
		{10, 12, true},
		{21, 1, false},
		{-1, 23, false},
	}
	for _, test := range tests {
		row, ok := h.Row(test.distance)
		if row != test.row || ok != test.ok {
			t.Errorf("distance %v: row %v %v, want %v %v", test.distance, row, ok, test.row, test.ok)
		}
	}
}

func TestDrawNotes(t *testing.T) {
	h, rec := newHUD()
	tap := &game.LiveNote{Spec: game.HitSpec{Kind: game.Tap, Lane: 2, Floor: 1}, Head: 10}
	hold := &game.LiveNote{
		Spec: game.HitSpec{Kind: game.Hold, Lane: 0, Floor: 0, Duration: 0.5,
			Curve: []game.Cell{{Lane: 0, Floor: 0}, {Lane: 0, Floor: 2}}},
		Head: 2,
	}
	var stats score.Aggregator

	h.Draw(Frame{Notes: []*game.LiveNote{tap, hold}, Stats: &stats})

	if s := rec.cells[cell{12, h.Column(2, 1)}]; !strings.Contains(s, "⬤") {
		t.Errorf("tap not drawn, cell has %q", s)
	}
	if s := rec.cells[cell{20, h.Column(0, 0)}]; !strings.Contains(s, "◆") {
		t.Errorf("hold head not drawn, cell has %q", s)
	}
	// the curve climbs to the top floor by its tail
	if s := rec.cells[cell{16, h.Column(0, 2)}]; !strings.Contains(s, "┃") {
		t.Errorf("curved body not drawn on the top floor, cell has %q", s)
	}
}

func TestDrawGrades(t *testing.T) {
	h, rec := newHUD()
	var stats score.Aggregator
	events := []judge.Event{
		{Kind: judge.HoldTick, Grade: game.Perfect},
		{Kind: judge.Hit, Grade: game.Great},
		{Kind: judge.Missed, Grade: game.Good, Cause: judge.CauseCurve},
	}
	for _, ev := range events {
		stats.Apply(ev)
	}
	h.Draw(Frame{Stats: &stats, Events: events})

	if len(rec.decorations) != 2 {
		t.Fatalf("decorations = %q", rec.decorations)
	}
	if !strings.Contains(rec.decorations[0], "Great") || !strings.Contains(rec.decorations[1], "Miss") {
		t.Errorf("decorations = %q", rec.decorations)
	}
	if s := rec.cells[cell{h.top + 1, h.side}]; !strings.Contains(s, "Score:") {
		t.Errorf("score line = %q", s)
	}
}

func TestNearestLane(t *testing.T) {
	for i, x := range game.LaneX {
		if nearestLane(x+0.4) != i {
			t.Errorf("lane %v", i)
		}
	}
}
