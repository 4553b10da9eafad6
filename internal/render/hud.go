package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"git.lost.host/meutraa/floorbeat/internal/game"
	"git.lost.host/meutraa/floorbeat/internal/judge"
	"git.lost.host/meutraa/floorbeat/internal/score"
	"git.lost.host/meutraa/floorbeat/internal/theme"
)

// Each lane is drawn as one column per floor plus a gap.
const laneWidth = game.Floors + 1

// Frame is everything the HUD shows for one render.
type Frame struct {
	Now    float64
	Notes  []*game.LiveNote
	Down   [game.Lanes]bool
	Bar    game.Bar
	Stats  *score.Aggregator
	Events []judge.Event
}

// HUD draws the lanes from above with notes falling towards the judgement
// line at the bottom, and the running score beside them.
type HUD struct {
	Renderer  Renderer
	Theme     theme.Theme
	Speed     float64       // Note speed, world units per second
	Distance  float64       // Distance shown at the top row
	GradeLife time.Duration // How long the last grade stays up

	top, line, left, side int
}

func (h *HUD) Layout(columns, rows int) {
	width := game.Lanes * laneWidth
	h.top = 2
	h.line = rows - 2
	if h.line <= h.top {
		h.line = h.top + 1
	}
	h.left = columns/2 - width/2
	if h.left < 1 {
		h.left = 1
	}
	h.side = h.left + width + 4
	if h.GradeLife == 0 {
		h.GradeLife = 400 * time.Millisecond
	}
}

// Row is the screen row of a note distance from the judgement line; ok is
// false when it is off the field.
func (h *HUD) Row(distance float64) (row int, ok bool) {
	span := float64(h.line - h.top)
	row = h.line - int(math.Round(distance/h.Distance*span))
	return row, row >= h.top && row <= h.line
}

func (h *HUD) Column(lane, floor int) int {
	return h.left + lane*laneWidth + floor
}

func (h *HUD) Draw(f Frame) {
	blank := strings.Repeat(" ", game.Lanes*laneWidth)
	for row := h.top; row < h.line; row++ {
		h.Renderer.Fill(row, h.left, blank)
	}
	for lane := 0; lane < game.Lanes; lane++ {
		for floor := 0; floor < game.Floors; floor++ {
			h.Renderer.Fill(h.line, h.Column(lane, floor), h.Theme.RenderHitField(lane, f.Down[lane]))
		}
	}
	for floor := 0; floor < game.Floors; floor++ {
		active := f.Bar.Active && f.Bar.Floor() == floor
		h.Renderer.Fill(h.line+1, h.Column(0, floor), h.Theme.RenderBar(active))
	}

	for _, n := range f.Notes {
		if n.Resolved() {
			continue
		}
		h.drawBody(n)
		if n.Holding() {
			continue
		}
		if row, ok := h.Row(n.Head); ok && row < h.line {
			h.Renderer.Fill(row, h.Column(n.Spec.Lane, n.Spec.Floor), h.Theme.RenderNote(n))
		}
	}

	h.drawStats(f)
}

func (h *HUD) drawBody(n *game.LiveNote) {
	length := n.Length(h.Speed)
	if length <= 0 {
		return
	}
	step := h.Distance / float64(h.line-h.top)
	for d := math.Max(n.Head, 0) + step; d < n.Head+length; d += step {
		row, ok := h.Row(d)
		if !ok {
			if row < h.top {
				return
			}
			continue
		}
		x, y := n.Spec.PositionAt((d - n.Head) / length)
		col := h.Column(nearestLane(x), game.FloorAtHeight(y))
		h.Renderer.Fill(row, col, h.Theme.RenderHoldBody(n))
	}
}

func (h *HUD) drawStats(f Frame) {
	if nil == f.Stats {
		return
	}
	h.Renderer.Fill(h.top, h.side, fmt.Sprintf("   Time:  %8.2f", f.Now))
	h.Renderer.Fill(h.top+1, h.side, fmt.Sprintf("  Score:  %8v", f.Stats.Score()))
	h.Renderer.Fill(h.top+2, h.side, fmt.Sprintf("  Combo:  %8v", f.Stats.Combo()))
	h.Renderer.Fill(h.top+3, h.side, fmt.Sprintf("    Acc:  %7.2f%%", f.Stats.Accuracy()*100))
	for i, j := range game.Judgements {
		h.Renderer.Fill(h.top+5+i, h.side, fmt.Sprintf("%7v:  %8v", j.Name, f.Stats.Count(j.Grade)))
	}

	for _, ev := range f.Events {
		if !ev.Resolves() && ev.Kind != judge.HoldStart {
			continue
		}
		grade := ev.Grade
		if ev.Kind == judge.Missed {
			grade = game.Miss
		}
		h.Renderer.AddDecoration(h.side+2, h.top+11, h.Theme.RenderGrade(grade), h.GradeLife)
	}
}

func nearestLane(x float64) int {
	best := 0
	for i, lx := range game.LaneX {
		if math.Abs(x-lx) < math.Abs(x-game.LaneX[best]) {
			best = i
		}
	}
	return best
}
