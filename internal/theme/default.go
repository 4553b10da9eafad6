package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/floorbeat/internal/game"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderNote(n *game.LiveNote) string {
	sym := tapSym
	if n.Spec.Kind == game.Hold {
		sym = holdSym
	}
	if n.Unpressable() {
		return paint(missColor, sym)
	}
	return paint(getFloorColor(n.Spec.Floor), sym)
}

func (t *DefaultTheme) RenderHoldBody(n *game.LiveNote) string {
	if n.Unpressable() {
		return paint(missColor, bodySym)
	}
	if n.Holding() {
		return paint(heldColor, bodySym)
	}
	return paint(getFloorColor(n.Spec.Floor), bodySym)
}

func (t *DefaultTheme) RenderHitField(lane int, down bool) string {
	if down {
		return paint(heldColor, barSyms[1])
	}
	return barSyms[0]
}

func (t *DefaultTheme) RenderBar(active bool) string {
	if !active {
		return " "
	}
	return paint(heldColor, touchSym)
}

func (t *DefaultTheme) RenderGrade(g game.Grade) string {
	return paint(gradeColors[g.Judgement().Grade], fmt.Sprintf("%-7v", g))
}

func paint(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

const (
	tapSym   = "⬤"
	holdSym  = "◆"
	bodySym  = "┃"
	touchSym = "▶"
)

var (
	barSyms     = [...]string{"-", "="}
	missColor   = color.RGBA{106, 106, 106, 255}
	heldColor   = color.RGBA{236, 195, 0, 255}
	floorColors = map[int]color.RGBA{
		0:  {236, 30, 0, 255},    // bottom red
		1:  {0, 118, 236, 255},   // middle blue
		2:  {0, 236, 128, 255},   // top green
		-1: {255, 255, 255, 255}, // other white
	}
	gradeColors = [...]color.RGBA{
		game.Perfect: {173, 236, 236, 255},
		game.Great:   {0, 236, 128, 255},
		game.Good:    {236, 195, 0, 255},
		game.Bad:     {236, 128, 0, 255},
		game.Miss:    {236, 30, 0, 255},
	}
)

func getFloorColor(floor int) color.RGBA {
	col, ok := floorColors[floor]
	if !ok {
		return floorColors[-1]
	}
	return col
}
