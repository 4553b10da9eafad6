package theme

import "git.lost.host/meutraa/floorbeat/internal/game"

type Theme interface {
	RenderNote(n *game.LiveNote) string
	RenderHoldBody(n *game.LiveNote) string
	RenderHitField(lane int, down bool) string
	RenderBar(active bool) string
	RenderGrade(g game.Grade) string
}
