package parser

import "git.lost.host/meutraa/floorbeat/internal/game"

type Parser interface {
	// Parse never fails, malformed lines and fields fall back to defaults
	Parse(text string) *game.Chart
	ParseFile(file string) (*game.Chart, error)
}
