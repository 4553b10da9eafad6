// Package input turns terminal key presses into lane presses, releases and a
// touch bar position.
package input

import (
	"time"

	"git.lost.host/meutraa/floorbeat/internal/session"
)

type Keymap interface {
	LaneKey(r rune) int
	FloorKey(r rune) int
}

type Input interface {
	Init() error
	Deinit() error
	// Poll drains what happened since the last call. quit is set when the
	// player asked to leave.
	Poll(now time.Time) (in session.Input, quit bool)
	// Wait blocks until any key is pressed.
	Wait()
}
