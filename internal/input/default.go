package input

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/floorbeat/internal/game"
	"git.lost.host/meutraa/floorbeat/internal/session"
	"github.com/eiannone/keyboard"
)

// DefaultInput reads keys with eiannone/keyboard. Lane keys press lanes, floor
// keys move the bar to a floor and the arrow keys nudge it by Step.
type DefaultInput struct {
	Keymap Keymap
	Delay  time.Duration
	Gap    time.Duration
	Step   float64

	keys    <-chan keyboard.KeyEvent
	tracker Tracker
	steer   Steer
}

func (in *DefaultInput) Init() error {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	in.keys = keys
	in.reset()
	return nil
}

func (in *DefaultInput) reset() {
	in.tracker = Tracker{Delay: in.Delay, Gap: in.Gap}
	in.steer = Steer{Y: game.FloorY[0]}
	if in.Step == 0 {
		in.Step = 0.5
	}
}

func (in *DefaultInput) Deinit() error {
	return keyboard.Close()
}

func (in *DefaultInput) Poll(now time.Time) (session.Input, bool) {
	var out session.Input
	quit := false
	for i := len(in.keys); i > 0; i-- {
		if in.apply(<-in.keys, now, &out) {
			quit = true
		}
	}
	return in.finish(now, out), quit
}

func (in *DefaultInput) Wait() {
	<-in.keys
}

// apply folds one key event into out, returning true for a quit request.
func (in *DefaultInput) apply(key keyboard.KeyEvent, now time.Time, out *session.Input) bool {
	if nil != key.Err {
		return false
	}
	switch key.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return true
	case keyboard.KeyArrowUp:
		in.steer.Nudge(in.Step)
		return false
	case keyboard.KeyArrowDown:
		in.steer.Nudge(-in.Step)
		return false
	}

	if floor := in.Keymap.FloorKey(key.Rune); floor != game.NoFloor {
		in.steer.Select(floor)
		return false
	}
	if lane := in.Keymap.LaneKey(key.Rune); lane >= 0 {
		released, pressed := in.tracker.Key(lane, now)
		if released {
			out.Released = append(out.Released, lane)
		}
		if pressed {
			out.Pressed = append(out.Pressed, lane)
		}
	}
	return false
}

func (in *DefaultInput) finish(now time.Time, out session.Input) session.Input {
	out.Released = append(out.Released, in.tracker.Expire(now)...)
	y := in.steer.Y
	out.BarY = &y
	out.Floor = in.steer.Floor()
	return out
}
