package render

import (
	"bytes"
	"image/color"
	"testing"
	"time"
)

func TestFill(t *testing.T) {
	var out bytes.Buffer
	r := &DefaultRenderer{Out: &out}
	r.Fill(3, 7, "x")
	r.FillColor(1, 2, color.RGBA{1, 2, 3, 255}, "y")
	r.flush()

	want := "\033[3;7Hx\033[1;2H\033[38;2;1;2;3my\033[0m"
	if out.String() != want {
		t.Errorf("wrote %q, want %q", out.String(), want)
	}
	if r.buffer.Len() != 0 {
		t.Error("buffer not reset after flush")
	}
}

func TestDecorationsExpire(t *testing.T) {
	var out bytes.Buffer
	now := time.Unix(0, 0)
	r := &DefaultRenderer{Out: &out, now: func() time.Time { return now }}

	r.AddDecoration(5, 2, "\033[1;31mMiss\033[0m", 100*time.Millisecond)
	r.flush()
	out.Reset()

	r.tickDecorations(now.Add(50 * time.Millisecond))
	if len(r.decorations) != 1 {
		t.Fatal("decoration removed early")
	}
	r.buffer.Reset()

	r.tickDecorations(now.Add(100 * time.Millisecond))
	r.flush()
	if len(r.decorations) != 0 {
		t.Error("decoration kept past its life")
	}
	if out.String() != "\033[2;5H    " {
		t.Errorf("erased with %q", out.String())
	}
}

func TestRenderLoop(t *testing.T) {
	var out bytes.Buffer
	r := &DefaultRenderer{Out: &out, now: time.Now}
	frames := 0
	r.RenderLoop(time.Millisecond, func(now time.Time) bool {
		frames++
		r.Fill(1, 1, "f")
		return frames < 3
	})
	if frames != 3 || out.String() != "\033[1;1Hf\033[1;1Hf\033[1;1Hf" {
		t.Errorf("%v frames wrote %q", frames, out.String())
	}
}

func TestStripColor(t *testing.T) {
	if s := stripColor("\033[38;2;1;2;3m⬤\033[0m"); s != "⬤" {
		t.Errorf("got %q", s)
	}
}
