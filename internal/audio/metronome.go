package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// clicks is a click track: a short decaying tone on every beat, or silence
// when muted.
type clicks struct {
	rate     beep.SampleRate
	interval int // samples per beat
	length   int // samples in a click
	pos      int
	total    int
	muted    bool
}

func (c *clicks) Stream(samples [][2]float64) (int, bool) {
	if c.pos >= c.total {
		return 0, false
	}
	n := len(samples)
	if rest := c.total - c.pos; n > rest {
		n = rest
	}
	for i := range samples[:n] {
		samples[i] = [2]float64{}
		if c.muted {
			continue
		}
		if into := (c.pos + i) % c.interval; into < c.length {
			t := float64(into) / float64(c.rate)
			v := 0.4 * math.Sin(2*math.Pi*1760*t) * (1 - float64(into)/float64(c.length))
			samples[i] = [2]float64{v, v}
		}
	}
	c.pos += n
	return n, true
}

func (c *clicks) Err() error    { return nil }
func (c *clicks) Len() int      { return c.total }
func (c *clicks) Position() int { return c.pos }

func (c *clicks) Seek(p int) error {
	c.pos = p
	return nil
}

// NewMetronome plays a click on every beat for up to length, the first one
// after delay. A muted metronome is still a clock.
func NewMetronome(bpm float64, delay, length time.Duration, muted bool) *Player {
	rate := beep.SampleRate(44100)
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	src := &clicks{
		rate:     rate,
		interval: rate.N(time.Duration(60 / bpm * float64(time.Second))),
		length:   rate.N(30 * time.Millisecond),
		total:    rate.N(length),
		muted:    muted,
	}
	return newPlayer(src, format, delay, nil)
}
