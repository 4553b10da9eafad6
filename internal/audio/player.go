package audio

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Player streams a song preceded by delay worth of silence. It implements
// clock.Clock: Now is the song position in seconds, negative during the lead in.
type Player struct {
	format beep.Format
	source beep.StreamSeeker
	closer func() error
	ctrl   *beep.Ctrl
	chunk  int
	lead   int

	// guarded by speaker.Lock
	pos   int
	stamp time.Time
	now   func() time.Time
}

// Open decodes path and prepares it for playback. Nothing is heard until Play.
func Open(path string, delay time.Duration) (*Player, error) {
	s, format, err := Decode(path)
	if nil != err {
		return nil, err
	}
	return newPlayer(s, format, delay, s.Close), nil
}

func newPlayer(s beep.StreamSeeker, format beep.Format, delay time.Duration, closer func() error) *Player {
	p := &Player{
		format: format,
		source: s,
		closer: closer,
		chunk:  Chunk(format),
		lead:   format.SampleRate.N(delay),
		now:    time.Now,
	}
	p.ctrl = &beep.Ctrl{Streamer: p}
	return p
}

func (p *Player) Format() beep.Format {
	return p.format
}

// Play initialises the speaker for the song's sample rate and starts it.
func (p *Player) Play() error {
	if err := speaker.Init(p.format.SampleRate, p.chunk); nil != err {
		return fmt.Errorf("unable to initialise speaker: %w", err)
	}
	speaker.Play(p.ctrl)
	return nil
}

func (p *Player) Pause(paused bool) {
	speaker.Lock()
	p.ctrl.Paused = paused
	if !paused && !p.stamp.IsZero() {
		p.stamp = p.now()
	}
	speaker.Unlock()
}

func (p *Player) Paused() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return p.ctrl.Paused
}

// Stream is called by the speaker. It plays the lead in, then the song, and
// counts every sample handed over.
func (p *Player) Stream(samples [][2]float64) (n int, ok bool) {
	if p.pos < p.lead {
		n = p.lead - p.pos
		if n > len(samples) {
			n = len(samples)
		}
		for i := range samples[:n] {
			samples[i] = [2]float64{}
		}
	}
	if n < len(samples) {
		m, sok := p.source.Stream(samples[n:])
		n += m
		if !sok && n == 0 {
			return 0, false
		}
	}
	p.pos += n
	p.stamp = p.now()
	return n, true
}

func (p *Player) Err() error {
	return p.source.Err()
}

// Now interpolates between speaker callbacks with the wall clock, never by more
// than one chunk.
func (p *Player) Now() float64 {
	speaker.Lock()
	defer speaker.Unlock()
	return p.position()
}

// position is the start of the chunk last handed to the speaker plus the time
// since, or the cursor itself before playback or after a seek.
func (p *Player) position() float64 {
	n := p.pos - p.lead
	if p.stamp.IsZero() {
		return p.format.SampleRate.D(n).Seconds()
	}
	var elapsed time.Duration
	if !p.ctrl.Paused {
		elapsed = p.now().Sub(p.stamp)
		if limit := p.format.SampleRate.D(p.chunk); elapsed > limit {
			elapsed = limit
		}
	}
	return (p.format.SampleRate.D(n-p.chunk) + elapsed).Seconds()
}

// Seek moves playback to song time t. Times before zero land in the lead in.
func (p *Player) Seek(t float64) error {
	n := p.format.SampleRate.N(time.Duration(t * float64(time.Second)))

	speaker.Lock()
	defer speaker.Unlock()

	target := n
	if target < 0 {
		target = 0
	}
	if l := p.source.Len(); target > l {
		target = l
	}
	if err := p.source.Seek(target); nil != err {
		return fmt.Errorf("unable to seek to %.3fs: %w", t, err)
	}

	p.pos = p.lead + n
	if p.pos < 0 {
		p.pos = 0
	}
	p.stamp = time.Time{}
	return nil
}

// Done reports whether the song has been fully handed to the speaker.
func (p *Player) Done() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return p.pos-p.lead >= p.source.Len()
}

func (p *Player) Close() error {
	speaker.Clear()
	if nil == p.closer {
		return nil
	}
	return p.closer()
}
