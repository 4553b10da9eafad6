// Package timeline decides when each note of a chart becomes live.
package timeline

import "git.lost.host/meutraa/floorbeat/internal/game"

type Config struct {
	Offset        float64 // Seconds added to every note time
	SpawnDistance float64 // Distance from the judgement line notes appear at
	NoteSpeed     float64 // Distance travelled per second
	EndTimeout    float64 // Seconds after the last note the song ends regardless
}

// ApproachTime is how long a note is visible before reaching the judgement line.
func (c Config) ApproachTime() float64 {
	return c.SpawnDistance / c.NoteSpeed
}

// Due is a spec whose spawn time has been reached, with its index in the chart.
type Due struct {
	Index int
	Spec  game.HitSpec
}

// Timeline hands out specs in time order. It only moves forward, a new
// Timeline is needed to play a chart again.
type Timeline struct {
	cfg    Config
	specs  []game.HitSpec
	cursor int
}

// New expects specs sorted by time, as the parser returns them.
func New(specs []game.HitSpec, cfg Config) *Timeline {
	return &Timeline{cfg: cfg, specs: specs}
}

func (t *Timeline) SpawnTime(spec game.HitSpec) float64 {
	return spec.Time + t.cfg.Offset - t.cfg.ApproachTime()
}

// Advance returns every spec that became due since the last call.
func (t *Timeline) Advance(now float64) []Due {
	var due []Due
	for t.cursor < len(t.specs) && t.SpawnTime(t.specs[t.cursor]) <= now {
		due = append(due, Due{Index: t.cursor, Spec: t.specs[t.cursor]})
		t.cursor++
	}
	return due
}

func (t *Timeline) Remaining() int {
	return len(t.specs) - t.cursor
}

func (t *Timeline) Exhausted() bool {
	return t.cursor >= len(t.specs)
}

// FirstSpawn is the spawn time of the next spec still to be handed out.
func (t *Timeline) FirstSpawn() (float64, bool) {
	if t.Exhausted() {
		return 0, false
	}
	return t.SpawnTime(t.specs[t.cursor]), true
}

// Finished reports the end of the song: every spec is out and either no note
// is still being judged or the failsafe timeout has passed.
func (t *Timeline) Finished(now float64, outstanding int) bool {
	if !t.Exhausted() {
		return false
	}
	if outstanding == 0 {
		return true
	}
	last := 0.0
	if len(t.specs) > 0 {
		last = t.specs[len(t.specs)-1].Time + t.cfg.Offset
	}
	return now > last+t.cfg.EndTimeout
}
