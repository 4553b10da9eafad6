// Package session plays one chart: it steps the timeline, the judge and the
// score together once per frame.
package session

import (
	"errors"
	"log"

	"git.lost.host/meutraa/floorbeat/internal/clock"
	"git.lost.host/meutraa/floorbeat/internal/game"
	"git.lost.host/meutraa/floorbeat/internal/judge"
	"git.lost.host/meutraa/floorbeat/internal/score"
	"git.lost.host/meutraa/floorbeat/internal/timeline"
)

var (
	ErrNoChart = errors.New("session: no chart")
	ErrNoClock = errors.New("session: no clock source")
)

type Config struct {
	Judge    judge.Config
	Timeline timeline.Config
	SkipLead float64 // Seconds left before the first note when skipping the intro
}

// Input is what the player did since the previous tick.
type Input struct {
	Pressed  []int // Lanes whose key went down
	Released []int // Lanes whose key went up
	Floor    int   // Selected floor, game.NoFloor when none
	BarY     *float64
}

// Bar is where the touch bar is, BarY overriding the selected floor's height.
func (in Input) Bar() game.Bar {
	if nil != in.BarY {
		return game.Bar{Y: *in.BarY, Active: in.Floor != game.NoFloor}
	}
	return game.BarAt(in.Floor)
}

type Session struct {
	chart    *game.Chart
	clock    clock.Clock
	store    score.Store
	logger   *log.Logger
	cfg      Config
	timeline *timeline.Timeline
	engine   *judge.Engine
	stats    score.Aggregator

	down   [game.Lanes]bool
	ended  bool
	report score.Report
	best   score.Best
}

// New prepares a play of chart. store may be nil, in which case nothing is
// persisted.
func New(chart *game.Chart, clk clock.Clock, store score.Store, cfg Config, logger *log.Logger) (*Session, error) {
	if nil == chart {
		return nil, ErrNoChart
	}
	if nil == clk {
		return nil, ErrNoClock
	}
	if nil == logger {
		logger = log.Default()
	}
	return &Session{
		chart:    chart,
		clock:    clk,
		store:    store,
		logger:   logger,
		cfg:      cfg,
		timeline: timeline.New(chart.HitSpecs, cfg.Timeline),
		engine:   judge.New(cfg.Judge),
	}, nil
}

func (s *Session) Chart() *game.Chart       { return s.chart }
func (s *Session) Engine() *judge.Engine    { return s.engine }
func (s *Session) Stats() *score.Aggregator { return &s.stats }
func (s *Session) Now() float64             { return s.clock.Now() }

// Down has the lanes whose key is held.
func (s *Session) Down() [game.Lanes]bool { return s.down }

// Tick advances the play to the current clock reading. Notes already being
// held are judged before any new press, so a released lane cannot be scored
// twice in one tick.
func (s *Session) Tick(in Input) []judge.Event {
	if s.ended {
		return nil
	}
	now := s.clock.Now()

	for _, due := range s.timeline.Advance(now) {
		s.engine.Spawn(due.Index, due.Spec)
	}

	for _, lane := range in.Released {
		if lane >= 0 && lane < game.Lanes {
			s.down[lane] = false
		}
	}

	events := s.engine.Update(now, s.down, in.Bar())
	for _, lane := range in.Released {
		events = append(events, s.engine.Release(now, lane)...)
	}
	for _, lane := range in.Pressed {
		if lane < 0 || lane >= game.Lanes {
			continue
		}
		s.down[lane] = true
		events = append(events, s.engine.Press(now, lane, in.Floor)...)
	}

	for _, ev := range events {
		s.stats.Apply(ev)
	}
	return events
}

// SkipToFirstNote seeks past a silent intro, leaving SkipLead seconds before
// the next note appears. It does nothing when that point has passed.
func (s *Session) SkipToFirstNote() error {
	first, ok := s.timeline.FirstSpawn()
	if !ok {
		return nil
	}
	target := first - s.cfg.SkipLead
	if target <= s.clock.Now() {
		return nil
	}
	return s.clock.Seek(target)
}

func (s *Session) Done() bool {
	return s.ended || s.timeline.Finished(s.clock.Now(), s.engine.Outstanding())
}

// End finishes the play, persisting it once. Later calls return the same
// report without touching the store again.
func (s *Session) End() (score.Report, score.Best, error) {
	if s.ended {
		return s.report, s.best, nil
	}
	s.ended = true
	s.report = s.stats.Report()

	if nil == s.store {
		return s.report, s.best, nil
	}
	id := s.chart.SongID()
	if _, err := s.store.RecordPlay(id, s.report); nil != err {
		s.logger.Println("unable to record play", err)
	}
	best, improved, err := score.UpdateBest(s.store, id, s.report)
	s.best = best
	if nil != err {
		return s.report, s.best, err
	}
	if improved {
		s.logger.Printf("new best for %v: %v points, %v combo", id, best.Score, best.Combo)
	}
	return s.report, s.best, nil
}
