package score

import (
	"git.lost.host/meutraa/floorbeat/internal/game"
	"git.lost.host/meutraa/floorbeat/internal/judge"
)

// TickScore is awarded for every tick of a hold.
const TickScore = 50

// Points is the score a grade earns at the given combo, counted after the
// current hit was added to it.
func Points(g game.Grade, combo int) int {
	if g == game.Miss {
		return 0
	}
	return g.Judgement().Score + (combo/10)*20
}

type Report struct {
	Score      int
	Combo      int
	MaxCombo   int
	Counts     [len(game.Judgements)]int
	TotalNotes int
	Accuracy   float64 // 1 is every note Perfect
}

// Aggregator accumulates the judgements of one play.
type Aggregator struct {
	score    int
	combo    int
	maxCombo int
	counts   [len(game.Judgements)]int
	total    int
}

func (a *Aggregator) Score() int    { return a.score }
func (a *Aggregator) Combo() int    { return a.combo }
func (a *Aggregator) MaxCombo() int { return a.maxCombo }

func (a *Aggregator) Count(g game.Grade) int {
	return a.counts[g]
}

func (a *Aggregator) extend() {
	a.combo++
	if a.combo > a.maxCombo {
		a.maxCombo = a.combo
	}
}

// grade applies a graded hit and returns the points it earned.
func (a *Aggregator) grade(g game.Grade) int {
	if g.Combos() {
		a.extend()
	} else {
		a.combo = 0
	}
	points := Points(g, a.combo)
	a.score += points
	return points
}

// Apply folds a judgement event into the totals and returns the points it earned.
func (a *Aggregator) Apply(ev judge.Event) int {
	switch ev.Kind {
	case judge.HoldStart:
		// Only a clean head is rewarded, the tail decides the note's grade
		if !ev.Grade.Combos() {
			a.combo = 0
			return 0
		}
		return a.grade(ev.Grade)
	case judge.HoldTick:
		a.extend()
		a.score += TickScore
		return TickScore
	}

	if !ev.Resolves() {
		return 0
	}
	g := ev.Grade
	if ev.Kind == judge.Missed {
		g = game.Miss
	}
	a.counts[g]++
	a.total++
	return a.grade(g)
}

// Accuracy is the weighted share of perfect judgements, 0 before any note.
func (a *Aggregator) Accuracy() float64 {
	if a.total == 0 {
		return 0
	}
	sum := 0
	for g, count := range a.counts {
		sum += game.Judgements[g].Weight * count
	}
	return float64(sum) / float64(a.total*100)
}

func (a *Aggregator) Report() Report {
	return Report{
		Score:      a.score,
		Combo:      a.combo,
		MaxCombo:   a.maxCombo,
		Counts:     a.counts,
		TotalNotes: a.total,
		Accuracy:   a.Accuracy(),
	}
}
