package game

import "math"

type Grade uint8

const (
	Perfect Grade = iota
	Great
	Good
	Bad
	Miss
)

type Judgement struct {
	Grade    Grade
	Distance float64 // Window at speed 10, in world units
	Score    int
	Weight   int // Contribution to accuracy, out of 100
	Name     string
}

// Judgements is ordered from tightest to loosest window, Miss last.
var Judgements = [...]Judgement{
	{Grade: Perfect, Distance: 0.5, Score: 500, Weight: 100, Name: "Perfect"},
	{Grade: Great, Distance: 0.8, Score: 300, Weight: 80, Name: "Great"},
	{Grade: Good, Distance: 1.1, Score: 100, Weight: 50, Name: "Good"},
	{Grade: Bad, Distance: 1.4, Score: 50, Weight: 20, Name: "Bad"},
	{Grade: Miss, Distance: math.Inf(1), Score: 0, Weight: 0, Name: "Miss"},
}

func (g Grade) Judgement() Judgement {
	if int(g) >= len(Judgements) {
		return Judgements[Miss]
	}
	return Judgements[g]
}

func (g Grade) String() string {
	return g.Judgement().Name
}

// Combos reports whether the grade extends the combo. Bad scores but still breaks it.
func (g Grade) Combos() bool {
	return g <= Good
}

// SpeedMultiplier scales the judgement windows with note speed.
func SpeedMultiplier(noteSpeed float64) float64 {
	return noteSpeed / 10
}

// Window is the largest distance that earns the grade at the given note speed.
func Window(g Grade, noteSpeed float64) float64 {
	return g.Judgement().Distance * SpeedMultiplier(noteSpeed)
}

// Judge grades the distance between a note and the judgement line.
func Judge(distance, noteSpeed float64) Grade {
	d := math.Abs(distance)
	for _, j := range Judgements[:len(Judgements)-1] {
		if d <= j.Distance*SpeedMultiplier(noteSpeed) {
			return j.Grade
		}
	}
	return Miss
}
