// Package timing resolves tempo and slider velocity from a chart's timing points.
//
// Every function takes the points sorted by time, as the parser produces them,
// and never modifies them. When several points share a time the one appearing
// last wins, matching a linear scan that keeps overwriting its selection.
package timing

import (
	"sort"

	"git.lost.host/meutraa/floorbeat/internal/game"
)

// latest returns the index of the last point with Time <= t, or -1.
func latest(points []game.TimingPoint, t float64) int {
	return sort.Search(len(points), func(i int) bool {
		return points[i].Time > t
	}) - 1
}

// Red returns the latest uninherited point at or before t, defaulting to 100 BPM.
func Red(points []game.TimingPoint, t float64) game.TimingPoint {
	for i := latest(points, t); i >= 0; i-- {
		if points[i].Kind == game.Uninherited {
			return points[i]
		}
	}
	return game.TimingPoint{BeatLength: game.DefaultBeatLength}
}

// Current returns the latest point of either kind at or before t.
func Current(points []game.TimingPoint, t float64) (game.TimingPoint, bool) {
	i := latest(points, t)
	if i < 0 {
		return game.TimingPoint{}, false
	}
	return points[i], true
}

// SliderVelocity is the multiplier of the latest point at or before t. An
// uninherited point in that position resets velocity to 1.
func SliderVelocity(points []game.TimingPoint, t float64) float64 {
	current, ok := Current(points, t)
	if !ok {
		return 1.0
	}
	return current.Velocity()
}

func BPM(points []game.TimingPoint, t float64) float64 {
	return 60000.0 / Red(points, t).BeatLength
}

// SliderDuration returns the seconds a slider starting at t (ms) takes to
// travel pixelLength, repeated repeats times.
func SliderDuration(points []game.TimingPoint, sliderMultiplier, t, pixelLength float64, repeats int) float64 {
	red := Red(points, t)
	velocity := 100 * sliderMultiplier * SliderVelocity(points, t) // pixels per beat
	beats := (pixelLength * float64(repeats)) / velocity
	return beats * red.BeatLength / 1000
}
