// Package testdata holds chart fixtures shared by package tests.
package testdata

import (
	_ "embed"
)

//go:embed sample.osu
var sample string

// Sample is a small chart with taps, a curved slider, a repeated slider and a
// mania hold. Its hit objects are deliberately out of time order.
func Sample() string {
	return sample
}
