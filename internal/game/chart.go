package game

import (
	"crypto/sha256"
	"encoding/base64"
)

// DefaultSliderMultiplier is the [Difficulty] value assumed when a chart omits it.
const DefaultSliderMultiplier = 1.4

type Metadata struct {
	Title   string
	Artist  string
	Version string
}

type Chart struct {
	Metadata         Metadata
	AudioFilename    string
	SliderMultiplier float64
	TimingPoints     []TimingPoint // Sorted by Time
	HitSpecs         []HitSpec     // Sorted by Time

	// Raw chart text, kept to derive an identifier for untitled charts
	Source string
}

func NewChart() *Chart {
	return &Chart{SliderMultiplier: DefaultSliderMultiplier}
}

// SongID is the stable key that best scores are stored under.
func (c *Chart) SongID() string {
	if c.Metadata.Title != "" || c.Metadata.Artist != "" {
		return c.Metadata.Title + "_" + c.Metadata.Artist
	}
	sum := sha256.Sum256([]byte(c.Source))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (c *Chart) HoldCount() int {
	count := 0
	for _, s := range c.HitSpecs {
		if s.Kind == Hold {
			count++
		}
	}
	return count
}

// LastTime is the hit time of the final spec in seconds, or 0 for an empty chart.
func (c *Chart) LastTime() float64 {
	if len(c.HitSpecs) == 0 {
		return 0
	}
	return c.HitSpecs[len(c.HitSpecs)-1].Time
}
