package parser

import (
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"git.lost.host/meutraa/floorbeat/internal/game"
	"git.lost.host/meutraa/floorbeat/internal/timing"
)

// Type mask bits of a hit object
const (
	typeSlider = 1 << 1
	typeHold   = 1 << 7

	fallbackLength = 1.0 // Seconds, for sliders without a usable pixel length
)

type section int

const (
	sectionNone section = iota
	sectionGeneral
	sectionMetadata
	sectionDifficulty
	sectionTimingPoints
	sectionHitObjects
)

var sections = map[string]section{
	"[General]":      sectionGeneral,
	"[Metadata]":     sectionMetadata,
	"[Difficulty]":   sectionDifficulty,
	"[TimingPoints]": sectionTimingPoints,
	"[HitObjects]":   sectionHitObjects,
}

type DefaultParser struct {
	// Receives a line for every record that was dropped, may be nil
	Logger *log.Logger
}

func (p *DefaultParser) logf(format string, v ...interface{}) {
	if nil != p.Logger {
		p.Logger.Printf(format, v...)
	}
}

func (p *DefaultParser) ParseFile(file string) (*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read chart: %w", err)
	}
	return p.Parse(string(data)), nil
}

func (p *DefaultParser) Parse(text string) *game.Chart {
	chart := game.NewChart()
	chart.Source = text

	type object struct {
		line  int
		parts []string
	}
	objects := []object{}

	current := sectionNone
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") {
			current = sections[line]
			continue
		}

		switch current {
		case sectionGeneral:
			if k, v, ok := keyValue(line); ok && k == "AudioFilename" {
				chart.AudioFilename = v
			}
		case sectionMetadata:
			k, v, ok := keyValue(line)
			if !ok {
				continue
			}
			switch k {
			case "Title":
				chart.Metadata.Title = v
			case "Artist":
				chart.Metadata.Artist = v
			case "Version":
				chart.Metadata.Version = v
			}
		case sectionDifficulty:
			if k, v, ok := keyValue(line); ok && k == "SliderMultiplier" {
				if m, err := strconv.ParseFloat(v, 64); nil != err {
					p.logf("line %v: keeping slider multiplier %v: %v", i+1, chart.SliderMultiplier, err)
				} else if !(m > 0) || math.IsInf(m, 0) {
					p.logf("line %v: keeping slider multiplier %v, %v is not positive", i+1, chart.SliderMultiplier, m)
				} else {
					chart.SliderMultiplier = m
				}
			}
		case sectionTimingPoints:
			tp, ok := parseTimingPoint(line)
			if !ok {
				p.logf("line %v: dropping timing point %q", i+1, line)
				continue
			}
			chart.TimingPoints = append(chart.TimingPoints, tp)
		case sectionHitObjects:
			// Sliders need every timing point, which may not have been read yet
			objects = append(objects, object{line: i + 1, parts: strings.Split(line, ",")})
		}
	}

	sort.SliceStable(chart.TimingPoints, func(i, j int) bool {
		return chart.TimingPoints[i].Time < chart.TimingPoints[j].Time
	})

	for _, o := range objects {
		spec, ok := p.parseHitObject(chart, o.parts)
		if !ok {
			p.logf("line %v: dropping hit object %q", o.line, strings.Join(o.parts, ","))
			continue
		}
		chart.HitSpecs = append(chart.HitSpecs, spec)
	}

	sort.SliceStable(chart.HitSpecs, func(i, j int) bool {
		return chart.HitSpecs[i].Time < chart.HitSpecs[j].Time
	})

	return chart
}

func keyValue(line string) (string, string, bool) {
	k, v, ok := strings.Cut(line, ":")
	return strings.TrimSpace(k), strings.TrimSpace(v), ok
}

// time,beatLength,meter,sampleSet,sampleIndex,volume,uninherited,effects
func parseTimingPoint(line string) (game.TimingPoint, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return game.TimingPoint{}, false
	}
	t, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if nil != err || math.IsNaN(t) {
		return game.TimingPoint{}, false
	}
	bl, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if nil != err {
		return game.TimingPoint{}, false
	}

	tp := game.TimingPoint{Time: t, BeatLength: bl, Kind: game.Uninherited}
	if len(parts) >= 7 {
		if flag, err := strconv.Atoi(strings.TrimSpace(parts[6])); nil == err && flag == 0 {
			tp.Kind = game.Inherited
		}
	}
	return tp, true
}

// x,y,time,type,hitSound,objectParams,hitSample
func (p *DefaultParser) parseHitObject(chart *game.Chart, parts []string) (game.HitSpec, bool) {
	if len(parts) < 4 {
		return game.HitSpec{}, false
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if nil != err {
		return game.HitSpec{}, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if nil != err {
		return game.HitSpec{}, false
	}
	timeMs, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if nil != err || math.IsNaN(timeMs) || math.IsInf(timeMs, 0) {
		return game.HitSpec{}, false
	}
	typeMask, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if nil != err {
		return game.HitSpec{}, false
	}

	head := game.CellAt(x, y)
	spec := game.HitSpec{
		Time:     timeMs / 1000,
		Lane:     head.Lane,
		Floor:    head.Floor,
		Kind:     game.Tap,
		Duration: fallbackLength,
	}

	if typeMask&typeSlider != 0 {
		spec.Kind = game.Hold
		spec.Curve = []game.Cell{head}
		if len(parts) >= 6 {
			spec.Curve = parseCurve(head, parts[5])
		}
		spec.Duration = fallbackLength
		if len(parts) >= 8 {
			repeats := 1
			if r, err := strconv.Atoi(strings.TrimSpace(parts[6])); nil == err {
				repeats = r
			}
			if length, err := strconv.ParseFloat(strings.TrimSpace(parts[7]), 64); nil == err {
				spec.Duration = timing.SliderDuration(chart.TimingPoints, chart.SliderMultiplier, timeMs, length, repeats)
			}
			if math.IsInf(spec.Duration, 0) {
				spec.Duration = fallbackLength
			}
		}
	} else if typeMask&typeHold != 0 {
		spec.Kind = game.Hold
		spec.Duration = 0
		if len(parts) >= 6 {
			end, _, _ := strings.Cut(parts[5], ":")
			if endTime, err := strconv.ParseFloat(strings.TrimSpace(end), 64); nil == err {
				spec.Duration = (endTime - timeMs) / 1000
			}
		}
	}

	// Written to also catch NaN durations
	if spec.Kind == game.Hold && !(spec.Duration >= game.MinimumHold) {
		spec.Duration = game.MinimumHold
	}

	return spec, true
}

// B|x:y|x:y..., the leading curve type is ignored
func parseCurve(head game.Cell, field string) []game.Cell {
	curve := []game.Cell{head}
	tokens := strings.Split(field, "|")
	for _, token := range tokens[1:] {
		xy := strings.Split(token, ":")
		if len(xy) != 2 {
			continue
		}
		cx, err := strconv.Atoi(strings.TrimSpace(xy[0]))
		if nil != err {
			continue
		}
		cy, err := strconv.Atoi(strings.TrimSpace(xy[1]))
		if nil != err {
			continue
		}
		cell := game.CellAt(cx, cy)
		if curve[len(curve)-1] != cell {
			curve = append(curve, cell)
		}
	}
	return curve
}
