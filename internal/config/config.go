// Package config gathers settings from FLOORBEAT_* environment variables and
// the command line, the latter taking precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"git.lost.host/meutraa/floorbeat/internal/game"
	"git.lost.host/meutraa/floorbeat/internal/judge"
	"git.lost.host/meutraa/floorbeat/internal/session"
	"git.lost.host/meutraa/floorbeat/internal/timeline"
	"github.com/caarlos0/env/v11"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

// Commands
const (
	Play      = "play"
	Inspect   = "inspect"
	Best      = "best"
	Calibrate = "calibrate"
)

type Config struct {
	NoteSpeed       float64       `env:"FLOORBEAT_NOTE_SPEED"       envDefault:"10"`
	SpawnDistance   float64       `env:"FLOORBEAT_SPAWN_DISTANCE"   envDefault:"50"`
	DestroyZ        float64       `env:"FLOORBEAT_DESTROY_Z"        envDefault:"-10"`
	CurveTolerance  float64       `env:"FLOORBEAT_CURVE_TOLERANCE"  envDefault:"1.25"`
	JudgementOffset float64       `env:"FLOORBEAT_JUDGEMENT_OFFSET" envDefault:"0"`
	Offset          time.Duration `env:"FLOORBEAT_OFFSET"           envDefault:"0ms"`
	StartDelay      time.Duration `env:"FLOORBEAT_START_DELAY"      envDefault:"500ms"`
	EndTimeout      time.Duration `env:"FLOORBEAT_END_TIMEOUT"      envDefault:"20s"`
	SkipLead        time.Duration `env:"FLOORBEAT_SKIP_LEAD"        envDefault:"1s"`
	FramePeriod     time.Duration `env:"FLOORBEAT_FRAME_PERIOD"     envDefault:"4ms"`
	RepeatDelay     time.Duration `env:"FLOORBEAT_REPEAT_DELAY"     envDefault:"500ms"`
	RepeatGap       time.Duration `env:"FLOORBEAT_REPEAT_GAP"       envDefault:"100ms"`
	Keys            string        `env:"FLOORBEAT_KEYS"             envDefault:"asdf"`
	FloorKeys       string        `env:"FLOORBEAT_FLOOR_KEYS"       envDefault:"123"`
	Database        string        `env:"FLOORBEAT_DATABASE"         envDefault:"./scores.db"`
	LogFile         string        `env:"FLOORBEAT_LOG"              envDefault:"floorbeat.log"`

	// Set from arguments only
	Command   string  `env:"-"`
	Chart     string  `env:"-"`
	Audio     string  `env:"-"`
	SkipIntro bool    `env:"-"`
	Metronome string  `env:"-"` // audio or judgement
	BPM       float64 `env:"-"`
	Taps      int     `env:"-"`
}

// Load reads the environment, then parses args (without the program name).
func Load(args []string) (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); nil != err {
		return nil, fmt.Errorf("unable to parse environment: %w", err)
	}

	app := kingpin.New("floorbeat", "A four lane, three floor rhythm game for the terminal.")
	app.Version(Version)
	app.Flag("speed", "Note speed in units per second").Short('s').Float64Var(&cfg.NoteSpeed)
	app.Flag("spawn-distance", "Distance notes appear at").Float64Var(&cfg.SpawnDistance)
	app.Flag("destroy-z", "Distance behind the line notes are removed at").Float64Var(&cfg.DestroyZ)
	app.Flag("curve-tolerance", "Allowed touch bar gap on curved holds").Float64Var(&cfg.CurveTolerance)
	app.Flag("judgement-offset", "Distance offset applied before grading").Float64Var(&cfg.JudgementOffset)
	app.Flag("offset", "Global audio offset").Short('o').DurationVar(&cfg.Offset)
	app.Flag("delay", "Start delay").Short('d').DurationVar(&cfg.StartDelay)
	app.Flag("end-timeout", "Time after the last note the song ends regardless").DurationVar(&cfg.EndTimeout)
	app.Flag("frame-period", "Render frame period").Short('p').DurationVar(&cfg.FramePeriod)
	app.Flag("repeat-delay", "Keyboard delay before a held key repeats").DurationVar(&cfg.RepeatDelay)
	app.Flag("repeat-gap", "Longest pause between key repeats of a held key").DurationVar(&cfg.RepeatGap)
	app.Flag("keys", "Lane keys, left to right").Short('k').StringVar(&cfg.Keys)
	app.Flag("floor-keys", "Floor keys, bottom to top").StringVar(&cfg.FloorKeys)
	app.Flag("database", "Score database").StringVar(&cfg.Database)
	app.Flag("log", "Log file").StringVar(&cfg.LogFile)

	play := app.Command(Play, "Play a chart.").Default()
	play.Arg("chart", "Chart (.osu) file, chosen in a dialog when omitted").StringVar(&cfg.Chart)
	play.Flag("audio", "Audio file, defaults to the chart's AudioFilename").Short('a').StringVar(&cfg.Audio)
	play.Flag("skip-intro", "Skip to shortly before the first note").BoolVar(&cfg.SkipIntro)
	play.Flag("skip-lead", "Time left before the first note when skipping").DurationVar(&cfg.SkipLead)

	inspect := app.Command(Inspect, "Dump a parsed chart.")
	inspect.Arg("chart", "Chart (.osu) file").Required().StringVar(&cfg.Chart)

	best := app.Command(Best, "Show best results and play history of a chart.")
	best.Arg("chart", "Chart (.osu) file").Required().StringVar(&cfg.Chart)

	calibrate := app.Command(Calibrate, "Measure audio or judgement offset against a metronome.")
	calibrate.Arg("mode", "audio or judgement").Default("audio").EnumVar(&cfg.Metronome, "audio", "judgement")
	calibrate.Flag("bpm", "Metronome tempo").Default("120").Float64Var(&cfg.BPM)
	calibrate.Flag("taps", "Taps to average").Default("10").IntVar(&cfg.Taps)

	command, err := app.Parse(args)
	if nil != err {
		return nil, err
	}
	cfg.Command = command

	if err := cfg.Validate(); nil != err {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.NoteSpeed <= 0 {
		return errors.New("note speed must be positive")
	}
	if c.SpawnDistance <= 0 {
		return errors.New("spawn distance must be positive")
	}
	if c.RepeatGap <= 0 || c.RepeatDelay <= c.RepeatGap {
		return errors.New("repeat delay must exceed the repeat gap")
	}
	if n := len([]rune(c.Keys)); n != game.Lanes {
		return fmt.Errorf("need %v lane keys, got %v", game.Lanes, n)
	}
	if n := len([]rune(c.FloorKeys)); n != game.Floors {
		return fmt.Errorf("need %v floor keys, got %v", game.Floors, n)
	}
	return nil
}

// LaneKey returns the lane bound to r, or -1.
func (c *Config) LaneKey(r rune) int {
	for i, k := range []rune(c.Keys) {
		if r == k {
			return i
		}
	}
	return -1
}

// FloorKey returns the floor bound to r, or game.NoFloor.
func (c *Config) FloorKey(r rune) int {
	for i, k := range []rune(c.FloorKeys) {
		if r == k {
			return i
		}
	}
	return game.NoFloor
}

func (c *Config) Judge() judge.Config {
	return judge.Config{
		NoteSpeed:       c.NoteSpeed,
		Offset:          c.Offset.Seconds(),
		JudgementOffset: c.JudgementOffset,
		DestroyZ:        c.DestroyZ,
		CurveTolerance:  c.CurveTolerance,
		HoldTick:        judge.DefaultConfig().HoldTick,
	}
}

func (c *Config) Timeline() timeline.Config {
	return timeline.Config{
		Offset:        c.Offset.Seconds(),
		SpawnDistance: c.SpawnDistance,
		NoteSpeed:     c.NoteSpeed,
		EndTimeout:    c.EndTimeout.Seconds(),
	}
}

func (c *Config) Session() session.Config {
	return session.Config{
		Judge:    c.Judge(),
		Timeline: c.Timeline(),
		SkipLead: c.SkipLead.Seconds(),
	}
}
