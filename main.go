package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.lost.host/meutraa/floorbeat/internal/audio"
	"git.lost.host/meutraa/floorbeat/internal/calibrate"
	"git.lost.host/meutraa/floorbeat/internal/clock"
	"git.lost.host/meutraa/floorbeat/internal/config"
	"git.lost.host/meutraa/floorbeat/internal/game"
	"git.lost.host/meutraa/floorbeat/internal/input"
	"git.lost.host/meutraa/floorbeat/internal/parser"
	"git.lost.host/meutraa/floorbeat/internal/render"
	"git.lost.host/meutraa/floorbeat/internal/score"
	"git.lost.host/meutraa/floorbeat/internal/session"
	"git.lost.host/meutraa/floorbeat/internal/theme"
	"git.lost.host/meutraa/floorbeat/internal/timing"
	"github.com/davecgh/go-spew/spew"
	"github.com/sqweek/dialog"
)

var errAborted = errors.New("play aborted")

func main() {
	if err := run(os.Args[1:]); nil != err {
		if errors.Is(err, dialog.ErrCancelled) || errors.Is(err, errAborted) {
			log.Println(err)
			os.Exit(1)
		}
		log.Fatalln(err)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if nil != err {
		return err
	}

	// The terminal is raw while playing, so logs go to a file
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if nil != err {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	defer f.Close()
	logger := log.New(f, "", log.LstdFlags|log.Lmicroseconds)

	// Ensure our Default implementations are used as interfaces
	var psr parser.Parser = &parser.DefaultParser{Logger: logger}
	var store score.Store = &score.DefaultStore{Path: cfg.Database, Logger: logger}

	switch cfg.Command {
	case config.Inspect:
		return inspect(cfg, psr)
	case config.Best:
		return best(cfg, psr, store)
	case config.Calibrate:
		return calibrateOffset(cfg)
	}
	return play(cfg, psr, store, logger)
}

// choosePath returns the chart from the command line, or asks for one in a
// file dialog.
func choosePath(arg string) (string, error) {
	path := arg
	if path == "" {
		cwd, err := os.Getwd()
		if nil != err {
			return "", fmt.Errorf("unable to get working directory: %w", err)
		}
		path, err = dialog.
			File().
			Title("Open chart").
			Filter("osu! beatmap (*.osu)", "osu").
			SetStartDir(cwd).
			Load()
		if nil != err {
			return "", err
		}
		if path == "" {
			return "", dialog.ErrCancelled
		}
	}
	abs, err := filepath.Abs(path)
	if nil != err {
		return "", fmt.Errorf("unable to get absolute path: %w", err)
	}
	return abs, nil
}

func play(cfg *config.Config, psr parser.Parser, store score.Store, logger *log.Logger) error {
	chartFile, err := choosePath(cfg.Chart)
	if nil != err {
		return err
	}
	chart, err := psr.ParseFile(chartFile)
	if nil != err {
		return err
	}
	if len(chart.HitSpecs) == 0 {
		return fmt.Errorf("%v has no notes", chartFile)
	}

	audioFile := cfg.Audio
	if audioFile == "" {
		audioFile = filepath.Join(filepath.Dir(chartFile), chart.AudioFilename)
	}
	logger.Printf("Opening %v (%v)\n", audioFile, chartFile)
	player, err := audio.Open(audioFile, cfg.StartDelay)
	if nil != err {
		return err
	}
	defer player.Close()

	if err := store.Init(); nil != err {
		return err
	}
	defer store.Deinit()

	s, err := session.New(chart, &clock.Monotonic{Source: player}, store, cfg.Session(), logger)
	if nil != err {
		return err
	}
	if cfg.SkipIntro {
		if err := s.SkipToFirstNote(); nil != err {
			return err
		}
	}

	if err := playLoop(cfg, s, player); nil != err {
		return err
	}

	report, top, err := s.End()
	if nil != err {
		logger.Println("unable to update best", err)
	}
	printReport(chart, report, top)
	return nil
}

func playLoop(cfg *config.Config, s *session.Session, player *audio.Player) error {
	var in input.Input = &input.DefaultInput{Keymap: cfg, Delay: cfg.RepeatDelay, Gap: cfg.RepeatGap}
	var r render.Renderer = &render.DefaultRenderer{}
	var th theme.Theme = &theme.DefaultTheme{}

	if err := in.Init(); nil != err {
		return err
	}
	defer func() {
		if err := in.Deinit(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	}()

	// Clear the screen and hide the cursor
	if err := r.Init(); nil != err {
		return err
	}
	defer func() {
		// Restore the terminal state
		r.Deinit()
	}()

	hud := &render.HUD{Renderer: r, Theme: th, Speed: cfg.NoteSpeed, Distance: cfg.SpawnDistance}
	hud.Layout(r.Size())

	if err := player.Play(); nil != err {
		return err
	}

	quit := false
	r.RenderLoop(cfg.FramePeriod, func(now time.Time) bool {
		tick, q := in.Poll(now)
		if q {
			quit = true
			return false
		}
		events := s.Tick(tick)
		hud.Draw(render.Frame{
			Now:    s.Now(),
			Notes:  s.Engine().Notes(),
			Down:   s.Down(),
			Bar:    tick.Bar(),
			Stats:  s.Stats(),
			Events: events,
		})
		return !s.Done()
	})
	player.Pause(true)
	if quit {
		return errAborted
	}

	columns, rows := r.Size()
	r.RenderLoop(0, func(time.Time) bool {
		r.Fill(rows-1, columns/2-12, "Finished, press any key")
		return false
	})
	in.Wait()
	return nil
}

func printReport(chart *game.Chart, r score.Report, best score.Best) {
	fmt.Printf("%v - %v [%v]\n\n", chart.Metadata.Artist, chart.Metadata.Title, chart.Metadata.Version)
	fmt.Printf("   Score:  %8v  (best %v)\n", r.Score, best.Score)
	fmt.Printf("   Combo:  %8v  (best %v)\n", r.MaxCombo, best.Combo)
	fmt.Printf("Accuracy:  %7.2f%%\n\n", r.Accuracy*100)
	for _, j := range game.Judgements {
		fmt.Printf("%8v:  %8v\n", j.Name, r.Counts[j.Grade])
	}
}

func inspect(cfg *config.Config, psr parser.Parser) error {
	chart, err := psr.ParseFile(cfg.Chart)
	if nil != err {
		return err
	}
	spew.Dump(chart.Metadata, chart.AudioFilename, chart.SliderMultiplier, chart.TimingPoints)

	fmt.Printf("%v notes, %v holds, song id %v\n\n", len(chart.HitSpecs), chart.HoldCount(), chart.SongID())
	fmt.Printf("%9v  %4v  %5v  %4v  %8v  %7v  %5v  %v\n", "time", "lane", "floor", "kind", "duration", "bpm", "sv", "curve")
	for _, spec := range chart.HitSpecs {
		ms := spec.Time * 1000
		curve := make([]string, 0, len(spec.Curve))
		for _, c := range spec.Curve {
			curve = append(curve, fmt.Sprintf("%v/%v", c.Lane, c.Floor))
		}
		fmt.Printf("%9.3f  %4v  %5v  %4v  %8.3f  %7.2f  %5.2f  %v\n",
			spec.Time, spec.Lane, spec.Floor, spec.Kind, spec.Duration,
			timing.BPM(chart.TimingPoints, ms), timing.SliderVelocity(chart.TimingPoints, ms),
			strings.Join(curve, " "))
	}
	return nil
}

func best(cfg *config.Config, psr parser.Parser, store score.Store) error {
	chart, err := psr.ParseFile(cfg.Chart)
	if nil != err {
		return err
	}
	if err := store.Init(); nil != err {
		return err
	}
	defer store.Deinit()

	id := chart.SongID()
	b, err := store.LoadBest(id)
	if nil != err {
		return err
	}
	plays, err := store.History(id)
	if nil != err {
		return err
	}

	fmt.Printf("%v\n best score %v, best combo %v\n\n", id, b.Score, b.Combo)
	for _, p := range plays {
		fmt.Printf("%v  %8v  %5v  %6.2f%%  %v\n",
			p.PlayedAt.Local().Format(time.DateTime), p.Score, p.MaxCombo, p.Accuracy*100, p.ID)
	}
	return nil
}

func calibrateOffset(cfg *config.Config) error {
	c := &calibrate.Calibrator{
		Mode:      calibrate.Mode(cfg.Metronome),
		BPM:       cfg.BPM,
		Required:  cfg.Taps,
		NoteSpeed: cfg.NoteSpeed,
	}
	// Enough beats for every tap plus some slack
	length := time.Duration(float64(cfg.Taps*2+8) * c.Interval() * float64(time.Second))
	metronome := audio.NewMetronome(cfg.BPM, cfg.StartDelay, length, c.Mode == calibrate.Judgement)
	defer metronome.Close()

	var in input.Input = &input.DefaultInput{Keymap: cfg, Delay: cfg.RepeatDelay, Gap: cfg.RepeatGap}
	var r render.Renderer = &render.DefaultRenderer{}
	if err := in.Init(); nil != err {
		return err
	}
	defer in.Deinit()
	if err := r.Init(); nil != err {
		return err
	}

	columns, rows := r.Size()
	row, col := rows/2, columns/2-20
	instruction := "Listen to the clicks and tap any lane key"
	if c.Mode == calibrate.Judgement {
		instruction = "Watch the flash and tap any lane key"
	}
	r.Fill(row-2, col, instruction)

	if err := metronome.Play(); nil != err {
		r.Deinit()
		return err
	}

	quit := false
	r.RenderLoop(cfg.FramePeriod, func(now time.Time) bool {
		tick, q := in.Poll(now)
		if q {
			quit = true
			return false
		}
		elapsed := metronome.Now()
		for range tick.Pressed {
			c.Tap(elapsed)
		}

		flash := "   "
		if c.Flash(elapsed) {
			flash = "\033[1;33m███\033[0m"
		}
		r.Fill(row, col, flash)
		taps, required := c.Progress()
		r.Fill(row+2, col, fmt.Sprintf("Progress: %v / %v", taps, required))
		return !c.Done() && !metronome.Done()
	})
	r.Deinit()
	if quit {
		return errAborted
	}

	result, err := c.Result()
	if nil != err {
		return err
	}
	fmt.Printf("Mean tap error %+.1fms\n", result.Mean*1000)
	if c.Mode == calibrate.Audio {
		fmt.Printf("Play with --offset %v or FLOORBEAT_OFFSET=%v\n", result.AudioOffset, result.AudioOffset)
	} else {
		fmt.Printf("Play with --judgement-offset %.3f or FLOORBEAT_JUDGEMENT_OFFSET=%.3f\n",
			result.JudgementOffset, result.JudgementOffset)
	}
	return nil
}
