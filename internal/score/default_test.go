package score

import (
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *DefaultStore {
	t.Helper()
	s := &DefaultStore{Path: filepath.Join(t.TempDir(), "scores.db")}
	if err := s.Init(); nil != err {
		t.Fatal("unable to open store", err)
	}
	t.Cleanup(s.Deinit)
	return s
}

func TestUpdateBest(t *testing.T) {
	s := openStore(t)

	best, err := s.LoadBest("Stairwell_Floor Three")
	if nil != err || best != (Best{}) {
		t.Fatalf("LoadBest on empty store = %+v, %v", best, err)
	}

	steps := []struct {
		report   Report
		best     Best
		improved bool
	}{
		{Report{Score: 1000, MaxCombo: 10}, Best{1000, 10}, true},
		{Report{Score: 900, MaxCombo: 8}, Best{1000, 10}, false},
		{Report{Score: 800, MaxCombo: 12}, Best{1000, 12}, true},
		{Report{Score: 1200, MaxCombo: 3}, Best{1200, 12}, true},
	}
	for i, step := range steps {
		best, improved, err := UpdateBest(s, "Stairwell_Floor Three", step.report)
		if nil != err {
			t.Fatal(err)
		}
		if best != step.best || improved != step.improved {
			t.Errorf("step %v: UpdateBest = %+v, %v, want %+v, %v", i, best, improved, step.best, step.improved)
		}
		stored, _ := s.LoadBest("Stairwell_Floor Three")
		if stored != step.best {
			t.Errorf("step %v: stored %+v, want %+v", i, stored, step.best)
		}
	}

	other, _ := s.LoadBest("another")
	if other != (Best{}) {
		t.Errorf("bests leaked between songs: %+v", other)
	}
}

func TestHistory(t *testing.T) {
	s := openStore(t)

	first := Report{Score: 1500, MaxCombo: 3, Accuracy: 0.75}
	first.Counts[0], first.Counts[4] = 3, 1
	if _, err := s.RecordPlay("song", first); nil != err {
		t.Fatal(err)
	}
	second := Report{Score: 500, MaxCombo: 1, Accuracy: 1}
	second.Counts[0] = 1
	play, err := s.RecordPlay("song", second)
	if nil != err {
		t.Fatal(err)
	}
	if play.ID == "" {
		t.Error("play recorded without an id")
	}

	plays, err := s.History("song")
	if nil != err {
		t.Fatal(err)
	}
	if len(plays) != 2 {
		t.Fatalf("history = %+v", plays)
	}
	if plays[0].Score != 500 || plays[1].Score != 1500 {
		t.Errorf("history out of order: %+v", plays)
	}
	if plays[1].TotalNotes != 4 || plays[1].Counts != first.Counts || plays[1].Accuracy != 0.75 {
		t.Errorf("play = %+v, want %+v", plays[1].Report, first)
	}

	if none, _ := s.History("other"); len(none) != 0 {
		t.Errorf("history of another song = %+v", none)
	}
}
