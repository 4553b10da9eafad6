package score

import "time"

// Store persists results per song. Implementations are keyed by the chart's
// song id.
type Store interface {
	Init() error
	Deinit()

	LoadBest(songID string) (Best, error)
	SaveBest(songID string, best Best) error

	// Keep a record of a finished play
	RecordPlay(songID string, report Report) (Play, error)
	History(songID string) ([]Play, error)
}

type Best struct {
	Score int
	Combo int
}

type Play struct {
	ID       string
	SongID   string
	PlayedAt time.Time
	Report
}

// UpdateBest stores whichever of score and combo beat the stored best. It
// reports whether anything was saved.
func UpdateBest(s Store, songID string, r Report) (Best, bool, error) {
	best, err := s.LoadBest(songID)
	if nil != err {
		return best, false, err
	}
	improved := false
	if r.Score > best.Score {
		best.Score = r.Score
		improved = true
	}
	if r.MaxCombo > best.Combo {
		best.Combo = r.MaxCombo
		improved = true
	}
	if !improved {
		return best, false, nil
	}
	if err := s.SaveBest(songID, best); nil != err {
		return best, false, err
	}
	return best, true, nil
}
