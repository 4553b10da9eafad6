package score

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type DefaultStore struct {
	Path   string
	Logger *log.Logger
	db     *sql.DB
}

func (s *DefaultStore) Init() error {
	db, err := sql.Open("sqlite3", s.Path)
	if err != nil {
		return fmt.Errorf("unable to open score database: %w", err)
	}

	initStatement := `
	create table if not exists best_stats
	  (
		  song text not null primary key,
		  score integer not null,
		  combo integer not null
	  );
	create table if not exists plays
	  (
		  id text not null primary key,
		  song text not null,
		  played_at integer not null,
		  score integer not null,
		  max_combo integer not null,
		  accuracy real not null,
		  counts blob
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		db.Close()
		return fmt.Errorf("unable to create score tables: %w", err)
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		if err := s.db.Close(); nil != err && nil != s.Logger {
			s.Logger.Println("unable to close score database", err)
		}
		s.db = nil
	}
}

func (s *DefaultStore) LoadBest(songID string) (Best, error) {
	var best Best
	err := s.db.QueryRow("select score, combo from best_stats where song = ?", songID).Scan(&best.Score, &best.Combo)
	if err == sql.ErrNoRows {
		return Best{}, nil
	}
	if nil != err {
		return Best{}, fmt.Errorf("unable to load best stats: %w", err)
	}
	return best, nil
}

func (s *DefaultStore) SaveBest(songID string, best Best) error {
	_, err := s.db.Exec(`insert into best_stats(song, score, combo) values(?, ?, ?)
		on conflict(song) do update set score = excluded.score, combo = excluded.combo`,
		songID, best.Score, best.Combo)
	if nil != err {
		return fmt.Errorf("unable to save best stats: %w", err)
	}
	return nil
}

func (s *DefaultStore) RecordPlay(songID string, report Report) (Play, error) {
	play := Play{
		ID:       uuid.NewString(),
		SongID:   songID,
		PlayedAt: time.Now(),
		Report:   report,
	}
	counts, err := json.Marshal(report.Counts)
	if nil != err {
		return play, fmt.Errorf("unable to marshal grade counts: %w", err)
	}
	_, err = s.db.Exec("insert into plays(id, song, played_at, score, max_combo, accuracy, counts) values(?, ?, ?, ?, ?, ?, ?)",
		play.ID, songID, play.PlayedAt.UnixNano(), report.Score, report.MaxCombo, report.Accuracy, counts)
	if nil != err {
		return play, fmt.Errorf("unable to record play: %w", err)
	}
	return play, nil
}

// History returns the plays of a song, most recent first.
func (s *DefaultStore) History(songID string) ([]Play, error) {
	rows, err := s.db.Query("select id, played_at, score, max_combo, accuracy, counts from plays where song = ? order by played_at desc", songID)
	if nil != err {
		return nil, fmt.Errorf("unable to load plays: %w", err)
	}
	defer rows.Close()

	plays := []Play{}
	for rows.Next() {
		var playedAt int64
		var counts []byte
		play := Play{SongID: songID}
		if err := rows.Scan(&play.ID, &playedAt, &play.Score, &play.MaxCombo, &play.Accuracy, &counts); nil != err {
			return nil, fmt.Errorf("unable to read play: %w", err)
		}
		play.PlayedAt = time.Unix(0, playedAt)
		if err := json.Unmarshal(counts, &play.Counts); nil != err {
			if nil != s.Logger {
				s.Logger.Println("unable to unmarshal grade counts of play", play.ID, err)
			}
			continue
		}
		for _, c := range play.Counts {
			play.TotalNotes += c
		}
		plays = append(plays, play)
	}
	return plays, rows.Err()
}
