package daily

import (
	"context"
	"database/sql"
)

// Result is one finished daily game for one player and date.
type Result struct {
	OwnerID   string `json:"ownerId"`
	Date      string `json:"date"`
	WordIndex int    `json:"wordIndex"`
	Won       bool   `json:"won"`
	Guesses   int    `json:"guesses"`
}

// Store persists daily results in SQLite.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the owner has a recorded result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, ownerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE owner_id=? AND date=?",
		ownerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a finished daily game; replays of the same date
// are ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(owner_id, date, word_index, won, guesses)
		 VALUES(?,?,?,?,?)`, r.OwnerID, r.Date, r.WordIndex, r.Won, r.Guesses,
	)
	return err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	OwnerID string `json:"ownerId"`
	Won     bool   `json:"won"`
	Guesses int    `json:"guesses"`
}

// Leaderboard lists results for a date: winners first, fewest guesses,
// earliest finish breaking ties.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT owner_id, won, guesses
		 FROM daily_results
		 WHERE date=?
		 ORDER BY won DESC, guesses ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.OwnerID, &r.Won, &r.Guesses); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
