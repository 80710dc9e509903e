// Package results records finished games per short code so the person who
// chose a word can see how players did.
package results

import (
	"context"
	"database/sql"
	"time"
)

// Result is one finished game.
type Result struct {
	GameID    string
	Short     string
	Won       bool
	Guesses   int
	HardMode  bool
	ElapsedMs int64
}

// Summary aggregates all results for one short code.
type Summary struct {
	Short        string      `json:"short"`
	Played       int         `json:"played"`
	Wins         int         `json:"wins"`
	HardModeWins int         `json:"hardModeWins"`
	Distribution map[int]int `json:"distribution"` // guesses → wins
	BestMs       int64       `json:"bestMs,omitempty"`
}

// Store is the SQLite results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts a result. Recording the same game twice is ignored.
func (s *Store) Record(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO results (game_id, short, won, guesses, hard_mode, elapsed_ms, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Short, boolInt(r.Won), r.Guesses, boolInt(r.HardMode), r.ElapsedMs,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Summary returns the aggregate for short. Unknown codes give a zero summary.
func (s *Store) Summary(ctx context.Context, short string) (Summary, error) {
	out := Summary{Short: short, Distribution: map[int]int{}}
	rows, err := s.db.QueryContext(ctx,
		`SELECT won, guesses, hard_mode, elapsed_ms FROM results WHERE short = ?`, short)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			won, hard int
			guesses   int
			elapsed   int64
		)
		if err := rows.Scan(&won, &guesses, &hard, &elapsed); err != nil {
			return out, err
		}
		out.Played++
		if won == 0 {
			continue
		}
		out.Wins++
		if hard != 0 {
			out.HardModeWins++
		}
		out.Distribution[guesses]++
		if out.BestMs == 0 || elapsed < out.BestMs {
			out.BestMs = elapsed
		}
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
