// internal/store/sqlite.go
//
// SQLite-backed WordStore.
// The words table enforces UNIQUE(short) and UNIQUE(word, real_words); a
// collision on short is retried with a fresh code, a collision on the word
// pair returns the row that won the race.

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/pickword/server/internal/shortcode"
)

type sqliteWords struct {
	db       *sql.DB
	newShort func() (string, error)
}

// NewSQLiteWords returns a WordStore over a migrated database.
func NewSQLiteWords(db *sql.DB) WordStore {
	return &sqliteWords{db: db, newShort: shortcode.New}
}

func (s *sqliteWords) Create(ctx context.Context, word string, realWords bool) (Entry, error) {
	if e, err := s.byWord(ctx, word, realWords); err == nil {
		return e, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Entry{}, err
	}

	for i := 0; i < maxShortAttempts; i++ {
		short, err := s.newShort()
		if err != nil {
			return Entry{}, err
		}
		e := Entry{
			ID:        uuid.NewString(),
			Short:     short,
			Word:      word,
			RealWords: realWords,
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO words (id, created_at, short, word, real_words) VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.CreatedAt.Format(time.RFC3339), e.Short, e.Word, boolInt(e.RealWords))
		if err == nil {
			return e, nil
		}
		if !isUniqueViolation(err) {
			return Entry{}, err
		}
		// either the short is taken or another request stored the same word
		if existing, err := s.byWord(ctx, word, realWords); err == nil {
			return existing, nil
		}
		log.Debug().Str("short", short).Msg("short code collision")
	}
	return Entry{}, ErrShortExhausted
}

func (s *sqliteWords) Lookup(ctx context.Context, short string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, short, word, real_words FROM words WHERE short = ?`, short)
	return scanEntry(row)
}

func (s *sqliteWords) byWord(ctx context.Context, word string, realWords bool) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, short, word, real_words FROM words WHERE word = ? AND real_words = ?`,
		word, boolInt(realWords))
	return scanEntry(row)
}

func scanEntry(row *sql.Row) (Entry, error) {
	var (
		e       Entry
		created string
		rw      int
	)
	if err := row.Scan(&e.ID, &created, &e.Short, &e.Word, &rw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, created)
	e.RealWords = rw != 0
	return e, nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
