// internal/store/store.go
//
// Persistence interfaces.
//   - WordStore maps short codes to chosen words (memory or SQLite).
//   - GameStore holds in-progress game sessions (memory).

package store

import (
	"context"
	"errors"
	"time"

	"github.com/pickword/server/internal/game"
)

var (
	// ErrNotFound is returned for unknown short codes and game IDs.
	ErrNotFound = errors.New("not found")
	// ErrShortExhausted is returned when no free short code was found.
	ErrShortExhausted = errors.New("could not allocate a short code")
)

// maxShortAttempts bounds the retries on short code collisions.
const maxShortAttempts = 16

// Entry is one chosen word and its short code.
type Entry struct {
	ID        string    `json:"id"`
	Short     string    `json:"short"`
	Word      string    `json:"word"`
	RealWords bool      `json:"realWords"`
	CreatedAt time.Time `json:"createdAt"`
}

// WordStore persists chosen words.
type WordStore interface {
	// Create stores word under a fresh short code. Creating the same
	// (word, realWords) pair again returns the existing entry.
	Create(ctx context.Context, word string, realWords bool) (Entry, error)

	// Lookup returns the entry for a short code, or ErrNotFound.
	Lookup(ctx context.Context, short string) (Entry, error)
}

// GameStore holds game sessions.
type GameStore interface {
	// Save persists or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// View calls fn with the game under a read lock.
	View(ctx context.Context, id string, fn func(*game.Game) error) error

	// Update calls fn with the game under a write lock.
	Update(ctx context.Context, id string, fn func(*game.Game) error) error

	// Prune drops games started before cutoff and returns how many.
	Prune(ctx context.Context, cutoff time.Time) int
}
