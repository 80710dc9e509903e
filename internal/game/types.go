// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Status: per-letter result of a guess (correct/present/absent/unknown).
//   - State:  coarse lifecycle of a game session.
//   - Game:   state for a single in-progress or finished game.

package game

import (
	"fmt"
	"time"
)

// Status represents the evaluation result for a single letter in a guess.
//   - Correct: letter is in the secret at this position.
//   - Present: letter is in the secret elsewhere and an unclaimed occurrence remains.
//   - Absent:  letter is not in the secret, or all its occurrences are claimed.
//   - Unknown: nothing has been revealed yet.
type Status uint8

const (
	Unknown Status = iota
	Correct
	Present
	Absent
)

// Blank is the placeholder used by editing UIs for an unfilled tile.
// It never matches a secret letter.
const Blank = ' '

func (s Status) String() string {
	switch s {
	case Correct:
		return "correct"
	case Present:
		return "present"
	case Absent:
		return "absent"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status as its lowercase name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the lowercase names produced by MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "correct":
		*s = Correct
	case "present":
		*s = Present
	case "absent":
		*s = Absent
	case "unknown", "":
		*s = Unknown
	default:
		return fmt.Errorf("game: unknown status %q", b)
	}
	return nil
}

// rank orders statuses by strength for keyboard display.
func (s Status) rank() int {
	switch s {
	case Correct:
		return 3
	case Present:
		return 2
	case Absent:
		return 1
	default:
		return 0
	}
}

// State is the lifecycle of a game session.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Row is one submitted guess together with its evaluation.
type Row struct {
	Guess    string   `json:"guess"`
	Statuses []Status `json:"statuses"`
}

// Game holds the state of a single game session.
type Game struct {
	ID        string     // Unique game identifier.
	Short     string     // Short code of the word being played.
	Secret    string     // The word to guess (lowercase).
	Rows      int        // Maximum number of guesses (typically 6).
	HardMode  bool       // Revealed hints must be reused.
	RealWords bool       // Guesses must be dictionary words.
	History   []Row      // Guesses made so far.
	Knowledge *Knowledge // Aggregated hints across all guesses.
	State     State      // playing | won | lost
	StartedAt time.Time
}
