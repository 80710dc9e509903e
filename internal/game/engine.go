// internal/game/engine.go
//
// Game engine for a single session against a player-chosen word.
// Responsibilities:
//   - Create new games (6 rows, word length taken from the secret).
//   - Validate guesses (length, letters, blanks, dictionary, hard mode).
//   - Score guesses with Evaluate and fold them into Knowledge.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - The dictionary is supplied by the caller (see words.Dict).
//   - Game IDs are random UUIDs.
package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultRows = 6
	MinLetters  = 3
	MaxLetters  = 8
)

var (
	ErrInvalidSecret    = errors.New("invalid secret word")
	ErrGameFinished     = errors.New("game finished")
	ErrNotEnoughLetters = errors.New("not enough letters")
	ErrInvalidGuess     = errors.New("invalid guess")
	ErrBlankLetters     = errors.New("must fill in blanks")
	ErrNotInWordList    = errors.New("not in word list")
)

// HardModeError reports a guess that ignores a revealed hint.
type HardModeError struct {
	Position int  // 0-based position of a missing correct letter, or -1
	Letter   rune // the letter that must be used
}

func (e *HardModeError) Error() string {
	up := strings.ToUpper(string(e.Letter))
	if e.Position >= 0 {
		n := e.Position + 1
		return fmt.Sprintf("%d%s letter must be a %s", n, ordinal(n), up)
	}
	return "guess must contain " + up
}

// UserMessage renders a guess error as a toast-style message.
func UserMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// ordinal returns the English ordinal suffix for n.
func ordinal(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// Dictionary decides whether a guess is a real word.
type Dictionary interface {
	IsAllowed(word string) bool
}

// Options configure a new game.
type Options struct {
	Short     string
	Secret    string
	Rows      int
	HardMode  bool
	RealWords bool
}

// New constructs a new game instance.
func New(opts Options) (*Game, error) {
	secret := strings.ToLower(strings.TrimSpace(opts.Secret))
	if !ValidWord(secret) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSecret, opts.Secret)
	}
	rows := opts.Rows
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Game{
		ID:        uuid.NewString(),
		Short:     opts.Short,
		Secret:    secret,
		Rows:      rows,
		HardMode:  opts.HardMode,
		RealWords: opts.RealWords,
		History:   []Row{},
		Knowledge: NewKnowledge(),
		State:     StatePlaying,
		StartedAt: time.Now().UTC(),
	}, nil
}

// ValidWord reports whether w is MinLetters..MaxLetters lowercase a–z.
func ValidWord(w string) bool {
	return len(w) >= MinLetters && len(w) <= MaxLetters && isAlpha(w)
}

// Length is the number of letters in the secret.
func (g *Game) Length() int { return len([]rune(g.Secret)) }

// Finished reports whether the game is won or lost.
func (g *Game) Finished() bool { return g.State != StatePlaying }

// ApplyGuess validates and scores a guess, mutating the game state.
//
// Validation order:
//   - Game must not be finished.
//   - Guess must have exactly Length() characters, with no blanks, a–z only.
//   - RealWords games: guess must be in dict.
//   - HardMode games: known correct positions and present letters must be reused.
//
// State transitions:
//   - Every tile Correct → won.
//   - Else when the number of guesses reaches g.Rows → lost.
func (g *Game) ApplyGuess(guess string, dict Dictionary) (Row, error) {
	if g.Finished() {
		return Row{}, ErrGameFinished
	}
	guess = strings.ToLower(guess)
	letters := []rune(guess)
	if len(letters) != g.Length() {
		return Row{}, ErrNotEnoughLetters
	}
	if strings.ContainsRune(guess, Blank) {
		return Row{}, ErrBlankLetters
	}
	if !isAlpha(guess) {
		return Row{}, ErrInvalidGuess
	}
	if g.RealWords && (dict == nil || !dict.IsAllowed(guess)) {
		return Row{}, ErrNotInWordList
	}
	if g.HardMode {
		if err := g.checkHardMode(letters); err != nil {
			return Row{}, err
		}
	}

	statuses, err := EvaluateRunes([]rune(g.Secret), letters)
	if err != nil {
		return Row{}, err
	}
	if err := g.Knowledge.Merge(letters, statuses); err != nil {
		return Row{}, err
	}
	row := Row{Guess: guess, Statuses: statuses}
	g.History = append(g.History, row)

	if AllCorrect(statuses) {
		g.State = StateWon
	} else if len(g.History) >= g.Rows {
		g.State = StateLost
	}
	return row, nil
}

// checkHardMode returns a *HardModeError for the first ignored hint.
func (g *Game) checkHardMode(letters []rune) error {
	for _, i := range g.Knowledge.CorrectPositions() {
		r, _ := g.Knowledge.CorrectAt(i)
		if letters[i] != r {
			return &HardModeError{Position: i, Letter: r}
		}
	}
	for _, r := range g.Knowledge.PresentLetters() {
		if !containsRune(letters, r) {
			return &HardModeError{Position: -1, Letter: r}
		}
	}
	return nil
}

// Statuses returns the status grid of all guesses so far.
func (g *Game) Statuses() [][]Status {
	out := make([][]Status, len(g.History))
	for i, row := range g.History {
		out[i] = row.Statuses
	}
	return out
}

func containsRune(rs []rune, r rune) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
