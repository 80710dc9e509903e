// internal/words/words.go
//
// Word list management.
//
// Word Lists:
//   - "allowed": real five-letter words; guesses in real-words games must be
//     in this list, and so must secrets created with realWords=true.
//   - "viable":  curated answers used for random and daily words
//     (always merged into allowed).
//
// Loading (Load):
//   1. A non-empty path is read from disk, one word per line.
//   2. An empty path falls back to the list embedded in the assets package.
//
// Environment variables (read by config):
//   WORDS_ALLOWED_FILE=/path/to/allowed.txt
//   WORDS_VIABLE_FILE=/path/to/viable.txt
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z); others are skipped.
//   • Lists are normalized to lowercase.
//   • Init sets the process-wide default exactly once (sync.Once).

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog/log"

	"github.com/pickword/server/assets"
	"github.com/pickword/server/internal/daily"
)

// RealWordLength is the only length with a dictionary.
const RealWordLength = 5

var (
	ErrEmptyList   = errors.New("words: viable list is empty")
	ErrNoWordsLeft = errors.New("words: no more words left")
)

// Lists holds the loaded word lists.
type Lists struct {
	viable  []string
	allowed map[string]struct{}
}

// Load reads the allowed and viable lists, falling back to embedded defaults
// for empty paths.
func Load(allowedPath, viablePath string) (*Lists, error) {
	allowList, err := readList(allowedPath, assets.AllowedList)
	if err != nil {
		return nil, fmt.Errorf("allowed words: %w", err)
	}
	viable, err := readList(viablePath, assets.ViableList)
	if err != nil {
		return nil, fmt.Errorf("viable words: %w", err)
	}
	return New(allowList, viable)
}

// New builds Lists from in-memory words. Invalid words are dropped.
func New(allowList, viable []string) (*Lists, error) {
	l := &Lists{
		viable:  normalize(viable),
		allowed: make(map[string]struct{}, len(allowList)+len(viable)),
	}
	if len(l.viable) == 0 {
		return nil, ErrEmptyList
	}
	for _, w := range normalize(allowList) {
		l.allowed[w] = struct{}{}
	}
	// every answer is also a valid guess
	for _, w := range l.viable {
		l.allowed[w] = struct{}{}
	}
	return l, nil
}

func readList(path string, fallback func() ([]string, error)) ([]string, error) {
	if path == "" {
		return fallback()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// normalize lowercases, trims, dedupes and keeps only valid words.
func normalize(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.TrimSpace(strings.ToLower(w))
		if len(w) != RealWordLength || !isAlpha(w) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// IsAllowed reports whether w is a real word.
func (l *Lists) IsAllowed(w string) bool {
	_, ok := l.allowed[strings.ToLower(w)]
	return ok
}

// Viable returns the curated answer list.
func (l *Lists) Viable() []string { return l.viable }

// Allowed returns every accepted guess, sorted.
func (l *Lists) Allowed() []string {
	out := make([]string, 0, len(l.allowed))
	for w := range l.allowed {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Stats returns counts of loaded words: (viable, allowed).
func (l *Lists) Stats() (viableCount int, allowedCount int) {
	return len(l.viable), len(l.allowed)
}

// RandomViable returns a cryptographically random viable word whose index is
// not set in used, and marks it. Once every word has been used the set is
// cleared and picking starts over.
func (l *Lists) RandomViable(used *bitset.BitSet) (string, int, error) {
	n := uint(len(l.viable))
	if used.Count() >= n {
		used.ClearAll()
	}
	free := make([]uint, 0, n)
	for i := uint(0); i < n; i++ {
		if !used.Test(i) {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		return "", 0, ErrNoWordsLeft
	}
	j, err := rand.Int(rand.Reader, big.NewInt(int64(len(free))))
	if err != nil {
		return "", 0, err
	}
	idx := free[j.Int64()]
	used.Set(idx)
	return l.viable[idx], int(idx), nil
}

// Today returns the daily word for now and its puzzle number.
func (l *Lists) Today(now time.Time, salt string) (string, int, error) {
	if len(l.viable) == 0 {
		return "", 0, ErrNoWordsLeft
	}
	return l.viable[daily.WordIndex(now, salt, len(l.viable))], daily.DayIndex(now), nil
}

var (
	initOnce   sync.Once
	defaults   *Lists
	initialErr error
)

// Init loads the process-wide lists exactly once.
func Init(allowedPath, viablePath string) error {
	initOnce.Do(func() {
		defaults, initialErr = Load(allowedPath, viablePath)
		if initialErr == nil {
			v, a := defaults.Stats()
			log.Info().Int("viable", v).Int("allowed", a).Msg("word lists loaded")
		}
	})
	return initialErr
}

// Default returns the lists set by Init, or the embedded lists if Init was
// never called.
func Default() *Lists {
	if err := Init("", ""); err != nil {
		log.Error().Err(err).Msg("load word lists")
	}
	return defaults
}
