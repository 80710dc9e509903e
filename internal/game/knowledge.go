// internal/game/knowledge.go
//
// Aggregated hints across all guesses of a session.
//
// Rules:
//   - A position is recorded as correct only by a Correct status and is never
//     cleared by a later guess.
//   - Letters are classified per letter, not per position: a letter that is
//     Correct or Present anywhere in a guess is never added to the absent set,
//     even if another occurrence of it in the same guess came back Absent.
//   - No letter is ever in the absent set and known present/correct at once.

package game

import (
	"slices"
	"strconv"
)

// Knowledge is the running set of revealed hints for one session.
type Knowledge struct {
	correct map[int]rune
	present map[rune]struct{}
	absent  map[rune]struct{}
}

// NewKnowledge returns empty knowledge.
func NewKnowledge() *Knowledge {
	return &Knowledge{
		correct: make(map[int]rune),
		present: make(map[rune]struct{}),
		absent:  make(map[rune]struct{}),
	}
}

// Merge folds one evaluated guess into k.
func (k *Knowledge) Merge(guess []rune, statuses []Status) error {
	if len(guess) != len(statuses) {
		return ErrLengthMismatch
	}

	// strongest outcome per letter within this guess
	best := make(map[rune]Status, len(guess))
	for i, r := range guess {
		if r == Blank {
			continue
		}
		s := statuses[i]
		if s == Correct {
			k.correct[i] = r
		}
		if s.rank() > best[r].rank() {
			best[r] = s
		}
	}

	for r, s := range best {
		switch s {
		case Present:
			k.present[r] = struct{}{}
			delete(k.absent, r)
		case Correct:
			delete(k.absent, r)
		case Absent:
			if !k.known(r) {
				k.absent[r] = struct{}{}
			}
		}
	}
	return nil
}

// known reports whether r has been seen as present or correct.
func (k *Knowledge) known(r rune) bool {
	if _, ok := k.present[r]; ok {
		return true
	}
	for _, c := range k.correct {
		if c == r {
			return true
		}
	}
	return false
}

// LetterStatus returns the strongest status revealed for r.
func (k *Knowledge) LetterStatus(r rune) Status {
	for _, c := range k.correct {
		if c == r {
			return Correct
		}
	}
	if _, ok := k.present[r]; ok {
		return Present
	}
	if _, ok := k.absent[r]; ok {
		return Absent
	}
	return Unknown
}

// CorrectAt returns the letter confirmed at position i.
func (k *Knowledge) CorrectAt(i int) (rune, bool) {
	r, ok := k.correct[i]
	return r, ok
}

// CorrectPositions returns confirmed positions in ascending order.
func (k *Knowledge) CorrectPositions() []int {
	out := make([]int, 0, len(k.correct))
	for i := range k.correct {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// PresentLetters returns the present set, sorted.
func (k *Knowledge) PresentLetters() []rune { return sortedSet(k.present) }

// AbsentLetters returns the absent set, sorted.
func (k *Knowledge) AbsentLetters() []rune { return sortedSet(k.absent) }

func sortedSet(m map[rune]struct{}) []rune {
	out := make([]rune, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// Snapshot is the JSON view of Knowledge.
type Snapshot struct {
	Correct map[string]string `json:"correct"` // position (0-based) → letter
	Present []string          `json:"present"`
	Absent  []string          `json:"absent"`
}

// Snapshot returns a serialisable copy of k.
func (k *Knowledge) Snapshot() Snapshot {
	s := Snapshot{
		Correct: make(map[string]string, len(k.correct)),
		Present: runesToStrings(k.PresentLetters()),
		Absent:  runesToStrings(k.AbsentLetters()),
	}
	for i, r := range k.correct {
		s.Correct[strconv.Itoa(i)] = string(r)
	}
	return s
}

func runesToStrings(rs []rune) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}
