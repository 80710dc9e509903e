// internal/game/evaluate.go
//
// Letter-status evaluation for a guess against a secret.
//
// Pass 1:
//   - Mark exact matches as Correct and claim one occurrence of that letter.
//
// Pass 2:
//   - For each remaining position, left to right: Present if an unclaimed
//     occurrence is left (claim it), otherwise Absent.
//
// Exact matches must claim their occurrence before any Present is handed out,
// otherwise a duplicate letter earlier in the guess can steal it.

package game

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when guess and secret differ in length.
var ErrLengthMismatch = errors.New("game: guess length does not match secret length")

// Evaluate scores guess against secret, one Status per guess letter.
func Evaluate(secret, guess string) ([]Status, error) {
	return EvaluateRunes([]rune(secret), []rune(guess))
}

// EvaluateRunes is Evaluate over rune slices. Neither slice is modified.
func EvaluateRunes(secret, guess []rune) ([]Status, error) {
	if len(guess) != len(secret) {
		return nil, fmt.Errorf("%w: secret has %d letters, guess has %d", ErrLengthMismatch, len(secret), len(guess))
	}

	counts := letterCounts(secret)
	res := make([]Status, len(guess))

	for i, r := range guess {
		if r != Blank && r == secret[i] {
			res[i] = Correct
			counts[r]--
		}
	}

	for i, r := range guess {
		if res[i] == Correct {
			continue
		}
		if r != Blank && counts[r] > 0 {
			res[i] = Present
			counts[r]--
		} else {
			res[i] = Absent
		}
	}
	return res, nil
}

// letterCounts returns the number of occurrences of each letter in word.
func letterCounts(word []rune) map[rune]int {
	counts := make(map[rune]int, len(word))
	for _, r := range word {
		counts[r]++
	}
	return counts
}

// AllCorrect reports whether every status is Correct.
func AllCorrect(statuses []Status) bool {
	if len(statuses) == 0 {
		return false
	}
	for _, s := range statuses {
		if s != Correct {
			return false
		}
	}
	return true
}
