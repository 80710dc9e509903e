package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergeGuess(t *testing.T, k *Knowledge, secret, guess string) []Status {
	t.Helper()
	st, err := Evaluate(secret, guess)
	require.NoError(t, err)
	require.NoError(t, k.Merge([]rune(guess), st))
	return st
}

func TestKnowledge_PerLetterUnion(t *testing.T) {
	k := NewKnowledge()
	// the first e is Absent, the second Correct: e must not land in absent
	mergeGuess(t, k, "lemon", "eerie")

	assert.Equal(t, Correct, k.LetterStatus('e'))
	assert.Equal(t, Absent, k.LetterStatus('r'))
	assert.Equal(t, Absent, k.LetterStatus('i'))
	assert.Equal(t, Unknown, k.LetterStatus('l'))
	assert.Equal(t, []rune{'i', 'r'}, k.AbsentLetters())

	r, ok := k.CorrectAt(1)
	require.True(t, ok)
	assert.Equal(t, 'e', r)
}

func TestKnowledge_PresentAndAbsentInSameGuess(t *testing.T) {
	k := NewKnowledge()
	// one t in the secret: first t Present, the rest Absent
	st := mergeGuess(t, k, "caput", "tatty")
	assert.Equal(t, []Status{Present, Correct, Absent, Absent, Absent}, st)

	assert.Equal(t, Present, k.LetterStatus('t'))
	assert.Equal(t, []rune{'t'}, k.PresentLetters())
	assert.Equal(t, []rune{'y'}, k.AbsentLetters())
}

func TestKnowledge_CorrectPositionsNeverRegress(t *testing.T) {
	k := NewKnowledge()
	mergeGuess(t, k, "crane", "cloud")
	mergeGuess(t, k, "crane", "bread")

	r, ok := k.CorrectAt(0)
	require.True(t, ok)
	assert.Equal(t, 'c', r)
	assert.Equal(t, []int{0, 1}, k.CorrectPositions())

	// a later guess with a different letter at 0 does not clear it
	mergeGuess(t, k, "crane", "track")
	r, _ = k.CorrectAt(0)
	assert.Equal(t, 'c', r)
}

func TestKnowledge_PresentThenCorrect(t *testing.T) {
	k := NewKnowledge()
	mergeGuess(t, k, "crane", "react")
	assert.Equal(t, Present, k.LetterStatus('e'))
	mergeGuess(t, k, "crane", "phase")
	assert.Equal(t, Correct, k.LetterStatus('e'))
}

func TestKnowledge_NeverAbsentAndKnown(t *testing.T) {
	secrets := []string{"speed", "robot", "geese", "llama", "caput", "lemon"}
	guesses := []string{"erase", "other", "eerie", "tatty", "level", "mamma", "sassy", "bobby", "eagle"}
	for _, secret := range secrets {
		k := NewKnowledge()
		for _, g := range guesses {
			mergeGuess(t, k, secret, g)
			for _, r := range k.AbsentLetters() {
				assert.NotContainsf(t, k.PresentLetters(), r, "secret=%s letter=%c", secret, r)
				for _, i := range k.CorrectPositions() {
					c, _ := k.CorrectAt(i)
					assert.NotEqualf(t, c, r, "secret=%s letter=%c", secret, r)
				}
				assert.NotContainsf(t, secret, string(r), "absent letter %c is in %s", r, secret)
			}
		}
	}
}

func TestKnowledge_IgnoresBlanks(t *testing.T) {
	k := NewKnowledge()
	require.NoError(t, k.Merge([]rune("a c"), []Status{Absent, Absent, Correct}))
	assert.Equal(t, []rune{'a'}, k.AbsentLetters())
	assert.Equal(t, Unknown, k.LetterStatus(Blank))
}

func TestKnowledge_MergeLengthMismatch(t *testing.T) {
	k := NewKnowledge()
	assert.ErrorIs(t, k.Merge([]rune("abc"), []Status{Absent}), ErrLengthMismatch)
}

func TestKnowledge_Snapshot(t *testing.T) {
	k := NewKnowledge()
	mergeGuess(t, k, "crane", "caper")
	s := k.Snapshot()
	assert.Equal(t, map[string]string{"0": "c"}, s.Correct)
	assert.Equal(t, []string{"a", "e", "r"}, s.Present)
	assert.Equal(t, []string{"p"}, s.Absent)
}
