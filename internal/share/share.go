// Package share renders finished games as the emoji grid players paste
// into chats.
package share

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pickword/server/internal/game"
)

const title = "Wordle (but you pick the word)"

// Options select the emoji palette and header flags.
type Options struct {
	DarkMode    bool
	ColourBlind bool
	HardMode    bool
}

// Glyph maps a status to its square.
func Glyph(s game.Status, opts Options) string {
	switch s {
	case game.Absent:
		if opts.DarkMode {
			return "⬛"
		}
		return "⬜️"
	case game.Correct:
		if opts.ColourBlind {
			return "🟧"
		}
		return "🟩"
	case game.Present:
		if opts.ColourBlind {
			return "🟦"
		}
		return "🟨"
	default:
		return "😳"
	}
}

// Text builds the share message:
//
//	Wordle (but you pick the word) <short> <n|X>/<maxRows>[*]
//
//	🟩⬜️🟨...
//
// n is the number of rows used when won, X otherwise.
func Text(short string, rows [][]game.Status, won bool, maxRows int, opts Options) string {
	score := "X"
	if won {
		score = fmt.Sprint(len(rows))
	}
	hard := ""
	if opts.HardMode {
		hard = "*"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s/%d%s\n", title, short, score, maxRows, hard)
	for _, row := range rows {
		b.WriteByte('\n')
		for _, s := range row {
			b.WriteString(Glyph(s, opts))
		}
	}
	return b.String()
}

// Game is Text for a finished game.
func Game(g *game.Game, opts Options) string {
	opts.HardMode = g.HardMode
	return Text(g.Short, g.Statuses(), g.State == game.StateWon, g.Rows, opts)
}

// displayRank orders tiles for reveal: correct, absent, present, then unknown.
func displayRank(s game.Status) int {
	switch s {
	case game.Correct:
		return 0
	case game.Absent:
		return 1
	case game.Present:
		return 2
	default:
		return 3
	}
}

// SortForDisplay returns the positions of statuses in reveal order.
// Ties keep position order. The statuses themselves are untouched.
func SortForDisplay(statuses []game.Status) []int {
	idx := make([]int, len(statuses))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return displayRank(statuses[a]) - displayRank(statuses[b])
	})
	return idx
}
