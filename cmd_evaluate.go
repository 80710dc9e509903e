package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pickword/server/internal/game"
	"github.com/pickword/server/internal/share"
)

var (
	evalDark        bool
	evalColourBlind bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate SECRET GUESS",
	Short: "Score a guess against a word",
	Long:  `Prints the status of every letter of GUESS against SECRET, then the emoji row.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printEvaluation(cmd.OutOrStdout(), args[0], args[1],
			share.Options{DarkMode: evalDark, ColourBlind: evalColourBlind})
	},
}

func init() {
	evaluateCmd.Flags().BoolVar(&evalDark, "dark", false, "dark mode glyphs")
	evaluateCmd.Flags().BoolVar(&evalColourBlind, "colour-blind", false, "high contrast glyphs")
}

// printEvaluation writes one "letter status" line per position and the emoji row.
func printEvaluation(w io.Writer, secret, guess string, opts share.Options) error {
	secret, guess = strings.ToLower(secret), strings.ToLower(guess)
	st, err := game.Evaluate(secret, guess)
	if err != nil {
		return err
	}
	var row strings.Builder
	for i, r := range []rune(guess) {
		fmt.Fprintf(w, "%d %c %s\n", i+1, r, st[i])
		row.WriteString(share.Glyph(st[i], opts))
	}
	_, err = fmt.Fprintln(w, row.String())
	return err
}
