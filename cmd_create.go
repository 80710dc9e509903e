package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pickword/server/internal/game"
	"github.com/pickword/server/internal/store"
	"github.com/pickword/server/internal/words"
)

var createReal bool

var createCmd = &cobra.Command{
	Use:   "create WORD",
	Short: "Store a word and print its short code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, _, closeDB, err := openStores(cfg.Store)
		if err != nil {
			return err
		}
		defer closeDB()

		var lists *words.Lists
		if createReal {
			if err := words.Init(cfg.Words.AllowedFile, cfg.Words.ViableFile); err != nil {
				return err
			}
			lists = words.Default()
		}
		return createWord(cmd.Context(), cmd.OutOrStdout(), ws, lists, args[0], createReal)
	},
}

func init() {
	createCmd.Flags().BoolVar(&createReal, "real", false, "only accept real words as guesses")
}

// createWord validates word the same way POST /api/words does and stores it.
func createWord(ctx context.Context, w io.Writer, ws store.WordStore, lists *words.Lists, word string, realWords bool) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if !game.ValidWord(word) {
		return fmt.Errorf("%q: word must be %d to %d letters", word, game.MinLetters, game.MaxLetters)
	}
	if realWords {
		if len(word) != words.RealWordLength {
			return fmt.Errorf("%q: real-word games need a %d letter word", word, words.RealWordLength)
		}
		if lists == nil || !lists.IsAllowed(word) {
			return fmt.Errorf("%q: %w", word, game.ErrNotInWordList)
		}
	}
	e, err := ws.Create(ctx, word, realWords)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, e.Short)
	return err
}
