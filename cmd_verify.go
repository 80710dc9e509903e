package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pickword/server/internal/game"
	"github.com/pickword/server/internal/words"
)

var (
	verifyWorkers int
	verifyLimit   int
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check evaluator invariants over every viable × allowed word pair",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := words.Init(cfg.Words.AllowedFile, cfg.Words.ViableFile); err != nil {
			return err
		}
		lists := words.Default()
		secrets := lists.Viable()
		guesses := lists.Allowed()
		if verifyLimit > 0 && verifyLimit < len(secrets) {
			secrets = secrets[:verifyLimit]
		}

		bar := progressbar.NewOptions64(int64(len(secrets))*int64(len(guesses)),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("verifying"),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		n, err := verifyPairs(cmd.Context(), secrets, guesses, verifyWorkers, bar)
		_ = bar.Finish()
		if err != nil {
			return err
		}
		log.Info().Int("pairs", n).Msg("evaluator invariants hold")
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d pairs\n", n)
		return nil
	},
}

func init() {
	verifyCmd.Flags().IntVar(&verifyWorkers, "workers", runtime.NumCPU(), "concurrent secrets")
	verifyCmd.Flags().IntVar(&verifyLimit, "limit", 0, "only check the first N secrets (0 = all)")
}

// progress is the part of a progress bar verifyPairs reports to.
type progress interface {
	Add(int) error
}

// verifyPairs evaluates every guess against every secret and checks the
// evaluator invariants, stopping at the first violation. It returns the
// number of pairs checked.
func verifyPairs(ctx context.Context, secrets, guesses []string, workers int, bar progress) (int, error) {
	if workers <= 0 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, secret := range secrets {
		g.Go(func() error {
			for _, guess := range guesses {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := checkPair(secret, guess); err != nil {
					return err
				}
			}
			return bar.Add(len(guesses))
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(secrets) * len(guesses), nil
}

// checkPair verifies one evaluation:
//   - Correct exactly where the letters match.
//   - Per letter, correct+present never exceeds its count in the secret.
//   - A letter marked Absent has no unclaimed occurrence left.
//   - Evaluating twice gives the same answer.
func checkPair(secret, guess string) error {
	if len(secret) != len(guess) {
		return nil
	}
	st, err := game.Evaluate(secret, guess)
	if err != nil {
		return err
	}
	again, _ := game.Evaluate(secret, guess)

	counts := map[byte]int{}
	for i := 0; i < len(secret); i++ {
		counts[secret[i]]++
	}
	claimed := map[byte]int{}
	for i := 0; i < len(guess); i++ {
		if (st[i] == game.Correct) != (secret[i] == guess[i]) {
			return fmt.Errorf("%s/%s: position %d marked %s", secret, guess, i+1, st[i])
		}
		if st[i] == game.Correct || st[i] == game.Present {
			claimed[guess[i]]++
		}
		if st[i] != again[i] {
			return fmt.Errorf("%s/%s: not idempotent at %d", secret, guess, i+1)
		}
	}
	for i := 0; i < len(guess); i++ {
		c := guess[i]
		if claimed[c] > counts[c] {
			return fmt.Errorf("%s/%s: %c claimed %d times, secret has %d", secret, guess, c, claimed[c], counts[c])
		}
		if st[i] == game.Absent && claimed[c] < counts[c] {
			return fmt.Errorf("%s/%s: %c marked absent with an occurrence unclaimed", secret, guess, c)
		}
	}
	return nil
}
