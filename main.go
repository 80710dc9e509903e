// main.go
//
// pickword command line.
//   - serve     run the HTTP API
//   - evaluate  score one guess against a word
//   - create    store a word and print its short code
//   - verify    check the evaluator over word-list pairs
//   - config    print the effective configuration
//
// Configuration comes from --config (YAML), then .env, then the environment.

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pickword/server/internal/config"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "pickword",
	Short:         "Wordle where you pick the word",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c
		setupLogging(cfg.Log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "pickword.yaml", "path to YAML config (optional)")
	rootCmd.AddCommand(serveCmd, evaluateCmd, createCmd, verifyCmd, configCmd)
}

// setupLogging applies the level and output format to the global logger.
func setupLogging(c config.LogConfig) {
	lvl, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if c.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration (secrets masked)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cfg.Redacted()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
