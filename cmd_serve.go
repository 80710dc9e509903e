package main

import (
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pickword/server/internal/config"
	"github.com/pickword/server/internal/httpserver"
	"github.com/pickword/server/internal/results"
	"github.com/pickword/server/internal/store"
	"github.com/pickword/server/internal/words"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := words.Init(cfg.Words.AllowedFile, cfg.Words.ViableFile); err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}
	if cfg.InsecureSecret() {
		log.Warn().Msg("JWT_SECRET not set; using the development secret")
	}

	ws, rs, closeDB, err := openStores(cfg.Store)
	if err != nil {
		return err
	}
	defer closeDB()

	srv := httpserver.New(httpserver.Options{
		Words:        ws,
		Games:        store.NewMemoryGames(),
		Results:      rs,
		Lists:        words.Default(),
		JWTSecret:    cfg.Auth.JWTSecret,
		TokenTTL:     cfg.TokenTTL(),
		ClientOrigin: cfg.Server.ClientOrigin,
		Timeout:      cfg.RequestTimeout(),
		Rows:         cfg.Game.Rows,
		DailySalt:    cfg.Words.DailySalt,
		PruneAfter:   cfg.PruneAfter(),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("port", cfg.Server.Port).Str("store", cfg.Store.Driver).Msg("starting pickword")
	if err := srv.Run(ctx, ":"+cfg.Server.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// openStores returns the word store for the configured driver. Results are
// only kept with sqlite; the memory driver returns a nil results store.
func openStores(c config.StoreConfig) (store.WordStore, *results.Store, func(), error) {
	if c.Driver == "memory" {
		return store.NewMemoryWords(), nil, func() {}, nil
	}
	db, err := store.OpenDB(c.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	closeDB := func() { closeQuietly(db) }
	if err := store.Migrate(db); err != nil {
		closeDB()
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return store.NewSQLiteWords(db), results.NewStore(db), closeDB, nil
}

func closeQuietly(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Warn().Err(err).Msg("close database")
	}
}
