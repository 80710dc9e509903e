// internal/httpserver/routes_games.go
//
// HTTP routes for game sessions.
//   - POST /api/games              → start a game for a short code
//   - GET  /api/games/{id}         → current state
//   - POST /api/games/{id}/guess   → submit a guess
//   - GET  /api/games/{id}/share   → share text of a finished game
//   - POST /api/evaluate           → stateless evaluation
//
// Sessions live in the GameStore; all mutation goes through Update so two
// guesses on the same game never interleave. Finished games are recorded in
// the results store (best effort).

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/pickword/server/internal/game"
	"github.com/pickword/server/internal/results"
	"github.com/pickword/server/internal/share"
	"github.com/pickword/server/internal/store"
)

// mountGames registers all /games routes.
func (s *Server) mountGames(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleNewGame)
		r.Get("/{id}", s.handleGetGame)
		r.Post("/{id}/guess", s.handleGuess)
		r.Get("/{id}/share", s.handleShare)
	})
}

// newGameReq is the payload for POST /api/games.
type newGameReq struct {
	Short    string `json:"short"`
	HardMode bool   `json:"hardMode"`
}

// gameRes is the public view of a game. Answer is only set once finished.
type gameRes struct {
	GameID    string                 `json:"gameId"`
	Short     string                 `json:"short"`
	Length    int                    `json:"length"`
	Rows      int                    `json:"rows"`
	HardMode  bool                   `json:"hardMode"`
	RealWords bool                   `json:"realWords"`
	State     game.State             `json:"state"`
	Guesses   []game.Row             `json:"guesses"`
	Knowledge game.Snapshot          `json:"knowledge"`
	Keyboard  map[string]game.Status `json:"keyboard"`
	Answer    string                 `json:"answer,omitempty"`
}

// guessRes adds the statuses of the submitted guess.
type guessRes struct {
	Statuses []game.Status `json:"statuses"`
	gameRes
}

func viewOf(g *game.Game) gameRes {
	res := gameRes{
		GameID:    g.ID,
		Short:     g.Short,
		Length:    g.Length(),
		Rows:      g.Rows,
		HardMode:  g.HardMode,
		RealWords: g.RealWords,
		State:     g.State,
		Guesses:   append([]game.Row(nil), g.History...),
		Knowledge: g.Knowledge.Snapshot(),
		Keyboard:  map[string]game.Status{},
	}
	for _, row := range g.History {
		for _, r := range row.Guess {
			res.Keyboard[string(r)] = g.Knowledge.LetterStatus(r)
		}
	}
	if g.Finished() {
		res.Answer = g.Secret
	}
	return res
}

// handleNewGame starts a game for an existing short code.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var p newGameReq
	if err := decode(r, &p); err != nil || p.Short == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "")
		return
	}
	e, ok := s.lookup(w, r, p.Short)
	if !ok {
		return
	}
	g, err := game.New(game.Options{
		Short:     e.Short,
		Secret:    e.Word,
		Rows:      s.opts.Rows,
		HardMode:  p.HardMode,
		RealWords: e.RealWords,
	})
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("short", e.Short).Msg("new game")
		writeError(w, http.StatusInternalServerError, "internal", "")
		return
	}
	g.StartedAt = s.opts.Now().UTC()
	if err := s.opts.Games.Save(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "internal", "")
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(g))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var res gameRes
	err := s.opts.Games.View(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		res = viewOf(g)
		return nil
	})
	if err != nil {
		s.writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// guessReq is the payload for POST /api/games/{id}/guess.
type guessReq struct {
	Guess string `json:"guess"`
}

// handleGuess validates and applies a guess.
// - Rule violations → 400 with a toast-ready message.
// - Finished game → 409.
// - When the guess ends the game the result is recorded.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var p guessReq
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "")
		return
	}

	var (
		dict     game.Dictionary
		res      guessRes
		finished *results.Result
	)
	if s.opts.Lists != nil {
		dict = s.opts.Lists
	}
	err := s.opts.Games.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		row, err := g.ApplyGuess(p.Guess, dict)
		if err != nil {
			return err
		}
		res = guessRes{Statuses: row.Statuses, gameRes: viewOf(g)}
		if g.Finished() {
			finished = &results.Result{
				GameID:    g.ID,
				Short:     g.Short,
				Won:       g.State == game.StateWon,
				Guesses:   len(g.History),
				HardMode:  g.HardMode,
				ElapsedMs: s.opts.Now().Sub(g.StartedAt).Milliseconds(),
			}
		}
		return nil
	})
	if err != nil {
		s.writeGameError(w, r, err)
		return
	}
	if finished != nil {
		s.record(r.Context(), *finished)
	}
	writeJSON(w, http.StatusOK, res)
}

// record stores a finished game; failures are only logged.
func (s *Server) record(ctx context.Context, res results.Result) {
	if s.opts.Results == nil {
		return
	}
	if err := s.opts.Results.Record(ctx, res); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("game_id", res.GameID).Msg("record result")
	}
}

// shareRes is returned by GET /api/games/{id}/share.
type shareRes struct {
	Text string `json:"text"`
}

// handleShare renders the emoji grid of a finished game.
// Query: dark=1, colourBlind=1.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	opts := share.Options{
		DarkMode:    truthy(r.URL.Query().Get("dark")),
		ColourBlind: truthy(r.URL.Query().Get("colourBlind")),
	}
	var text string
	err := s.opts.Games.View(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		if !g.Finished() {
			return errGameInProgress
		}
		text = share.Game(g, opts)
		return nil
	})
	if err != nil {
		s.writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shareRes{Text: text})
}

// evaluateReq is the payload for POST /api/evaluate.
type evaluateReq struct {
	Secret string `json:"secret"`
	Guess  string `json:"guess"`
}

type evaluateRes struct {
	Statuses []game.Status `json:"statuses"`
}

// handleEvaluate scores guess against secret without any session.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var p evaluateReq
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "")
		return
	}
	st, err := game.Evaluate(strings.ToLower(p.Secret), strings.ToLower(p.Guess))
	if errors.Is(err, game.ErrLengthMismatch) {
		writeError(w, http.StatusBadRequest, "length_mismatch", "Guess and word must be the same length")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "")
		return
	}
	writeJSON(w, http.StatusOK, evaluateRes{Statuses: st})
}

var errGameInProgress = errors.New("game in progress")

// writeGameError maps game and store errors to HTTP responses.
func (s *Server) writeGameError(w http.ResponseWriter, r *http.Request, err error) {
	var hm *game.HardModeError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "unknown_game", "")
	case errors.Is(err, game.ErrGameFinished):
		writeError(w, http.StatusConflict, "game_finished", game.UserMessage(err))
	case errors.Is(err, errGameInProgress):
		writeError(w, http.StatusConflict, "game_in_progress", "")
	case errors.Is(err, game.ErrNotEnoughLetters):
		writeError(w, http.StatusBadRequest, "not_enough_letters", game.UserMessage(err))
	case errors.Is(err, game.ErrBlankLetters):
		writeError(w, http.StatusBadRequest, "blank_letters", game.UserMessage(err))
	case errors.Is(err, game.ErrInvalidGuess):
		writeError(w, http.StatusBadRequest, "invalid_guess", game.UserMessage(err))
	case errors.Is(err, game.ErrNotInWordList):
		writeError(w, http.StatusBadRequest, "not_in_word_list", game.UserMessage(err))
	case errors.As(err, &hm):
		writeError(w, http.StatusBadRequest, "hard_mode", game.UserMessage(err))
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("game request")
		writeError(w, http.StatusInternalServerError, "internal", "")
	}
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
