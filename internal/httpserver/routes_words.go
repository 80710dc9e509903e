// internal/httpserver/routes_words.go
//
// HTTP routes for chosen words.
//   - POST /api/words                 → store a word, return its short code
//   - POST /api/words/random          → store a random viable word
//   - POST /api/words/today           → store today's word
//   - GET  /api/words/{short}         → public info about a short code
//   - GET  /api/words/{short}/results → creator-only play statistics
//
// Every create response carries a creator token for the results endpoint.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/pickword/server/internal/daily"
	"github.com/pickword/server/internal/game"
	"github.com/pickword/server/internal/store"
	"github.com/pickword/server/internal/words"
)

// mountWords registers all /words routes.
func (s *Server) mountWords(r chi.Router) {
	r.Route("/words", func(r chi.Router) {
		r.Post("/", s.handleCreateWord)
		r.Post("/random", s.handleRandomWord)
		r.Post("/today", s.handleTodayWord)
		r.Get("/{short}", s.handleLookupWord)
		r.With(s.requireCreator).Get("/{short}/results", s.handleResults)
	})
}

// createReq is the payload for POST /api/words.
type createReq struct {
	Word      string `json:"word"`
	RealWords bool   `json:"realWords"`
}

// createRes is returned by every word-creating endpoint.
type createRes struct {
	Short     string    `json:"short"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Length    int       `json:"length"`
	RealWords bool      `json:"realWords"`
	Index     *int      `json:"index,omitempty"` // random: position in the viable list
	Date      string    `json:"date,omitempty"`  // today: YYYY-MM-DD
	Day       int       `json:"day,omitempty"`   // today: puzzle number
}

// handleCreateWord validates and stores a player-chosen word.
// - 3 to 8 letters a–z (input is case-insensitive).
// - realWords requires a 5-letter dictionary word.
func (s *Server) handleCreateWord(w http.ResponseWriter, r *http.Request) {
	var p createReq
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "")
		return
	}
	word := strings.ToLower(strings.TrimSpace(p.Word))
	if !game.ValidWord(word) {
		writeError(w, http.StatusBadRequest, "invalid_word",
			"Word must be 3 to 8 letters")
		return
	}
	if p.RealWords {
		if len(word) != words.RealWordLength {
			writeError(w, http.StatusBadRequest, "invalid_word",
				"Real-word games need a 5 letter word")
			return
		}
		if !s.opts.Lists.IsAllowed(word) {
			writeError(w, http.StatusBadRequest, "not_in_word_list",
				game.UserMessage(game.ErrNotInWordList))
			return
		}
	}
	s.createAndRespond(w, r, word, p.RealWords, createRes{})
}

// randomReq lists viable-word indexes the client has already played.
type randomReq struct {
	Used []uint `json:"used"`
}

// handleRandomWord stores a random viable word not in Used.
func (s *Server) handleRandomWord(w http.ResponseWriter, r *http.Request) {
	var p randomReq
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "")
		return
	}
	n := uint(len(s.opts.Lists.Viable()))
	used := bitset.New(n)
	for _, i := range p.Used {
		if i < n {
			used.Set(i)
		}
	}
	word, idx, err := s.opts.Lists.RandomViable(used)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("random word")
		writeError(w, http.StatusInternalServerError, "random_failed", "")
		return
	}
	s.createAndRespond(w, r, word, true, createRes{Index: &idx})
}

// handleTodayWord stores today's deterministic word.
func (s *Server) handleTodayWord(w http.ResponseWriter, r *http.Request) {
	now := s.opts.Now()
	word, day, err := s.opts.Lists.Today(now, s.opts.DailySalt)
	if errors.Is(err, words.ErrNoWordsLeft) {
		writeError(w, http.StatusConflict, "no_words_left", "No more words left")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "")
		return
	}
	s.createAndRespond(w, r, word, true, createRes{Date: daily.DateKey(now), Day: day})
}

// createAndRespond stores word and writes res filled with the short code and
// creator token.
func (s *Server) createAndRespond(w http.ResponseWriter, r *http.Request, word string, realWords bool, res createRes) {
	e, err := s.opts.Words.Create(r.Context(), word, realWords)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("create word")
		writeError(w, http.StatusInternalServerError, "store_failed", "")
		return
	}
	token, exp, err := s.tokens.sign(e.Short)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "token_failed", "")
		return
	}
	res.Short, res.Token, res.ExpiresAt = e.Short, token, exp
	res.Length, res.RealWords = len(e.Word), e.RealWords

	hlog.FromRequest(r).Info().Str("short", e.Short).Bool("real_words", e.RealWords).Msg("word created")
	writeJSON(w, http.StatusCreated, res)
}

// lookupRes describes a short code without revealing the word.
type lookupRes struct {
	Short     string    `json:"short"`
	Length    int       `json:"length"`
	RealWords bool      `json:"realWords"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleLookupWord(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r, chi.URLParam(r, "short"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, lookupRes{
		Short:     e.Short,
		Length:    len(e.Word),
		RealWords: e.RealWords,
		CreatedAt: e.CreatedAt,
	})
}

// handleResults returns play statistics for the creator of {short}.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.opts.Results == nil {
		writeError(w, http.StatusNotImplemented, "results_disabled", "")
		return
	}
	short := chi.URLParam(r, "short")
	if _, ok := s.lookup(w, r, short); !ok {
		return
	}
	sum, err := s.opts.Results.Summary(r.Context(), short)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("short", short).Msg("results summary")
		writeError(w, http.StatusInternalServerError, "internal", "")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// lookup resolves a short code, writing 404/500 itself on failure.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request, short string) (store.Entry, bool) {
	e, err := s.opts.Words.Lookup(r.Context(), strings.ToLower(short))
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "unknown_word", "Unknown word link")
		return store.Entry{}, false
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Str("short", short).Msg("lookup word")
		writeError(w, http.StatusInternalServerError, "internal", "")
		return store.Entry{}, false
	}
	return e, true
}
