// internal/httpserver/tokens.go
//
// Creator tokens: an HS256 JWT handed back when a word is created. It carries
// the short code and unlocks GET /api/words/{short}/results for that code only.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

var errBadToken = errors.New("invalid token")

type tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// sign creates a token for short with the configured expiry.
func (t tokens) sign(short string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"short": short,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	})
	ss, err := tok.SignedString(t.secret)
	return ss, exp, err
}

// verify returns the short code a valid token was issued for.
func (t tokens) verify(raw string) (string, error) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !tok.Valid {
		return "", errBadToken
	}
	short, _ := claims["short"].(string)
	if short == "" {
		return "", errBadToken
	}
	return short, nil
}

// requireCreator lets the request through only with a token for the {short}
// in the URL.
func (s *Server) requireCreator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearer(r)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "")
			return
		}
		short, err := s.tokens.verify(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token", "")
			return
		}
		if short != chi.URLParam(r, "short") {
			writeError(w, http.StatusForbidden, "forbidden", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
