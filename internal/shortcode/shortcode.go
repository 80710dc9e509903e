// Package shortcode generates the short codes that identify a chosen word
// in play links.
package shortcode

import (
	"crypto/rand"
	"math/big"
)

// Length is the number of characters in a short code.
const Length = 6

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// New returns a random lowercase base36 short code.
func New() (string, error) {
	b := make([]byte, Length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}

// Valid reports whether s has the shape of a short code.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z') {
			return false
		}
	}
	return true
}
