// Package daily picks "today's word" deterministically from the date.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// Epoch is day 1 of the daily puzzle.
var Epoch = time.Date(2021, time.June, 17, 0, 0, 0, 0, time.UTC)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DayIndex is the puzzle number for t: 1 on Epoch, 2 the day after, and so on.
// Dates before Epoch return 0.
func DayIndex(t time.Time) int {
	t = t.UTC()
	if t.Before(Epoch) {
		return 0
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(Epoch).Hours()/24) + 1
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
// Every call on the same UTC day with the same salt yields the same index.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}
