// Package daily derives the shared puzzle of the day and records results
// for it.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns the jumble seed for the date of t: HMAC(salt, YYYY-MM-DD)
// reduced to a non-negative int64, so every player gets the same puzzle
// for a given day and salt.
func Seed(t time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	// first 8 bytes, top bit cleared
	return int64(binary.BigEndian.Uint64(sum[:8]) >> 1)
}
