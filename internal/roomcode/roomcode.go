// Package roomcode generates and validates the short codes that identify
// rooms. Codes are 6-8 alphanumeric characters, case-insensitive and
// normalized to uppercase at the HTTP boundary.
package roomcode

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	alphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	MinLength = 6
	MaxLength = 8

	codeLength = 6
)

// New returns a fresh room code.
func New() string {
	var b strings.Builder
	b.Grow(codeLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// Fallback to a timestamp-derived code if crypto/rand is
			// unavailable.
			return fallback()
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String()
}

func fallback() string {
	s := strconv.FormatInt(time.Now().UnixNano(), 36)
	s = strings.ToUpper(s)
	if len(s) > codeLength {
		s = s[len(s)-codeLength:]
	}
	return s
}

// Normalize uppercases and trims a client-supplied room code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether a normalized code is 6-8 uppercase alphanumeric
// characters.
func Valid(code string) bool {
	if len(code) < MinLength || len(code) > MaxLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
