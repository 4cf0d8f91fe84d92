package util

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomState returns a hex string suitable for an OAuth state
// parameter. n is the number of random bytes; the string is twice as long.
func GenerateRandomState(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
