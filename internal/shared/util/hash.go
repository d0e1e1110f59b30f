package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText returns a stable hex identifier for arbitrary text.
func HashText(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
