package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// CacheKey returns a stable, fixed-length key for the given parts.
// Parts are lower-cased and trimmed so "Chicago " and "chicago" share an entry.
func CacheKey(parts ...string) string {
	norm := make([]string, len(parts))
	for i, p := range parts {
		norm[i] = strings.ToLower(strings.TrimSpace(p))
	}
	sum := sha256.Sum256([]byte(strings.Join(norm, "\x00")))
	return hex.EncodeToString(sum[:])
}
