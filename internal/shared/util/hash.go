package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashOwnerKey derives a stable, filesystem- and URL-safe directory name
// from an owner ID. OAuth IDs can contain ":" so the raw ID is never used
// directly as a path segment.
func HashOwnerKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
