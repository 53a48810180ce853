package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// SourceDigest returns the hex-encoded BLAKE2b-256 sum of the source text.
// Identical snippets share a digest, which keys the analysis cache.
func SourceDigest(source string) string {
	sum := blake2b.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
