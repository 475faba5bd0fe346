package artifact

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash is a BLAKE3-256 digest of a serialized container
type Hash [32]byte

// Digest computes the content identifier of a serialized container
func Digest(data []byte) Hash {
	hasher := blake3.New()
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// FormatDigest returns the hex encoding of a digest
func FormatDigest(hash Hash) string {
	return hex.EncodeToString(hash[:])
}

// FormatRef returns a short reference: "hga-" and the first 12 hex characters
func FormatRef(hash Hash) string {
	return "hga-" + hex.EncodeToString(hash[:6])
}
