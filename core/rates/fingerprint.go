package rates

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash is a SHA-256 hash of a table's canonical encoding
type ContentHash [32]byte

// Fingerprint hashes the HCL encoding of t. Two tables with equal
// constants have equal fingerprints regardless of how they were loaded.
func (t *Table) Fingerprint() ContentHash {
	return sha256.Sum256(Encode(t))
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String returns the first 16 hex characters
func (h ContentHash) String() string {
	return h.Hex()[:16]
}
