package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"peerid/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a text-encoded public key.
//
// It hashes the decoded key with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(publicKey string) (domain.Fingerprint, error) {
	raw, err := Decode(publicKey)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return domain.Fingerprint(hex.EncodeToString(sum[:10])), nil
}
