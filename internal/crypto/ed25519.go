package crypto

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha512"
	"fmt"

	"peerid/internal/domain"
)

// Keypair is an Ed25519 signing keypair. Secret uses the 64-byte
// seed||public layout of ed25519.PrivateKey.
type Keypair struct {
	Public ed25519.PublicKey
	Secret ed25519.PrivateKey
}

// GenerateEd25519 returns a new random Ed25519 signing keypair.
func GenerateEd25519() (Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Keypair{}, err
	}
	return Keypair{Public: pub, Secret: priv}, nil
}

// Ed25519FromSeed derives a keypair from a low-entropy seed string.
// The same seed always yields the same keypair.
func Ed25519FromSeed(seed string) Keypair {
	digest := sha512.Sum512([]byte(seed))
	defer Wipe(digest[:])

	priv := ed25519.NewKeyFromSeed(digest[:ed25519.SeedSize])
	return Keypair{Public: priv.Public().(ed25519.PublicKey), Secret: priv}
}

// Ed25519FromSecretKey rebuilds a keypair from a text-encoded secret key.
// It fails with domain.ErrInvalidSecretKey when the text does not decode to
// a 64-byte key whose public half matches its seed half.
func Ed25519FromSecretKey(secretKey string) (Keypair, error) {
	raw, err := Decode(secretKey)
	if err != nil {
		return Keypair{}, fmt.Errorf("%w: %w", domain.ErrInvalidSecretKey, err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		Wipe(raw)
		return Keypair{}, fmt.Errorf("%w: got %d bytes, want %d",
			domain.ErrInvalidSecretKey, len(raw), ed25519.PrivateKeySize)
	}

	priv := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	pub := priv.Public().(ed25519.PublicKey)
	matches := bytes.Equal(pub, raw[ed25519.SeedSize:])
	Wipe(raw)
	if !matches {
		Wipe(priv)
		return Keypair{}, fmt.Errorf("%w: public half does not match seed", domain.ErrInvalidSecretKey)
	}
	return Keypair{Public: pub, Secret: priv}, nil
}

// SignEd25519 signs msg with priv and returns the signature.
func SignEd25519(priv ed25519.PrivateKey, msg []byte) []byte {
	return ed25519.Sign(priv, msg)
}

// VerifyEd25519 verifies sig over msg with pub.
func VerifyEd25519(pub ed25519.PublicKey, msg, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(pub, msg, sig)
}
