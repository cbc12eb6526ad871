package crypto

import (
	"crypto/ed25519"
	"fmt"

	"peerid/internal/domain"
)

// NewIdentity creates an identity backed by a fresh random keypair.
func NewIdentity(profile domain.Profile) (domain.Identity, error) {
	kp, err := GenerateEd25519()
	if err != nil {
		return domain.Identity{}, fmt.Errorf("generate ed25519 keypair: %w", err)
	}
	return IdentityFromKeypair(profile, kp), nil
}

// IdentityFromSeed creates the identity deterministically derived from seed.
func IdentityFromSeed(profile domain.Profile, seed string) domain.Identity {
	return IdentityFromKeypair(profile, Ed25519FromSeed(seed))
}

// IdentityFromSecretKey rebuilds the identity owning secretKey.
func IdentityFromSecretKey(profile domain.Profile, secretKey string) (domain.Identity, error) {
	kp, err := Ed25519FromSecretKey(secretKey)
	if err != nil {
		return domain.Identity{}, err
	}
	return IdentityFromKeypair(profile, kp), nil
}

// IdentityFromKeypair encodes kp and attaches profile; the resulting
// info id is always the encoded public key.
func IdentityFromKeypair(profile domain.Profile, kp Keypair) domain.Identity {
	return domain.NewIdentity(Encode(kp.Public), Encode(kp.Secret), profile)
}

// PublicKeyOf decodes the public key of id.
func PublicKeyOf(id domain.Identity) (ed25519.PublicKey, error) {
	raw, err := Decode(id.PublicKey)
	if err != nil {
		return nil, err
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: public key is %d bytes", domain.ErrMalformedKeyText, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}
