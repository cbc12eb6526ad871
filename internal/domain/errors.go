package domain

import "errors"

var (
	// ErrMalformedKeyText is returned when key text is not valid encoded key material.
	ErrMalformedKeyText = errors.New("malformed key text")

	// ErrInvalidSecretKey is returned when secret key bytes do not form a valid keypair.
	ErrInvalidSecretKey = errors.New("invalid secret key")

	// ErrStoreUnavailable is returned when the identity backend cannot be read or written.
	ErrStoreUnavailable = errors.New("identity store unavailable")

	// ErrZeroIdentity is returned when a write would store an identity without a public key.
	ErrZeroIdentity = errors.New("identity has no public key")

	// ErrReadOnlyIdentity is returned when signing with an identity that has no secret key.
	ErrReadOnlyIdentity = errors.New("identity has no secret key")
)
