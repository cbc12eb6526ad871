package domain

import (
	interfaces "peerid/internal/domain/interfaces"
	types "peerid/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Slot           = types.Slot
	RoomID         = types.RoomID
	Fingerprint    = types.Fingerprint
	Profile        = types.Profile
	Info           = types.Info
	Identity       = types.Identity
	Current        = types.Current
	SecretMaterial = types.SecretMaterial
	Keys           = types.Keys
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityStore        = interfaces.IdentityStore
	IdentityBackend      = interfaces.IdentityBackend
	LegacyIdentitySource = interfaces.LegacyIdentitySource
	Announcer            = interfaces.Announcer
	IdentityService      = interfaces.IdentityService
)

// DefaultSlot holds the process's persistent self-identity.
const DefaultSlot = types.DefaultSlot

// NewIdentity builds an Identity whose info id equals publicKey.
func NewIdentity(publicKey, secretKey string, p Profile) Identity {
	return types.NewIdentity(publicKey, secretKey, p)
}

// NewAssertion builds the info record a remote peer claims for identity id.
func NewAssertion(id string, p Profile) Info {
	return types.NewAssertion(id, p)
}
