package types

import (
	"encoding/json"
	"maps"
)

// Reserved profile keys in the flattened info JSON.
const (
	infoKeyID          = "id"
	infoKeyDisplayName = "displayName"
	infoKeyEmail       = "email"
	infoKeyAvatar      = "avatar"
)

// Profile holds free-form, user-editable attributes of an identity.
type Profile struct {
	DisplayName string
	Email       string
	Avatar      string
	// Extra carries any attribute not covered by the named fields.
	Extra map[string]any
}

// Clone returns a deep-enough copy of p (Extra is copied one level).
func (p Profile) Clone() Profile {
	p.Extra = maps.Clone(p.Extra)
	return p
}

// Info is a Profile plus the identity id, which always equals the public key.
// The id is only ever set by NewIdentity, NewAssertion or JSON decoding.
type Info struct {
	Profile
	id string
}

// NewAssertion builds the info record a remote peer claims for identity id.
func NewAssertion(id string, p Profile) Info {
	return Info{Profile: p.Clone(), id: id}
}

// ID returns the identity id carried by the info.
func (i Info) ID() string { return i.id }

// MarshalJSON flattens the profile next to the id, mirroring the wire shape
// peers exchange: {"id": ..., "displayName": ..., ...extra}.
func (i Info) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(i.Extra)+4)
	for k, v := range i.Extra {
		m[k] = v
	}
	if i.DisplayName != "" {
		m[infoKeyDisplayName] = i.DisplayName
	}
	if i.Email != "" {
		m[infoKeyEmail] = i.Email
	}
	if i.Avatar != "" {
		m[infoKeyAvatar] = i.Avatar
	}
	m[infoKeyID] = i.id
	return json.Marshal(m)
}

// UnmarshalJSON mirrors MarshalJSON.
func (i *Info) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*i = Info{}
	i.id = takeString(m, infoKeyID)
	i.DisplayName = takeString(m, infoKeyDisplayName)
	i.Email = takeString(m, infoKeyEmail)
	i.Avatar = takeString(m, infoKeyAvatar)
	if len(m) > 0 {
		i.Extra = m
	}
	return nil
}

// takeString removes and returns m[key] when it is a string. Other values
// stay in m so they survive in Extra.
func takeString(m map[string]any, key string) string {
	s, ok := m[key].(string)
	if !ok {
		return ""
	}
	delete(m, key)
	return s
}

// Identity is a signing identity: text-encoded keys plus profile info.
//
// SecretKey is empty for identities known only by assertion from a peer.
type Identity struct {
	PublicKey string `json:"publicKey"`
	SecretKey string `json:"secretKey,omitempty"`
	Info      Info   `json:"info"`
}

// NewIdentity is the only constructor of Identity values; it pins
// Info.ID() to publicKey.
func NewIdentity(publicKey, secretKey string, p Profile) Identity {
	return Identity{
		PublicKey: publicKey,
		SecretKey: secretKey,
		Info:      Info{Profile: p.Clone(), id: publicKey},
	}
}

// Owned reports whether the secret key is known, i.e. this process can sign.
func (id Identity) Owned() bool { return id.SecretKey != "" }

// IsZero reports whether id is the zero Identity.
func (id Identity) IsZero() bool { return id.PublicKey == "" }

// Profile returns a copy of the identity's profile attributes.
func (id Identity) Profile() Profile { return id.Info.Profile.Clone() }

// WithProfile returns a copy of id carrying profile p; keys and id are kept.
func (id Identity) WithProfile(p Profile) Identity {
	return NewIdentity(id.PublicKey, id.SecretKey, p)
}

// Current is the active identity of the caller in a room.
type Current struct {
	MyID       string
	MyIdentity Identity
}

// SecretMaterial is locally known secret material for one identity id.
// Either field may be empty.
type SecretMaterial struct {
	Seed      string `json:"seed,omitempty"`
	SecretKey string `json:"secretKey,omitempty"`
}

// Keys maps identity ids to the secret material known for them.
type Keys map[string]SecretMaterial
