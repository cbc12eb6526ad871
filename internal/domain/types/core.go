package types

// Slot names an entry in the identity store: DefaultSlot or a room id.
type Slot string

// DefaultSlot holds the process's persistent self-identity.
const DefaultSlot Slot = "_default"

// String returns the string form of the slot.
func (s Slot) String() string { return string(s) }

// IsDefault reports whether s is the default slot.
func (s Slot) IsDefault() bool { return s == DefaultSlot }

// RoomID identifies a room.
type RoomID string

// String returns the string form of the room id.
func (id RoomID) String() string { return string(id) }

// Slot returns the store slot holding the room's identity override.
// The empty room id maps to DefaultSlot.
func (id RoomID) Slot() Slot {
	if id == "" {
		return DefaultSlot
	}
	return Slot(id)
}

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }
