package interfaces

import domaintypes "peerid/internal/domain/types"

// IdentityStore is the reactive slot -> identity mapping.
//
// Writes replace a slot wholesale and notify that slot's subscribers
// synchronously once the write is committed. Slots are never deleted.
type IdentityStore interface {
	Get(slot domaintypes.Slot) (domaintypes.Identity, bool)
	Set(slot domaintypes.Slot, id domaintypes.Identity) error
	// Update applies fn to the current value of slot as one atomic step.
	Update(
		slot domaintypes.Slot,
		fn func(prev domaintypes.Identity, ok bool) domaintypes.Identity,
	) error
	// SetIfAbsent stores id only when slot is empty and reports whether it did.
	SetIfAbsent(slot domaintypes.Slot, id domaintypes.Identity) (bool, error)
	Subscribe(slot domaintypes.Slot, fn func(domaintypes.Identity)) (unsubscribe func())
	Slots() []domaintypes.Slot
}

// IdentityBackend is the durable storage behind an IdentityStore.
type IdentityBackend interface {
	Load() (map[domaintypes.Slot]domaintypes.Identity, error)
	Save(slots map[domaintypes.Slot]domaintypes.Identity) error
}

// LegacyIdentitySource yields an identity kept in an older on-disk format.
type LegacyIdentitySource interface {
	ImportLegacyIdentity() (domaintypes.Identity, bool)
}
