// Package identity resolves, updates and imports the caller's signing identities.
//
// A Service answers "who am I in room R" from the identity store: the room's
// own slot when present, the default slot otherwise. It announces every owned
// identity to the backend the first time it becomes observable (the default
// identity when the Service is built, a room identity the first time it is
// resolved) and never blocks on that announcement.
//
// ImportRoomIdentity adopts identities asserted by peers. When the caller
// already knows the identity's seed or secret key the identity is rebuilt as
// an owned one; otherwise it is stored read-only.
package identity
