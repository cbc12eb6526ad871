// Package store holds the identity store and its persistence backends.
//
// Identities is the reactive slot -> identity mapping the rest of the
// application observes. Slot "_default" always exists once Open returns; room
// slots appear when a room identity is created or imported and are never
// deleted, only overwritten.
//
// Backends:
//   - FileBackend: one JSON document on disk, optionally sealed with a
//     passphrase (scrypt + ChaCha20-Poly1305), written via temp file + rename
//   - SQLiteBackend: one row per slot in identities.db
//   - MemoryBackend: process-lifetime only, for tests and throwaway sessions
//
// All methods are concurrency-safe via internal locking.
package store
