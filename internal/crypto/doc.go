// Package crypto exposes the key primitives behind peer identities.
//
// Contents
//
//   - Key text codec: unpadded base64url (Encode, Decode)
//   - Ed25519 keypairs from randomness, from a seed string, or from a
//     previously held secret key (GenerateEd25519, Ed25519FromSeed,
//     Ed25519FromSecretKey)
//   - Identity builders funnelling every keypair through
//     IdentityFromKeypair, which pins info.id to the public key
//   - Signed request tokens proving ownership of an identity (SignToken,
//     VerifyToken)
//   - Short public-key fingerprints for display (Fingerprint)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// Seed derivation hashes the UTF-8 seed with SHA-512 and uses the first 32
// bytes of the digest as the Ed25519 seed, so any party knowing the seed
// string derives the same keypair.
package crypto
