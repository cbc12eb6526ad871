// Package relay provides the HTTP implementation of domain.Announcer.
//
// Announcing registers an identity's public key and profile info with the
// registry backend: PUT /identities/{publicKey} with the info as JSON,
// falling back to POST when the registry does not know the key yet. Every
// request carries "Authorization: Token <t>", an ed25519 signature over the
// method, path, body digest and a timestamp proving the caller holds the
// identity's secret key, and an X-Request-Id.
//
// Non-2xx statuses are returned as errors with the HTTP method, path and
// status text to aid diagnostics.
package relay
