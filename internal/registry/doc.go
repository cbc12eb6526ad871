/*
Package registry is the reference identity registry the announcer talks to.

It keeps one entry per public key in memory and exposes:

	GET  /health
	GET  /identities/{publicKey}
	PUT  /identities/{publicKey}   update an existing entry (404 when unknown)
	POST /identities/{publicKey}   create an entry (409 when it exists)

Writes must carry "Authorization: Token <t>" signed by the key in the route,
are rate limited per client IP and answered with the {code, message, data}
JSON envelope.
*/
package registry
