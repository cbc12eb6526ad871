// Package app wires application dependencies for the CLI.
//
// It builds the identity store over the configured backend, the registry
// client and the identity service from Config, exposing them via App for
// commands to use.
package app
