// Package commands defines the peerid CLI and wires dependencies for subcommands.
//
// Commands
//
//   - whoami        Show the identity in use globally or in a room
//   - rooms         List every stored identity slot
//   - room new      Create a room with a fresh identity
//   - import        Adopt the identity a peer asserted for a room
//   - profile set   Change the display name or email of the current identity
//   - derive        Print the identity a seed string derives to
//   - fingerprint   Print the fingerprint of the current identity
//   - fetch         Look up an identity on the registry
//
// # Implementation
//
// The root command loads PEERID_* settings, lets persistent flags override
// them and builds the app before any subcommand runs. Announcements started
// by a command are flushed before the process exits.
package commands
