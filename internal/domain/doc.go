// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (identities, slots, secret material) and contracts
// (stores, backends, announcer, services) only.
package domain
