package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"peerid/internal/domain"
	"peerid/internal/relay"
	"peerid/internal/services/identity"
	"peerid/internal/store"
)

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg *Config) (*App, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	a := &App{}
	backend, err := newBackend(cfg, a)
	if err != nil {
		return nil, err
	}

	ids, err := store.Open(backend, identity.NewLegacyFile(cfg.LegacyPath()))
	if err != nil {
		_ = a.closeAll()
		return nil, err
	}
	a.Store = ids

	// A nil announcer must stay an untyped nil so the service can detect it.
	var announcer domain.Announcer
	if cfg.RegistryURL != "" {
		httpClient := cfg.HTTP
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.AnnounceTimeout}
		}
		a.Registry = relay.NewHTTP(cfg.RegistryURL, httpClient)
		announcer = a.Registry
	}

	a.IDs = identity.New(ids, announcer, identity.WithAnnounceTimeout(cfg.AnnounceTimeout))
	return a, nil
}

func newBackend(cfg *Config, a *App) (domain.IdentityBackend, error) {
	switch cfg.Backend {
	case BackendMemory:
		return store.NewMemoryBackend(), nil
	case BackendSQLite:
		b, err := store.NewSQLiteBackend(cfg.Home)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		a.closers = append(a.closers, b.Close)
		return b, nil
	default:
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, err
		}
		if cfg.Passphrase != "" {
			return store.NewSealedFileBackend(cfg.Home, cfg.Passphrase), nil
		}
		return store.NewFileBackend(cfg.Home), nil
	}
}

func (a *App) closeAll() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
