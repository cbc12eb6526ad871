package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"peerid/internal/domain"
)

const identitiesDB = "identities.db"

// SQLiteBackend persists identity slots in a SQLite database.
type SQLiteBackend struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteBackend creates or opens identities.db under dir.
func NewSQLiteBackend(dir string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, identitiesDB)

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	b := &SQLiteBackend{db: db}
	if err := b.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to restrict database permissions: %w", err)
	}
	return b, nil
}

func (b *SQLiteBackend) initSchema() error {
	const query = `
	CREATE TABLE IF NOT EXISTS identities (
		slot TEXT PRIMARY KEY,
		public_key TEXT NOT NULL,
		secret_key TEXT NOT NULL DEFAULT '',
		info TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`
	_, err := b.db.Exec(query)
	return err
}

// Load reads every slot.
func (b *SQLiteBackend) Load() (map[domain.Slot]domain.Identity, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows, err := b.db.Query(`SELECT slot, public_key, secret_key, info FROM identities`)
	if err != nil {
		return nil, fmt.Errorf("failed to query identities: %w", err)
	}
	defer rows.Close()

	slots := make(map[domain.Slot]domain.Identity)
	for rows.Next() {
		var (
			slot     string
			id       domain.Identity
			infoJSON string
		)
		if err := rows.Scan(&slot, &id.PublicKey, &id.SecretKey, &infoJSON); err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		if err := json.Unmarshal([]byte(infoJSON), &id.Info); err != nil {
			return nil, fmt.Errorf("failed to decode info of slot %q: %w", slot, err)
		}
		slots[domain.Slot(slot)] = id
	}
	return slots, rows.Err()
}

// Save replaces the stored slots in one transaction.
func (b *SQLiteBackend) Save(slots map[domain.Slot]domain.Identity) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM identities`); err != nil {
		return fmt.Errorf("failed to clear identities: %w", err)
	}

	stmt, err := tx.Prepare(`
	INSERT INTO identities (slot, public_key, secret_key, info, updated_at)
	VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for slot, id := range slots {
		info, err := json.Marshal(id.Info)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(slot.String(), id.PublicKey, id.SecretKey, string(info), now); err != nil {
			return fmt.Errorf("failed to save slot %q: %w", slot, err)
		}
	}
	return tx.Commit()
}

// Close releases the database handle.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

var _ domain.IdentityBackend = (*SQLiteBackend)(nil)
