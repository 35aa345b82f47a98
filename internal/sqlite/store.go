package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/iavl/crossbell/pkg/types"
)

// Store is the persistence layer behind the ledger engine. It owns the
// SQLite handle and the JSONL mirrors in DataDir. The engine serializes
// operations; the store's own lock only guards the attach/detach lifecycle.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewStore creates an unattached store; call Attach with a Config to
// initialize it.
func NewStore() *Store {
	return &Store{}
}

// Attach opens a fresh SQLite database in DataDir, applies the schema, and
// loads any existing JSONL mirrors into it. Creates DataDir if it does not
// exist. Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	config.DataDir = dataDir

	// The database file is disposable; JSONL mirrors are the source of
	// truth and are reloaded on every attach.
	dbPath := filepath.Join(dataDir, "ledger.db")
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying indexes: %w", err)
		}
	}

	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("loading JSONL state: %w", err)
	}

	s.db = db
	s.config = config
	s.attached = true
	return nil
}

// Detach closes the database. Idempotent: detaching an unattached store
// succeeds.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	s.attached = false

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	s.db = nil
	return nil
}

// Attached reports whether the store is attached.
func (s *Store) Attached() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attached
}

// Begin starts a write transaction. Returns ErrDetached when the store is
// not attached.
func (s *Store) Begin() (*sql.Tx, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, types.ErrDetached
	}
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return tx, nil
}

// Persist rewrites the JSONL mirror of each named table. Called by the
// engine after a commit; mirrors rewritten here are what the next Attach
// reloads.
func (s *Store) Persist(tables ...string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return types.ErrDetached
	}
	for _, table := range tables {
		if err := persistTableJSONL(s.db, s.config.DataDir, table); err != nil {
			return err
		}
	}
	return nil
}

// nextCounter increments and returns the named global sequence. Sequences
// start at 1 and never repeat a value.
func nextCounter(tx *sql.Tx, name string) (uint64, error) {
	var value uint64
	err := tx.QueryRow("SELECT value FROM counters WHERE name = ?", name).Scan(&value)
	switch {
	case err == sql.ErrNoRows:
		value = 1
		if _, err := tx.Exec("INSERT INTO counters (name, value) VALUES (?, ?)", name, value); err != nil {
			return 0, fmt.Errorf("initializing counter %s: %w", name, err)
		}
	case err != nil:
		return 0, fmt.Errorf("reading counter %s: %w", name, err)
	default:
		value++
		if _, err := tx.Exec("UPDATE counters SET value = ? WHERE name = ?", value, name); err != nil {
			return 0, fmt.Errorf("advancing counter %s: %w", name, err)
		}
	}
	return value, nil
}

// Counter sequence names.
const (
	counterProfileID = "profile_id"
	counterLinklist  = "linklist_id"
	counterEventSeq  = "event_seq"
)
