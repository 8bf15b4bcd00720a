// package prefs provides the persisted key/value store for UI preference
// flags and the credential token.
//
// Every key has exactly one writer role and stores last write wins, so no
// transactions are needed beyond single-statement upserts.
package prefs

import (
	"database/sql"
	"fmt"
	"strconv"
	"sync"
)

// Well-known preference keys. Booleans are stored as the strings
// "true"/"false"; a missing key maps to the caller-supplied default.
const (
	KeyToken            = "token"
	KeyLogsExpanded     = "logsExpanded"
	KeyLogsAutoScroll   = "logsAutoScroll"
	KeyTimelineExpanded = "timelineExpanded"
)

// Store is the persistence capability handed to components that need
// reload-surviving flags. Writes are synchronous and immediately durable.
type Store interface {
	// Get returns the stored value for name and whether it was present.
	Get(name string) (string, bool)

	// Set stores value under name, replacing any previous value.
	Set(name, value string) error

	// Delete removes name from the store. Deleting a missing key is a no-op.
	Delete(name string) error
}

// Bool reads a boolean preference, falling back to def when the key is
// absent or not a recognizable boolean.
func Bool(s Store, name string, def bool) bool {
	raw, ok := s.Get(name)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

// SetBool stores a boolean preference as its string form.
func SetBool(s Store, name string, value bool) error {
	return s.Set(name, strconv.FormatBool(value))
}

// SQLiteStore implements [Store] on top of the prefs table created by the
// shared migration runner.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open database. The caller is responsible for
// running migrations before first use.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(name string) (string, bool) {
	var value string
	err := s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", name).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

func (s *SQLiteStore) Set(name, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO prefs (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP",
		name, value,
	)
	if err != nil {
		return fmt.Errorf("failed to store preference %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(name string) error {
	if _, err := s.db.Exec("DELETE FROM prefs WHERE key = ?", name); err != nil {
		return fmt.Errorf("failed to delete preference %s: %w", name, err)
	}
	return nil
}

// MemoryStore is an in-memory [Store] for tests and for running without a
// preference database.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[name]
	return v, ok
}

func (m *MemoryStore) Set(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = value
	return nil
}

func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, name)
	return nil
}
