package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteMechanism is the durable "sqlite" backend. State survives process
// restarts, which makes it suitable for handlers whose cursor must not reset
// on deploys.
type sqliteMechanism struct {
	db *sql.DB
}

// newSQLiteMechanism creates the "sqlite" backend. Recognized options:
//
//	dsn  sqlite data source name, required (a file path, or ":memory:")
func newSQLiteMechanism(opts map[string]string) (Mechanism, error) {
	dsn := opts["dsn"]
	if dsn == "" {
		return nil, fmt.Errorf("sqlite mechanism: dsn option is required")
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite mechanism: %w", err)
	}
	// SQLite supports a single writer, more connections just produce
	// SQLITE_BUSY errors.
	db.SetMaxOpenConns(1)

	const schema = `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite mechanism: %w", err)
	}
	return &sqliteMechanism{db: db}, nil
}

func (m *sqliteMechanism) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := m.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (m *sqliteMechanism) Set(key string, value []byte) error {
	_, err := m.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

func (m *sqliteMechanism) Delete(key string) error {
	_, err := m.db.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}
