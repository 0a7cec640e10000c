// Package sqlite opens database handles and applies versioned schema
// statements. Each element of a schema slice is one version upgrade; the
// metadata table records how many have been applied, so reopening a
// database runs only the statements it has not seen.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewFromFile opens the database at path, creating it if necessary, and
// brings its schema up to date.
func NewFromFile(path string, schema []string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := applySchema(db, schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewFromMemory opens a fresh in-memory database, for tests. The handle is
// pinned to one connection; every new sqlite connection to :memory: would
// otherwise see its own empty database.
func NewFromMemory(schema []string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := applySchema(db, schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func applySchema(db *sql.DB, schema []string) error {
	version := schemaVersion(db)
	if version > len(schema) {
		return fmt.Errorf("database schema version %d is newer than this binary understands", version)
	}

	for i := version; i < len(schema); i++ {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(schema[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply schema version %d: %w", i+1, err)
		}
		if _, err := tx.Exec("INSERT OR REPLACE INTO metadata (id, schemaVersion) VALUES (1, ?)", i+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record schema version %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// A missing metadata table means a fresh database.
func schemaVersion(db *sql.DB) int {
	var version int
	err := db.QueryRow("SELECT schemaVersion FROM metadata WHERE id = 1").Scan(&version)
	if err != nil {
		return 0
	}
	return version
}
