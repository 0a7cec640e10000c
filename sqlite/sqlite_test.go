package sqlite

import (
	"path/filepath"
	"testing"

	"gotest.tools/assert"
)

var testSchema = []string{
	// version 1
	`
CREATE TABLE metadata (
  id integer primary key,
  schemaVersion integer
);

CREATE TABLE IF NOT EXISTS things (
  name text primary key,
  value text
);
	`,
	// version 2
	`
CREATE TABLE IF NOT EXISTS extras (
  name text primary key
);
	`,
}

func TestNewFromMemory(t *testing.T) {
	db, err := NewFromMemory(testSchema)
	assert.NilError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("INSERT INTO things (name, value) VALUES ('a', 'b')")
	assert.NilError(t, err)
	_, err = db.Exec("INSERT INTO extras (name) VALUES ('c')")
	assert.NilError(t, err)

	assert.Equal(t, 2, schemaVersion(db))
}

func TestReopenAppliesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := NewFromFile(path, testSchema)
	assert.NilError(t, err)
	_, err = db.Exec("INSERT INTO things (name, value) VALUES ('a', 'b')")
	assert.NilError(t, err)
	db.Close()

	// version 1 creates metadata unconditionally, so a re-run would fail
	db, err = NewFromFile(path, testSchema)
	assert.NilError(t, err)
	t.Cleanup(func() { db.Close() })

	var value string
	err = db.QueryRow("SELECT value FROM things WHERE name = 'a'").Scan(&value)
	assert.NilError(t, err)
	assert.Equal(t, "b", value)
}

func TestUpgradeFromOlderVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := NewFromFile(path, testSchema[:1])
	assert.NilError(t, err)
	assert.Equal(t, 1, schemaVersion(db))
	db.Close()

	db, err = NewFromFile(path, testSchema)
	assert.NilError(t, err)
	t.Cleanup(func() { db.Close() })

	assert.Equal(t, 2, schemaVersion(db))
	_, err = db.Exec("INSERT INTO extras (name) VALUES ('c')")
	assert.NilError(t, err)
}

func TestNewerDatabaseRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := NewFromFile(path, testSchema)
	assert.NilError(t, err)
	db.Close()

	_, err = NewFromFile(path, testSchema[:1])
	assert.ErrorContains(t, err, "schema version")
}
