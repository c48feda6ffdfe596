package sqlite

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/myrjola/fitquest/internal/testhelpers"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := connect(t.Context(), ":memory:", logger)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		if err = db.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return db
}

func TestNewDatabase_schema(t *testing.T) {
	t.Parallel()
	db := newTestDatabase(t)
	ctx := t.Context()
	if err := db.migrateTo(ctx, schemaDefinition); err != nil {
		t.Fatalf("migrateTo: %v", err)
	}

	for _, table := range []string{"save_states", "sessions"} {
		var name string
		err := db.ReadOnly.QueryRowContext(ctx,
			"SELECT name FROM sqlite_schema WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	// Migrating to the same schema again is a no-op.
	if err := db.migrateTo(ctx, schemaDefinition); err != nil {
		t.Fatalf("second migrateTo: %v", err)
	}
}

func TestDatabase_migratePreservesData(t *testing.T) {
	t.Parallel()
	db := newTestDatabase(t)
	ctx := t.Context()

	if err := db.migrateTo(ctx, "CREATE TABLE test (id INTEGER PRIMARY KEY, name TEXT)"); err != nil {
		t.Fatalf("migrateTo: %v", err)
	}
	if _, err := db.ReadWrite.ExecContext(ctx, "INSERT INTO test (name) VALUES ('kept')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.migrateTo(ctx, "CREATE TABLE test (id INTEGER PRIMARY KEY, name TEXT, extra TEXT)"); err != nil {
		t.Fatalf("migrateTo with new column: %v", err)
	}

	var (
		name  string
		extra sql.NullString
	)
	if err := db.ReadOnly.QueryRowContext(ctx, "SELECT name, extra FROM test").Scan(&name, &extra); err != nil {
		t.Fatalf("select: %v", err)
	}
	if name != "kept" || extra.Valid {
		t.Errorf("got name %q extra %v, want kept and NULL", name, extra)
	}
}

func TestDatabase_Snapshot(t *testing.T) {
	t.Parallel()
	db := newTestDatabase(t)
	ctx := t.Context()
	if err := db.migrateTo(ctx, schemaDefinition); err != nil {
		t.Fatalf("migrateTo: %v", err)
	}
	if _, err := db.ReadWrite.ExecContext(ctx,
		"INSERT INTO save_states (key, version, document) VALUES ('k', 5, '{}')"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.sqlite3")
	if err := db.Snapshot(ctx, path); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	copied, err := connect(ctx, path, logger)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	t.Cleanup(func() { _ = copied.Close() })
	var count int
	if err = copied.ReadOnly.QueryRowContext(ctx, "SELECT COUNT(*) FROM save_states").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("snapshot has %d save states, want 1", count)
	}

	if err = db.Snapshot(ctx, path); !errors.Is(err, ErrSnapshotExists) {
		t.Errorf("second Snapshot = %v, want ErrSnapshotExists", err)
	}
}
