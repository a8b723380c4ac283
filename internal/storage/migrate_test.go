package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestOpenSQLiteMigratesOnOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "open-migrate.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	// The kv table must exist without a separate migration step.
	if err := store.Set(Key("u1", DatasetTasks), []byte(`[]`)); err != nil {
		t.Fatalf("set on freshly opened store: %v", err)
	}
	got, err := store.Get(Key("u1", DatasetTasks))
	if err != nil {
		t.Fatalf("get on freshly opened store: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("value = %q", got)
	}
}

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := store.Set(Key("u1", DatasetWaterLog), []byte(`{"today":250}`)); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}
	got, err := store.Get(Key("u1", DatasetWaterLog))
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if string(got) != `{"today":250}` {
		t.Fatalf("unexpected value after roundtrip: %q", got)
	}
}
