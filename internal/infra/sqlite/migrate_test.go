package sqlite

import (
	"database/sql"
	"testing"
	"testing/fstest"
)

func mustNewDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(MemoryPath)
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck
	return db
}

func TestMigrateUp_CreatesPeticionsTable(t *testing.T) {
	t.Parallel()
	db := mustNewDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}

	cols := map[string]bool{}
	rows, err := db.Query("PRAGMA table_info(peticions)")
	if err != nil {
		t.Fatalf("table_info: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols[name] = true
	}
	for _, want := range []string{"id", "model", "prompt", "image_count", "outcome", "error", "duration_ms", "created_at"} {
		if !cols[want] {
			t.Errorf("missing column %q", want)
		}
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	t.Parallel()
	db := mustNewDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first MigrateUp() error = %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second MigrateUp() error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 recorded migration, got %d", count)
	}
}

func TestMigrationVersion_FreshAndMigrated(t *testing.T) {
	t.Parallel()
	db := mustNewDB(t)

	v, err := MigrationVersion(db)
	if err != nil {
		t.Fatalf("MigrationVersion() error = %v", err)
	}
	if v != 0 {
		t.Errorf("expected version 0 on fresh db, got %d", v)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatal(err)
	}
	v, err = MigrationVersion(db)
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Errorf("expected version 1 after MigrateUp, got %d", v)
	}
}

func TestLoadMigrationFiles_SortsByVersion(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"migrations/010_later.up.sql":  {Data: []byte("SELECT 10;")},
		"migrations/002_second.up.sql": {Data: []byte("SELECT 2;")},
		"migrations/001_first.up.sql":  {Data: []byte("SELECT 1;")},
		"migrations/README.md":         {Data: []byte("ignored")},
	}

	files, err := loadMigrationFiles(fsys)
	if err != nil {
		t.Fatalf("loadMigrationFiles() error = %v", err)
	}
	want := []int{1, 2, 10}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %d", len(want), len(files))
	}
	for i, v := range want {
		if files[i].version != v {
			t.Errorf("files[%d].version = %d; want %d", i, files[i].version, v)
		}
	}
}

func TestLoadMigrationFiles_RejectsMissingPrefix(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"migrations/init.up.sql": {Data: []byte("SELECT 1;")},
	}
	if _, err := loadMigrationFiles(fsys); err == nil {
		t.Error("expected error for file without version prefix")
	}
}

func TestVersionFromFilename(t *testing.T) {
	t.Parallel()
	cases := map[string]int{
		"001_peticions.up.sql": 1,
		"042_x.up.sql":         42,
		"peticions.up.sql":     0,
	}
	for name, want := range cases {
		if got := versionFromFilename(name); got != want {
			t.Errorf("versionFromFilename(%q) = %d; want %d", name, got, want)
		}
	}
}
