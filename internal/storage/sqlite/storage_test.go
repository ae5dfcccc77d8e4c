// ABOUTME: Tests for user and diagnosis persistence
// ABOUTME: Runs against in-memory SQLite databases
package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/carelens/reportqa/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_CreatesFileAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reportqa.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
	// Schema must be queryable immediately.
	if _, err := db.Conn().Exec(`SELECT COUNT(*) FROM users`); err != nil {
		t.Errorf("users table missing: %v", err)
	}
	if _, err := db.Conn().Exec(`SELECT COUNT(*) FROM diagnoses`); err != nil {
		t.Errorf("diagnoses table missing: %v", err)
	}
}

func TestUserStore_CreateAndGet(t *testing.T) {
	store := NewUserStore(testDB(t))
	ctx := context.Background()

	user := models.User{
		Username:     "alice",
		PasswordHash: "$2a$10$fakehash",
		Role:         models.RolePatient,
	}
	if err := store.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByUsername() = nil, want user")
	}
	if got.Username != "alice" || got.Role != models.RolePatient {
		t.Errorf("got user = %+v", got)
	}
	if got.PasswordHash != user.PasswordHash {
		t.Errorf("password hash not round-tripped")
	}
}

func TestUserStore_DuplicateUsername(t *testing.T) {
	store := NewUserStore(testDB(t))
	ctx := context.Background()

	user := models.User{Username: "bob", PasswordHash: "h", Role: models.RoleDoctor}
	if err := store.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Create(ctx, user); !errors.Is(err, ErrUserExists) {
		t.Errorf("second Create() error = %v, want ErrUserExists", err)
	}
}

func TestUserStore_MissingUserIsNil(t *testing.T) {
	store := NewUserStore(testDB(t))

	got, err := store.GetByUsername(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetByUsername() = %+v, want nil", got)
	}
}

func TestUserStore_InvalidRole(t *testing.T) {
	store := NewUserStore(testDB(t))

	err := store.Create(context.Background(), models.User{
		Username:     "eve",
		PasswordHash: "h",
		Role:         models.Role("admin"),
	})
	if err == nil {
		t.Error("Create() with unknown role should fail")
	}
}

func TestDiagnosisStore_SaveAndListNewestFirst(t *testing.T) {
	store := NewDiagnosisStore(testDB(t))
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	questions := []string{"first", "second", "third"}
	for i, q := range questions {
		rec := models.DiagnosisRecord{
			Username:   "alice",
			Question:   q,
			Answer:     "answer " + q,
			DocumentID: "doc-1",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("Save(%q) error = %v", q, err)
		}
	}

	records, err := store.ListByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByUsername() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	wantOrder := []string{"third", "second", "first"}
	for i, want := range wantOrder {
		if records[i].Question != want {
			t.Errorf("record %d: question = %q, want %q", i, records[i].Question, want)
		}
	}
}

func TestDiagnosisStore_ListScopedToUsername(t *testing.T) {
	store := NewDiagnosisStore(testDB(t))
	ctx := context.Background()

	now := time.Now().UTC()
	for _, username := range []string{"alice", "bob"} {
		rec := models.DiagnosisRecord{
			Username:   username,
			Question:   "q",
			Answer:     "a",
			DocumentID: "doc-1",
			CreatedAt:  now,
		}
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	records, err := store.ListByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByUsername() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Username != "alice" {
		t.Errorf("record username = %q", records[0].Username)
	}
}

func TestDiagnosisStore_EmptyHistory(t *testing.T) {
	store := NewDiagnosisStore(testDB(t))

	records, err := store.ListByUsername(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListByUsername() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}
