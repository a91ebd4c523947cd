package store

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestCreateAndFind(t *testing.T) {
	repo := NewURLRepository(openTestDB(t))

	src, err := repo.Create("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(src.ID) != 16 {
		t.Errorf("ID = %q, want 16-character identifier", src.ID)
	}
	if src.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	found, err := repo.FindByID(src.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found == nil {
		t.Fatal("FindByID() = nil for existing identifier")
	}
	if found.SourceURL != src.SourceURL {
		t.Errorf("SourceURL = %q, want %q", found.SourceURL, src.SourceURL)
	}
}

func TestFindUnknownID(t *testing.T) {
	repo := NewURLRepository(openTestDB(t))

	found, err := repo.FindByID("nope")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found != nil {
		t.Errorf("FindByID() = %+v, want nil", found)
	}
}

func TestList(t *testing.T) {
	repo := NewURLRepository(openTestDB(t))

	urls := []string{
		"https://www.youtube.com/watch?v=aaaaaaaaaaa",
		"https://www.youtube.com/watch?v=bbbbbbbbbbb",
	}
	for _, u := range urls {
		if _, err := repo.Create(u); err != nil {
			t.Fatalf("Create(%q) error = %v", u, err)
		}
	}

	sources, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sources) != len(urls) {
		t.Errorf("List() returned %d sources, want %d", len(sources), len(urls))
	}
}

func TestIdentifiersAreUnique(t *testing.T) {
	repo := NewURLRepository(openTestDB(t))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		src, err := repo.Create("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if seen[src.ID] {
			t.Fatalf("duplicate identifier %q", src.ID)
		}
		seen[src.ID] = true
	}
}
