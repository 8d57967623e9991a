package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupTestRepo(t *testing.T) *SQLiteItemRepository {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return NewItemRepository(db)
}

func TestInsertAndListRecent(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	item, err := repo.Insert(ctx, "https://example.com/a", "A")
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if item.ID == 0 {
		t.Error("Expected server-assigned id")
	}
	if item.PublishedAt.IsZero() {
		t.Error("Expected server-assigned publish timestamp")
	}
	if item.PublishedAt.Location() != time.UTC {
		t.Errorf("Expected UTC timestamp, got %v", item.PublishedAt.Location())
	}

	items, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].Link != "https://example.com/a" {
		t.Errorf("Link not preserved: %s", items[0].Link)
	}
	if items[0].Title != "A" {
		t.Errorf("Title not preserved: %s", items[0].Title)
	}
	if !items[0].PublishedAt.Equal(item.PublishedAt) {
		t.Errorf("Timestamp changed on round-trip: stored %v, read %v", item.PublishedAt, items[0].PublishedAt)
	}
}

func TestInsertDuplicateLink(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, "https://example.com/a", "A"); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	_, err := repo.Insert(ctx, "https://example.com/a", "A2")
	if !errors.Is(err, ErrDuplicateLink) {
		t.Fatalf("Expected ErrDuplicateLink, got %v", err)
	}

	// The original row must remain untouched: same title, one row total
	items, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item after duplicate insert, got %d", len(items))
	}
	if items[0].Title != "A" {
		t.Errorf("Duplicate insert must not update title, got '%s'", items[0].Title)
	}
}

func TestListRecentOrderAndLimit(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		offset := time.Duration(i) * time.Minute
		repo.now = func() time.Time { return base.Add(offset) }
		if _, err := repo.Insert(ctx, "https://example.com/"+string(rune('a'+i)), "Item"); err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
	}

	items, err := repo.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("Expected limit of 3 to be respected, got %d items", len(items))
	}

	for i := 1; i < len(items); i++ {
		if items[i].PublishedAt.After(items[i-1].PublishedAt) {
			t.Errorf("Items not ordered by publish timestamp descending: %v before %v",
				items[i-1].PublishedAt, items[i].PublishedAt)
		}
	}

	if items[0].Link != "https://example.com/e" {
		t.Errorf("Expected most recent item first, got %s", items[0].Link)
	}
}

func TestListRecentTieBreaksByID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	first, err := repo.Insert(ctx, "https://example.com/first", "First")
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	second, err := repo.Insert(ctx, "https://example.com/second", "Second")
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if !first.PublishedAt.Equal(second.PublishedAt) {
		t.Fatalf("Test requires identical timestamps, got %v and %v", first.PublishedAt, second.PublishedAt)
	}

	items, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Errorf("Timestamp ties must break by id descending, got order %d, %d", items[0].ID, items[1].ID)
	}
}

func TestListRecentRejectsNonPositiveLimit(t *testing.T) {
	repo := setupTestRepo(t)

	if _, err := repo.ListRecent(context.Background(), 0); err == nil {
		t.Error("Expected error for non-positive limit")
	}
}

func TestGetItemCount(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	count, err := repo.GetItemCount(ctx)
	if err != nil {
		t.Fatalf("GetItemCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 items in fresh database, got %d", count)
	}

	if _, err := repo.Insert(ctx, "https://example.com/a", "A"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := repo.Insert(ctx, "https://example.com/b", "B"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	count, err = repo.GetItemCount(ctx)
	if err != nil {
		t.Fatalf("GetItemCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 items, got %d", count)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db, err := NewConnection(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	version, dirty, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("First migration run failed: %v", err)
	}
	if dirty {
		t.Error("Database should not be dirty after migrations")
	}

	again, _, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
	if again != version {
		t.Errorf("Version changed on re-run: %d -> %d", version, again)
	}
}
