package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicateLink is returned by Insert when the link is already stored.
// The uniqueness check lives in the database constraint, so concurrent
// submissions of the same link are serialized with exactly one winner.
var ErrDuplicateLink = errors.New("link already stored")

// SQLiteItemRepository handles database operations for saved items
type SQLiteItemRepository struct {
	db *DB

	// now is replaceable in tests to control assigned timestamps
	now func() time.Time
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *DB) *SQLiteItemRepository {
	return &SQLiteItemRepository{db: db, now: time.Now}
}

var _ ItemRepository = (*SQLiteItemRepository)(nil)

// Insert stores a new item. The publish timestamp is server-assigned in UTC,
// truncated to seconds to match the RFC 1123 rendering granularity; ordering
// ties within a second fall back to the monotonically increasing id.
func (r *SQLiteItemRepository) Insert(ctx context.Context, link, title string) (*Item, error) {
	publishedAt := r.now().UTC().Truncate(time.Second)

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO items (link, title, published_at)
		VALUES (?, ?, ?)
	`, link, title, publishedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateLink
		}
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted item id: %w", err)
	}

	return &Item{
		ID:          id,
		Link:        link,
		Title:       title,
		PublishedAt: publishedAt,
	}, nil
}

// ListRecent returns up to limit items ordered by publish timestamp
// descending, ties broken by id descending for a total order.
func (r *SQLiteItemRepository) ListRecent(ctx context.Context, limit int) ([]Item, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, link, title, published_at
		FROM items
		ORDER BY published_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Link, &item.Title, &item.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		item.PublishedAt = item.PublishedAt.UTC()
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}

// GetItemCount returns the total number of stored items
func (r *SQLiteItemRepository) GetItemCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get item count: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}
