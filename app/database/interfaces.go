package database

import (
	"context"
)

type ItemRepository interface {
	// Insert stores a new item with a server-assigned id and timestamp.
	// Returns ErrDuplicateLink when the link is already stored.
	Insert(ctx context.Context, link, title string) (*Item, error)

	// ListRecent returns up to limit items, most recent first.
	ListRecent(ctx context.Context, limit int) ([]Item, error)

	GetItemCount(ctx context.Context) (int, error)
}
