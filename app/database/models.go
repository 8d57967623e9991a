package database

import (
	"time"
)

// Item represents a saved link in the database
type Item struct {
	ID          int64
	Link        string
	Title       string
	PublishedAt time.Time // Server-assigned at insertion time, always UTC
}
