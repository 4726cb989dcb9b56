package feed

import (
	"context"

	"forkful/internal/core/feed"
)

// Index is the per-user feed index. All operations for one user are
// serialized by the implementation; operations on different users run
// independently.
type Index interface {
	// Add inserts one entry in order. Re-adding a present event ID is
	// a no-op.
	Add(ctx context.Context, userID string, e feed.Entry) error
	// AddBatch inserts many entries with the same contract as Add.
	AddBatch(ctx context.Context, userID string, entries []feed.Entry) error
	// Remove drops the given event IDs; absent IDs are ignored.
	Remove(ctx context.Context, userID string, activityEventIDs []int64) error
	// Page returns up to limit entries after cursor (nil means from
	// the top) and the cursor for the next page, nil when exhausted.
	Page(ctx context.Context, userID string, cursor *feed.Cursor, limit int) ([]feed.Entry, *feed.Cursor, error)
}

// Store is the durable backing of a user's feed log.
type Store interface {
	Load(ctx context.Context, userID string) ([]feed.Entry, error)
	Append(ctx context.Context, userID string, entries []feed.Entry) error
	Remove(ctx context.Context, userID string, activityEventIDs []int64) error
	// Trim keeps only the max newest entries.
	Trim(ctx context.Context, userID string, max int) error
}

// Page is the facade's response shape.
type Page struct {
	Items      []feed.Item `json:"items"`
	NextCursor *string     `json:"nextCursor"`
}
