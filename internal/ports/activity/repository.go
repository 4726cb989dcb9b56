package activity

import (
	"context"

	"forkful/internal/core/activity"
)

// ActivityRepository is the outbound port for the event store. Reads
// used by hydration are batched by ID list; per-actor reads serve
// backfill and cleanup.
type ActivityRepository interface {
	Create(ctx context.Context, ev *activity.Event) (*activity.Event, error)
	FindByID(ctx context.Context, id int64) (*activity.Event, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*activity.Event, error)
	ListRecentByActor(ctx context.Context, actorID string, limit int) ([]*activity.Event, error)
	// ListIDsByActor returns every event ID the actor ever produced,
	// not time-bounded.
	ListIDsByActor(ctx context.Context, actorID string) ([]int64, error)
	IncrementLikeCount(ctx context.Context, id int64, delta int) error
}

// LikeRepository stores per-viewer likes on activity events.
type LikeRepository interface {
	// Create inserts the like and reports whether it was new.
	Create(ctx context.Context, like *activity.Like) (bool, error)
	// Delete removes the like and reports whether it existed.
	Delete(ctx context.Context, activityEventID int64, userID string) (bool, error)
	// LikedSet returns which of the given event IDs the viewer liked,
	// resolved in one query.
	LikedSet(ctx context.Context, userID string, activityEventIDs []int64) (map[int64]bool, error)
}
