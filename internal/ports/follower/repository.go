package follower

import (
	"context"

	"forkful/internal/core/follower"
)

// FollowerRepository is the outbound port for the follower graph.
type FollowerRepository interface {
	FollowUser(ctx context.Context, f *follower.Follower) (*follower.Follower, error)
	UnfollowUser(ctx context.Context, followerID, followeeID string) error
	// GetFollowerIDs returns the IDs of users following userID.
	GetFollowerIDs(ctx context.Context, userID string) ([]string, error)
	// GetFollowingIDs returns the IDs of users that followerID follows.
	GetFollowingIDs(ctx context.Context, followerID string) ([]string, error)
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}
