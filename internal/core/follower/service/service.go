package followerapp

import (
	"context"
	"errors"

	"github.com/gofrs/uuid"

	feedapp "forkful/internal/core/feed/service"
	followerEntity "forkful/internal/core/follower"
	followerPort "forkful/internal/ports/follower"
	tasksPort "forkful/internal/ports/tasks"
)

type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	Propagator         *feedapp.Propagator
	Tasks              tasksPort.Submitter
}

func NewFollowerService(
	repo followerPort.FollowerRepository,
	propagator *feedapp.Propagator,
	tasks tasksPort.Submitter,
) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		Propagator:         propagator,
		Tasks:              tasks,
	}
}

// FollowUser records the edge and kicks off a backfill of the followed
// user's recent activity. The backfill runs in the background; the
// follow succeeds regardless of its outcome.
func (s *FollowerService) FollowUser(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return errors.New("cannot follow yourself")
	}

	f := &followerEntity.Follower{
		ID:         uuid.Must(uuid.NewV4()),
		UserID:     uuid.FromStringOrNil(followeeID),
		FollowerID: uuid.FromStringOrNil(followerID),
	}
	if _, err := s.FollowerRepository.FollowUser(ctx, f); err != nil {
		return err
	}

	s.Tasks.Submit("backfill", func(ctx context.Context) error {
		return s.Propagator.Backfill(ctx, followerID, followeeID)
	})
	return nil
}

// UnfollowUser removes the edge and schedules removal of the
// unfollowed user's events from the follower's feed.
func (s *FollowerService) UnfollowUser(ctx context.Context, followerID, followeeID string) error {
	if err := s.FollowerRepository.UnfollowUser(ctx, followerID, followeeID); err != nil {
		return err
	}

	s.Tasks.Submit("cleanup", func(ctx context.Context) error {
		return s.Propagator.Cleanup(ctx, followerID, followeeID)
	})
	return nil
}

func (s *FollowerService) GetFollowerIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.FollowerRepository.GetFollowerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *FollowerService) GetFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	ids, err := s.FollowerRepository.GetFollowingIDs(ctx, followerID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *FollowerService) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	return s.FollowerRepository.IsFollowing(ctx, followerID, followeeID)
}
