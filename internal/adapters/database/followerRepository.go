package database

import (
	"context"

	"forkful/internal/config"
	"forkful/internal/core/follower"
)

type FollowerRepositoryDatabase struct{}

func NewFollowerRepositoryDatabase() *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{}
}

func (repo *FollowerRepositoryDatabase) FollowUser(ctx context.Context, f *follower.Follower) (*follower.Follower, error) {
	if err := config.DB.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (repo *FollowerRepositoryDatabase) UnfollowUser(ctx context.Context, followerID, followeeID string) error {
	return config.DB.WithContext(ctx).
		Where("follower_id = ? AND user_id = ?", followerID, followeeID).
		Delete(&follower.Follower{}).Error
}

func (repo *FollowerRepositoryDatabase) GetFollowerIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := config.DB.WithContext(ctx).Model(&follower.Follower{}).
		Where("user_id = ?", userID).
		Pluck("follower_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *FollowerRepositoryDatabase) GetFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	if err := config.DB.WithContext(ctx).Model(&follower.Follower{}).
		Where("follower_id = ?", followerID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *FollowerRepositoryDatabase) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	if err := config.DB.WithContext(ctx).Model(&follower.Follower{}).
		Where("follower_id = ? AND user_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
