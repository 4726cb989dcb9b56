package database

import (
	"context"

	"gorm.io/gorm/clause"

	"forkful/internal/config"
	"forkful/internal/core/activity"
)

type LikeRepositoryDatabase struct{}

func NewLikeRepositoryDatabase() *LikeRepositoryDatabase {
	return &LikeRepositoryDatabase{}
}

// Create inserts the like, ignoring the unique-pair conflict so a
// double-tap stays idempotent.
func (repo *LikeRepositoryDatabase) Create(ctx context.Context, like *activity.Like) (bool, error) {
	res := config.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (repo *LikeRepositoryDatabase) Delete(ctx context.Context, activityEventID int64, userID string) (bool, error) {
	res := config.DB.WithContext(ctx).
		Where("activity_event_id = ? AND user_id = ?", activityEventID, userID).
		Delete(&activity.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (repo *LikeRepositoryDatabase) LikedSet(ctx context.Context, userID string, activityEventIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool, len(activityEventIDs))
	if len(activityEventIDs) == 0 {
		return liked, nil
	}
	var ids []int64
	if err := config.DB.WithContext(ctx).Model(&activity.Like{}).
		Where("activity_event_id IN ? AND user_id = ?", activityEventIDs, userID).
		Pluck("activity_event_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
