package database

import (
	"context"

	"gorm.io/gorm"

	"forkful/internal/config"
	"forkful/internal/core/activity"
)

type ActivityRepositoryDatabase struct{}

func NewActivityRepositoryDatabase() *ActivityRepositoryDatabase {
	return &ActivityRepositoryDatabase{}
}

func (repo *ActivityRepositoryDatabase) Create(ctx context.Context, ev *activity.Event) (*activity.Event, error) {
	if err := config.DB.WithContext(ctx).Create(ev).Error; err != nil {
		return nil, err
	}
	return ev, nil
}

func (repo *ActivityRepositoryDatabase) FindByID(ctx context.Context, id int64) (*activity.Event, error) {
	var ev activity.Event
	if err := config.DB.WithContext(ctx).Where("id = ?", id).First(&ev).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

func (repo *ActivityRepositoryDatabase) ListByIDs(ctx context.Context, ids []int64) ([]*activity.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var events []*activity.Event
	if err := config.DB.WithContext(ctx).Where("id IN ?", ids).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *ActivityRepositoryDatabase) ListRecentByActor(ctx context.Context, actorID string, limit int) ([]*activity.Event, error) {
	var events []*activity.Event
	if err := config.DB.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *ActivityRepositoryDatabase) ListIDsByActor(ctx context.Context, actorID string) ([]int64, error) {
	var ids []int64
	if err := config.DB.WithContext(ctx).Model(&activity.Event{}).
		Where("actor_id = ?", actorID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *ActivityRepositoryDatabase) IncrementLikeCount(ctx context.Context, id int64, delta int) error {
	return config.DB.WithContext(ctx).Model(&activity.Event{}).
		Where("id = ?", id).
		Update("like_count", gorm.Expr("like_count + ?", delta)).Error
}
