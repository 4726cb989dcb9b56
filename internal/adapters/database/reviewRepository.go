package database

import (
	"context"

	"forkful/internal/config"
	"forkful/internal/core/review"
)

type ReviewRepositoryDatabase struct{}

func NewReviewRepositoryDatabase() *ReviewRepositoryDatabase {
	return &ReviewRepositoryDatabase{}
}

func (repo *ReviewRepositoryDatabase) Create(ctx context.Context, r *review.Review) (*review.Review, error) {
	if err := config.DB.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

func (repo *ReviewRepositoryDatabase) AddImages(ctx context.Context, imgs []*review.Image) error {
	if len(imgs) == 0 {
		return nil
	}
	return config.DB.WithContext(ctx).Create(&imgs).Error
}

func (repo *ReviewRepositoryDatabase) ListByActivityIDs(ctx context.Context, activityEventIDs []int64) ([]*review.Review, error) {
	if len(activityEventIDs) == 0 {
		return nil, nil
	}
	var reviews []*review.Review
	if err := config.DB.WithContext(ctx).
		Where("activity_event_id IN ?", activityEventIDs).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (repo *ReviewRepositoryDatabase) ImagesByReviewIDs(ctx context.Context, reviewIDs []string) (map[string][]string, error) {
	grouped := make(map[string][]string, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return grouped, nil
	}
	var images []*review.Image
	if err := config.DB.WithContext(ctx).
		Where("review_id IN ?", reviewIDs).
		Order("idx ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	for _, img := range images {
		key := img.ReviewID.String()
		grouped[key] = append(grouped[key], img.URL)
	}
	return grouped, nil
}

func (repo *ReviewRepositoryDatabase) RatingsByRecipeID(ctx context.Context, recipeID string) ([]int, error) {
	var ratings []int
	if err := config.DB.WithContext(ctx).Model(&review.Review{}).
		Where("recipe_id = ?", recipeID).
		Pluck("rating", &ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}
