package review

import (
	"context"

	"forkful/internal/core/review"
)

type ReviewRepository interface {
	Create(ctx context.Context, r *review.Review) (*review.Review, error)
	AddImages(ctx context.Context, imgs []*review.Image) error
	ListByActivityIDs(ctx context.Context, activityEventIDs []int64) ([]*review.Review, error)
	// ImagesByReviewIDs returns image URLs grouped by review, ordered
	// by their explicit index.
	ImagesByReviewIDs(ctx context.Context, reviewIDs []string) (map[string][]string, error)
	RatingsByRecipeID(ctx context.Context, recipeID string) ([]int, error)
}

type RatingSummary struct {
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}
