package reviewapp

import (
	"context"
	"math"

	reviewPort "forkful/internal/ports/review"
)

type ReviewService struct {
	ReviewRepository reviewPort.ReviewRepository
}

func NewReviewService(repo reviewPort.ReviewRepository) *ReviewService {
	return &ReviewService{
		ReviewRepository: repo,
	}
}

// AverageRating aggregates a recipe's review ratings, rounded to one
// decimal. No reviews means a nil average and a zero count.
func (s *ReviewService) AverageRating(ctx context.Context, recipeID string) (*reviewPort.RatingSummary, error) {
	ratings, err := s.ReviewRepository.RatingsByRecipeID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	summary := &reviewPort.RatingSummary{Count: int64(len(ratings))}
	if len(ratings) == 0 {
		return summary, nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := math.Round(float64(sum)/float64(len(ratings))*10) / 10
	summary.Average = &avg
	return summary, nil
}
