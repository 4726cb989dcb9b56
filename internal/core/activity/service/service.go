package activityapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	activityEntity "forkful/internal/core/activity"
	feedapp "forkful/internal/core/feed/service"
	recipeEntity "forkful/internal/core/recipe"
	reviewEntity "forkful/internal/core/review"
	"forkful/internal/id"
	activityPort "forkful/internal/ports/activity"
	recipePort "forkful/internal/ports/recipe"
	reviewPort "forkful/internal/ports/review"
	tasksPort "forkful/internal/ports/tasks"
)

// ActivityService owns the write paths that emit activity events:
// recipe imports, cooking reviews, likes. Feed propagation is
// submitted fire-and-forget after the primary write commits.
type ActivityService struct {
	Activities activityPort.ActivityRepository
	Likes      activityPort.LikeRepository
	Recipes    recipePort.RecipeRepository
	Reviews    reviewPort.ReviewRepository
	Propagator *feedapp.Propagator
	Tasks      tasksPort.Submitter
}

func NewActivityService(
	activities activityPort.ActivityRepository,
	likes activityPort.LikeRepository,
	recipes recipePort.RecipeRepository,
	reviews reviewPort.ReviewRepository,
	propagator *feedapp.Propagator,
	tasks tasksPort.Submitter,
) *ActivityService {
	return &ActivityService{
		Activities: activities,
		Likes:      likes,
		Recipes:    recipes,
		Reviews:    reviews,
		Propagator: propagator,
		Tasks:      tasks,
	}
}

type RecipeImportDTO struct {
	RecipeID        string `json:"recipeId"`
	ActivityEventID int64  `json:"activityEventId"`
}

type CookingReviewDTO struct {
	ReviewID        string `json:"reviewId"`
	ActivityEventID int64  `json:"activityEventId"`
}

func validSourceType(sourceType string) bool {
	switch sourceType {
	case recipeEntity.SourceURL, recipeEntity.SourceText, recipeEntity.SourceImage, recipeEntity.SourceManual:
		return true
	}
	return false
}

// ImportRecipe stores the recipe and emits a recipe_import event.
func (s *ActivityService) ImportRecipe(ctx context.Context, userID, name, sourceType, sourceURL, imageURL string) (*RecipeImportDTO, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid userID: %w", err)
	}
	if !validSourceType(sourceType) {
		return nil, errors.New("invalid source type")
	}
	if sourceType == recipeEntity.SourceURL && sourceURL == "" {
		return nil, errors.New("url-sourced recipe requires a source url")
	}

	rec := &recipeEntity.Recipe{
		ID:         uuid.Must(uuid.NewV4()),
		Name:       name,
		UserID:     uid,
		SourceType: sourceType,
		SourceURL:  sourceURL,
	}
	if _, err := s.Recipes.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	if imageURL != "" {
		img := &recipeEntity.Image{
			ID:       uuid.Must(uuid.NewV4()),
			RecipeID: rec.ID,
			URL:      imageURL,
		}
		if err := s.Recipes.AddImage(ctx, img); err != nil {
			return nil, fmt.Errorf("failed to attach recipe image: %w", err)
		}
	}

	ev, err := s.createEvent(ctx, activityEntity.TypeRecipeImport, uid, &rec.ID)
	if err != nil {
		return nil, err
	}
	s.schedulePropagation(ev)
	return &RecipeImportDTO{
		RecipeID:        rec.ID.String(),
		ActivityEventID: ev.ID,
	}, nil
}

// CreateCookingReview stores the review and emits a cooking_review
// event. The review row is keyed by the event ID, so the event is
// created first.
func (s *ActivityService) CreateCookingReview(ctx context.Context, userID, recipeID string, rating int, text string, imageURLs []string) (*CookingReviewDTO, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid userID: %w", err)
	}
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	rec, err := s.Recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, errors.New("recipe not found")
	}

	ev, err := s.createEvent(ctx, activityEntity.TypeCookingReview, uid, &rec.ID)
	if err != nil {
		return nil, err
	}

	rv := &reviewEntity.Review{
		ID:              uuid.Must(uuid.NewV4()),
		ActivityEventID: ev.ID,
		RecipeID:        rec.ID,
		UserID:          uid,
		Rating:          rating,
		Text:            text,
	}
	if _, err := s.Reviews.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	if len(imageURLs) > 0 {
		imgs := make([]*reviewEntity.Image, 0, len(imageURLs))
		for i, u := range imageURLs {
			imgs = append(imgs, &reviewEntity.Image{
				ID:       uuid.Must(uuid.NewV4()),
				ReviewID: rv.ID,
				URL:      u,
				Index:    i,
			})
		}
		if err := s.Reviews.AddImages(ctx, imgs); err != nil {
			return nil, fmt.Errorf("failed to attach review images: %w", err)
		}
	}

	// Fan out only now that the review row the event points at exists;
	// an earlier submit would push an unhydratable event into feeds
	// when the review insert fails.
	s.schedulePropagation(ev)

	return &CookingReviewDTO{
		ReviewID:        rv.ID.String(),
		ActivityEventID: ev.ID,
	}, nil
}

// Like records the viewer's like. Liking twice is a no-op; the
// denormalized counter only moves on a fresh like.
func (s *ActivityService) Like(ctx context.Context, userID string, activityEventID int64) error {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return fmt.Errorf("invalid userID: %w", err)
	}
	if _, err := s.Activities.FindByID(ctx, activityEventID); err != nil {
		return errors.New("activity not found")
	}
	created, err := s.Likes.Create(ctx, &activityEntity.Like{
		ID:              uuid.Must(uuid.NewV4()),
		ActivityEventID: activityEventID,
		UserID:          uid,
	})
	if err != nil {
		return err
	}
	if created {
		return s.Activities.IncrementLikeCount(ctx, activityEventID, 1)
	}
	return nil
}

func (s *ActivityService) Unlike(ctx context.Context, userID string, activityEventID int64) error {
	removed, err := s.Likes.Delete(ctx, activityEventID, userID)
	if err != nil {
		return err
	}
	if removed {
		return s.Activities.IncrementLikeCount(ctx, activityEventID, -1)
	}
	return nil
}

// createEvent inserts the event row. Fan-out is not scheduled here:
// the caller does that once every row the event references exists.
func (s *ActivityService) createEvent(ctx context.Context, eventType string, actorID uuid.UUID, recipeID *uuid.UUID) (*activityEntity.Event, error) {
	ev := &activityEntity.Event{
		ID:        id.New(),
		Type:      eventType,
		ActorID:   actorID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
	if _, err := s.Activities.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to create activity event: %w", err)
	}
	return ev, nil
}

// schedulePropagation queues fan-out for a fully persisted event.
// Propagation failure never reaches the caller: the primary write
// already succeeded.
func (s *ActivityService) schedulePropagation(ev *activityEntity.Event) {
	eventID := ev.ID
	actor := ev.ActorID.String()
	createdAt := ev.CreatedAt.UnixMilli()
	s.Tasks.Submit("propagate", func(ctx context.Context) error {
		return s.Propagator.Propagate(ctx, eventID, actor, createdAt)
	})
}
