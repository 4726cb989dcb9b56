package feedapp

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"forkful/internal/core/activity"
	"forkful/internal/core/feed"
	"forkful/internal/core/recipe"
	"forkful/internal/core/review"
	"forkful/internal/core/user"
	"forkful/internal/metrics"
	activityPort "forkful/internal/ports/activity"
	recipePort "forkful/internal/ports/recipe"
	reviewPort "forkful/internal/ports/review"
	userPort "forkful/internal/ports/user"
)

// Hydrator expands activity IDs into display-ready feed items. Every
// lookup is batched over the whole ID list; nothing is fetched per
// item.
type Hydrator struct {
	Events  activityPort.ActivityRepository
	Likes   activityPort.LikeRepository
	Users   userPort.UserRepository
	Recipes recipePort.RecipeRepository
	Reviews reviewPort.ReviewRepository
	Logger  *zap.Logger
}

func NewHydrator(
	events activityPort.ActivityRepository,
	likes activityPort.LikeRepository,
	users userPort.UserRepository,
	recipes recipePort.RecipeRepository,
	reviews reviewPort.ReviewRepository,
	logger *zap.Logger,
) *Hydrator {
	return &Hydrator{
		Events:  events,
		Likes:   likes,
		Users:   users,
		Recipes: recipes,
		Reviews: reviews,
		Logger:  logger,
	}
}

// Hydrate returns items in exactly the order of ids. Events that
// cannot be rendered (missing actor, broken recipe reference,
// OCR-imported recipes) are skipped and logged, never surfaced as an
// error: a partially-renderable feed beats a failed one.
func (h *Hydrator) Hydrate(ctx context.Context, ids []int64, viewerID string) ([]feed.Item, error) {
	items := make([]feed.Item, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	events, err := h.Events.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	evByID := make(map[int64]*activity.Event, len(events))
	actorIDs := make([]string, 0, len(events))
	recipeIDs := make([]string, 0, len(events))
	reviewEventIDs := make([]int64, 0)
	seenActor := make(map[string]struct{})
	seenRecipe := make(map[string]struct{})
	for _, ev := range events {
		evByID[ev.ID] = ev
		aid := ev.ActorID.String()
		if _, ok := seenActor[aid]; !ok {
			seenActor[aid] = struct{}{}
			actorIDs = append(actorIDs, aid)
		}
		if ev.RecipeID != nil {
			rid := ev.RecipeID.String()
			if _, ok := seenRecipe[rid]; !ok {
				seenRecipe[rid] = struct{}{}
				recipeIDs = append(recipeIDs, rid)
			}
		}
		if ev.Type == activity.TypeCookingReview {
			reviewEventIDs = append(reviewEventIDs, ev.ID)
		}
	}

	actors, err := h.Users.ListByIDs(ctx, actorIDs)
	if err != nil {
		return nil, err
	}
	actorByID := make(map[string]*user.User, len(actors))
	for _, u := range actors {
		actorByID[u.ID.String()] = u
	}

	recipes, err := h.Recipes.ListByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	recipeByID := make(map[string]*recipe.Recipe, len(recipes))
	for _, r := range recipes {
		recipeByID[r.ID.String()] = r
	}
	covers, err := h.Recipes.CoverImages(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}

	reviewByEventID := make(map[int64]*review.Review)
	reviewImages := make(map[string][]string)
	if len(reviewEventIDs) > 0 {
		reviews, err := h.Reviews.ListByActivityIDs(ctx, reviewEventIDs)
		if err != nil {
			return nil, err
		}
		reviewIDs := make([]string, 0, len(reviews))
		for _, rv := range reviews {
			reviewByEventID[rv.ActivityEventID] = rv
			reviewIDs = append(reviewIDs, rv.ID.String())
		}
		reviewImages, err = h.Reviews.ImagesByReviewIDs(ctx, reviewIDs)
		if err != nil {
			return nil, err
		}
	}

	liked, err := h.Likes.LikedSet(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	// Assemble in input order; the index order is authoritative.
	for _, id := range ids {
		ev, ok := evByID[id]
		if !ok {
			continue
		}
		actor, ok := actorByID[ev.ActorID.String()]
		if !ok {
			metrics.HydrationSkips.WithLabelValues("missing_actor").Inc()
			h.Logger.Warn("feed event actor missing, skipping",
				zap.Int64("activityEventID", ev.ID),
				zap.String("actorID", ev.ActorID.String()))
			continue
		}
		var meta feed.RecipeMetadata
		if ev.RecipeID != nil {
			rec, ok := recipeByID[ev.RecipeID.String()]
			if !ok {
				metrics.HydrationSkips.WithLabelValues("missing_recipe").Inc()
				h.Logger.Warn("feed event references missing recipe, skipping",
					zap.Int64("activityEventID", ev.ID),
					zap.String("recipeID", ev.RecipeID.String()))
				continue
			}
			// OCR-imported recipes stay out of the social feed.
			if rec.SourceType == recipe.SourceImage {
				metrics.HydrationSkips.WithLabelValues("image_source").Inc()
				continue
			}
			meta = recipeMetadata(rec, covers[rec.ID.String()])
		}

		item := feed.Item{
			ID:   ev.ID,
			Type: ev.Type,
			Actor: feed.Actor{
				ID:    actor.ID.String(),
				Name:  actor.Name,
				Image: actor.Image,
			},
			CreatedAt:    ev.CreatedAt.UnixMilli(),
			LikeCount:    ev.LikeCount,
			CommentCount: ev.CommentCount,
			IsLiked:      liked[ev.ID],
			Recipe:       meta,
		}

		if ev.Type == activity.TypeCookingReview {
			rv, ok := reviewByEventID[ev.ID]
			if !ok {
				metrics.HydrationSkips.WithLabelValues("missing_review").Inc()
				h.Logger.Warn("cooking_review event has no review row, skipping",
					zap.Int64("activityEventID", ev.ID))
				continue
			}
			item.Review = &feed.ReviewContent{
				Rating: rv.Rating,
				Text:   rv.Text,
				Images: reviewImages[rv.ID.String()],
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func recipeMetadata(rec *recipe.Recipe, cover string) feed.RecipeMetadata {
	meta := feed.RecipeMetadata{
		ID:            rec.ID.String(),
		Name:          rec.Name,
		Image:         cover,
		SourceType:    rec.SourceType,
		ViewableInApp: true,
	}
	if rec.SourceType == recipe.SourceURL {
		meta.SourceURL = rec.SourceURL
		meta.SourceDomain = sourceDomain(rec.SourceURL)
		meta.ViewableInApp = false
	}
	return meta
}

// sourceDomain extracts the hostname minus a leading "www.". Anything
// unparseable degrades to the raw string.
func sourceDomain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
