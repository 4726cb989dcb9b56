package recipe

import (
	"context"

	"forkful/internal/core/recipe"
)

type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) (*recipe.Recipe, error)
	FindByID(ctx context.Context, id string) (*recipe.Recipe, error)
	ListByIDs(ctx context.Context, ids []string) ([]*recipe.Recipe, error)
	AddImage(ctx context.Context, img *recipe.Image) error
	// CoverImages returns the first image URL per recipe for the given
	// recipe IDs.
	CoverImages(ctx context.Context, recipeIDs []string) (map[string]string, error)
}
