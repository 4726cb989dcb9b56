package database

import (
	"context"

	"forkful/internal/config"
	"forkful/internal/core/recipe"
)

type RecipeRepositoryDatabase struct{}

func NewRecipeRepositoryDatabase() *RecipeRepositoryDatabase {
	return &RecipeRepositoryDatabase{}
}

func (repo *RecipeRepositoryDatabase) Create(ctx context.Context, r *recipe.Recipe) (*recipe.Recipe, error) {
	if err := config.DB.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

func (repo *RecipeRepositoryDatabase) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	var r recipe.Recipe
	if err := config.DB.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (repo *RecipeRepositoryDatabase) ListByIDs(ctx context.Context, ids []string) ([]*recipe.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var recipes []*recipe.Recipe
	if err := config.DB.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (repo *RecipeRepositoryDatabase) AddImage(ctx context.Context, img *recipe.Image) error {
	return config.DB.WithContext(ctx).Create(img).Error
}

// CoverImages keeps the first image seen per recipe; rows come back in
// insertion order.
func (repo *RecipeRepositoryDatabase) CoverImages(ctx context.Context, recipeIDs []string) (map[string]string, error) {
	covers := make(map[string]string, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return covers, nil
	}
	var images []*recipe.Image
	if err := config.DB.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Order("created_at ASC, id ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	for _, img := range images {
		key := img.RecipeID.String()
		if _, ok := covers[key]; !ok {
			covers[key] = img.URL
		}
	}
	return covers, nil
}
