package recipe

import (
	"Meal-Planner-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipesByDay(ctx context.Context, search string) ([]*entities.Recipe, error)
		GetRecentRecipes(ctx context.Context, limit int) ([]*entities.Recipe, error)
		GetRecipesByOwner(ctx context.Context, userID string) ([]*entities.Recipe, error)
		CountRecipes(ctx context.Context) (int64, error)
		CountRecipesByOwner(ctx context.Context, userID string) (int64, error)

		GetCategoriesByIDs(ctx context.Context, ids []string) ([]*entities.Category, error)
		ReplaceCategories(ctx context.Context, recipe *entities.Recipe, categories []*entities.Category) error

		CreateRating(ctx context.Context, rating *entities.Rating) error
		HasRating(ctx context.Context, recipeID, userID string) (bool, error)
		GetAverageRating(ctx context.Context, recipeID string) (float64, error)
		CountRatings(ctx context.Context, recipeID string) (int64, error)

		CreateLike(ctx context.Context, like *entities.RecipeLike) error
		DeleteLike(ctx context.Context, recipeID, userID string) error
		HasLike(ctx context.Context, recipeID, userID string) (bool, error)
		CountLikes(ctx context.Context, recipeID string) (int64, error)

		CreateStep(ctx context.Context, step *entities.CookingStep) error
		GetSteps(ctx context.Context, recipeID string) ([]*entities.CookingStep, error)
		HasStep(ctx context.Context, recipeID string, stepNumber int) (bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("User").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

// DeleteRecipe clears the category join rows alongside the row itself;
// ratings, likes and steps go with it via ON DELETE CASCADE.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&entities.Recipe{ID: recipeID}).Error
}

// GetRecipesByDay is the public browsing order: scheduled day first, then
// name. An optional search matches name or description case-insensitively.
func (r *recipeRepository) GetRecipesByDay(ctx context.Context, search string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe

	query := r.db.WithContext(ctx).Preload("Categories").Preload("User")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Order("day asc, name asc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetRecentRecipes(ctx context.Context, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("User").
		Order("created_at desc").
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetRecipesByOwner(ctx context.Context, userID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountRecipes(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) CountRecipesByOwner(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) GetCategoriesByIDs(ctx context.Context, ids []string) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *recipeRepository) ReplaceCategories(ctx context.Context, recipe *entities.Recipe, categories []*entities.Category) error {
	return r.db.WithContext(ctx).Model(recipe).Association("Categories").Replace(categories)
}

func (r *recipeRepository) CreateRating(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *recipeRepository) HasRating(ctx context.Context, recipeID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Rating{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAverageRating is computed at call time, never cached.
func (r *recipeRepository) GetAverageRating(ctx context.Context, recipeID string) (float64, error) {
	var avg float64
	if err := r.db.WithContext(ctx).Model(&entities.Rating{}).
		Where("recipe_id = ?", recipeID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *recipeRepository) CountRatings(ctx context.Context, recipeID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Rating{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) CreateLike(ctx context.Context, like *entities.RecipeLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *recipeRepository) DeleteLike(ctx context.Context, recipeID, userID string) error {
	return r.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&entities.RecipeLike{}).Error
}

func (r *recipeRepository) HasLike(ctx context.Context, recipeID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.RecipeLike{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) CountLikes(ctx context.Context, recipeID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.RecipeLike{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) CreateStep(ctx context.Context, step *entities.CookingStep) error {
	return r.db.WithContext(ctx).Create(step).Error
}

func (r *recipeRepository) GetSteps(ctx context.Context, recipeID string) ([]*entities.CookingStep, error) {
	var steps []*entities.CookingStep
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("step_number asc").
		Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *recipeRepository) HasStep(ctx context.Context, recipeID string, stepNumber int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.CookingStep{}).
		Where("recipe_id = ? AND step_number = ?", recipeID, stepNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
