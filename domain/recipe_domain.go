package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessRateRecipe      = "recipe rated successfully"
	MessageSuccessLikeRecipe      = "recipe liked successfully"
	MessageSuccessUnlikeRecipe    = "recipe unliked successfully"
	MessageSuccessAddStep         = "cooking step added successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedRateRecipe      = "failed to rate recipe"
	MessageFailedLikeRecipe      = "failed to like recipe"
	MessageFailedAddStep         = "failed to add cooking step"

	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrInvalidDay          = errors.New("invalid day, expected YYYY-MM-DD")
	ErrInvalidScore        = errors.New("score must be between 1 and 5")
	ErrAlreadyRated        = errors.New("recipe already rated by this user")
	ErrDuplicateStepNumber = errors.New("step number already exists for this recipe")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrInvalidImageFormat  = errors.New("invalid image format")
)

type (
	SaveRecipeRequest struct {
		Day             string                `json:"day" form:"day" validate:"required"`
		Name            string                `json:"name" form:"name" validate:"required,max=100"`
		Description     string                `json:"description" form:"description" validate:"required"`
		PrepTimeMinutes int                   `json:"prep_time_minutes" form:"prep_time_minutes" validate:"omitempty,min=1"`
		Servings        int                   `json:"servings" form:"servings" validate:"omitempty,min=1"`
		DifficultyLevel string                `json:"difficulty_level" form:"difficulty_level" validate:"omitempty,oneof=easy medium hard"`
		NutritionFacts  string                `json:"nutrition_facts" form:"nutrition_facts"`
		CategoryIDs     []string              `json:"category_ids" form:"category_ids" validate:"omitempty,dive,uuid"`
		Image           *multipart.FileHeader `json:"-" form:"image"`
	}

	UpdateRecipeRequest struct {
		Day             string                `json:"day" form:"day" validate:"omitempty"`
		Name            string                `json:"name" form:"name" validate:"omitempty,max=100"`
		Description     string                `json:"description" form:"description" validate:"omitempty"`
		PrepTimeMinutes int                   `json:"prep_time_minutes" form:"prep_time_minutes" validate:"omitempty,min=1"`
		Servings        int                   `json:"servings" form:"servings" validate:"omitempty,min=1"`
		DifficultyLevel string                `json:"difficulty_level" form:"difficulty_level" validate:"omitempty,oneof=easy medium hard"`
		NutritionFacts  string                `json:"nutrition_facts" form:"nutrition_facts"`
		CategoryIDs     []string              `json:"category_ids" form:"category_ids" validate:"omitempty,dive,uuid"`
		Image           *multipart.FileHeader `json:"-" form:"image"`
	}

	RateRecipeRequest struct {
		Score  int    `json:"score" form:"score" validate:"required,min=1,max=5"`
		Review string `json:"review" form:"review"`
	}

	CookingStepRequest struct {
		StepNumber  int    `json:"step_number" form:"step_number" validate:"required,min=1"`
		Instruction string `json:"instruction" form:"instruction" validate:"required"`
	}

	RecipeResponse struct {
		ID              string    `json:"id"`
		Day             string    `json:"day"`
		Name            string    `json:"name"`
		Description     string    `json:"description"`
		PrepTimeMinutes int       `json:"prep_time_minutes"`
		Servings        int       `json:"servings"`
		DifficultyLevel string    `json:"difficulty_level,omitempty"`
		ImageURL        string    `json:"image_url,omitempty"`
		NutritionFacts  string    `json:"nutrition_facts,omitempty"`
		OwnerID         string    `json:"owner_id,omitempty"`
		OwnerName       string    `json:"owner_name,omitempty"`
		Categories      []string  `json:"categories,omitempty"`
		AverageRating   float64   `json:"average_rating"`
		RatingCount     int64     `json:"rating_count"`
		LikeCount       int64     `json:"like_count"`
		CreatedAt       time.Time `json:"created_at"`
	}

	CookingStepResponse struct {
		StepNumber  int    `json:"step_number"`
		Instruction string `json:"instruction"`
	}

	RecipeDetailResponse struct {
		RecipeResponse
		Steps []CookingStepResponse `json:"steps"`
	}
)
