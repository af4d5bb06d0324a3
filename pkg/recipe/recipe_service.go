package recipe

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
	"Meal-Planner-Backend/internal/utils/storage"
	"Meal-Planner-Backend/pkg/access"
	"Meal-Planner-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPrepTimeMinutes = 30
	defaultServings        = 2
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, search string) ([]domain.RecipeResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string) (domain.RecipeDetailResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		AuthorizeModify(ctx context.Context, recipeID string, userID string) error
		RateRecipe(ctx context.Context, recipeID string, req domain.RateRecipeRequest, userID string) error
		LikeRecipe(ctx context.Context, recipeID string, userID string) error
		UnlikeRecipe(ctx context.Context, recipeID string, userID string) error
		AddCookingStep(ctx context.Context, recipeID string, req domain.CookingStepRequest, userID string) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		userRepository   user.UserRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, userRepository user.UserRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
		s3:               s3,
	}
}

// CreateRecipe stamps the authenticated user as owner. The owner can never
// come from the request payload.
func (s *recipeService) CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.RecipeResponse, error) {
	day, err := time.Parse("2006-01-02", req.Day)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrInvalidDay
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	prepTime := req.PrepTimeMinutes
	if prepTime <= 0 {
		prepTime = defaultPrepTimeMinutes
	}
	servings := req.Servings
	if servings <= 0 {
		servings = defaultServings
	}

	recipe := &entities.Recipe{
		ID:              uuid.New(),
		UserID:          &userUUID,
		Day:             day,
		Name:            req.Name,
		Description:     req.Description,
		PrepTimeMinutes: prepTime,
		Servings:        servings,
		DifficultyLevel: req.DifficultyLevel,
		NutritionFacts:  req.NutritionFacts,
	}

	if req.Image != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("recipe-%s", recipe.ID.String()),
			req.Image,
			"recipes",
			storage.AllowImage...,
		)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}

	if len(req.CategoryIDs) > 0 {
		if err := s.assignCategories(ctx, recipe, req.CategoryIDs); err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	return s.toResponse(ctx, recipe)
}

func (s *recipeService) GetRecipes(ctx context.Context, search string) ([]domain.RecipeResponse, error) {
	recipes, err := s.recipeRepository.GetRecipesByDay(ctx, search)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		res, err := s.toResponse(ctx, r)
		if err != nil {
			return nil, err
		}
		responses = append(responses, res)
	}
	return responses, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string) (domain.RecipeDetailResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}

	res, err := s.toResponse(ctx, recipe)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	steps, err := s.recipeRepository.GetSteps(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	detail := domain.RecipeDetailResponse{RecipeResponse: res}
	for _, step := range steps {
		detail.Steps = append(detail.Steps, domain.CookingStepResponse{
			StepNumber:  step.StepNumber,
			Instruction: step.Instruction,
		})
	}
	return detail, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.authorizeModify(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	if req.Day != "" {
		day, err := time.Parse("2006-01-02", req.Day)
		if err != nil {
			return domain.RecipeResponse{}, domain.ErrInvalidDay
		}
		recipe.Day = day
	}
	if req.Name != "" {
		recipe.Name = req.Name
	}
	if req.Description != "" {
		recipe.Description = req.Description
	}
	if req.PrepTimeMinutes > 0 {
		recipe.PrepTimeMinutes = req.PrepTimeMinutes
	}
	if req.Servings > 0 {
		recipe.Servings = req.Servings
	}
	if req.DifficultyLevel != "" {
		recipe.DifficultyLevel = req.DifficultyLevel
	}
	if req.NutritionFacts != "" {
		recipe.NutritionFacts = req.NutritionFacts
	}

	if req.Image != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("recipe-%s", recipe.ID.String()),
			req.Image,
			"recipes",
			storage.AllowImage...,
		)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}

	if req.CategoryIDs != nil {
		if err := s.assignCategories(ctx, recipe, req.CategoryIDs); err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	return s.toResponse(ctx, recipe)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	if _, err := s.authorizeModify(ctx, recipeID, userID); err != nil {
		return err
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

// AuthorizeModify reports whether the user may mutate the recipe, without
// mutating anything. The edit and delete confirmation pages use it.
func (s *recipeService) AuthorizeModify(ctx context.Context, recipeID string, userID string) error {
	_, err := s.authorizeModify(ctx, recipeID, userID)
	return err
}

func (s *recipeService) authorizeModify(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}

	actor, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotAllowed
		}
		return nil, err
	}

	if !access.CanModifyRecipe(actor, recipe) {
		return nil, domain.ErrUserNotAllowed
	}
	return recipe, nil
}

func (s *recipeService) RateRecipe(ctx context.Context, recipeID string, req domain.RateRecipeRequest, userID string) error {
	if req.Score < 1 || req.Score > 5 {
		return domain.ErrInvalidScore
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	rated, err := s.recipeRepository.HasRating(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	if rated {
		return domain.ErrAlreadyRated
	}

	rating := &entities.Rating{
		ID:       uuid.New(),
		RecipeID: recipe.ID,
		UserID:   userUUID,
		Score:    req.Score,
		Review:   req.Review,
	}

	if err := s.recipeRepository.CreateRating(ctx, rating); err != nil {
		// unique index backstop: a concurrent duplicate loses here
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyRated
		}
		return err
	}
	return nil
}

func (s *recipeService) LikeRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	liked, err := s.recipeRepository.HasLike(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	if liked {
		return nil
	}

	like := &entities.RecipeLike{
		ID:       uuid.New(),
		RecipeID: recipe.ID,
		UserID:   userUUID,
	}

	if err := s.recipeRepository.CreateLike(ctx, like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}

func (s *recipeService) UnlikeRecipe(ctx context.Context, recipeID string, userID string) error {
	return s.recipeRepository.DeleteLike(ctx, recipeID, userID)
}

func (s *recipeService) AddCookingStep(ctx context.Context, recipeID string, req domain.CookingStepRequest, userID string) error {
	recipe, err := s.authorizeModify(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	exists, err := s.recipeRepository.HasStep(ctx, recipeID, req.StepNumber)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateStepNumber
	}

	step := &entities.CookingStep{
		ID:          uuid.New(),
		RecipeID:    recipe.ID,
		StepNumber:  req.StepNumber,
		Instruction: req.Instruction,
	}

	if err := s.recipeRepository.CreateStep(ctx, step); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateStepNumber
		}
		return err
	}
	return nil
}

func (s *recipeService) assignCategories(ctx context.Context, recipe *entities.Recipe, categoryIDs []string) error {
	categories, err := s.recipeRepository.GetCategoriesByIDs(ctx, categoryIDs)
	if err != nil {
		return err
	}
	if len(categories) != len(categoryIDs) {
		return domain.ErrCategoryNotFound
	}
	return s.recipeRepository.ReplaceCategories(ctx, recipe, categories)
}

func (s *recipeService) toResponse(ctx context.Context, r *entities.Recipe) (domain.RecipeResponse, error) {
	avg, err := s.recipeRepository.GetAverageRating(ctx, r.ID.String())
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	ratings, err := s.recipeRepository.CountRatings(ctx, r.ID.String())
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	likes, err := s.recipeRepository.CountLikes(ctx, r.ID.String())
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	res := domain.RecipeResponse{
		ID:              r.ID.String(),
		Day:             r.Day.Format("2006-01-02"),
		Name:            r.Name,
		Description:     r.Description,
		PrepTimeMinutes: r.PrepTimeMinutes,
		Servings:        r.Servings,
		DifficultyLevel: r.DifficultyLevel,
		ImageURL:        r.ImageURL,
		NutritionFacts:  r.NutritionFacts,
		AverageRating:   avg,
		RatingCount:     ratings,
		LikeCount:       likes,
		CreatedAt:       r.CreatedAt,
	}
	if r.UserID != nil {
		res.OwnerID = r.UserID.String()
	}
	if r.User != nil {
		res.OwnerName = r.User.Username
	}
	for _, c := range r.Categories {
		res.Categories = append(res.Categories, c.Name)
	}
	return res, nil
}
