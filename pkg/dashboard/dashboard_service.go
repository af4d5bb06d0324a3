package dashboard

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
	"Meal-Planner-Backend/pkg/access"
	"Meal-Planner-Backend/pkg/recipe"
	"Meal-Planner-Backend/pkg/user"
	"context"
)

const (
	recentRecipeLimit = 5
	allRecipesPreview = 10
)

type (
	DashboardService interface {
		AdminDashboard(ctx context.Context) (domain.AdminDashboardResponse, error)
		ChefDashboard(ctx context.Context, userID string) (domain.ChefDashboardResponse, error)
		UserDashboard(ctx context.Context) (domain.UserDashboardResponse, error)
	}

	dashboardService struct {
		recipeRepository recipe.RecipeRepository
		userRepository   user.UserRepository
	}
)

func NewDashboardService(recipeRepository recipe.RecipeRepository, userRepository user.UserRepository) DashboardService {
	return &dashboardService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
	}
}

// AdminDashboard aggregates store-wide counts, the five most recent recipes
// and the full roster for promotion actions.
func (s *dashboardService) AdminDashboard(ctx context.Context) (domain.AdminDashboardResponse, error) {
	totalUsers, err := s.userRepository.CountUsers(ctx)
	if err != nil {
		return domain.AdminDashboardResponse{}, err
	}
	totalRecipes, err := s.recipeRepository.CountRecipes(ctx)
	if err != nil {
		return domain.AdminDashboardResponse{}, err
	}
	totalChefs, err := s.userRepository.CountChefs(ctx)
	if err != nil {
		return domain.AdminDashboardResponse{}, err
	}

	recent, err := s.recipeRepository.GetRecentRecipes(ctx, recentRecipeLimit)
	if err != nil {
		return domain.AdminDashboardResponse{}, err
	}
	recentResponses, err := s.toResponses(ctx, recent)
	if err != nil {
		return domain.AdminDashboardResponse{}, err
	}

	users, err := s.userRepository.GetUsers(ctx)
	if err != nil {
		return domain.AdminDashboardResponse{}, err
	}
	userResponses := make([]domain.UserResponse, 0, len(users))
	for _, u := range users {
		userResponses = append(userResponses, domain.UserResponse{
			ID:       u.ID.String(),
			Username: u.Username,
			Email:    u.Email,
			Role:     string(access.Classify(u)),
			JoinedAt: u.CreatedAt,
		})
	}

	return domain.AdminDashboardResponse{
		TotalUsers:    totalUsers,
		TotalRecipes:  totalRecipes,
		TotalChefs:    totalChefs,
		RecentRecipes: recentResponses,
		Users:         userResponses,
	}, nil
}

// ChefDashboard shows the chef's own recipes newest first plus a capped
// preview of everything.
func (s *dashboardService) ChefDashboard(ctx context.Context, userID string) (domain.ChefDashboardResponse, error) {
	own, err := s.recipeRepository.GetRecipesByOwner(ctx, userID)
	if err != nil {
		return domain.ChefDashboardResponse{}, err
	}
	ownResponses, err := s.toResponses(ctx, own)
	if err != nil {
		return domain.ChefDashboardResponse{}, err
	}

	all, err := s.recipeRepository.GetRecentRecipes(ctx, allRecipesPreview)
	if err != nil {
		return domain.ChefDashboardResponse{}, err
	}
	allResponses, err := s.toResponses(ctx, all)
	if err != nil {
		return domain.ChefDashboardResponse{}, err
	}

	ownCount, err := s.recipeRepository.CountRecipesByOwner(ctx, userID)
	if err != nil {
		return domain.ChefDashboardResponse{}, err
	}

	return domain.ChefDashboardResponse{
		MyRecipes:    ownResponses,
		AllRecipes:   allResponses,
		TotalRecipes: ownCount,
	}, nil
}

// UserDashboard is a browsing list, ordered by scheduled day then name.
func (s *dashboardService) UserDashboard(ctx context.Context) (domain.UserDashboardResponse, error) {
	recipes, err := s.recipeRepository.GetRecipesByDay(ctx, "")
	if err != nil {
		return domain.UserDashboardResponse{}, err
	}
	responses, err := s.toResponses(ctx, recipes)
	if err != nil {
		return domain.UserDashboardResponse{}, err
	}
	return domain.UserDashboardResponse{Recipes: responses}, nil
}

func (s *dashboardService) toResponses(ctx context.Context, recipes []*entities.Recipe) ([]domain.RecipeResponse, error) {
	responses := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		avg, err := s.recipeRepository.GetAverageRating(ctx, r.ID.String())
		if err != nil {
			return nil, err
		}
		ratings, err := s.recipeRepository.CountRatings(ctx, r.ID.String())
		if err != nil {
			return nil, err
		}
		likes, err := s.recipeRepository.CountLikes(ctx, r.ID.String())
		if err != nil {
			return nil, err
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
		responses = append(responses, res)
	}
	return responses, nil
}
