package domain

var (
	MessageSuccessGetDashboard = "dashboard retrieved successfully"
	MessageFailedGetDashboard  = "failed to retrieve dashboard"
)

type (
	AdminDashboardResponse struct {
		TotalUsers    int64            `json:"total_users"`
		TotalRecipes  int64            `json:"total_recipes"`
		TotalChefs    int64            `json:"total_chefs"`
		RecentRecipes []RecipeResponse `json:"recent_recipes"`
		Users         []UserResponse   `json:"users"`
	}

	ChefDashboardResponse struct {
		MyRecipes    []RecipeResponse `json:"my_recipes"`
		AllRecipes   []RecipeResponse `json:"all_recipes"`
		TotalRecipes int64            `json:"total_recipes"`
	}

	UserDashboardResponse struct {
		Recipes []RecipeResponse `json:"recipes"`
	}
)
