package routes

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/internal/api/handlers"
	"Meal-Planner-Backend/internal/middleware"
	"Meal-Planner-Backend/pkg/jwt"
	"Meal-Planner-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	RecipeHandler    handlers.RecipeHandler
	DashboardHandler handlers.DashboardHandler
	PlannerHandler   handlers.PlannerHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
	UserRepository   user.UserRepository
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.DashboardRoute()
	c.RecipeRoute()
	c.AdminRoute()
}

func (c *Config) GuestRoute() {
	c.App.Get("/", c.RecipeHandler.ListRecipes)
	c.App.Get("/login", c.UserHandler.LoginPage)
	c.App.Post("/login", c.UserHandler.Login)
	c.App.Get("/register", c.UserHandler.RegisterPage)
	c.App.Post("/register", c.UserHandler.Register)
	c.App.Post("/logout", c.UserHandler.Logout)
}

func (c *Config) DashboardRoute() {
	auth := c.Middleware.AuthMiddleware(c.JWTService, c.UserRepository)

	c.App.Get("/dashboard/admin", auth, c.Middleware.RequireRole(domain.RoleAdmin), c.DashboardHandler.AdminDashboard)
	// the chef handler redirects non-chefs itself
	c.App.Get("/dashboard/chef", auth, c.DashboardHandler.ChefDashboard)
	c.App.Get("/dashboard/user", auth, c.DashboardHandler.UserDashboard)
	c.App.Get("/dashboard/planner", auth, c.PlannerHandler.Calendar)
	c.App.Get("/pdf", auth, c.PlannerHandler.ExportPDF)
	c.App.Get("/me", auth, c.UserHandler.Me)
}

func (c *Config) RecipeRoute() {
	auth := c.Middleware.AuthMiddleware(c.JWTService, c.UserRepository)
	chefOnly := c.Middleware.RequireRole(domain.RoleChef)

	c.App.Get("/recipes/create", auth, chefOnly, c.RecipeHandler.CreateRecipePage)
	c.App.Post("/recipes/create", auth, chefOnly, c.RecipeHandler.CreateRecipe)

	// ownership (owner or admin) is checked in the service layer
	c.App.Get("/update_recipe/:id", auth, c.RecipeHandler.UpdateRecipePage)
	c.App.Post("/update_recipe/:id", auth, c.RecipeHandler.UpdateRecipe)
	c.App.Get("/delete_recipe/:id", auth, c.RecipeHandler.DeleteRecipePage)
	c.App.Post("/delete_recipe/:id", auth, c.RecipeHandler.DeleteRecipe)

	c.App.Get("/recipes/:id", c.RecipeHandler.GetRecipeDetail)
	c.App.Post("/recipes/:id/rate", auth, c.RecipeHandler.RateRecipe)
	c.App.Post("/recipes/:id/like", auth, c.RecipeHandler.LikeRecipe)
	c.App.Delete("/recipes/:id/like", auth, c.RecipeHandler.UnlikeRecipe)
	c.App.Post("/recipes/:id/steps", auth, c.RecipeHandler.AddCookingStep)
}

func (c *Config) AdminRoute() {
	auth := c.Middleware.AuthMiddleware(c.JWTService, c.UserRepository)

	c.App.Post("/promote/:user_id", auth, c.Middleware.RequireRole(domain.RoleAdmin), c.UserHandler.PromoteToChef)
}
