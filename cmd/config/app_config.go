package config

import (
	"Meal-Planner-Backend/internal/api/handlers"
	"Meal-Planner-Backend/internal/api/routes"
	"Meal-Planner-Backend/internal/middleware"
	"Meal-Planner-Backend/internal/utils"
	"Meal-Planner-Backend/internal/utils/storage"
	"Meal-Planner-Backend/pkg/dashboard"
	"Meal-Planner-Backend/pkg/jwt"
	"Meal-Planner-Backend/pkg/planner"
	"Meal-Planner-Backend/pkg/recipe"
	"Meal-Planner-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository, userRepository, s3)
	dashboardService := dashboard.NewDashboardService(recipeRepository, userRepository)
	plannerService := planner.NewPlannerService(recipeRepository, userRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator, jwtService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	plannerHandler := handlers.NewPlannerHandler(plannerService)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		RecipeHandler:    recipeHandler,
		DashboardHandler: dashboardHandler,
		PlannerHandler:   plannerHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
		UserRepository:   userRepository,
	}
	routesConfig.Setup()
	return app, nil
}
