package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/diet-tracker-api/internal/config"
	"github.com/yukikurage/diet-tracker-api/internal/constants"
	"github.com/yukikurage/diet-tracker-api/internal/handlers"
	"github.com/yukikurage/diet-tracker-api/internal/middleware"
	"github.com/yukikurage/diet-tracker-api/internal/repository"
	"github.com/yukikurage/diet-tracker-api/internal/services"
	"gorm.io/gorm"
)

// Dependencies holds everything the router wires into handlers.
type Dependencies struct {
	DB           *gorm.DB
	SessionStore sessions.Store
	Denylist     services.TokenDenylist
	Social       services.SocialProvider
	Images       *services.ImageService
	AI           *services.AIService
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))

	// Repositories
	userRepo := repository.NewUserRepository(deps.DB)
	measurementRepo := repository.NewMeasurementRepository(deps.DB)
	goalRepo := repository.NewGoalRepository(deps.DB)
	foodRepo := repository.NewFoodRepository(deps.DB)
	foodAmountRepo := repository.NewFoodAmountRepository(deps.DB)
	mealRepo := repository.NewMealRepository(deps.DB)
	dailyMealRepo := repository.NewDailyMealRepository(deps.DB)

	// Services
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, deps.Denylist)
	socialService := services.NewSocialLoginService(userRepo, deps.Social, authService)
	measurementService := services.NewMeasurementService(measurementRepo, goalRepo)
	catalogService := services.NewCatalogService(foodRepo, foodAmountRepo)
	foodAmountService := services.NewFoodAmountService(foodAmountRepo, foodRepo)
	mealService := services.NewMealService(mealRepo, dailyMealRepo, foodAmountRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, socialService, tokenService, deps.Images)
	userAdminHandler := handlers.NewUserAdminHandler(authService)
	measurementHandler := handlers.NewMeasurementHandler(measurementService, deps.Images)
	foodHandler := handlers.NewFoodHandler(catalogService, deps.Images, deps.AI)
	foodAmountHandler := handlers.NewFoodAmountHandler(foodAmountService)
	mealHandler := handlers.NewMealHandler(mealService)

	requireAuth := middleware.RequireAuth(tokenService, userRepo)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Diet Tracker API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.StorageBackend != "s3" && strings.HasPrefix(cfg.MediaURL, "/") {
		r.Static(cfg.MediaURL, cfg.MediaRoot)
	}

	api := r.Group("/api")
	{
		// User routes
		user := api.Group("/user")
		{
			user.POST("/create", authHandler.Signup)
			user.POST("/token", authHandler.Token)
			user.POST("/google_token", authHandler.GoogleToken)
			user.POST("/logout", requireAuth, authHandler.Logout)

			me := user.Group("/me", requireAuth)
			me.GET("", authHandler.GetCurrentUser)
			me.PUT("", authHandler.UpdateCurrentUser)
			me.PATCH("", authHandler.UpdateCurrentUser)
			me.POST("/image", authHandler.UploadProfilePicture)

			users := user.Group("/users", requireAuth, middleware.RequireStaff())
			users.GET("", userAdminHandler.ListUsers)
			users.GET("/:id", userAdminHandler.GetUser)
			users.PUT("/:id", userAdminHandler.UpdateUser)
			users.PATCH("/:id", userAdminHandler.UpdateUser)
			users.DELETE("/:id", userAdminHandler.DeleteUser)
		}

		// Measurement routes (protected)
		measurement := api.Group("/measurement", requireAuth)
		{
			goals := measurement.Group("/goals")
			goals.GET("", measurementHandler.ListGoals)
			goals.POST("", measurementHandler.CreateGoal)
			goals.GET("/:id", measurementHandler.GetGoal)
			goals.PUT("/:id", measurementHandler.UpdateGoal)
			goals.PATCH("/:id", measurementHandler.UpdateGoal)
			goals.DELETE("/:id", measurementHandler.DeleteGoal)

			measurements := measurement.Group("/measurements")
			measurements.GET("", measurementHandler.ListMeasurements)
			measurements.POST("", measurementHandler.CreateMeasurement)
			measurements.GET("/:id", measurementHandler.GetMeasurement)
			measurements.PUT("/:id", measurementHandler.UpdateMeasurement)
			measurements.PATCH("/:id", measurementHandler.UpdateMeasurement)
			measurements.DELETE("/:id", measurementHandler.DeleteMeasurement)
			measurements.POST("/:id/image", measurementHandler.UploadMeasurementImage)
		}

		// Meal routes (protected)
		meal := api.Group("/meal", requireAuth)
		{
			foods := meal.Group("/base_foods")
			foods.GET("", foodHandler.ListBaseFoods)
			foods.POST("", foodHandler.CreateBaseFood)
			foods.POST("/estimate", foodHandler.EstimateCalories)
			foods.GET("/:id", foodHandler.GetBaseFood)
			foods.PUT("/:id", foodHandler.UpdateBaseFood)
			foods.PATCH("/:id", foodHandler.UpdateBaseFood)
			foods.DELETE("/:id", foodHandler.DeleteBaseFood)
			foods.POST("/:id/image", foodHandler.UploadBaseFoodImage)

			recipes := meal.Group("/recipes")
			recipes.GET("", foodHandler.ListRecipes)
			recipes.POST("", foodHandler.CreateRecipe)
			recipes.GET("/:id", foodHandler.GetRecipe)
			recipes.PUT("/:id", foodHandler.UpdateRecipe)
			recipes.PATCH("/:id", foodHandler.UpdateRecipe)
			recipes.DELETE("/:id", foodHandler.DeleteRecipe)
			recipes.POST("/:id/image", foodHandler.UploadBaseFoodImage)

			amounts := meal.Group("/food_amounts")
			amounts.GET("", foodAmountHandler.ListFoodAmounts)
			amounts.POST("", foodAmountHandler.CreateFoodAmount)
			amounts.GET("/:id", foodAmountHandler.GetFoodAmount)
			amounts.PUT("/:id", foodAmountHandler.UpdateFoodAmount)
			amounts.PATCH("/:id", foodAmountHandler.UpdateFoodAmount)
			amounts.DELETE("/:id", foodAmountHandler.DeleteFoodAmount)

			meals := meal.Group("/meals")
			meals.GET("", mealHandler.ListMeals)
			meals.POST("", mealHandler.CreateMeal)
			meals.GET("/:id", mealHandler.GetMeal)
			meals.PUT("/:id", mealHandler.UpdateMeal)
			meals.PATCH("/:id", mealHandler.UpdateMeal)
			meals.DELETE("/:id", mealHandler.DeleteMeal)

			daily := meal.Group("/daily_meals")
			daily.GET("", mealHandler.ListDailyMeals)
			daily.POST("", mealHandler.CreateDailyMeal)
			daily.GET("/:id", mealHandler.GetDailyMeal)
			daily.PUT("/:id", mealHandler.UpdateDailyMeal)
			daily.PATCH("/:id", mealHandler.UpdateDailyMeal)
			daily.DELETE("/:id", mealHandler.DeleteDailyMeal)
		}
	}

	return r
}
