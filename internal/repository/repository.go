package repository

import (
	"time"

	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/utils"
)

// ListFilter scopes a listing to one owner unless All is set.
type ListFilter struct {
	UserID     uint64
	All        bool
	Pagination *utils.PaginationParams
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithSocialAccount creates a user and links it to a provider
	// identity within a single transaction.
	CreateWithSocialAccount(user *models.User, account *models.SocialAccount) error

	// CreateSocialAccount links an existing user to a provider identity
	CreateSocialAccount(account *models.SocialAccount) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindSocialAccount finds a provider identity
	FindSocialAccount(provider, uid string) (*models.SocialAccount, error)

	// List lists all users ordered by id
	List(pagination *utils.PaginationParams) ([]models.User, int64, error)

	// Update saves a user
	Update(user *models.User) error

	// UpdateLastLogin stamps the last login time
	UpdateLastLogin(id uint64, at time.Time) error

	// Delete removes a user and every row it owns
	Delete(id uint64) error
}

// MeasurementRepository defines the interface for measurement data access
type MeasurementRepository interface {
	Create(m *models.Measurement) error
	FindByID(id uint64) (*models.Measurement, error)
	List(filter ListFilter) ([]models.Measurement, int64, error)
	Update(m *models.Measurement) error
	Delete(id uint64) error
}

// GoalRepository defines the interface for user goal data access
type GoalRepository interface {
	Create(g *models.UserGoal) error
	FindByID(id uint64) (*models.UserGoal, error)
	List(filter ListFilter) ([]models.UserGoal, int64, error)
	Update(g *models.UserGoal) error
	Delete(id uint64) error
}

// FoodRepository defines the interface for base food and recipe data access
type FoodRepository interface {
	// CreateFood creates a plain base food
	CreateFood(food *models.BaseFood) error

	// FindFoodByID finds a base food (plain or recipe) by ID
	FindFoodByID(id uint64) (*models.BaseFood, error)

	// ListFoods lists base foods, recipes included, ordered by name descending
	ListFoods(filter ListFilter) ([]models.BaseFood, int64, error)

	// UpdateFood saves a base food
	UpdateFood(food *models.BaseFood) error

	// DeleteFood removes a base food, its recipe row, its ingredients and
	// every food amount referencing it
	DeleteFood(id uint64) error

	// CreateRecipe creates the base food row, the recipe row and attaches
	// the ingredients in one transaction
	CreateRecipe(recipe *models.Recipe, ingredientIDs []uint64) error

	// FindRecipeByID finds a recipe with its base food and ingredients
	FindRecipeByID(id uint64) (*models.Recipe, error)

	// ListRecipes lists recipes ordered by id descending
	ListRecipes(filter ListFilter) ([]models.Recipe, int64, error)

	// UpdateRecipe saves a recipe and its base food. Ingredients are
	// replaced when ingredientIDs is not nil.
	UpdateRecipe(recipe *models.Recipe, ingredientIDs []uint64) error
}

// FoodAmountRepository defines the interface for food amount data access
type FoodAmountRepository interface {
	Create(fa *models.FoodAmount) error
	FindByID(id uint64) (*models.FoodAmount, error)

	// FindByIDs finds food amounts with their foods loaded
	FindByIDs(ids []uint64) ([]models.FoodAmount, error)

	List(filter ListFilter) ([]models.FoodAmount, int64, error)
	Update(fa *models.FoodAmount) error
	Delete(id uint64) error
}

// MealRepository defines the interface for meal data access
type MealRepository interface {
	// Create creates a meal and attaches its contents in one transaction
	Create(meal *models.Meal, contentIDs []uint64) error

	// FindByID finds a meal; detail loads the contents with their foods
	FindByID(id uint64, detail bool) (*models.Meal, error)

	// FindByIDs finds meals by ID
	FindByIDs(ids []uint64) ([]models.Meal, error)

	List(filter ListFilter) ([]models.Meal, int64, error)

	// ReplaceContents re-attaches the given food amounts to the meal and
	// detaches the others. Calories are left untouched.
	ReplaceContents(mealID uint64, contentIDs []uint64) error

	// Delete removes a meal, its contents and the daily meals using it
	Delete(id uint64) error
}

// DailyMealRepository defines the interface for daily meal data access
type DailyMealRepository interface {
	Create(d *models.DailyMeal) error

	// FindByID finds a daily meal; detail loads the slot meals
	FindByID(id uint64, detail bool) (*models.DailyMeal, error)

	List(filter ListFilter) ([]models.DailyMeal, int64, error)
	Update(d *models.DailyMeal) error
	Delete(id uint64) error
}
