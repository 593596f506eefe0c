package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/diet-tracker-api/internal/config"
	"github.com/yukikurage/diet-tracker-api/internal/database"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/repository"
	"gorm.io/gorm"
)

type testEnv struct {
	db           *gorm.DB
	users        repository.UserRepository
	auth         *AuthService
	catalog      *CatalogService
	amounts      *FoodAmountService
	meals        *MealService
	measurements *MeasurementService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := database.Open(&config.Config{DBDriver: "sqlite", DBPath: ":memory:", GinMode: "release"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	amountRepo := repository.NewFoodAmountRepository(db)

	return testEnv{
		db:           db,
		users:        userRepo,
		auth:         NewAuthService(userRepo),
		catalog:      NewCatalogService(foodRepo, amountRepo),
		amounts:      NewFoodAmountService(amountRepo, foodRepo),
		meals:        NewMealService(repository.NewMealRepository(db), repository.NewDailyMealRepository(db), amountRepo),
		measurements: NewMeasurementService(repository.NewMeasurementRepository(db), repository.NewGoalRepository(db)),
	}
}

func (e testEnv) createUser(t *testing.T, email string) Actor {
	t.Helper()
	user, err := e.auth.Signup(SignupInput{Email: email, Password: "supersecret"})
	require.NoError(t, err)
	return Actor{UserID: user.ID}
}

func (e testEnv) createFood(t *testing.T, actor Actor, name string, calories int) *models.BaseFood {
	t.Helper()
	food, err := e.catalog.CreateFood(actor, FoodInput{Name: &name, Calories: &calories})
	require.NoError(t, err)
	return food
}

func (e testEnv) createAmount(t *testing.T, actor Actor, foodID uint64, amount int) *models.FoodAmount {
	t.Helper()
	fa, err := e.amounts.Create(actor, FoodAmountInput{Food: &foodID, Amount: &amount})
	require.NoError(t, err)
	return fa
}

func ptr[T any](v T) *T {
	return &v
}
