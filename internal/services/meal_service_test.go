package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/utils"
)

func TestComputeMealCalories(t *testing.T) {
	contents := []models.FoodAmount{
		{Amount: 2, Food: models.BaseFood{Calories: 100}},
		{Amount: 1, Food: models.BaseFood{Calories: 50}},
	}
	assert.Equal(t, 250, ComputeMealCalories(contents))
	assert.Equal(t, 0, ComputeMealCalories(nil))
}

func TestComputeDailyCalories(t *testing.T) {
	assert.Equal(t, 650, ComputeDailyCalories(&models.Meal{Calories: 250}, nil, &models.Meal{Calories: 400}, nil))
	assert.Equal(t, 0, ComputeDailyCalories(nil, nil, nil, nil))
}

func TestCreateMeal_ComputesCalories(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "meal@example.com")

	apple := env.createFood(t, actor, "Apple", 100)
	yogurt := env.createFood(t, actor, "Yogurt", 50)
	a := env.createAmount(t, actor, apple.ID, 2)
	y := env.createAmount(t, actor, yogurt.ID, 1)

	meal, err := env.meals.CreateMeal(actor, []uint64{a.ID, y.ID, a.ID})
	require.NoError(t, err)

	assert.Equal(t, 250, meal.Calories)
	assert.Equal(t, actor.UserID, meal.UserID)
	assert.Len(t, meal.MealContents, 2)
}

func TestCreateMeal_RejectsForeignContents(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	other := env.createUser(t, "other@example.com")

	food := env.createFood(t, other, "Cake", 300)
	fa := env.createAmount(t, other, food.ID, 1)

	_, err := env.meals.CreateMeal(owner, []uint64{fa.ID})
	verr, ok := apierrors.AsValidationError(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Contains(t, verr.Fields, "meal_contents")

	_, err = env.meals.CreateMeal(owner, []uint64{9999})
	_, ok = apierrors.AsValidationError(err)
	assert.True(t, ok)
}

func TestMealCalories_NotRecomputedOnUpdate(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "stale@example.com")

	food := env.createFood(t, actor, "Pasta", 200)
	first := env.createAmount(t, actor, food.ID, 1)
	second := env.createAmount(t, actor, food.ID, 3)

	meal, err := env.meals.CreateMeal(actor, []uint64{first.ID})
	require.NoError(t, err)
	require.Equal(t, 200, meal.Calories)

	updated, err := env.meals.UpdateMeal(actor, meal.ID, []uint64{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, 200, updated.Calories)
	assert.Len(t, updated.MealContents, 2)

	_, err = env.catalog.UpdateFood(actor, food.ID, FoodInput{Calories: ptr(999)})
	require.NoError(t, err)

	reloaded, err := env.meals.GetMeal(actor, meal.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 200, reloaded.Calories)
}

func TestUpdateMeal_DetachesRemovedContents(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "detach@example.com")

	food := env.createFood(t, actor, "Egg", 70)
	a := env.createAmount(t, actor, food.ID, 1)
	b := env.createAmount(t, actor, food.ID, 2)

	meal, err := env.meals.CreateMeal(actor, []uint64{a.ID, b.ID})
	require.NoError(t, err)

	updated, err := env.meals.UpdateMeal(actor, meal.ID, []uint64{})
	require.NoError(t, err)
	assert.Empty(t, updated.MealContents)

	fa, err := env.amounts.Get(actor, a.ID)
	require.NoError(t, err)
	assert.Nil(t, fa.MealID)
}

func TestCreateDailyMeal_ComputesCalories(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "daily@example.com")

	food := env.createFood(t, actor, "Oats", 50)
	breakfast, err := env.meals.CreateMeal(actor, []uint64{env.createAmount(t, actor, food.ID, 5).ID})
	require.NoError(t, err)
	dinner, err := env.meals.CreateMeal(actor, []uint64{env.createAmount(t, actor, food.ID, 8).ID})
	require.NoError(t, err)

	daily, err := env.meals.CreateDailyMeal(actor, DailyMealInput{
		Slots: map[models.MealSlot]*uint64{
			models.SlotBreakfast: &breakfast.ID,
			models.SlotDinner:    &dinner.ID,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 650, daily.Calories)
	assert.Equal(t, utils.Today(), utils.TruncateDate(daily.Date))
	assert.Nil(t, daily.Lunch)
	assert.Nil(t, daily.Snack)
	require.NotNil(t, daily.Breakfast)
	assert.Equal(t, breakfast.ID, daily.Breakfast.ID)
}

func TestCreateDailyMeal_AllSlotsAbsent(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "empty@example.com")

	date := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	daily, err := env.meals.CreateDailyMeal(actor, DailyMealInput{Date: &date, WaterGlasses: ptr(4)})
	require.NoError(t, err)

	assert.Equal(t, 0, daily.Calories)
	assert.Equal(t, 4, daily.WaterGlasses)
	assert.Equal(t, "2024-03-01", utils.FormatDate(daily.Date))
}

func TestUpdateDailyMeal_KeepsCalories(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "keep@example.com")

	food := env.createFood(t, actor, "Soup", 100)
	lunch, err := env.meals.CreateMeal(actor, []uint64{env.createAmount(t, actor, food.ID, 3).ID})
	require.NoError(t, err)
	snack, err := env.meals.CreateMeal(actor, []uint64{env.createAmount(t, actor, food.ID, 1).ID})
	require.NoError(t, err)

	daily, err := env.meals.CreateDailyMeal(actor, DailyMealInput{
		Slots: map[models.MealSlot]*uint64{models.SlotLunch: &lunch.ID},
	})
	require.NoError(t, err)
	require.Equal(t, 300, daily.Calories)

	updated, err := env.meals.UpdateDailyMeal(actor, daily.ID, DailyMealInput{
		Slots: map[models.MealSlot]*uint64{
			models.SlotLunch: nil,
			models.SlotSnack: &snack.ID,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 300, updated.Calories)
	assert.Nil(t, updated.LunchID)
	require.NotNil(t, updated.SnackID)
	assert.Equal(t, snack.ID, *updated.SnackID)
}

func TestDeleteMeal_CascadesToDailyMeals(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "cascade@example.com")

	food := env.createFood(t, actor, "Tea", 5)
	fa := env.createAmount(t, actor, food.ID, 1)
	meal, err := env.meals.CreateMeal(actor, []uint64{fa.ID})
	require.NoError(t, err)
	daily, err := env.meals.CreateDailyMeal(actor, DailyMealInput{
		Slots: map[models.MealSlot]*uint64{models.SlotSnack: &meal.ID},
	})
	require.NoError(t, err)

	require.NoError(t, env.meals.DeleteMeal(actor, meal.ID))

	_, err = env.meals.GetDailyMeal(actor, daily.ID, false)
	assert.ErrorIs(t, err, ErrDailyMealNotFound)
	_, err = env.amounts.Get(actor, fa.ID)
	assert.ErrorIs(t, err, ErrFoodAmountNotFound)
}

func TestMealAccess_OwnerScoped(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "a@example.com")
	other := env.createUser(t, "b@example.com")

	meal, err := env.meals.CreateMeal(owner, nil)
	require.NoError(t, err)

	_, err = env.meals.GetMeal(other, meal.ID, false)
	assert.ErrorIs(t, err, ErrMealNotFound)
	assert.ErrorIs(t, env.meals.DeleteMeal(other, meal.ID), ErrMealNotFound)

	staff := Actor{UserID: other.UserID, IsStaff: true}
	_, err = env.meals.GetMeal(staff, meal.ID, false)
	assert.NoError(t, err)

	rows, total, err := env.meals.ListMeals(other, ListInput{})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, int64(0), total)

	rows, _, err = env.meals.ListMeals(other, ListInput{All: true})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
