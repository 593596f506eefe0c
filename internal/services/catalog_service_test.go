package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/diet-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
	"github.com/yukikurage/diet-tracker-api/internal/utils"
)

func TestCreateFood_Defaults(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "chef@example.com")

	food, err := env.catalog.CreateFood(actor, FoodInput{Name: ptr("  Banana ")})
	require.NoError(t, err)

	assert.Equal(t, "Banana", food.Name)
	assert.Equal(t, 0, food.Calories)
	assert.Equal(t, constants.DefaultServing, food.ServingSize)
	assert.False(t, food.IsRecipe)
	assert.Equal(t, actor.UserID, food.UserID)
}

func TestCreateFood_Validation(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "chef@example.com")

	_, err := env.catalog.CreateFood(actor, FoodInput{Calories: ptr(-1), ServingSize: ptr(40000)})
	verr, ok := apierrors.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, msgRequired, verr.Fields["name"])
	assert.Contains(t, verr.Fields, "calories")
	assert.Contains(t, verr.Fields, "serving_size")
}

func TestListFoods_OwnerFilterAndOrder(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")

	env.createFood(t, alice, "Apple", 50)
	env.createFood(t, alice, "Carrot", 30)
	env.createFood(t, bob, "Bread", 80)

	rows, total, err := env.catalog.ListFoods(alice, ListInput{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Carrot", rows[0].Name)
	assert.Equal(t, "Apple", rows[1].Name)

	rows, total, err = env.catalog.ListFoods(alice, ListInput{All: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"Carrot", "Bread", "Apple"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})

	rows, total, err = env.catalog.ListFoods(alice, ListInput{
		All:        true,
		Pagination: &utils.PaginationParams{Page: 2, Limit: 2, Offset: 2},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, "Apple", rows[0].Name)
}

func TestFoodAccess_NonOwnerGetsNotFound(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	other := env.createUser(t, "other@example.com")
	food := env.createFood(t, owner, "Secret Sauce", 90)

	_, err := env.catalog.GetFood(other, food.ID)
	assert.ErrorIs(t, err, ErrFoodNotFound)

	_, err = env.catalog.UpdateFood(other, food.ID, FoodInput{Name: ptr("Stolen")})
	assert.ErrorIs(t, err, ErrFoodNotFound)

	assert.ErrorIs(t, env.catalog.DeleteFood(other, food.ID), ErrFoodNotFound)

	_, err = env.catalog.GetFood(owner, 12345)
	assert.ErrorIs(t, err, ErrFoodNotFound)
}

func TestCreateRecipe(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "cook@example.com")

	flour := env.createFood(t, actor, "Flour", 360)
	egg := env.createFood(t, actor, "Egg", 70)
	a := env.createAmount(t, actor, flour.ID, 2)
	b := env.createAmount(t, actor, egg.ID, 3)

	recipe, err := env.catalog.CreateRecipe(actor, RecipeInput{
		FoodInput:    FoodInput{Name: ptr("Pancakes"), Calories: ptr(900)},
		Instructions: ptr("Mix and fry."),
		Ingredients:  []uint64{a.ID, b.ID},
	})
	require.NoError(t, err)

	assert.True(t, recipe.BaseFood.IsRecipe)
	assert.Equal(t, "Pancakes", recipe.BaseFood.Name)
	assert.Equal(t, actor.UserID, recipe.BaseFood.UserID)
	assert.Equal(t, "Mix and fry.", recipe.Instructions)
	require.Len(t, recipe.Ingredients, 2)

	food, err := env.catalog.GetFood(actor, recipe.BaseFoodID)
	require.NoError(t, err)
	assert.True(t, food.IsRecipe)

	rows, _, err := env.catalog.ListRecipes(actor, ListInput{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	foods, _, err := env.catalog.ListFoods(actor, ListInput{})
	require.NoError(t, err)
	assert.Len(t, foods, 3)
}

func TestCreateRecipe_RejectsForeignIngredients(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	other := env.createUser(t, "other@example.com")

	food := env.createFood(t, other, "Salt", 0)
	fa := env.createAmount(t, other, food.ID, 1)

	_, err := env.catalog.CreateRecipe(owner, RecipeInput{
		FoodInput:   FoodInput{Name: ptr("Stew")},
		Ingredients: []uint64{fa.ID},
	})
	verr, ok := apierrors.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "ingredients")
}

func TestUpdateRecipe(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "cook@example.com")

	food := env.createFood(t, actor, "Tomato", 20)
	a := env.createAmount(t, actor, food.ID, 1)
	b := env.createAmount(t, actor, food.ID, 2)

	recipe, err := env.catalog.CreateRecipe(actor, RecipeInput{
		FoodInput:   FoodInput{Name: ptr("Salad")},
		Ingredients: []uint64{a.ID},
	})
	require.NoError(t, err)

	updated, err := env.catalog.UpdateRecipe(actor, recipe.BaseFoodID, RecipeInput{
		Instructions: ptr("Chop."),
	})
	require.NoError(t, err)
	assert.Equal(t, "Salad", updated.BaseFood.Name)
	assert.Equal(t, "Chop.", updated.Instructions)
	require.Len(t, updated.Ingredients, 1)

	updated, err = env.catalog.UpdateRecipe(actor, recipe.BaseFoodID, RecipeInput{
		FoodInput:   FoodInput{Name: ptr("Big Salad")},
		Ingredients: []uint64{b.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Big Salad", updated.BaseFood.Name)
	assert.True(t, updated.BaseFood.IsRecipe)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, b.ID, updated.Ingredients[0].ID)
}

func TestDeleteFood_RemovesReferencingAmounts(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "cook@example.com")

	food := env.createFood(t, actor, "Butter", 700)
	fa := env.createAmount(t, actor, food.ID, 1)

	require.NoError(t, env.catalog.DeleteFood(actor, food.ID))

	_, err := env.amounts.Get(actor, fa.ID)
	assert.ErrorIs(t, err, ErrFoodAmountNotFound)
}
