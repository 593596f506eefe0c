package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
)

func TestCreateFoodAmount_DefaultAmount(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "fa@example.com")
	food := env.createFood(t, actor, "Milk", 60)

	fa, err := env.amounts.Create(actor, FoodAmountInput{Food: &food.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, fa.Amount)
	assert.Equal(t, food.ID, fa.FoodID)
	assert.Equal(t, actor.UserID, fa.UserID)
	assert.Nil(t, fa.MealID)
	assert.Nil(t, fa.RecipeID)
}

func TestCreateFoodAmount_Validation(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "fa@example.com")
	food := env.createFood(t, actor, "Milk", 60)

	_, err := env.amounts.Create(actor, FoodAmountInput{Food: &food.ID, Amount: ptr(0)})
	verr, ok := apierrors.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "amount")

	_, err = env.amounts.Create(actor, FoodAmountInput{})
	verr, ok = apierrors.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, msgRequired, verr.Fields["food"])

	_, err = env.amounts.Create(actor, FoodAmountInput{Food: ptr(uint64(4242))})
	verr, ok = apierrors.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, `Invalid pk "4242" - object does not exist.`, verr.Fields["food"])
}

func TestCreateFoodAmount_AnyUsersFood(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	other := env.createUser(t, "other@example.com")
	food := env.createFood(t, other, "Shared Cheese", 400)

	fa, err := env.amounts.Create(owner, FoodAmountInput{Food: &food.ID, Amount: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, owner.UserID, fa.UserID)
	assert.Equal(t, 800, fa.Calories())
}

func TestUpdateFoodAmount(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "fa@example.com")
	milk := env.createFood(t, actor, "Milk", 60)
	juice := env.createFood(t, actor, "Juice", 45)
	fa := env.createAmount(t, actor, milk.ID, 1)

	updated, err := env.amounts.Update(actor, fa.ID, FoodAmountInput{Amount: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Amount)
	assert.Equal(t, milk.ID, updated.FoodID)

	updated, err = env.amounts.Update(actor, fa.ID, FoodAmountInput{Food: &juice.ID})
	require.NoError(t, err)
	assert.Equal(t, juice.ID, updated.FoodID)
	assert.Equal(t, 3, updated.Amount)

	other := env.createUser(t, "other@example.com")
	_, err = env.amounts.Update(other, fa.ID, FoodAmountInput{Amount: ptr(9)})
	assert.ErrorIs(t, err, ErrFoodAmountNotFound)
}
