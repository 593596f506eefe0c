package dto

import "github.com/yukikurage/diet-tracker-api/internal/models"

// BaseFoodDTO represents a base food in API responses
type BaseFoodDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Calories    int    `json:"calories"`
	ServingSize int    `json:"serving_size"`
	IsRecipe    bool   `json:"is_recipe"`
	Image       string `json:"image"`
}

// FoodAmountDTO represents a food amount; food is the base food id
type FoodAmountDTO struct {
	ID     uint64 `json:"id"`
	Amount int    `json:"amount"`
	Food   uint64 `json:"food"`
}

// RecipeDTO represents a recipe in list responses (ingredient ids)
type RecipeDTO struct {
	BaseFoodDTO
	Instructions string   `json:"instructions"`
	Ingredients  []uint64 `json:"ingredients"`
}

// RecipeDetailDTO represents a recipe with nested ingredients
type RecipeDetailDTO struct {
	BaseFoodDTO
	Instructions string          `json:"instructions"`
	Ingredients  []FoodAmountDTO `json:"ingredients"`
}

// CalorieEstimateDTO is the response of the calorie estimate endpoint
type CalorieEstimateDTO struct {
	Calories    int `json:"calories"`
	ServingSize int `json:"serving_size"`
}

func ToBaseFoodDTO(f models.BaseFood) BaseFoodDTO {
	return BaseFoodDTO{
		ID:          f.ID,
		Name:        f.Name,
		Calories:    f.Calories,
		ServingSize: f.ServingSize,
		IsRecipe:    f.IsRecipe,
		Image:       f.Image,
	}
}

func ToBaseFoodDTOs(rows []models.BaseFood) []BaseFoodDTO {
	items := make([]BaseFoodDTO, len(rows))
	for i, f := range rows {
		items[i] = ToBaseFoodDTO(f)
	}
	return items
}

func ToFoodAmountDTO(fa models.FoodAmount) FoodAmountDTO {
	return FoodAmountDTO{
		ID:     fa.ID,
		Amount: fa.Amount,
		Food:   fa.FoodID,
	}
}

func ToFoodAmountDTOs(rows []models.FoodAmount) []FoodAmountDTO {
	items := make([]FoodAmountDTO, len(rows))
	for i, fa := range rows {
		items[i] = ToFoodAmountDTO(fa)
	}
	return items
}

func foodAmountIDs(rows []models.FoodAmount) []uint64 {
	ids := make([]uint64, len(rows))
	for i, fa := range rows {
		ids[i] = fa.ID
	}
	return ids
}

func recipeFood(r models.Recipe) BaseFoodDTO {
	food := ToBaseFoodDTO(r.BaseFood)
	food.ID = r.BaseFoodID
	return food
}

// ToRecipeDTO converts a Recipe model to its list shape
func ToRecipeDTO(r models.Recipe) RecipeDTO {
	return RecipeDTO{
		BaseFoodDTO:  recipeFood(r),
		Instructions: r.Instructions,
		Ingredients:  foodAmountIDs(r.Ingredients),
	}
}

func ToRecipeDTOs(rows []models.Recipe) []RecipeDTO {
	items := make([]RecipeDTO, len(rows))
	for i, r := range rows {
		items[i] = ToRecipeDTO(r)
	}
	return items
}

// ToRecipeDetailDTO converts a Recipe model to its detail shape
func ToRecipeDetailDTO(r models.Recipe) RecipeDetailDTO {
	return RecipeDetailDTO{
		BaseFoodDTO:  recipeFood(r),
		Instructions: r.Instructions,
		Ingredients:  ToFoodAmountDTOs(r.Ingredients),
	}
}
