package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/diet-tracker-api/internal/constants"
	"github.com/yukikurage/diet-tracker-api/internal/metrics"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"github.com/yukikurage/diet-tracker-api/internal/repository"
)

var (
	ErrFoodNotFound   = errors.New("base food not found")
	ErrRecipeNotFound = errors.New("recipe not found")
)

// CatalogService manages base foods and recipes.
type CatalogService struct {
	foods   repository.FoodRepository
	amounts repository.FoodAmountRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(foods repository.FoodRepository, amounts repository.FoodAmountRepository) *CatalogService {
	return &CatalogService{
		foods:   foods,
		amounts: amounts,
	}
}

// FoodInput carries the client writable base food fields. is_recipe is
// never part of it.
type FoodInput struct {
	Name        *string
	Calories    *int
	ServingSize *int
}

func (in FoodInput) validate(fields fieldErrors, create bool) {
	if in.Name != nil || create {
		name := ""
		if in.Name != nil {
			name = strings.TrimSpace(*in.Name)
		}
		switch {
		case name == "":
			fields["name"] = msgRequired
		case len(name) > constants.MaxNameLength:
			fields["name"] = fmt.Sprintf("Ensure this field has no more than %d characters.", constants.MaxNameLength)
		}
	}
	fields.smallInt("calories", in.Calories, 0)
	fields.smallInt("serving_size", in.ServingSize, 0)
}

func (in FoodInput) apply(f *models.BaseFood) {
	if in.Name != nil {
		f.Name = strings.TrimSpace(*in.Name)
	}
	if in.Calories != nil {
		f.Calories = *in.Calories
	}
	if in.ServingSize != nil {
		f.ServingSize = *in.ServingSize
	}
}

func (in FoodInput) newFood(owner uint64) models.BaseFood {
	f := models.BaseFood{
		Calories:    intOr(in.Calories, 0),
		ServingSize: intOr(in.ServingSize, constants.DefaultServing),
		UserID:      owner,
	}
	in.apply(&f)
	return f
}

// ListFoods lists base foods, recipes included, by name descending.
func (s *CatalogService) ListFoods(actor Actor, in ListInput) ([]models.BaseFood, int64, error) {
	rows, total, err := s.foods.ListFoods(actor.filter(in))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list foods: %w", err)
	}
	return rows, total, nil
}

func (s *CatalogService) GetFood(actor Actor, id uint64) (*models.BaseFood, error) {
	return findOwned(actor, ErrFoodNotFound,
		func() (*models.BaseFood, error) { return s.foods.FindFoodByID(id) },
		func(f *models.BaseFood) uint64 { return f.UserID },
	)
}

// CreateFood creates a plain base food owned by the actor.
func (s *CatalogService) CreateFood(actor Actor, in FoodInput) (*models.BaseFood, error) {
	fields := fieldErrors{}
	in.validate(fields, true)
	if err := fields.err(); err != nil {
		return nil, err
	}

	food := in.newFood(actor.UserID)
	food.IsRecipe = false
	if err := s.foods.CreateFood(&food); err != nil {
		return nil, fmt.Errorf("failed to create food: %w", err)
	}
	metrics.RecordsCreated.WithLabelValues("base_food").Inc()
	return &food, nil
}

func (s *CatalogService) UpdateFood(actor Actor, id uint64, in FoodInput) (*models.BaseFood, error) {
	food, err := s.GetFood(actor, id)
	if err != nil {
		return nil, err
	}

	fields := fieldErrors{}
	in.validate(fields, false)
	if err := fields.err(); err != nil {
		return nil, err
	}

	in.apply(food)
	if err := s.foods.UpdateFood(food); err != nil {
		return nil, fmt.Errorf("failed to update food: %w", err)
	}
	return food, nil
}

// SetFoodImage stores the URL of an uploaded food picture. Recipes share
// the picture of their base food row.
func (s *CatalogService) SetFoodImage(actor Actor, id uint64, url string) (*models.BaseFood, error) {
	food, err := s.GetFood(actor, id)
	if err != nil {
		return nil, err
	}
	food.Image = url
	if err := s.foods.UpdateFood(food); err != nil {
		return nil, fmt.Errorf("failed to update food: %w", err)
	}
	return food, nil
}

// DeleteFood removes a base food or recipe together with every food amount
// that references it.
func (s *CatalogService) DeleteFood(actor Actor, id uint64) error {
	if _, err := s.GetFood(actor, id); err != nil {
		return err
	}
	if err := s.foods.DeleteFood(id); err != nil {
		return fmt.Errorf("failed to delete food: %w", err)
	}
	return nil
}

// RecipeInput carries recipe fields. Ingredients are replaced when not nil.
type RecipeInput struct {
	FoodInput
	Instructions *string
	Ingredients  []uint64
}

func (s *CatalogService) ListRecipes(actor Actor, in ListInput) ([]models.Recipe, int64, error) {
	rows, total, err := s.foods.ListRecipes(actor.filter(in))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}
	return rows, total, nil
}

// GetRecipe loads a recipe with its base food and ingredients. Ingredient
// foods are loaded for detail responses.
func (s *CatalogService) GetRecipe(actor Actor, id uint64) (*models.Recipe, error) {
	return findOwned(actor, ErrRecipeNotFound,
		func() (*models.Recipe, error) { return s.foods.FindRecipeByID(id) },
		func(r *models.Recipe) uint64 { return r.BaseFood.UserID },
	)
}

// CreateRecipe creates a recipe owned by the actor. The base food row is
// flagged as a recipe.
func (s *CatalogService) CreateRecipe(actor Actor, in RecipeInput) (*models.Recipe, error) {
	fields := fieldErrors{}
	in.validate(fields, true)
	ingredients := uniqueUint64(in.Ingredients)
	if err := s.checkIngredients(actor, fields, ingredients); err != nil {
		return nil, err
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{BaseFood: in.newFood(actor.UserID)}
	if in.Instructions != nil {
		recipe.Instructions = *in.Instructions
	}

	if err := s.foods.CreateRecipe(recipe, ingredients); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	metrics.RecordsCreated.WithLabelValues("recipe").Inc()
	return s.reloadRecipe(recipe.BaseFoodID)
}

func (s *CatalogService) UpdateRecipe(actor Actor, id uint64, in RecipeInput) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(actor, id)
	if err != nil {
		return nil, err
	}

	fields := fieldErrors{}
	in.validate(fields, false)
	var ingredients []uint64
	if in.Ingredients != nil {
		ingredients = uniqueUint64(in.Ingredients)
		if err := s.checkIngredients(actor, fields, ingredients); err != nil {
			return nil, err
		}
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	in.apply(&recipe.BaseFood)
	recipe.BaseFood.IsRecipe = true
	if in.Instructions != nil {
		recipe.Instructions = *in.Instructions
	}

	if err := s.foods.UpdateRecipe(recipe, ingredients); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return s.reloadRecipe(recipe.BaseFoodID)
}

// checkIngredients requires every ingredient to exist and belong to the
// actor.
func (s *CatalogService) checkIngredients(actor Actor, fields fieldErrors, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	amounts, err := s.amounts.FindByIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to load ingredients: %w", err)
	}

	found := make(map[uint64]models.FoodAmount, len(amounts))
	for _, fa := range amounts {
		found[fa.ID] = fa
	}
	for _, id := range ids {
		fa, ok := found[id]
		if !ok || !actor.CanAccess(fa.UserID) {
			fields.missingPK("ingredients", id)
			return nil
		}
	}
	return nil
}

func (s *CatalogService) reloadRecipe(id uint64) (*models.Recipe, error) {
	recipe, err := s.foods.FindRecipeByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload recipe: %w", err)
	}
	return recipe, nil
}
