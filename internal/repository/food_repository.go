package repository

import (
	"github.com/yukikurage/diet-tracker-api/internal/database"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFoodRepository is a GORM implementation of FoodRepository
type GormFoodRepository struct {
	db    *gorm.DB
	foods ownedTable[models.BaseFood]
}

// NewFoodRepository creates a new FoodRepository
func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &GormFoodRepository{
		db:    db,
		foods: ownedTable[models.BaseFood]{db: db, order: "name DESC, id DESC"},
	}
}

// CreateFood creates a plain base food
func (r *GormFoodRepository) CreateFood(food *models.BaseFood) error {
	return r.foods.create(food)
}

// FindFoodByID finds a base food by ID
func (r *GormFoodRepository) FindFoodByID(id uint64) (*models.BaseFood, error) {
	return r.foods.findByID(id)
}

// ListFoods lists base foods ordered by name descending
func (r *GormFoodRepository) ListFoods(filter ListFilter) ([]models.BaseFood, int64, error) {
	return r.foods.list(filter)
}

// UpdateFood saves a base food
func (r *GormFoodRepository) UpdateFood(food *models.BaseFood) error {
	return r.foods.update(food)
}

// DeleteFood removes a base food with its recipe row, ingredients and the
// food amounts pointing at it
func (r *GormFoodRepository) DeleteFood(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("food_id = ? OR recipe_id = ?", id, id).Delete(&models.FoodAmount{}).Error; err != nil {
			return err
		}

		if err := tx.Where("base_food_id = ?", id).Delete(&models.Recipe{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.BaseFood{}, id).Error
	})
}

// CreateRecipe creates the base food row, the recipe row and attaches the
// ingredients in one transaction
func (r *GormFoodRepository) CreateRecipe(recipe *models.Recipe, ingredientIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		recipe.BaseFood.IsRecipe = true
		if err := tx.Create(&recipe.BaseFood).Error; err != nil {
			return err
		}

		recipe.BaseFoodID = recipe.BaseFood.ID
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}

		return attachFoodAmounts(tx, "recipe_id", recipe.BaseFoodID, ingredientIDs)
	})
}

// FindRecipeByID finds a recipe with its base food and ingredients
func (r *GormFoodRepository) FindRecipeByID(id uint64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.
		Preload("BaseFood").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Ingredients.Food").
		First(&recipe, "base_food_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes lists recipes ordered by id descending
func (r *GormFoodRepository) ListRecipes(filter ListFilter) ([]models.Recipe, int64, error) {
	var recipes []models.Recipe

	owned := func() *gorm.DB {
		query := r.db.Model(&models.Recipe{})
		if !filter.All {
			query = query.Where("base_food_id IN (?)",
				r.db.Model(&models.BaseFood{}).Select("id").Where("user_id = ?", filter.UserID))
		}
		return query
	}

	query := owned()
	var total int64
	if filter.Pagination != nil {
		if err := owned().Count(&total).Error; err != nil {
			return nil, 0, err
		}
		query = query.Scopes(database.Paginate(*filter.Pagination))
	}

	if err := query.
		Preload("BaseFood").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("base_food_id DESC").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	if filter.Pagination == nil {
		total = int64(len(recipes))
	}
	return recipes, total, nil
}

// UpdateRecipe saves a recipe and its base food. Ingredients are replaced
// when ingredientIDs is not nil.
func (r *GormFoodRepository) UpdateRecipe(recipe *models.Recipe, ingredientIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&recipe.BaseFood).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Recipe{}).
			Where("base_food_id = ?", recipe.BaseFoodID).
			Update("instructions", recipe.Instructions).Error; err != nil {
			return err
		}

		if ingredientIDs == nil {
			return nil
		}
		return attachFoodAmounts(tx, "recipe_id", recipe.BaseFoodID, ingredientIDs)
	})
}
