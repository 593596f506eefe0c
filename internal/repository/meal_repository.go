package repository

import (
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMealRepository is a GORM implementation of MealRepository
type GormMealRepository struct {
	db    *gorm.DB
	table ownedTable[models.Meal]
}

// NewMealRepository creates a new MealRepository
func NewMealRepository(db *gorm.DB) MealRepository {
	return &GormMealRepository{
		db:    db,
		table: ownedTable[models.Meal]{db: db, order: "id DESC"},
	}
}

// Create creates a meal and attaches its contents in one transaction
func (r *GormMealRepository) Create(meal *models.Meal, contentIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(meal).Error; err != nil {
			return err
		}
		return attachFoodAmounts(tx, "meal_id", meal.ID, contentIDs)
	})
}

// FindByID finds a meal; detail loads the contents with their foods
func (r *GormMealRepository) FindByID(id uint64, detail bool) (*models.Meal, error) {
	if detail {
		return r.table.findByID(id, "MealContents", "MealContents.Food")
	}
	return r.table.findByID(id, "MealContents")
}

// FindByIDs finds meals by ID
func (r *GormMealRepository) FindByIDs(ids []uint64) ([]models.Meal, error) {
	var meals []models.Meal
	if len(ids) == 0 {
		return meals, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *GormMealRepository) List(filter ListFilter) ([]models.Meal, int64, error) {
	return r.table.list(filter, "MealContents")
}

// ReplaceContents re-attaches the given food amounts to the meal
func (r *GormMealRepository) ReplaceContents(mealID uint64, contentIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return attachFoodAmounts(tx, "meal_id", mealID, contentIDs)
	})
}

// Delete removes a meal, its contents and every daily meal using it
func (r *GormMealRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", id).Delete(&models.FoodAmount{}).Error; err != nil {
			return err
		}

		if err := tx.Where("breakfast_id = ? OR lunch_id = ? OR dinner_id = ? OR snack_id = ?", id, id, id, id).
			Delete(&models.DailyMeal{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Meal{}, id).Error
	})
}
