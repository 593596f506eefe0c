package repository

import (
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailyMealRepository is a GORM implementation of DailyMealRepository
type GormDailyMealRepository struct {
	db    *gorm.DB
	table ownedTable[models.DailyMeal]
}

// NewDailyMealRepository creates a new DailyMealRepository
func NewDailyMealRepository(db *gorm.DB) DailyMealRepository {
	return &GormDailyMealRepository{
		db:    db,
		table: ownedTable[models.DailyMeal]{db: db, order: "id DESC"},
	}
}

func (r *GormDailyMealRepository) Create(d *models.DailyMeal) error {
	return r.db.Omit(clause.Associations).Create(d).Error
}

// FindByID finds a daily meal; detail loads the slot meals and their contents
func (r *GormDailyMealRepository) FindByID(id uint64, detail bool) (*models.DailyMeal, error) {
	if !detail {
		return r.table.findByID(id)
	}
	return r.table.findByID(id,
		"Breakfast", "Breakfast.MealContents",
		"Lunch", "Lunch.MealContents",
		"Dinner", "Dinner.MealContents",
		"Snack", "Snack.MealContents",
	)
}

func (r *GormDailyMealRepository) List(filter ListFilter) ([]models.DailyMeal, int64, error) {
	return r.table.list(filter)
}

func (r *GormDailyMealRepository) Update(d *models.DailyMeal) error {
	return r.db.Omit(clause.Associations).Save(d).Error
}

func (r *GormDailyMealRepository) Delete(id uint64) error {
	return r.table.delete(id)
}
