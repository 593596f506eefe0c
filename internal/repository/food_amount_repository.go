package repository

import (
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormFoodAmountRepository is a GORM implementation of FoodAmountRepository
type GormFoodAmountRepository struct {
	db    *gorm.DB
	table ownedTable[models.FoodAmount]
}

// NewFoodAmountRepository creates a new FoodAmountRepository
func NewFoodAmountRepository(db *gorm.DB) FoodAmountRepository {
	return &GormFoodAmountRepository{
		db:    db,
		table: ownedTable[models.FoodAmount]{db: db, order: "id DESC"},
	}
}

func (r *GormFoodAmountRepository) Create(fa *models.FoodAmount) error {
	return r.db.Omit("Food", "User").Create(fa).Error
}

func (r *GormFoodAmountRepository) FindByID(id uint64) (*models.FoodAmount, error) {
	return r.table.findByID(id, "Food")
}

// FindByIDs finds food amounts with their foods loaded
func (r *GormFoodAmountRepository) FindByIDs(ids []uint64) ([]models.FoodAmount, error) {
	var amounts []models.FoodAmount
	if len(ids) == 0 {
		return amounts, nil
	}
	if err := r.db.Preload("Food").Where("id IN ?", ids).Order("id").Find(&amounts).Error; err != nil {
		return nil, err
	}
	return amounts, nil
}

func (r *GormFoodAmountRepository) List(filter ListFilter) ([]models.FoodAmount, int64, error) {
	return r.table.list(filter)
}

func (r *GormFoodAmountRepository) Update(fa *models.FoodAmount) error {
	return r.db.Omit("Food", "User").Save(fa).Error
}

func (r *GormFoodAmountRepository) Delete(id uint64) error {
	return r.table.delete(id)
}
