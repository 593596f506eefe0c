package repository

import (
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormMeasurementRepository is a GORM implementation of MeasurementRepository
type GormMeasurementRepository struct {
	table ownedTable[models.Measurement]
}

// NewMeasurementRepository creates a new MeasurementRepository
func NewMeasurementRepository(db *gorm.DB) MeasurementRepository {
	return &GormMeasurementRepository{table: ownedTable[models.Measurement]{db: db, order: "id DESC"}}
}

func (r *GormMeasurementRepository) Create(m *models.Measurement) error {
	return r.table.create(m)
}

func (r *GormMeasurementRepository) FindByID(id uint64) (*models.Measurement, error) {
	return r.table.findByID(id)
}

func (r *GormMeasurementRepository) List(filter ListFilter) ([]models.Measurement, int64, error) {
	return r.table.list(filter)
}

func (r *GormMeasurementRepository) Update(m *models.Measurement) error {
	return r.table.update(m)
}

func (r *GormMeasurementRepository) Delete(id uint64) error {
	return r.table.delete(id)
}

// GormGoalRepository is a GORM implementation of GoalRepository
type GormGoalRepository struct {
	table ownedTable[models.UserGoal]
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &GormGoalRepository{table: ownedTable[models.UserGoal]{db: db, order: "id DESC"}}
}

func (r *GormGoalRepository) Create(g *models.UserGoal) error {
	return r.table.create(g)
}

func (r *GormGoalRepository) FindByID(id uint64) (*models.UserGoal, error) {
	return r.table.findByID(id)
}

func (r *GormGoalRepository) List(filter ListFilter) ([]models.UserGoal, int64, error) {
	return r.table.list(filter)
}

func (r *GormGoalRepository) Update(g *models.UserGoal) error {
	return r.table.update(g)
}

func (r *GormGoalRepository) Delete(id uint64) error {
	return r.table.delete(id)
}
