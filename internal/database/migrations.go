package database

import (
	"fmt"

	applog "github.com/yukikurage/diet-tracker-api/internal/logger"
	"github.com/yukikurage/diet-tracker-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type compositeIndex struct {
	model   interface{}
	name    string
	columns []string
}

// AddIndexes adds the composite indexes used by owner scoped listings.
func AddIndexes(db *gorm.DB) error {
	indexes := []compositeIndex{
		// Owner listings ordered by name or id
		{&models.BaseFood{}, "idx_base_foods_user_name", []string{"user_id", "name"}},
		{&models.BaseFood{}, "idx_base_foods_user_recipe", []string{"user_id", "is_recipe"}},
		{&models.Measurement{}, "idx_measurements_user_date", []string{"user_id", "date"}},
		{&models.DailyMeal{}, "idx_daily_meals_user_date", []string{"user_id", "date"}},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			applog.Log.Debug("index_exists", zap.String("index", idx.name))
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		table := db.Statement.Quote(stmt.Schema.Table)
		columns := ""
		for i, col := range idx.columns {
			if i > 0 {
				columns += ", "
			}
			columns += db.Statement.Quote(col)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", db.Statement.Quote(idx.name), table, columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		applog.Log.Info("index_created", zap.String("index", idx.name), zap.String("table", stmt.Schema.Table))
	}

	return nil
}
