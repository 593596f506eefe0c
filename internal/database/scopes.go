package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/diet-tracker-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OwnedBy restricts a query to rows of the given user unless all is set.
func OwnedBy(userID uint64, all bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if all {
			return db
		}
		return db.Where("user_id = ?", userID)
	}
}
