package repository

import (
	"github.com/yukikurage/diet-tracker-api/internal/database"
	"gorm.io/gorm"
)

// ownedTable implements the CRUD shared by tables carrying a user_id column.
type ownedTable[T any] struct {
	db    *gorm.DB
	order string
}

func (t ownedTable[T]) create(v *T) error {
	return t.db.Create(v).Error
}

func (t ownedTable[T]) findByID(id uint64, preload ...string) (*T, error) {
	var v T
	query := t.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (t ownedTable[T]) list(filter ListFilter, preload ...string) ([]T, int64, error) {
	var rows []T
	owned := func() *gorm.DB {
		return t.db.Model(new(T)).Scopes(database.OwnedBy(filter.UserID, filter.All))
	}

	query := owned()
	var total int64
	if filter.Pagination != nil {
		if err := owned().Count(&total).Error; err != nil {
			return nil, 0, err
		}
		query = query.Scopes(database.Paginate(*filter.Pagination))
	}

	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.Order(t.order).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	if filter.Pagination == nil {
		total = int64(len(rows))
	}
	return rows, total, nil
}

func (t ownedTable[T]) update(v *T) error {
	return t.db.Save(v).Error
}

func (t ownedTable[T]) delete(id uint64) error {
	return t.db.Delete(new(T), id).Error
}

// attach points the given food amounts at parentID through column and
// detaches every other food amount currently attached to it.
func attachFoodAmounts(tx *gorm.DB, column string, parentID uint64, ids []uint64) error {
	detach := tx.Table("food_amounts").Where(column+" = ?", parentID)
	if len(ids) > 0 {
		detach = detach.Where("id NOT IN ?", ids)
	}
	if err := detach.Update(column, nil).Error; err != nil {
		return err
	}

	if len(ids) == 0 {
		return nil
	}
	return tx.Table("food_amounts").Where("id IN ?", ids).Update(column, parentID).Error
}
