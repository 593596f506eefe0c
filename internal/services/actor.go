package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/diet-tracker-api/internal/repository"
	"github.com/yukikurage/diet-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID  uint64
	IsStaff bool
}

// CanAccess reports whether the actor may read or change a row owned by
// ownerID. Staff may access every row.
func (a Actor) CanAccess(ownerID uint64) bool {
	return a.IsStaff || a.UserID == ownerID
}

// ListInput selects the rows returned by a listing.
type ListInput struct {
	All        bool
	Pagination *utils.PaginationParams
}

func (a Actor) filter(in ListInput) repository.ListFilter {
	return repository.ListFilter{
		UserID:     a.UserID,
		All:        in.All,
		Pagination: in.Pagination,
	}
}

var ErrNotFound = errors.New("not found")

// findOwned loads a row and hides rows of other users behind ErrNotFound.
func findOwned[T any](actor Actor, notFound error, find func() (*T, error), owner func(*T) uint64) (*T, error) {
	row, err := find()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	if !actor.CanAccess(owner(row)) {
		return nil, notFound
	}
	return row, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
