package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/diet-tracker-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// NewPaginationParams clamps page and limit and computes the offset.
// Out of range limits fall back to the default page size.
func NewPaginationParams(page, limit int) PaginationParams {
	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}
	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// OptionalPagination returns pagination parameters only when the client
// asked for a page with "page" or "limit". Listings are unpaginated
// otherwise.
func OptionalPagination(c *gin.Context) *PaginationParams {
	rawPage, hasPage := c.GetQuery("page")
	rawLimit, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return nil
	}

	page, _ := strconv.Atoi(rawPage)
	limit, _ := strconv.Atoi(rawLimit)
	params := NewPaginationParams(page, limit)
	return &params
}
