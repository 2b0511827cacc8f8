package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/htw-hub/questboard-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// GetPaginationParams reads page/limit from the query string, falling back to
// defaults for missing or out-of-range values.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit := ParseLimit(c, constants.DefaultPageSize, constants.MaxPageSize)

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// ParseLimit reads the "limit" query parameter. Non-numeric or non-positive
// values yield def; values above max are clamped to max.
func ParseLimit(c *gin.Context, def, max int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
