package database

import (
	"gorm.io/gorm"

	"github.com/htw-hub/questboard-api/internal/utils"
)

// Paginate limits a query to one page. A zero limit leaves it unbounded.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// WithTaskPeople preloads the creator and assignee shown on task cards.
func WithTaskPeople(db *gorm.DB) *gorm.DB {
	return db.Preload("Creator").Preload("Assignee")
}
