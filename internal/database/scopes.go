package database

import (
	"gorm.io/gorm"

	"github.com/adisharma/job-tracker-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OwnedBy scopes a query to a single user's rows when userID is set;
// a nil userID leaves the query unscoped (staff-only views).
func OwnedBy(userID *uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if userID == nil {
			return db
		}
		return db.Where("user_id = ?", *userID)
	}
}
