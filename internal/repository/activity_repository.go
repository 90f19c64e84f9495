package repository

import (
	"github.com/adisharma/job-tracker-api/internal/database"
	"github.com/adisharma/job-tracker-api/internal/models"
	"github.com/adisharma/job-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create appends an activity entry
func (r *GormActivityRepository) Create(activity *models.AdminActivity) error {
	return r.db.Create(activity).Error
}

// List retrieves activity entries, newest first, with pagination
func (r *GormActivityRepository) List(page, pageSize int) ([]models.AdminActivity, int64, error) {
	var total int64
	if err := r.db.Model(&models.AdminActivity{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	params := utils.PaginationParams{
		Page:   page,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	var entries []models.AdminActivity
	err := r.db.
		Preload("User").
		Preload("Job").
		Order("created_at DESC, id DESC").
		Scopes(database.Paginate(params)).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
