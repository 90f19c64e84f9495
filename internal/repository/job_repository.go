package repository

import (
	"strings"
	"time"

	"github.com/adisharma/job-tracker-api/internal/database"
	"github.com/adisharma/job-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a new job
func (r *GormJobRepository) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

// FindByID finds a job by ID
func (r *GormJobRepository) FindByID(id uint64) (*models.Job, error) {
	var job models.Job
	if err := r.db.First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// apply builds the filtered query. Predicates are attached in a fixed
// order (status, text, apply window, follow window) and AND-combine.
func (r *GormJobRepository) apply(filter JobFilter) *gorm.DB {
	query := r.db.Model(&models.Job{}).Scopes(database.OwnedBy(filter.UserID))

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(company) LIKE ?", pattern, pattern)
	}
	if filter.ApplyFrom != nil {
		query = query.Where("apply_date >= ?", *filter.ApplyFrom)
	}
	if filter.ApplyTo != nil {
		query = query.Where("apply_date <= ?", *filter.ApplyTo)
	}

	followFiltered := false
	if filter.FollowFrom != nil {
		query = query.Where("follow_up_date >= ?", *filter.FollowFrom)
		followFiltered = true
	}
	if filter.FollowTo != nil {
		query = query.Where("follow_up_date <= ?", *filter.FollowTo)
		followFiltered = true
	}
	if filter.FollowBefore != nil {
		query = query.Where("follow_up_date < ?", *filter.FollowBefore)
		followFiltered = true
	}
	if followFiltered {
		query = query.Where("follow_up_done = ?", false)
	}

	return query
}

func order(query *gorm.DB, sort JobSort) *gorm.DB {
	switch sort {
	case SortDateAsc:
		return query.Order("apply_date ASC")
	case SortDateDesc:
		return query.Order("apply_date DESC")
	case SortPriority:
		return query.Order("CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END, apply_date ASC")
	default:
		return query.Order("id ASC")
	}
}

// List retrieves jobs with filtering, sorting and pagination
func (r *GormJobRepository) List(filter JobFilter) ([]models.Job, int64, int, error) {
	query := r.apply(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	// Clamp to the nearest valid page rather than returning an empty page.
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var jobs []models.Job
	listQuery := order(query, filter.Sort).
		Offset((page - 1) * pageSize).
		Limit(pageSize)

	if err := listQuery.Find(&jobs).Error; err != nil {
		return nil, 0, 0, err
	}

	return jobs, total, page, nil
}

// ListAll retrieves every job matching the filter without pagination
func (r *GormJobRepository) ListAll(filter JobFilter) ([]models.Job, error) {
	var jobs []models.Job
	if err := order(r.apply(filter), filter.Sort).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Update updates a job
func (r *GormJobRepository) Update(job *models.Job) error {
	return r.db.Save(job).Error
}

// Delete soft deletes a job
func (r *GormJobRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Job{}, id).Error
}

// StatusCounts counts jobs per status over the bare scope
func (r *GormJobRepository) StatusCounts(userID *uint64) (StatusCounts, error) {
	type statusRow struct {
		Status models.JobStatus
		Count  int64
	}

	query := r.db.Model(&models.Job{}).
		Select("status, COUNT(*) AS count").
		Group("status")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var rows []statusRow
	if err := query.Scan(&rows).Error; err != nil {
		return StatusCounts{}, err
	}

	var counts StatusCounts
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case models.StatusApplied:
			counts.Applied = row.Count
		case models.StatusInterview:
			counts.Interview = row.Count
		case models.StatusRejected:
			counts.Rejected = row.Count
		case models.StatusOffered:
			counts.Offered = row.Count
		}
	}
	return counts, nil
}

func (r *GormJobRepository) scoped(userID *uint64) *gorm.DB {
	return r.db.Model(&models.Job{}).Scopes(database.OwnedBy(userID))
}

// CountFollowOn counts pending follow-ups due exactly on date
func (r *GormJobRepository) CountFollowOn(userID *uint64, date time.Time) (int64, error) {
	var count int64
	err := r.scoped(userID).
		Where("follow_up_date = ? AND follow_up_done = ?", date, false).
		Count(&count).Error
	return count, err
}

// CountFollowBefore counts pending follow-ups due strictly before date
func (r *GormJobRepository) CountFollowBefore(userID *uint64, date time.Time) (int64, error) {
	var count int64
	err := r.scoped(userID).
		Where("follow_up_date < ? AND follow_up_done = ?", date, false).
		Count(&count).Error
	return count, err
}

// CountInProgress counts jobs neither rejected nor offered
func (r *GormJobRepository) CountInProgress(userID *uint64) (int64, error) {
	var count int64
	err := r.scoped(userID).
		Where("status NOT IN ?", []models.JobStatus{models.StatusRejected, models.StatusOffered}).
		Count(&count).Error
	return count, err
}

// CountAppliedBetween counts applied-status jobs applied within [from, to]
func (r *GormJobRepository) CountAppliedBetween(userID *uint64, from, to time.Time) (int64, error) {
	var count int64
	err := r.scoped(userID).
		Where("status = ? AND apply_date >= ? AND apply_date <= ?", models.StatusApplied, from, to).
		Count(&count).Error
	return count, err
}

// EarliestApplyDate returns the oldest apply date in the scope
func (r *GormJobRepository) EarliestApplyDate(userID *uint64) (*time.Time, error) {
	var job models.Job
	query := r.db.Scopes(database.OwnedBy(userID)).Order("apply_date ASC")
	if err := query.First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &job.ApplyDate, nil
}

// ListDueFollowups lists pending follow-ups due on or before today
func (r *GormJobRepository) ListDueFollowups(userID uint64, today time.Time) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("user_id = ?", userID).
		Where("follow_up_date <= ? AND follow_up_done = ?", today, false).
		Where("status NOT IN ?", []models.JobStatus{models.StatusRejected, models.StatusOffered}).
		Order("follow_up_date ASC").
		Find(&jobs).Error
	return jobs, err
}

// ListUpcomingFollowups lists pending follow-ups in [today, end]
func (r *GormJobRepository) ListUpcomingFollowups(userID uint64, today, end time.Time) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("user_id = ?", userID).
		Where("follow_up_date >= ? AND follow_up_date <= ? AND follow_up_done = ?", today, end, false).
		Where("status NOT IN ?", []models.JobStatus{models.StatusRejected, models.StatusOffered}).
		Order("follow_up_date ASC").
		Find(&jobs).Error
	return jobs, err
}

// DistinctOwnerCount counts users owning at least one job
func (r *GormJobRepository) DistinctOwnerCount() (int64, error) {
	var count int64
	err := r.db.Model(&models.Job{}).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

// TopCompanies returns the most frequent companies, highest count first
func (r *GormJobRepository) TopCompanies(limit int) ([]CompanyCount, error) {
	var rows []CompanyCount
	err := r.db.Model(&models.Job{}).
		Select("company, COUNT(*) AS count").
		Group("company").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
