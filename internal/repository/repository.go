package repository

import (
	"time"

	"github.com/adisharma/job-tracker-api/internal/models"
)

// JobSort selects one of the listing sort policies.
type JobSort int

const (
	// SortDefault orders by id ascending (insertion order).
	SortDefault JobSort = iota
	// SortDateAsc orders by apply date, oldest first.
	SortDateAsc
	// SortDateDesc orders by apply date, newest first.
	SortDateDesc
	// SortPriority orders high before medium before low, then apply date.
	SortPriority
)

// JobFilter holds filtering, ordering and pagination options for listing
// jobs. A nil UserID means all users (staff-only views). Filters combine
// as AND predicates; zero values leave a filter unapplied.
type JobFilter struct {
	UserID *uint64

	Status *models.JobStatus
	Query  string

	// Apply date window, inclusive on both ends.
	ApplyFrom *time.Time
	ApplyTo   *time.Time

	// Follow-up windows. All three imply follow_up_done = false.
	FollowFrom   *time.Time
	FollowTo     *time.Time
	FollowBefore *time.Time

	Sort     JobSort
	Page     int
	PageSize int
}

// StatusCounts are the per-status totals for a job scope.
type StatusCounts struct {
	Total     int64 `json:"total"`
	Applied   int64 `json:"applied"`
	Interview int64 `json:"interview"`
	Rejected  int64 `json:"rejected"`
	Offered   int64 `json:"offered"`
}

// CompanyCount is a company with its number of tracked jobs.
type CompanyCount struct {
	Company string `json:"company"`
	Count   int64  `json:"count"`
}

// JobRepository defines the interface for job data access
type JobRepository interface {
	// Create creates a new job
	Create(job *models.Job) error

	// FindByID finds a job by ID
	FindByID(id uint64) (*models.Job, error)

	// List retrieves jobs with filtering, sorting and pagination. The
	// requested page is clamped to the nearest valid page; the resolved
	// page number is returned alongside the filtered total.
	List(filter JobFilter) ([]models.Job, int64, int, error)

	// ListAll retrieves every job matching the filter without pagination,
	// in the filter's sort order.
	ListAll(filter JobFilter) ([]models.Job, error)

	// Update updates a job
	Update(job *models.Job) error

	// Delete soft deletes a job
	Delete(id uint64) error

	// StatusCounts counts jobs per status over the bare scope.
	StatusCounts(userID *uint64) (StatusCounts, error)

	// CountFollowOn counts pending follow-ups due exactly on date.
	CountFollowOn(userID *uint64, date time.Time) (int64, error)

	// CountFollowBefore counts pending follow-ups due strictly before date.
	CountFollowBefore(userID *uint64, date time.Time) (int64, error)

	// CountInProgress counts jobs still in the pipeline (neither rejected
	// nor offered).
	CountInProgress(userID *uint64) (int64, error)

	// CountAppliedBetween counts applied-status jobs with an apply date in
	// [from, to].
	CountAppliedBetween(userID *uint64, from, to time.Time) (int64, error)

	// EarliestApplyDate returns the oldest apply date in the scope, or nil
	// when the scope has no jobs.
	EarliestApplyDate(userID *uint64) (*time.Time, error)

	// ListDueFollowups lists a user's pending follow-ups due on or before
	// today, excluding closed jobs (rejected or offered).
	ListDueFollowups(userID uint64, today time.Time) ([]models.Job, error)

	// ListUpcomingFollowups lists a user's pending follow-ups in
	// [today, end], excluding closed jobs, ordered by follow-up date.
	ListUpcomingFollowups(userID uint64, today, end time.Time) ([]models.Job, error)

	// DistinctOwnerCount counts users owning at least one job.
	DistinctOwnerCount() (int64, error)

	// TopCompanies returns the most frequent companies, highest count first.
	TopCompanies(limit int) ([]CompanyCount, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Count counts all users
	Count() (int64, error)

	// CountActiveSince counts users whose last login is at or after t.
	CountActiveSince(t time.Time) (int64, error)
}

// ActivityRepository defines the interface for the admin activity log.
// The log is append-only: no update or delete operations exist.
type ActivityRepository interface {
	// Create appends an activity entry
	Create(activity *models.AdminActivity) error

	// List retrieves activity entries, newest first, with pagination
	List(page, pageSize int) ([]models.AdminActivity, int64, error)
}
