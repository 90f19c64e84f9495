package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/adisharma/job-tracker-api/internal/constants"
	"github.com/adisharma/job-tracker-api/internal/models"
	"github.com/adisharma/job-tracker-api/internal/repository"
	"github.com/adisharma/job-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// Dashboard is the staff overview across every user.
type Dashboard struct {
	TotalUsers      int64                     `json:"total_users"`
	TotalJobs       int64                     `json:"total_jobs"`
	ActiveUsers     int64                     `json:"active_users"`
	UsersWithNoJobs int64                     `json:"users_with_no_jobs"`
	StatusStats     repository.StatusCounts   `json:"status_stats"`
	TopCompanies    []repository.CompanyCount `json:"top_companies"`
	FollowToday     int64                     `json:"follow_today"`
	FollowOverdue   int64                     `json:"follow_overdue"`
}

// AdminService backs the staff-only views: dashboard aggregates, the
// all-users job listing, the activity timeline and user lock/unlock.
type AdminService struct {
	jobRepo      repository.JobRepository
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	jobService   *JobService
	now          func() time.Time
}

// NewAdminService creates a new AdminService.
func NewAdminService(jobRepo repository.JobRepository, userRepo repository.UserRepository, activityRepo repository.ActivityRepository, jobService *JobService) *AdminService {
	return &AdminService{
		jobRepo:      jobRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		jobService:   jobService,
		now:          time.Now,
	}
}

// SetClock overrides the service's time source (used for testing).
func (s *AdminService) SetClock(now func() time.Time) {
	s.now = now
}

// Dashboard computes the staff overview.
func (s *AdminService) Dashboard() (*Dashboard, error) {
	today := utils.DateOnly(s.now())

	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	statusStats, err := s.jobRepo.StatusCounts(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	activeSince := s.now().AddDate(0, 0, -constants.ActiveUserWindowDays)
	activeUsers, err := s.userRepo.CountActiveSince(activeSince)
	if err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}

	owners, err := s.jobRepo.DistinctOwnerCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count job owners: %w", err)
	}

	topCompanies, err := s.jobRepo.TopCompanies(constants.TopCompaniesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank companies: %w", err)
	}

	followToday, err := s.jobRepo.CountFollowOn(nil, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count follow-ups due today: %w", err)
	}
	followOverdue, err := s.jobRepo.CountFollowBefore(nil, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue follow-ups: %w", err)
	}

	return &Dashboard{
		TotalUsers:      totalUsers,
		TotalJobs:       statusStats.Total,
		ActiveUsers:     activeUsers,
		UsersWithNoJobs: totalUsers - owners,
		StatusStats:     statusStats,
		TopCompanies:    topCompanies,
		FollowToday:     followToday,
		FollowOverdue:   followOverdue,
	}, nil
}

// ListAllJobs runs the listing pipeline over every user's jobs.
func (s *AdminService) ListAllJobs(input ListJobsInput) (*JobPage, error) {
	input.UserID = nil
	return s.jobService.ListJobs(input)
}

// ActivityTimeline returns audit entries, newest first.
func (s *AdminService) ActivityTimeline(page, pageSize int) ([]models.AdminActivity, int64, error) {
	return s.activityRepo.List(page, pageSize)
}

// ToggleUserActive flips a user's active flag and records the action.
// actorID is the staff user performing the toggle.
func (s *AdminService) ToggleUserActive(userID, actorID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.IsActive = !user.IsActive
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	action := models.ActionUserLocked
	if user.IsActive {
		action = models.ActionUserUnlocked
	}
	_ = s.activityRepo.Create(&models.AdminActivity{
		UserID: actorID,
		Action: action,
	})

	return user, nil
}
