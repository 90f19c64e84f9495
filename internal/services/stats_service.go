package services

import (
	"fmt"
	"time"

	"github.com/adisharma/job-tracker-api/internal/repository"
	"github.com/adisharma/job-tracker-api/internal/utils"
)

// Stats is the flat statistics record for a job scope. Ratios are
// percentages; rounding is left to the caller.
type Stats struct {
	Today              time.Time               `json:"today"`
	Counts             repository.StatusCounts `json:"counts"`
	FollowToday        int64                   `json:"follow_today"`
	FollowOverdue      int64                   `json:"follow_overdue"`
	AppliedToInterview float64                 `json:"applied_to_interview"`
	InterviewToOffer   float64                 `json:"interview_to_offer"`
	InProgress         int64                   `json:"in_progress"`
	AppliedThisWeek    int64                   `json:"applied_this_week"`
	AvgAppliedPerDay   float64                 `json:"avg_applied_per_day"`
}

// StatsService computes aggregate statistics over a job scope.
type StatsService struct {
	jobRepo repository.JobRepository
	now     func() time.Time
}

// NewStatsService creates a new StatsService.
func NewStatsService(jobRepo repository.JobRepository) *StatsService {
	return &StatsService{
		jobRepo: jobRepo,
		now:     time.Now,
	}
}

// SetClock overrides the service's time source (used for testing).
func (s *StatsService) SetClock(now func() time.Time) {
	s.now = now
}

// Compute builds the statistics record for a scope. A nil userID spans
// all users. Every ratio is zero-guarded; no input can make it fail on
// division.
func (s *StatsService) Compute(userID *uint64) (*Stats, error) {
	today := utils.DateOnly(s.now())

	counts, err := s.jobRepo.StatusCounts(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	followToday, err := s.jobRepo.CountFollowOn(userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count follow-ups due today: %w", err)
	}
	followOverdue, err := s.jobRepo.CountFollowBefore(userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue follow-ups: %w", err)
	}

	var appliedToInterview float64
	if counts.Applied > 0 {
		appliedToInterview = float64(counts.Interview) / float64(counts.Applied) * 100
	}
	var interviewToOffer float64
	if counts.Interview > 0 {
		interviewToOffer = float64(counts.Offered) / float64(counts.Interview) * 100
	}

	inProgress, err := s.jobRepo.CountInProgress(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count in-progress jobs: %w", err)
	}

	weekStart, weekEnd := utils.WeekBounds(today)
	appliedThisWeek, err := s.jobRepo.CountAppliedBetween(userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to count this week's applications: %w", err)
	}

	avgAppliedPerDay := 0.0
	earliest, err := s.jobRepo.EarliestApplyDate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find earliest apply date: %w", err)
	}
	if earliest != nil {
		// inclusive day span from the first application through today
		days := int(today.Sub(utils.DateOnly(*earliest)).Hours()/24) + 1
		if days > 0 {
			avgAppliedPerDay = float64(counts.Applied) / float64(days)
		} else {
			avgAppliedPerDay = float64(counts.Applied)
		}
	}

	return &Stats{
		Today:              today,
		Counts:             counts,
		FollowToday:        followToday,
		FollowOverdue:      followOverdue,
		AppliedToInterview: appliedToInterview,
		InterviewToOffer:   interviewToOffer,
		InProgress:         inProgress,
		AppliedThisWeek:    appliedThisWeek,
		AvgAppliedPerDay:   avgAppliedPerDay,
	}, nil
}

// Overview returns the global status counts shown on the landing page.
func (s *StatsService) Overview() (repository.StatusCounts, error) {
	return s.jobRepo.StatusCounts(nil)
}
