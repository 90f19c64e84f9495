package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adisharma/job-tracker-api/internal/constants"
	"github.com/adisharma/job-tracker-api/internal/models"
	"github.com/adisharma/job-tracker-api/internal/repository"
	"github.com/adisharma/job-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound             = errors.New("job not found")
	ErrJobTitleRequired        = errors.New("title is required")
	ErrJobCompanyRequired      = errors.New("company is required")
	ErrJobApplyDateRequired    = errors.New("apply date is required")
	ErrInvalidJobStatus        = errors.New("invalid job status")
	ErrInvalidJobPriority      = errors.New("invalid job priority")
	ErrRejectionReasonNotAllowed = errors.New("rejection reason is only allowed when status is rejected")
)

// JobService handles job business logic: CRUD, the listing pipeline,
// follow-up operations and CSV export rows.
type JobService struct {
	jobRepo      repository.JobRepository
	activityRepo repository.ActivityRepository
	now          func() time.Time
}

// NewJobService creates a new JobService.
func NewJobService(jobRepo repository.JobRepository, activityRepo repository.ActivityRepository) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		activityRepo: activityRepo,
		now:          time.Now,
	}
}

// SetClock overrides the service's time source (used for testing).
func (s *JobService) SetClock(now func() time.Time) {
	s.now = now
}

// ListJobsInput carries the raw query parameters of a listing request.
// Unrecognized values are ignored rather than rejected, so a stale
// bookmark with a bad filter still renders.
type ListJobsInput struct {
	// UserID scopes the listing; nil lists all users' jobs (staff views).
	UserID *uint64

	Status    string
	Query     string
	DateRange string
	Follow    string
	Sort      string
	Page      int
}

// AnnotatedJob pairs a job with its derived follow-up state. The state
// is a read-time companion value, never written back to the job.
type AnnotatedJob struct {
	Job           models.Job
	FollowupState models.FollowupState
}

// JobPage is one page of a job listing plus the pre-filter summary
// counts for the scope.
type JobPage struct {
	Jobs       []AnnotatedJob
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
	Today      time.Time
	Counts     repository.StatusCounts
}

// buildFilter translates raw params into a repository filter. "today" is
// the single reference date for every window in the request.
func buildFilter(input ListJobsInput, today time.Time) repository.JobFilter {
	filter := repository.JobFilter{
		UserID:   input.UserID,
		Query:    strings.TrimSpace(input.Query),
		Page:     input.Page,
		PageSize: constants.JobPageSize,
	}

	if models.ValidJobStatus(input.Status) {
		status := models.JobStatus(input.Status)
		filter.Status = &status
	}

	switch input.DateRange {
	case "today":
		filter.ApplyFrom = &today
		filter.ApplyTo = &today
	case "week":
		start, end := utils.WeekBounds(today)
		filter.ApplyFrom = &start
		filter.ApplyTo = &end
	}

	switch input.Follow {
	case "today":
		filter.FollowFrom = &today
		filter.FollowTo = &today
	case "overdue":
		filter.FollowBefore = &today
	case "week":
		end := today.AddDate(0, 0, 6)
		filter.FollowFrom = &today
		filter.FollowTo = &end
	}

	switch input.Sort {
	case "date":
		filter.Sort = repository.SortDateAsc
	case "date_desc":
		filter.Sort = repository.SortDateDesc
	case "priority":
		filter.Sort = repository.SortPriority
	default:
		filter.Sort = repository.SortDefault
	}

	return filter
}

// ListJobs runs the listing pipeline: summary counts on the bare scope,
// then filters, sort and pagination, then follow-up annotation.
func (s *JobService) ListJobs(input ListJobsInput) (*JobPage, error) {
	today := utils.DateOnly(s.now())

	counts, err := s.jobRepo.StatusCounts(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	filter := buildFilter(input, today)

	jobs, total, page, err := s.jobRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	annotated := make([]AnnotatedJob, len(jobs))
	for i, job := range jobs {
		annotated[i] = AnnotatedJob{
			Job:           job,
			FollowupState: models.ClassifyFollowup(job.FollowUpDone, job.FollowUpDate, today),
		}
	}

	totalPages := utils.TotalPages(total, constants.JobPageSize)

	return &JobPage{
		Jobs:       annotated,
		Page:       page,
		PageSize:   constants.JobPageSize,
		Total:      total,
		TotalPages: totalPages,
		Today:      today,
		Counts:     counts,
	}, nil
}

// CreateJobInput represents input for creating a job.
type CreateJobInput struct {
	UserID          uint64
	Title           string
	Company         string
	Status          string
	Priority        string
	ApplyDate       time.Time
	FollowUpDate    *time.Time
	Notes           string
	RejectionReason string
	NextStep        string
	ContactName     string
	ContactEmail    string
	ContactPhone    string
	JobURL          string
	Source          string
	SalaryMin       *int
	SalaryMax       *int
}

// CreateJob creates a job for a user and records the activity.
func (s *JobService) CreateJob(input CreateJobInput) (*models.Job, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrJobTitleRequired
	}
	if strings.TrimSpace(input.Company) == "" {
		return nil, ErrJobCompanyRequired
	}
	if input.ApplyDate.IsZero() {
		return nil, ErrJobApplyDateRequired
	}
	if !models.ValidJobStatus(input.Status) {
		return nil, ErrInvalidJobStatus
	}
	if input.Priority == "" {
		input.Priority = string(models.PriorityMedium)
	}
	if !models.ValidJobPriority(input.Priority) {
		return nil, ErrInvalidJobPriority
	}
	if input.RejectionReason != "" && models.JobStatus(input.Status) != models.StatusRejected {
		return nil, ErrRejectionReasonNotAllowed
	}

	job := &models.Job{
		UserID:          input.UserID,
		Title:           input.Title,
		Company:         input.Company,
		Status:          models.JobStatus(input.Status),
		Priority:        models.JobPriority(input.Priority),
		ApplyDate:       utils.DateOnly(input.ApplyDate),
		Notes:           input.Notes,
		RejectionReason: input.RejectionReason,
		NextStep:        input.NextStep,
		ContactName:     input.ContactName,
		ContactEmail:    input.ContactEmail,
		ContactPhone:    input.ContactPhone,
		JobURL:          input.JobURL,
		Source:          input.Source,
		SalaryMin:       input.SalaryMin,
		SalaryMax:       input.SalaryMax,
	}
	if input.FollowUpDate != nil {
		date := utils.DateOnly(*input.FollowUpDate)
		job.FollowUpDate = &date
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.recordActivity(input.UserID, models.ActionJobCreated, &job.ID)

	return job, nil
}

// GetJob returns a job owned by the user. Other users' jobs are reported
// as not found, never as forbidden.
func (s *JobService) GetJob(jobID, userID uint64) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	if job.UserID != userID {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// UpdateJobInput represents input for updating a job. Nil fields are
// left untouched.
type UpdateJobInput struct {
	Title           *string
	Company         *string
	Status          *string
	Priority        *string
	ApplyDate       *time.Time
	FollowUpDate    *time.Time
	ClearFollowUp   bool
	Notes           *string
	RejectionReason *string
	NextStep        *string
	ContactName     *string
	ContactEmail    *string
	ContactPhone    *string
	JobURL          *string
	Source          *string
	SalaryMin       *int
	SalaryMax       *int
}

// UpdateJob updates a job owned by the user and records the activity.
func (s *JobService) UpdateJob(jobID, userID uint64, input UpdateJobInput) (*models.Job, error) {
	job, err := s.GetJob(jobID, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrJobTitleRequired
		}
		job.Title = *input.Title
	}
	if input.Company != nil {
		if strings.TrimSpace(*input.Company) == "" {
			return nil, ErrJobCompanyRequired
		}
		job.Company = *input.Company
	}
	if input.Status != nil {
		if !models.ValidJobStatus(*input.Status) {
			return nil, ErrInvalidJobStatus
		}
		job.Status = models.JobStatus(*input.Status)
	}
	if input.Priority != nil {
		if !models.ValidJobPriority(*input.Priority) {
			return nil, ErrInvalidJobPriority
		}
		job.Priority = models.JobPriority(*input.Priority)
	}
	if input.ApplyDate != nil {
		job.ApplyDate = utils.DateOnly(*input.ApplyDate)
	}
	if input.ClearFollowUp {
		job.FollowUpDate = nil
	} else if input.FollowUpDate != nil {
		date := utils.DateOnly(*input.FollowUpDate)
		job.FollowUpDate = &date
		// a fresh date reopens the follow-up
		job.FollowUpDone = false
	}
	if input.Notes != nil {
		job.Notes = *input.Notes
	}
	if input.RejectionReason != nil {
		job.RejectionReason = *input.RejectionReason
	}
	if input.NextStep != nil {
		job.NextStep = *input.NextStep
	}
	if input.ContactName != nil {
		job.ContactName = *input.ContactName
	}
	if input.ContactEmail != nil {
		job.ContactEmail = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		job.ContactPhone = *input.ContactPhone
	}
	if input.JobURL != nil {
		job.JobURL = *input.JobURL
	}
	if input.Source != nil {
		job.Source = *input.Source
	}
	if input.SalaryMin != nil {
		job.SalaryMin = input.SalaryMin
	}
	if input.SalaryMax != nil {
		job.SalaryMax = input.SalaryMax
	}

	if job.RejectionReason != "" && job.Status != models.StatusRejected {
		return nil, ErrRejectionReasonNotAllowed
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	s.recordActivity(userID, models.ActionJobUpdated, &job.ID)

	return job, nil
}

// DeleteJob deletes a job owned by the user.
func (s *JobService) DeleteJob(jobID, userID uint64) error {
	job, err := s.GetJob(jobID, userID)
	if err != nil {
		return err
	}
	if err := s.jobRepo.Delete(job.ID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// QuickStatus changes a job's status. An unrecognized value is a no-op,
// matching the tolerant filter handling elsewhere.
func (s *JobService) QuickStatus(jobID, userID uint64, status string) (*models.Job, error) {
	job, err := s.GetJob(jobID, userID)
	if err != nil {
		return nil, err
	}
	if !models.ValidJobStatus(status) {
		return job, nil
	}
	job.Status = models.JobStatus(status)
	if err := s.jobRepo.Update(job); err != nil {
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}
	s.recordActivity(userID, models.ActionJobUpdated, &job.ID)
	return job, nil
}

// QuickPriority changes a job's priority. An unrecognized value is a no-op.
func (s *JobService) QuickPriority(jobID, userID uint64, priority string) (*models.Job, error) {
	job, err := s.GetJob(jobID, userID)
	if err != nil {
		return nil, err
	}
	if !models.ValidJobPriority(priority) {
		return job, nil
	}
	job.Priority = models.JobPriority(priority)
	if err := s.jobRepo.Update(job); err != nil {
		return nil, fmt.Errorf("failed to update job priority: %w", err)
	}
	s.recordActivity(userID, models.ActionJobUpdated, &job.ID)
	return job, nil
}

// MarkFollowupDone closes a job's follow-up: done is set and the pending
// date cleared. Done means handled, not never scheduled.
func (s *JobService) MarkFollowupDone(jobID, userID uint64) (*models.Job, error) {
	job, err := s.GetJob(jobID, userID)
	if err != nil {
		return nil, err
	}
	job.FollowUpDone = true
	job.FollowUpDate = nil
	if err := s.jobRepo.Update(job); err != nil {
		return nil, fmt.Errorf("failed to mark follow-up done: %w", err)
	}
	s.recordActivity(userID, models.ActionFollowupDone, &job.ID)
	return job, nil
}

// ScheduleFollowup sets a new follow-up date and reopens the follow-up.
func (s *JobService) ScheduleFollowup(jobID, userID uint64, date time.Time) (*models.Job, error) {
	job, err := s.GetJob(jobID, userID)
	if err != nil {
		return nil, err
	}
	d := utils.DateOnly(date)
	job.FollowUpDate = &d
	job.FollowUpDone = false
	if err := s.jobRepo.Update(job); err != nil {
		return nil, fmt.Errorf("failed to schedule follow-up: %w", err)
	}
	return job, nil
}

// DueFollowups lists the user's pending follow-ups due today or earlier,
// skipping jobs already out of the pipeline.
func (s *JobService) DueFollowups(userID uint64) ([]models.Job, time.Time, error) {
	today := utils.DateOnly(s.now())
	jobs, err := s.jobRepo.ListDueFollowups(userID, today)
	if err != nil {
		return nil, today, fmt.Errorf("failed to list due follow-ups: %w", err)
	}
	return jobs, today, nil
}

// UpcomingFollowups lists the user's pending follow-ups over the next
// seven days, today included.
func (s *JobService) UpcomingFollowups(userID uint64) ([]models.Job, time.Time, error) {
	today := utils.DateOnly(s.now())
	end := today.AddDate(0, 0, 6)
	jobs, err := s.jobRepo.ListUpcomingFollowups(userID, today, end)
	if err != nil {
		return nil, today, fmt.Errorf("failed to list upcoming follow-ups: %w", err)
	}
	return jobs, today, nil
}

// ExportHeader is the CSV header row for job exports. Column order is
// part of the export contract.
var ExportHeader = []string{
	"ID", "Title", "Company", "Status", "Priority", "Apply Date",
	"Follow-up Date", "Next Step", "Contact Name", "Contact Email",
	"Contact Phone", "Job URL", "Source", "Notes", "Rejection Reason",
}

// ExportRows renders the user's jobs as CSV rows honoring the status,
// text and date-window filters. Sort and page params do not apply to
// exports.
func (s *JobService) ExportRows(input ListJobsInput) ([][]string, error) {
	today := utils.DateOnly(s.now())

	// exports ignore follow windows, sort and page params
	input.Follow = ""
	input.Sort = ""
	filter := buildFilter(input, today)

	jobs, err := s.jobRepo.ListAll(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to export jobs: %w", err)
	}

	rows := make([][]string, 0, len(jobs)+1)
	rows = append(rows, ExportHeader)
	for _, job := range jobs {
		followUp := ""
		if job.FollowUpDate != nil {
			followUp = utils.FormatDate(*job.FollowUpDate)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", job.ID),
			job.Title,
			job.Company,
			string(job.Status),
			string(job.Priority),
			utils.FormatDate(job.ApplyDate),
			followUp,
			job.NextStep,
			job.ContactName,
			job.ContactEmail,
			job.ContactPhone,
			job.JobURL,
			job.Source,
			job.Notes,
			job.RejectionReason,
		})
	}
	return rows, nil
}

func (s *JobService) recordActivity(userID uint64, action models.ActivityAction, jobID *uint64) {
	// Audit writes never fail the primary operation.
	_ = s.activityRepo.Create(&models.AdminActivity{
		UserID: userID,
		Action: action,
		JobID:  jobID,
	})
}
