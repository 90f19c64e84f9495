package dto

import (
	"time"

	"github.com/adisharma/job-tracker-api/internal/models"
	"github.com/adisharma/job-tracker-api/internal/repository"
	"github.com/adisharma/job-tracker-api/internal/services"
	"github.com/adisharma/job-tracker-api/internal/utils"
)

// JobDTO represents a job in API responses. Calendar dates are rendered
// as ISO dates; followup_state is present only on annotated listings.
type JobDTO struct {
	ID              uint64    `json:"id"`
	UserID          uint64    `json:"user_id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	ApplyDate       string    `json:"apply_date"`
	FollowUpDate    *string   `json:"follow_up_date"`
	FollowUpDone    bool      `json:"follow_up_done"`
	FollowupState   string    `json:"followup_state,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	NextStep        string    `json:"next_step,omitempty"`
	ContactName     string    `json:"contact_name,omitempty"`
	ContactEmail    string    `json:"contact_email,omitempty"`
	ContactPhone    string    `json:"contact_phone,omitempty"`
	JobURL          string    `json:"job_url,omitempty"`
	Source          string    `json:"source,omitempty"`
	SalaryMin       *int      `json:"salary_min,omitempty"`
	SalaryMax       *int      `json:"salary_max,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToJobDTO converts a Job model to JobDTO
func ToJobDTO(job models.Job) JobDTO {
	dto := JobDTO{
		ID:              job.ID,
		UserID:          job.UserID,
		Title:           job.Title,
		Company:         job.Company,
		Status:          string(job.Status),
		Priority:        string(job.Priority),
		ApplyDate:       utils.FormatDate(job.ApplyDate),
		FollowUpDone:    job.FollowUpDone,
		Notes:           job.Notes,
		RejectionReason: job.RejectionReason,
		NextStep:        job.NextStep,
		ContactName:     job.ContactName,
		ContactEmail:    job.ContactEmail,
		ContactPhone:    job.ContactPhone,
		JobURL:          job.JobURL,
		Source:          job.Source,
		SalaryMin:       job.SalaryMin,
		SalaryMax:       job.SalaryMax,
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
	}
	if job.FollowUpDate != nil {
		formatted := utils.FormatDate(*job.FollowUpDate)
		dto.FollowUpDate = &formatted
	}
	return dto
}

// ToAnnotatedJobDTO converts a job plus its derived follow-up state
func ToAnnotatedJobDTO(job services.AnnotatedJob) JobDTO {
	dto := ToJobDTO(job.Job)
	dto.FollowupState = string(job.FollowupState)
	return dto
}

// JobListResponse represents a paginated, annotated job listing with the
// pre-filter summary counts for the scope.
type JobListResponse struct {
	Jobs       []JobDTO                 `json:"jobs"`
	Pagination utils.PaginationResponse `json:"pagination"`
	Summary    repository.StatusCounts  `json:"summary"`
	Today      string                   `json:"today"`
}

// ToJobListResponse converts a service page to the API response
func ToJobListResponse(page *services.JobPage) JobListResponse {
	jobs := make([]JobDTO, len(page.Jobs))
	for i, job := range page.Jobs {
		jobs[i] = ToAnnotatedJobDTO(job)
	}

	return JobListResponse{
		Jobs: jobs,
		Pagination: utils.PaginationResponse{
			Page:       page.Page,
			PageSize:   page.PageSize,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
		Summary: page.Counts,
		Today:   utils.FormatDate(page.Today),
	}
}

// FollowupListResponse is a plain (non-paginated) follow-up listing.
type FollowupListResponse struct {
	Jobs  []JobDTO `json:"jobs"`
	Today string   `json:"today"`
}

// ToFollowupListResponse converts follow-up jobs to the API response
func ToFollowupListResponse(jobs []models.Job, today time.Time) FollowupListResponse {
	dtos := make([]JobDTO, len(jobs))
	for i, job := range jobs {
		dtos[i] = ToJobDTO(job)
	}
	return FollowupListResponse{
		Jobs:  dtos,
		Today: utils.FormatDate(today),
	}
}
