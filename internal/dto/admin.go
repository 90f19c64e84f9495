package dto

import (
	"time"

	"github.com/adisharma/job-tracker-api/internal/models"
	"github.com/adisharma/job-tracker-api/internal/utils"
)

// ActivityDTO represents an audit log entry in API responses
type ActivityDTO struct {
	ID        uint64    `json:"id"`
	Action    string    `json:"action"`
	UserID    uint64    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	JobID     *uint64   `json:"job_id,omitempty"`
	JobTitle  string    `json:"job_title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToActivityDTO converts an AdminActivity model to ActivityDTO
func ToActivityDTO(activity models.AdminActivity) ActivityDTO {
	dto := ActivityDTO{
		ID:        activity.ID,
		Action:    string(activity.Action),
		UserID:    activity.UserID,
		JobID:     activity.JobID,
		CreatedAt: activity.CreatedAt,
	}
	if activity.User.ID != 0 {
		dto.Username = activity.User.Username
	}
	if activity.Job != nil {
		dto.JobTitle = activity.Job.Title
	}
	return dto
}

// ActivityListResponse represents a paginated activity timeline
type ActivityListResponse struct {
	Activities []ActivityDTO            `json:"activities"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToActivityListResponse converts activity entries to the API response
func ToActivityListResponse(entries []models.AdminActivity, page, pageSize int, total int64) ActivityListResponse {
	dtos := make([]ActivityDTO, len(entries))
	for i, entry := range entries {
		dtos[i] = ToActivityDTO(entry)
	}
	return ActivityListResponse{
		Activities: dtos,
		Pagination: utils.PaginationResponse{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: utils.TotalPages(total, pageSize),
		},
	}
}
