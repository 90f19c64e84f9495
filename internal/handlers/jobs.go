package handlers

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/adisharma/job-tracker-api/internal/dto"
	apierrors "github.com/adisharma/job-tracker-api/internal/errors"
	"github.com/adisharma/job-tracker-api/internal/middleware"
	"github.com/adisharma/job-tracker-api/internal/services"
	"github.com/adisharma/job-tracker-api/internal/utils"
)

// JobHandler coordinates job-related HTTP handlers.
type JobHandler struct {
	jobService *services.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
	}
}

// listInput reads the flat listing query parameters. Values are passed
// through raw; the service ignores anything it doesn't recognize.
func listInput(c *gin.Context) services.ListJobsInput {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	return services.ListJobsInput{
		Status:    c.Query("status"),
		Query:     c.Query("q"),
		DateRange: c.Query("date"),
		Follow:    c.Query("follow"),
		Sort:      c.Query("sort"),
		Page:      page,
	}
}

// ListJobs returns one page of the current user's jobs with follow-up
// annotations and summary counts.
func (h *JobHandler) ListJobs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	input := listInput(c)
	input.UserID = &userID

	page, err := h.jobService.ListJobs(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to list jobs")
		return
	}

	c.JSON(http.StatusOK, dto.ToJobListResponse(page))
}

type jobRequest struct {
	Title           string  `json:"title" binding:"required"`
	Company         string  `json:"company" binding:"required"`
	Status          string  `json:"status" binding:"required"`
	Priority        string  `json:"priority"`
	ApplyDate       string  `json:"apply_date" binding:"required"`
	FollowUpDate    *string `json:"follow_up_date"`
	Notes           string  `json:"notes"`
	RejectionReason string  `json:"rejection_reason"`
	NextStep        string  `json:"next_step"`
	ContactName     string  `json:"contact_name"`
	ContactEmail    string  `json:"contact_email"`
	ContactPhone    string  `json:"contact_phone"`
	JobURL          string  `json:"job_url"`
	Source          string  `json:"source"`
	SalaryMin       *int    `json:"salary_min"`
	SalaryMax       *int    `json:"salary_max"`
}

// CreateJob creates a new job for the current user.
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	applyDate, err := utils.ParseDate(req.ApplyDate)
	if err != nil {
		apierrors.BadRequest(c, "apply_date must be a YYYY-MM-DD date")
		return
	}

	input := services.CreateJobInput{
		UserID:          userID,
		Title:           req.Title,
		Company:         req.Company,
		Status:          req.Status,
		Priority:        req.Priority,
		ApplyDate:       applyDate,
		Notes:           req.Notes,
		RejectionReason: req.RejectionReason,
		NextStep:        req.NextStep,
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		JobURL:          req.JobURL,
		Source:          req.Source,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
	}
	if req.FollowUpDate != nil && *req.FollowUpDate != "" {
		followUp, err := utils.ParseDate(*req.FollowUpDate)
		if err != nil {
			apierrors.BadRequest(c, "follow_up_date must be a YYYY-MM-DD date")
			return
		}
		input.FollowUpDate = &followUp
	}

	job, err := h.jobService.CreateJob(input)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobDTO(*job))
}

// GetJob returns a job owned by the current user.
func (h *JobHandler) GetJob(c *gin.Context) {
	userID, jobID, ok := jobRequestIDs(c)
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(jobID, userID)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

// UpdateJob partially updates a job. Only fields present in the request
// body change; follow_up_date set to null clears the date.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, jobID, ok := jobRequestIDs(c)
	if !ok {
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateJobInput
	if v, ok := stringField(rawReq, "title"); ok {
		input.Title = v
	}
	if v, ok := stringField(rawReq, "company"); ok {
		input.Company = v
	}
	if v, ok := stringField(rawReq, "status"); ok {
		input.Status = v
	}
	if v, ok := stringField(rawReq, "priority"); ok {
		input.Priority = v
	}
	if v, ok := stringField(rawReq, "notes"); ok {
		input.Notes = v
	}
	if v, ok := stringField(rawReq, "rejection_reason"); ok {
		input.RejectionReason = v
	}
	if v, ok := stringField(rawReq, "next_step"); ok {
		input.NextStep = v
	}
	if v, ok := stringField(rawReq, "contact_name"); ok {
		input.ContactName = v
	}
	if v, ok := stringField(rawReq, "contact_email"); ok {
		input.ContactEmail = v
	}
	if v, ok := stringField(rawReq, "contact_phone"); ok {
		input.ContactPhone = v
	}
	if v, ok := stringField(rawReq, "job_url"); ok {
		input.JobURL = v
	}
	if v, ok := stringField(rawReq, "source"); ok {
		input.Source = v
	}
	if v, ok := intField(rawReq, "salary_min"); ok {
		input.SalaryMin = v
	}
	if v, ok := intField(rawReq, "salary_max"); ok {
		input.SalaryMax = v
	}
	if v, ok := stringField(rawReq, "apply_date"); ok && v != nil {
		date, err := utils.ParseDate(*v)
		if err != nil {
			apierrors.BadRequest(c, "apply_date must be a YYYY-MM-DD date")
			return
		}
		input.ApplyDate = &date
	}
	if raw, present := rawReq["follow_up_date"]; present {
		if raw == nil {
			input.ClearFollowUp = true
		} else if s, ok := raw.(string); ok {
			date, err := utils.ParseDate(s)
			if err != nil {
				apierrors.BadRequest(c, "follow_up_date must be a YYYY-MM-DD date")
				return
			}
			input.FollowUpDate = &date
		}
	}

	job, err := h.jobService.UpdateJob(jobID, userID, input)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

// DeleteJob deletes a job owned by the current user.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, jobID, ok := jobRequestIDs(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(jobID, userID); err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job deleted successfully",
	})
}

// QuickStatus changes a job's status in place.
func (h *JobHandler) QuickStatus(c *gin.Context) {
	userID, jobID, ok := jobRequestIDs(c)
	if !ok {
		return
	}

	type statusRequest struct {
		Status string `json:"status" binding:"required"`
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.jobService.QuickStatus(jobID, userID, req.Status)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

// QuickPriority changes a job's priority in place.
func (h *JobHandler) QuickPriority(c *gin.Context) {
	userID, jobID, ok := jobRequestIDs(c)
	if !ok {
		return
	}

	type priorityRequest struct {
		Priority string `json:"priority" binding:"required"`
	}
	var req priorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.jobService.QuickPriority(jobID, userID, req.Priority)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

// FollowupDone closes a job's follow-up.
func (h *JobHandler) FollowupDone(c *gin.Context) {
	userID, jobID, ok := jobRequestIDs(c)
	if !ok {
		return
	}

	job, err := h.jobService.MarkFollowupDone(jobID, userID)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

// ScheduleFollowup sets a job's follow-up date.
func (h *JobHandler) ScheduleFollowup(c *gin.Context) {
	userID, jobID, ok := jobRequestIDs(c)
	if !ok {
		return
	}

	type followupRequest struct {
		FollowUpDate string `json:"follow_up_date" binding:"required"`
	}
	var req followupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, err := utils.ParseDate(req.FollowUpDate)
	if err != nil {
		apierrors.BadRequest(c, "follow_up_date must be a YYYY-MM-DD date")
		return
	}

	job, err := h.jobService.ScheduleFollowup(jobID, userID, date)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

// DueFollowups lists the user's follow-ups due today or earlier.
func (h *JobHandler) DueFollowups(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	jobs, today, err := h.jobService.DueFollowups(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list follow-ups")
		return
	}

	c.JSON(http.StatusOK, dto.ToFollowupListResponse(jobs, today))
}

// UpcomingFollowups lists the user's follow-ups for the next week.
func (h *JobHandler) UpcomingFollowups(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	jobs, today, err := h.jobService.UpcomingFollowups(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list follow-ups")
		return
	}

	c.JSON(http.StatusOK, dto.ToFollowupListResponse(jobs, today))
}

// ExportCSV streams the user's jobs as a CSV download, honoring the
// status, text and date filters.
func (h *JobHandler) ExportCSV(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	input := listInput(c)
	input.UserID = &userID

	rows, err := h.jobService.ExportRows(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to export jobs")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="jobs.csv"`)
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	_ = writer.WriteAll(rows)
}

// jobRequestIDs pulls the authenticated user and the :id route param.
func jobRequestIDs(c *gin.Context) (userID, jobID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, 0, false
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid job ID")
		return 0, 0, false
	}

	return userID, jobID, true
}

func stringField(raw map[string]any, key string) (*string, bool) {
	v, present := raw[key]
	if !present {
		return nil, false
	}
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	return &s, true
}

func intField(raw map[string]any, key string) (*int, bool) {
	v, present := raw[key]
	if !present {
		return nil, false
	}
	f, ok := v.(float64)
	if !ok {
		return nil, false
	}
	n := int(f)
	return &n, true
}

func respondJobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrJobNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrJobTitleRequired),
		errors.Is(err, services.ErrJobCompanyRequired),
		errors.Is(err, services.ErrJobApplyDateRequired),
		errors.Is(err, services.ErrInvalidJobStatus),
		errors.Is(err, services.ErrInvalidJobPriority),
		errors.Is(err, services.ErrRejectionReasonNotAllowed):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
