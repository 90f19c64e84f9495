package handlers

import (
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

// AdminHandler serves the staff-only views. Routes using it must be
// behind RequireStaff.
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// Dashboard returns the staff overview aggregates.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.adminService.Dashboard()
	if err != nil {
		apierrors.InternalError(c, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// ListJobs returns one page of every user's jobs through the listing
// pipeline.
func (h *AdminHandler) ListJobs(c *gin.Context) {
	page, err := h.adminService.ListAllJobs(listInput(c))
	if err != nil {
		apierrors.InternalError(c, "Failed to list jobs")
		return
	}

	c.JSON(http.StatusOK, dto.ToJobListResponse(page))
}

// ActivityTimeline returns the audit log, newest first.
func (h *AdminHandler) ActivityTimeline(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	entries, total, err := h.adminService.ActivityTimeline(params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to list activity")
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityListResponse(entries, params.Page, params.Limit, total))
}

// ToggleUserActive locks or unlocks a user account.
func (h *AdminHandler) ToggleUserActive(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.adminService.ToggleUserActive(userID, actorID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
