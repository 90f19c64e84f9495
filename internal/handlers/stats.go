package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/adisharma/job-tracker-api/internal/errors"
	"github.com/adisharma/job-tracker-api/internal/middleware"
	"github.com/adisharma/job-tracker-api/internal/services"
	"github.com/adisharma/job-tracker-api/internal/utils"
)

// StatsHandler serves the statistics views.
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Stats returns the current user's statistics record.
func (h *StatsHandler) Stats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.statsService.Compute(&userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"today":                utils.FormatDate(stats.Today),
		"total_all":            stats.Counts.Total,
		"total_applied":        stats.Counts.Applied,
		"total_interview":      stats.Counts.Interview,
		"total_rejected":       stats.Counts.Rejected,
		"total_offered":        stats.Counts.Offered,
		"follow_today":         stats.FollowToday,
		"follow_overdue":       stats.FollowOverdue,
		"applied_to_interview": stats.AppliedToInterview,
		"interview_to_offer":   stats.InterviewToOffer,
		"in_progress":          stats.InProgress,
		"applied_this_week":    stats.AppliedThisWeek,
		"avg_applied_per_day":  stats.AvgAppliedPerDay,
	})
}

// Overview returns the public landing-page counts across all users.
func (h *StatsHandler) Overview(c *gin.Context) {
	counts, err := h.statsService.Overview()
	if err != nil {
		apierrors.InternalError(c, "Failed to compute overview")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_all":       counts.Total,
		"total_applied":   counts.Applied,
		"total_interview": counts.Interview,
		"total_offered":   counts.Offered,
	})
}
