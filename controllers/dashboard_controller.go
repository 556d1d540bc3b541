// File: /controllers/dashboard_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"sportsync-api/models"
	"sportsync-api/repositories"
	"sportsync-api/utils"
)

type DashboardController struct {
	activities *repositories.ActivityRepository
}

func NewDashboardController(activities *repositories.ActivityRepository) *DashboardController {
	return &DashboardController{activities: activities}
}

type DashboardStats struct {
	TotalActivities    int               `json:"total_activities"`
	UpcomingActivities int               `json:"upcoming_activities"`
	OngoingActivities  int               `json:"ongoing_activities"`
	TotalParticipants  int               `json:"total_participants"`
	AverageRating      float64           `json:"average_rating"`
	CategoryCounts     map[string]int    `json:"category_counts"`
	RecentActivities   []models.Activity `json:"recent_activities"`
}

// GetStats aggregates overview numbers across all activities
func (dc *DashboardController) GetStats(c *gin.Context) {
	activities, err := dc.activities.List()
	if err != nil {
		utils.SendAPIError(c, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	stats := DashboardStats{
		TotalActivities:  len(activities),
		CategoryCounts:   make(map[string]int),
		RecentActivities: []models.Activity{},
	}

	ratingSum := 0.0
	for _, activity := range activities {
		switch activity.Status {
		case models.StatusUpcoming:
			stats.UpcomingActivities++
		case models.StatusOngoing:
			stats.OngoingActivities++
		}

		stats.TotalParticipants += activity.ParticipantCount
		ratingSum += activity.AverageRating

		category := activity.Category
		if category == "" {
			category = "Other"
		}
		stats.CategoryCounts[category]++
	}

	if len(activities) > 0 {
		stats.AverageRating = ratingSum / float64(len(activities))
	}

	// List is newest-first already
	if len(activities) > 5 {
		stats.RecentActivities = activities[:5]
	} else {
		stats.RecentActivities = activities
	}

	utils.SendData(c, stats)
}
