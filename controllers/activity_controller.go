// File: /controllers/activity_controller.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"sportsync-api/models"
	"sportsync-api/repositories"
	"sportsync-api/services"
	"sportsync-api/utils"
)

type ActivityController struct {
	activities    *repositories.ActivityRepository
	notifications *services.NotificationService
}

func NewActivityController(activities *repositories.ActivityRepository, notifications *services.NotificationService) *ActivityController {
	return &ActivityController{
		activities:    activities,
		notifications: notifications,
	}
}

type CreateActivityRequest struct {
	Name            string `json:"name" binding:"required"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	Location        string `json:"location" binding:"required"`
	MaxParticipants int    `json:"max_participants" binding:"required,min=1"`
}

type CancelActivityRequest struct {
	Reason string `json:"reason"`
}

type RateActivityRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// GetActivities is the public read endpoint returning every activity
func (ac *ActivityController) GetActivities(c *gin.Context) {
	activities, err := ac.activities.List()
	if err != nil {
		utils.SendAPIError(c, http.StatusInternalServerError, "Failed to fetch activities")
		return
	}

	utils.SendList(c, activities, len(activities))
}

// GetActivity is the public read endpoint returning one activity by id
func (ac *ActivityController) GetActivity(c *gin.Context) {
	activity, err := ac.activities.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			utils.SendAPIError(c, http.StatusNotFound, "Activity not found")
			return
		}
		utils.SendAPIError(c, http.StatusInternalServerError, "Failed to fetch activity")
		return
	}

	utils.SendData(c, activity)
}

// CreateActivity creates an activity with the caller as organizer and first
// participant, then sends the creation confirmation best-effort.
func (ac *ActivityController) CreateActivity(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidDate(req.Date) {
		utils.SendValidationError(c, "Date must be in YYYY-MM-DD format")
		return
	}
	if !utils.IsValidTime(req.Time) {
		utils.SendValidationError(c, "Time must be in HH:MM format")
		return
	}

	activity := models.Activity{
		ID:               uuid.New().String(),
		CreatorID:        userID,
		Name:             req.Name,
		Category:         req.Category,
		Description:      req.Description,
		Date:             req.Date,
		Time:             req.Time,
		Location:         req.Location,
		MaxParticipants:  req.MaxParticipants,
		Participants:     models.StringSlice{userID}, // Organizer is automatically a participant
		ParticipantCount: 1,
		Ratings:          models.RatingList{},
		Status:           models.StatusUpcoming,
	}

	if err := ac.activities.Create(&activity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
		return
	}

	ac.notifications.ActivityCreated(&activity)

	c.JSON(http.StatusCreated, activity)
}

// UpdateActivity lets the organizer change the schedule details. Participants
// are notified of whatever actually changed.
func (ac *ActivityController) UpdateActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	activity, err := ac.activities.GetByID(activityID)
	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}
	if activity.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the organizer can update this activity"})
		return
	}

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidDate(req.Date) {
		utils.SendValidationError(c, "Date must be in YYYY-MM-DD format")
		return
	}
	if !utils.IsValidTime(req.Time) {
		utils.SendValidationError(c, "Time must be in HH:MM format")
		return
	}
	if req.MaxParticipants < activity.ParticipantCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot reduce max participants below current count"})
		return
	}

	updates := map[string]interface{}{
		"name":             req.Name,
		"category":         req.Category,
		"description":      req.Description,
		"date":             req.Date,
		"time":             req.Time,
		"location":         req.Location,
		"max_participants": req.MaxParticipants,
	}

	before, after, err := ac.activities.UpdateDetails(activityID, updates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update activity"})
		return
	}

	ac.notifications.ActivityUpdated(before, after)

	utils.SendSuccess(c, "Activity updated successfully", after)
}

// CancelActivity transitions the activity to cancelled and notifies every
// participant with the reason.
func (ac *ActivityController) CancelActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	activity, err := ac.activities.GetByID(activityID)
	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}
	if activity.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the organizer can cancel this activity"})
		return
	}

	// Body is optional; an empty reason falls back to the default text
	var req CancelActivityRequest
	_ = c.ShouldBindJSON(&req)

	before, after, err := ac.activities.Cancel(activityID, req.Reason)
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyCancelled) {
			c.JSON(http.StatusConflict, gin.H{"error": "Activity is already cancelled"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel activity"})
		return
	}

	ac.notifications.ActivityUpdated(before, after)

	utils.SendSuccess(c, "Activity cancelled", after)
}

// DeleteActivity removes an activity; organizer only
func (ac *ActivityController) DeleteActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	activity, err := ac.activities.GetByID(activityID)
	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}
	if activity.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the organizer can delete this activity"})
		return
	}

	if err := ac.activities.Delete(activityID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}

	utils.SendSuccess(c, "Activity deleted successfully", nil)
}

// JoinActivity adds the caller to the roster and notifies the organizer
func (ac *ActivityController) JoinActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	before, after, err := ac.activities.Join(activityID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrActivityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		case errors.Is(err, repositories.ErrAlreadyJoined):
			c.JSON(http.StatusConflict, gin.H{"error": "Already joined this activity"})
		case errors.Is(err, repositories.ErrActivityFull):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Activity is full"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join activity"})
		}
		return
	}

	ac.notifications.ActivityUpdated(before, after)

	utils.SendSuccess(c, "Successfully joined activity", after)
}

// LeaveActivity removes the caller from the roster
func (ac *ActivityController) LeaveActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	activity, err := ac.activities.GetByID(activityID)
	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}
	if activity.CreatorID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Organizer cannot leave their own activity"})
		return
	}

	after, err := ac.activities.Leave(activityID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotParticipant) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not a participant of this activity"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave activity"})
		return
	}

	utils.SendSuccess(c, "Successfully left activity", after)
}

// RateActivity records the caller's 1-5 rating and returns the new aggregate
func (ac *ActivityController) RateActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	var req RateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidRating(req.Rating) {
		utils.SendValidationError(c, "Rating must be between 1 and 5")
		return
	}

	activity, err := ac.activities.AddRating(activityID, userID, req.Rating, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add rating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"average_rating": activity.AverageRating,
		"total_ratings":  len(activity.Ratings),
	})
}

// GetJoinedActivities lists activities the caller participates in
func (ac *ActivityController) GetJoinedActivities(c *gin.Context) {
	userID := c.GetString("user_id")

	activities, err := ac.activities.ListJoined(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch joined activities"})
		return
	}

	c.JSON(http.StatusOK, activities)
}

// GetCreatedActivities lists activities the caller organizes
func (ac *ActivityController) GetCreatedActivities(c *gin.Context) {
	userID := c.GetString("user_id")

	activities, err := ac.activities.ListByCreator(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch created activities"})
		return
	}

	c.JSON(http.StatusOK, activities)
}
