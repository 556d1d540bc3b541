// File: /repositories/activity_repository.go
package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"sportsync-api/models"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadyJoined    = errors.New("already joined this activity")
	ErrActivityFull     = errors.New("activity is full")
	ErrNotParticipant   = errors.New("not a participant of this activity")
	ErrAlreadyCancelled = errors.New("activity is already cancelled")
	ErrConcurrentUpdate = errors.New("activity was modified concurrently")
)

// maxUpdateRetries bounds the optimistic-concurrency retry loops. Roster and
// rating writes are read-modify-write; the version column detects lost races.
const maxUpdateRetries = 5

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// GetByID retrieves a single activity
func (r *ActivityRepository) GetByID(activityID string) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.First(&activity, "id = ?", activityID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return &activity, nil
}

// List retrieves all activities, newest first
func (r *ActivityRepository) List() ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.Order("created_at DESC").Find(&activities).Error
	return activities, err
}

// ListByCreator retrieves activities created by a given user
func (r *ActivityRepository) ListByCreator(userID string) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.Where("creator_id = ?", userID).Order("created_at DESC").Find(&activities).Error
	return activities, err
}

// ListJoined retrieves activities whose roster contains the given user
func (r *ActivityRepository) ListJoined(userID string) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.Where("participants LIKE ?", fmt.Sprintf(`%%"%s"%%`, userID)).
		Order("created_at DESC").Find(&activities).Error
	return activities, err
}

// ListReminderCandidates retrieves activities the reminder sweep still has to
// look at: not cancelled and not yet reminded. The time-window check happens
// in the sweep itself since date and time are stored as strings.
func (r *ActivityRepository) ListReminderCandidates() ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.Where("status != ? AND reminder_sent_24h = ?", models.StatusCancelled, false).
		Find(&activities).Error
	return activities, err
}

// Create persists a new activity
func (r *ActivityRepository) Create(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// Delete removes an activity
func (r *ActivityRepository) Delete(activityID string) error {
	result := r.db.Delete(&models.Activity{}, "id = ?", activityID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrActivityNotFound
	}
	return nil
}

// UpdateDetails applies a partial update to an activity and returns the
// before and after snapshots.
func (r *ActivityRepository) UpdateDetails(activityID string, updates map[string]interface{}) (*models.Activity, *models.Activity, error) {
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		before, err := r.GetByID(activityID)
		if err != nil {
			return nil, nil, err
		}

		merged := make(map[string]interface{}, len(updates)+1)
		for k, v := range updates {
			merged[k] = v
		}
		merged["version"] = before.Version + 1

		result := r.db.Model(&models.Activity{}).
			Where("id = ? AND version = ?", activityID, before.Version).
			Updates(merged)
		if result.Error != nil {
			return nil, nil, result.Error
		}
		if result.RowsAffected == 0 {
			continue // lost the race, reload and retry
		}

		after, err := r.GetByID(activityID)
		if err != nil {
			return nil, nil, err
		}
		return before, after, nil
	}
	return nil, nil, ErrConcurrentUpdate
}

// Join adds a user to the roster and bumps the participant count in a single
// conditional write. Returns the before and after snapshots for the update
// notification.
func (r *ActivityRepository) Join(activityID, userID string) (*models.Activity, *models.Activity, error) {
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		before, err := r.GetByID(activityID)
		if err != nil {
			return nil, nil, err
		}
		if before.Participants.Contains(userID) {
			return nil, nil, ErrAlreadyJoined
		}
		if before.IsFull() {
			return nil, nil, ErrActivityFull
		}

		participants := append(append(models.StringSlice{}, before.Participants...), userID)

		result := r.db.Model(&models.Activity{}).
			Where("id = ? AND version = ?", activityID, before.Version).
			Updates(map[string]interface{}{
				"participants":      participants,
				"participant_count": gorm.Expr("participant_count + ?", 1),
				"version":           before.Version + 1,
			})
		if result.Error != nil {
			return nil, nil, result.Error
		}
		if result.RowsAffected == 0 {
			continue
		}

		after := *before
		after.Participants = participants
		after.ParticipantCount = before.ParticipantCount + 1
		after.Version = before.Version + 1
		return before, &after, nil
	}
	return nil, nil, ErrConcurrentUpdate
}

// Leave removes a user from the roster and decrements the participant count
func (r *ActivityRepository) Leave(activityID, userID string) (*models.Activity, error) {
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		before, err := r.GetByID(activityID)
		if err != nil {
			return nil, err
		}
		if !before.Participants.Contains(userID) {
			return nil, ErrNotParticipant
		}

		participants := make(models.StringSlice, 0, len(before.Participants)-1)
		for _, id := range before.Participants {
			if id != userID {
				participants = append(participants, id)
			}
		}

		result := r.db.Model(&models.Activity{}).
			Where("id = ? AND version = ?", activityID, before.Version).
			Updates(map[string]interface{}{
				"participants":      participants,
				"participant_count": gorm.Expr("participant_count - ?", 1),
				"version":           before.Version + 1,
			})
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			continue
		}

		after := *before
		after.Participants = participants
		after.ParticipantCount = before.ParticipantCount - 1
		after.Version = before.Version + 1
		return &after, nil
	}
	return nil, ErrConcurrentUpdate
}

// Cancel transitions an activity into the cancelled status and records the
// reason. Returns before and after snapshots.
func (r *ActivityRepository) Cancel(activityID, reason string) (*models.Activity, *models.Activity, error) {
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		before, err := r.GetByID(activityID)
		if err != nil {
			return nil, nil, err
		}
		if before.Status == models.StatusCancelled {
			return nil, nil, ErrAlreadyCancelled
		}

		result := r.db.Model(&models.Activity{}).
			Where("id = ? AND version = ?", activityID, before.Version).
			Updates(map[string]interface{}{
				"status":              models.StatusCancelled,
				"cancellation_reason": reason,
				"version":             before.Version + 1,
			})
		if result.Error != nil {
			return nil, nil, result.Error
		}
		if result.RowsAffected == 0 {
			continue
		}

		after := *before
		after.Status = models.StatusCancelled
		after.CancellationReason = &reason
		after.Version = before.Version + 1
		return before, &after, nil
	}
	return nil, nil, ErrConcurrentUpdate
}

// AddRating merges a user's rating into the list and recomputes the average.
// The whole read-recompute-write runs under the version guard so two
// concurrent raters cannot drop each other's entry.
func (r *ActivityRepository) AddRating(activityID, userID string, value int, now time.Time) (*models.Activity, error) {
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		activity, err := r.GetByID(activityID)
		if err != nil {
			return nil, err
		}

		ratings := activity.Ratings.Apply(userID, value, now)
		average := ratings.Average()

		result := r.db.Model(&models.Activity{}).
			Where("id = ? AND version = ?", activityID, activity.Version).
			Updates(map[string]interface{}{
				"ratings":        ratings,
				"average_rating": average,
				"version":        activity.Version + 1,
			})
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			continue
		}

		activity.Ratings = ratings
		activity.AverageRating = average
		activity.Version++
		return activity, nil
	}
	return nil, ErrConcurrentUpdate
}

// MarkReminderSent flips the one-shot reminder flag. Written after the
// dispatch attempt; a crash in between may double-send, never skip.
func (r *ActivityRepository) MarkReminderSent(activityID string) error {
	return r.db.Model(&models.Activity{}).
		Where("id = ?", activityID).
		Update("reminder_sent_24h", true).Error
}
