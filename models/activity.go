// File: /models/activity.go
package models

import (
	"time"
)

// Activity statuses
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Date/time layouts used for the stored schedule strings
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Activity struct {
	ID              string `json:"id" gorm:"primaryKey;size:191"`
	CreatorID       string `json:"creator_id" gorm:"not null;size:191;index"`
	Name            string `json:"name" gorm:"not null;size:255"`
	Category        string `json:"category" gorm:"size:100"`
	Description     string `json:"description" gorm:"type:text"`
	Date            string `json:"date" gorm:"not null;size:10"` // YYYY-MM-DD
	Time            string `json:"time" gorm:"not null;size:5"`  // HH:MM
	Location        string `json:"location" gorm:"not null;size:255"`
	MaxParticipants int    `json:"max_participants" gorm:"not null"`

	// Participants keeps arrival order so that update notifications can tell
	// who just joined. ParticipantCount is maintained incrementally and must
	// always equal len(Participants).
	Participants     StringSlice `json:"participants" gorm:"type:json"`
	ParticipantCount int         `json:"participant_count" gorm:"default:0"`

	Ratings       RatingList `json:"ratings" gorm:"type:json"`
	AverageRating float64    `json:"average_rating" gorm:"default:0"`

	Status             string  `json:"status" gorm:"not null;default:'upcoming';size:20;index"`
	CancellationReason *string `json:"cancellation_reason,omitempty" gorm:"size:500"`
	ReminderSent24h    bool    `json:"reminder_sent_24h" gorm:"column:reminder_sent_24h;default:false"`

	// Version guards read-modify-write updates (ratings, roster changes)
	// against concurrent writers.
	Version int `json:"-" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Creator User `json:"creator" gorm:"foreignKey:CreatorID"`
}

// Rating is one participant's score for an activity. A user has at most one
// entry; re-rating replaces it wholesale.
type Rating struct {
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"` // 1-5
	Timestamp int64  `json:"timestamp"`
}

// IsFull reports whether the activity reached its capacity
func (a *Activity) IsFull() bool {
	return a.ParticipantCount >= a.MaxParticipants
}

// StartsAt combines the stored date and time strings into an instant in the
// given reference zone.
func (a *Activity) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, a.Date+" "+a.Time, loc)
}

// Apply merges a rating into the list with replace-if-exists semantics per
// user and returns the updated list.
func (rl RatingList) Apply(userID string, value int, now time.Time) RatingList {
	entry := Rating{
		UserID:    userID,
		Rating:    value,
		Timestamp: now.UnixMilli(),
	}

	for i := range rl {
		if rl[i].UserID == userID {
			rl[i] = entry
			return rl
		}
	}

	return append(rl, entry)
}

// Average returns the arithmetic mean of all rating values, or 0 for an empty
// list.
func (rl RatingList) Average() float64 {
	if len(rl) == 0 {
		return 0
	}

	sum := 0
	for _, r := range rl {
		sum += r.Rating
	}
	return float64(sum) / float64(len(rl))
}
