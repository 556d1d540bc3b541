// File: /services/diff.go
package services

import (
	"sportsync-api/models"
)

// DefaultCancellationReason is used when a cancelled activity carries none
const DefaultCancellationReason = "No reason provided"

// FieldChange records one schedule field that changed between two snapshots
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// ActivityChanges classifies what happened between two snapshots of the same
// activity. The predicates are independent: a single write can both change
// the schedule and cancel, and each branch produces its own notification.
type ActivityChanges struct {
	// Joined holds every user id present in the new roster but not the old
	// one, in arrival order. Concurrent joins can land in one write, so the
	// full added set is reported rather than just the first difference.
	Joined []string

	// FieldChanges lists schedule fields (date, time, location) that differ,
	// reported only when the activity has at least one participant to tell.
	FieldChanges []FieldChange

	Cancelled          bool
	CancellationReason string
}

// Empty reports whether the update carried no significant change
func (c ActivityChanges) Empty() bool {
	return len(c.Joined) == 0 && len(c.FieldChanges) == 0 && !c.Cancelled
}

// DiffActivity compares the previous and current snapshots of an activity
// and classifies the change.
func DiffActivity(before, after *models.Activity) ActivityChanges {
	var changes ActivityChanges

	if len(after.Participants) > len(before.Participants) {
		for _, id := range after.Participants {
			if !before.Participants.Contains(id) {
				changes.Joined = append(changes.Joined, id)
			}
		}
	}

	if after.ParticipantCount > 0 {
		if before.Date != after.Date {
			changes.FieldChanges = append(changes.FieldChanges, FieldChange{Field: "Date", Old: before.Date, New: after.Date})
		}
		if before.Time != after.Time {
			changes.FieldChanges = append(changes.FieldChanges, FieldChange{Field: "Time", Old: before.Time, New: after.Time})
		}
		if before.Location != after.Location {
			changes.FieldChanges = append(changes.FieldChanges, FieldChange{Field: "Location", Old: before.Location, New: after.Location})
		}
	}

	if after.Status == models.StatusCancelled && before.Status != models.StatusCancelled {
		changes.Cancelled = true
		changes.CancellationReason = DefaultCancellationReason
		if after.CancellationReason != nil && *after.CancellationReason != "" {
			changes.CancellationReason = *after.CancellationReason
		}
	}

	return changes
}
