// File: /services/diff_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"sportsync-api/models"
)

func baseActivity() *models.Activity {
	return &models.Activity{
		ID:               "activity-1",
		CreatorID:        "creator",
		Name:             "Morning Run",
		Date:             "2024-01-15",
		Time:             "07:30",
		Location:         "Riverside Park",
		MaxParticipants:  10,
		Participants:     models.StringSlice{"creator"},
		ParticipantCount: 1,
		Status:           models.StatusUpcoming,
	}
}

func TestDiffReportsSingleJoin(t *testing.T) {
	before := baseActivity()
	before.Participants = models.StringSlice{"u1"}
	before.ParticipantCount = 1

	after := baseActivity()
	after.Participants = models.StringSlice{"u1", "u2"}
	after.ParticipantCount = 2

	changes := DiffActivity(before, after)

	require.Equal(t, []string{"u2"}, changes.Joined)
	require.Empty(t, changes.FieldChanges)
	require.False(t, changes.Cancelled)
}

func TestDiffReportsFullAddedSetOnBatchJoin(t *testing.T) {
	before := baseActivity()
	before.Participants = models.StringSlice{"u1"}
	before.ParticipantCount = 1

	after := baseActivity()
	after.Participants = models.StringSlice{"u1", "u2", "u3"}
	after.ParticipantCount = 3

	changes := DiffActivity(before, after)

	require.Equal(t, []string{"u2", "u3"}, changes.Joined)
}

func TestDiffReportsChangedScheduleFields(t *testing.T) {
	before := baseActivity()
	after := baseActivity()
	after.Date = "2024-01-20"
	after.Location = "Lakeside Oval"

	changes := DiffActivity(before, after)

	require.Empty(t, changes.Joined)
	require.Equal(t, []FieldChange{
		{Field: "Date", Old: "2024-01-15", New: "2024-01-20"},
		{Field: "Location", Old: "Riverside Park", New: "Lakeside Oval"},
	}, changes.FieldChanges)
}

func TestDiffSkipsFieldChangesWithoutParticipants(t *testing.T) {
	before := baseActivity()
	before.Participants = models.StringSlice{}
	before.ParticipantCount = 0

	after := baseActivity()
	after.Participants = models.StringSlice{}
	after.ParticipantCount = 0
	after.Date = "2024-02-01"

	changes := DiffActivity(before, after)

	require.Empty(t, changes.FieldChanges)
	require.True(t, changes.Empty())
}

func TestDiffReportsCancellation(t *testing.T) {
	reason := "Heavy rain forecast"

	before := baseActivity()
	after := baseActivity()
	after.Status = models.StatusCancelled
	after.CancellationReason = &reason

	changes := DiffActivity(before, after)

	require.True(t, changes.Cancelled)
	require.Equal(t, reason, changes.CancellationReason)
}

func TestDiffDefaultsCancellationReason(t *testing.T) {
	before := baseActivity()
	after := baseActivity()
	after.Status = models.StatusCancelled

	changes := DiffActivity(before, after)

	require.True(t, changes.Cancelled)
	require.Equal(t, DefaultCancellationReason, changes.CancellationReason)
}

func TestDiffIgnoresCancelledToCancelled(t *testing.T) {
	before := baseActivity()
	before.Status = models.StatusCancelled

	after := baseActivity()
	after.Status = models.StatusCancelled

	changes := DiffActivity(before, after)

	require.False(t, changes.Cancelled)
	require.True(t, changes.Empty())
}

func TestDiffCancellationAndFieldChangeAreIndependent(t *testing.T) {
	before := baseActivity()
	after := baseActivity()
	after.Status = models.StatusCancelled
	after.Location = "Indoor Hall"

	changes := DiffActivity(before, after)

	require.True(t, changes.Cancelled)
	require.Len(t, changes.FieldChanges, 1)
	require.Equal(t, "Location", changes.FieldChanges[0].Field)
}

func TestDiffNoSignificantChange(t *testing.T) {
	before := baseActivity()
	after := baseActivity()

	require.True(t, DiffActivity(before, after).Empty())
}
