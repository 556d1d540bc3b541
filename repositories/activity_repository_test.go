// File: /repositories/activity_repository_test.go
package repositories

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"sportsync-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A fresh connection would see a fresh in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Activity{}))
	return db
}

func seedActivity(t *testing.T, repo *ActivityRepository) *models.Activity {
	t.Helper()

	activity := &models.Activity{
		ID:               "activity-1",
		CreatorID:        "creator",
		Name:             "Evening Football",
		Date:             "2026-10-01",
		Time:             "19:00",
		Location:         "City Stadium",
		MaxParticipants:  3,
		Participants:     models.StringSlice{"creator"},
		ParticipantCount: 1,
		Ratings:          models.RatingList{},
		Status:           models.StatusUpcoming,
	}
	require.NoError(t, repo.Create(activity))
	return activity
}

func TestJoinMaintainsCountInvariant(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivity(t, repo)

	before, after, err := repo.Join("activity-1", "u2")
	require.NoError(t, err)

	require.Equal(t, 1, before.ParticipantCount)
	require.Equal(t, 2, after.ParticipantCount)
	require.Equal(t, models.StringSlice{"creator", "u2"}, after.Participants)
	require.Len(t, after.Participants, after.ParticipantCount)

	stored, err := repo.GetByID("activity-1")
	require.NoError(t, err)
	require.Equal(t, 2, stored.ParticipantCount)
	require.Len(t, stored.Participants, stored.ParticipantCount)
}

func TestJoinRejectsDuplicate(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivity(t, repo)

	_, _, err := repo.Join("activity-1", "creator")
	require.ErrorIs(t, err, ErrAlreadyJoined)
}

func TestJoinRejectsWhenFull(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivity(t, repo)

	_, _, err := repo.Join("activity-1", "u2")
	require.NoError(t, err)
	_, _, err = repo.Join("activity-1", "u3")
	require.NoError(t, err)

	_, _, err = repo.Join("activity-1", "u4")
	require.ErrorIs(t, err, ErrActivityFull)
}

func TestJoinUnknownActivity(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))

	_, _, err := repo.Join("ghost", "u1")
	require.ErrorIs(t, err, ErrActivityNotFound)
}

func TestLeaveRemovesParticipant(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivity(t, repo)

	_, _, err := repo.Join("activity-1", "u2")
	require.NoError(t, err)

	after, err := repo.Leave("activity-1", "u2")
	require.NoError(t, err)
	require.Equal(t, 1, after.ParticipantCount)
	require.Equal(t, models.StringSlice{"creator"}, after.Participants)

	_, err = repo.Leave("activity-1", "u2")
	require.ErrorIs(t, err, ErrNotParticipant)
}

func TestAddRatingAveragesDistinctUsers(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivity(t, repo)
	now := time.Now()

	_, err := repo.AddRating("activity-1", "u1", 2, now)
	require.NoError(t, err)

	activity, err := repo.AddRating("activity-1", "u2", 5, now)
	require.NoError(t, err)

	require.Len(t, activity.Ratings, 2)
	require.InDelta(t, 3.5, activity.AverageRating, 1e-9)

	stored, err := repo.GetByID("activity-1")
	require.NoError(t, err)
	require.Len(t, stored.Ratings, 2)
	require.InDelta(t, 3.5, stored.AverageRating, 1e-9)
}

func TestAddRatingReplacesSameUser(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivity(t, repo)
	now := time.Now()

	_, err := repo.AddRating("activity-1", "u1", 3, now)
	require.NoError(t, err)

	activity, err := repo.AddRating("activity-1", "u1", 5, now.Add(time.Minute))
	require.NoError(t, err)

	require.Len(t, activity.Ratings, 1)
	require.Equal(t, 5, activity.Ratings[0].Rating)
	require.InDelta(t, 5.0, activity.AverageRating, 1e-9)
}

func TestAddRatingIsIdempotent(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivity(t, repo)
	now := time.Now()

	first, err := repo.AddRating("activity-1", "u1", 4, now)
	require.NoError(t, err)

	second, err := repo.AddRating("activity-1", "u1", 4, now)
	require.NoError(t, err)

	require.Equal(t, len(first.Ratings), len(second.Ratings))
	require.InDelta(t, first.AverageRating, second.AverageRating, 1e-9)
}

func TestCancelRecordsReasonOnce(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivity(t, repo)

	before, after, err := repo.Cancel("activity-1", "Venue unavailable")
	require.NoError(t, err)
	require.Equal(t, models.StatusUpcoming, before.Status)
	require.Equal(t, models.StatusCancelled, after.Status)
	require.NotNil(t, after.CancellationReason)
	require.Equal(t, "Venue unavailable", *after.CancellationReason)

	_, _, err = repo.Cancel("activity-1", "again")
	require.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestListJoinedUsesRosterContainment(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivity(t, repo)

	_, _, err := repo.Join("activity-1", "u2")
	require.NoError(t, err)

	joined, err := repo.ListJoined("u2")
	require.NoError(t, err)
	require.Len(t, joined, 1)
	require.Equal(t, "activity-1", joined[0].ID)

	joined, err = repo.ListJoined("stranger")
	require.NoError(t, err)
	require.Empty(t, joined)
}

func TestReminderCandidatesExcludeCancelledAndReminded(t *testing.T) {
	db := newTestDB(t)
	repo := NewActivityRepository(db)
	seedActivity(t, repo)

	require.NoError(t, repo.Create(&models.Activity{
		ID:               "activity-2",
		CreatorID:        "creator",
		Name:             "Cancelled One",
		Date:             "2026-10-01",
		Time:             "10:00",
		Location:         "Park",
		MaxParticipants:  5,
		Participants:     models.StringSlice{"creator"},
		ParticipantCount: 1,
		Status:           models.StatusCancelled,
	}))

	candidates, err := repo.ListReminderCandidates()
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, "activity-1", candidates[0].ID)

	require.NoError(t, repo.MarkReminderSent("activity-1"))

	candidates, err = repo.ListReminderCandidates()
	require.NoError(t, err)
	require.Empty(t, candidates)
}

func TestUpdateDetailsReturnsSnapshots(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivity(t, repo)

	before, after, err := repo.UpdateDetails("activity-1", map[string]interface{}{
		"location": "Indoor Hall",
	})
	require.NoError(t, err)
	require.Equal(t, "City Stadium", before.Location)
	require.Equal(t, "Indoor Hall", after.Location)
	require.Equal(t, before.Version+1, after.Version)
}

func TestDeleteActivity(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivity(t, repo)

	require.NoError(t, repo.Delete("activity-1"))
	require.ErrorIs(t, repo.Delete("activity-1"), ErrActivityNotFound)

	_, err := repo.GetByID("activity-1")
	require.ErrorIs(t, err, ErrActivityNotFound)
}
