// File: /models/activity_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRatingListApplyAppendsNewRater(t *testing.T) {
	now := time.Now()

	var ratings RatingList
	ratings = ratings.Apply("u1", 4, now)

	require.Len(t, ratings, 1)
	require.Equal(t, "u1", ratings[0].UserID)
	require.Equal(t, 4, ratings[0].Rating)
	require.Equal(t, now.UnixMilli(), ratings[0].Timestamp)
}

func TestRatingListApplyReplacesExistingRater(t *testing.T) {
	now := time.Now()

	var ratings RatingList
	ratings = ratings.Apply("u1", 3, now)
	ratings = ratings.Apply("u1", 5, now.Add(time.Minute))

	require.Len(t, ratings, 1)
	require.Equal(t, 5, ratings[0].Rating)
	require.Equal(t, now.Add(time.Minute).UnixMilli(), ratings[0].Timestamp)
	require.InDelta(t, 5.0, ratings.Average(), 1e-9)
}

func TestRatingListApplyIsIdempotent(t *testing.T) {
	now := time.Now()

	var ratings RatingList
	ratings = ratings.Apply("u1", 4, now)
	once := len(ratings)
	onceAverage := ratings.Average()

	ratings = ratings.Apply("u1", 4, now)

	require.Equal(t, once, len(ratings))
	require.InDelta(t, onceAverage, ratings.Average(), 1e-9)
}

func TestRatingListAverage(t *testing.T) {
	now := time.Now()

	var ratings RatingList
	require.Zero(t, ratings.Average())

	ratings = ratings.Apply("u1", 2, now)
	ratings = ratings.Apply("u2", 5, now)
	ratings = ratings.Apply("u3", 4, now)

	require.InDelta(t, 11.0/3.0, ratings.Average(), 1e-9)
}

func TestActivityStartsAtUsesReferenceZone(t *testing.T) {
	activity := Activity{
		Date: "2024-06-01",
		Time: "18:30",
	}

	melbourne, err := time.LoadLocation("Australia/Melbourne")
	require.NoError(t, err)

	startsAt, err := activity.StartsAt(melbourne)
	require.NoError(t, err)
	require.Equal(t, "2024-06-01 18:30", startsAt.Format("2006-01-02 15:04"))
	require.Equal(t, melbourne, startsAt.Location())
}

func TestActivityStartsAtRejectsMalformedSchedule(t *testing.T) {
	activity := Activity{
		Date: "June 1st",
		Time: "6pm",
	}

	_, err := activity.StartsAt(time.UTC)
	require.Error(t, err)
}

func TestActivityIsFull(t *testing.T) {
	activity := Activity{MaxParticipants: 2, ParticipantCount: 1}
	require.False(t, activity.IsFull())

	activity.ParticipantCount = 2
	require.True(t, activity.IsFull())
}
