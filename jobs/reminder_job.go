// File: /jobs/reminder_job.go
package jobs

import (
	"fmt"
	"time"

	"sportsync-api/repositories"
	"sportsync-api/services"
)

// ReminderJob periodically scans upcoming activities and mails participants a
// reminder once the start time is within 24 hours. The persisted
// reminder_sent_24h flag keeps the sweep idempotent across runs; the flag is
// written after the dispatch attempt, so a crash in between can double-send
// but never silently skip.
type ReminderJob struct {
	activities    *repositories.ActivityRepository
	notifications *services.NotificationService
	location      *time.Location
	now           func() time.Time
	ticker        *time.Ticker
	done          chan bool
}

// NewReminderJob creates a reminder sweep running on the given interval.
// Date/time strings on activities are interpreted in timeZone.
func NewReminderJob(activities *repositories.ActivityRepository, notifications *services.NotificationService, timeZone string, interval time.Duration) (*ReminderJob, error) {
	location, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder time zone %q: %w", timeZone, err)
	}

	return &ReminderJob{
		activities:    activities,
		notifications: notifications,
		location:      location,
		now:           time.Now,
		ticker:        time.NewTicker(interval),
		done:          make(chan bool),
	}, nil
}

// SetNow overrides the clock, for tests
func (j *ReminderJob) SetNow(now func() time.Time) {
	j.now = now
}

// Start begins the sweep loop
func (j *ReminderJob) Start() {
	fmt.Println("Reminder sweep job started")

	go func() {
		// Run immediately on start
		j.Sweep()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.Sweep()
			case <-j.done:
				fmt.Println("Reminder sweep job stopped")
				return
			}
		}
	}()
}

// Stop stops the sweep loop
func (j *ReminderJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

// Sweep runs one pass over the pending activities and returns how many
// reminders were dispatched. Failures are isolated per activity so one bad
// record never aborts the rest of the scan.
func (j *ReminderJob) Sweep() int {
	candidates, err := j.activities.ListReminderCandidates()
	if err != nil {
		fmt.Printf("Error during reminder sweep: %v\n", err)
		return 0
	}

	now := j.now()
	remindersSent := 0

	for i := range candidates {
		activity := &candidates[i]

		startsAt, err := activity.StartsAt(j.location)
		if err != nil {
			fmt.Printf("Skipping activity %s with malformed schedule %q %q: %v\n",
				activity.ID, activity.Date, activity.Time, err)
			continue
		}

		hoursUntil := startsAt.Sub(now).Hours()
		if hoursUntil <= 0 || hoursUntil > 24 {
			continue
		}

		if !j.notifications.SendReminder(activity, hoursUntil) {
			continue
		}
		remindersSent++

		if err := j.activities.MarkReminderSent(activity.ID); err != nil {
			fmt.Printf("Error persisting reminder flag for %s: %v\n", activity.ID, err)
		}
	}

	fmt.Printf("Reminder sweep completed. Sent: %d\n", remindersSent)
	return remindersSent
}
