// File: /services/notification_service.go
package services

import (
	"fmt"
	"math"
	"strings"

	"sportsync-api/models"
)

// NotificationService reacts to activity lifecycle changes and mails the
// affected people. Every handler swallows its own failures: confirmations and
// reminders are best-effort and must never block or break the write that
// triggered them.
type NotificationService struct {
	resolver *RecipientResolver
	mailer   Mailer
}

func NewNotificationService(resolver *RecipientResolver, mailer Mailer) *NotificationService {
	return &NotificationService{
		resolver: resolver,
		mailer:   mailer,
	}
}

// ActivityCreated sends the creation confirmation to the organizer. An
// organizer without a resolvable email is a silent no-op.
func (s *NotificationService) ActivityCreated(activity *models.Activity) {
	creatorEmail := s.resolver.EmailForUser(activity.CreatorID)
	if creatorEmail == "" {
		return
	}

	body := fmt.Sprintf("Activity %q created successfully!\n\nDate: %s\nTime: %s\nLocation: %s\nMax Participants: %d",
		activity.Name, activity.Date, activity.Time, activity.Location, activity.MaxParticipants)

	result := s.mailer.Send([]string{creatorEmail}, fmt.Sprintf("✅ Activity Created: %s", activity.Name), body)
	if !result.Delivered {
		fmt.Printf("Failed to send creation confirmation for %s: %s\n", activity.ID, result.Error)
	}
}

// ActivityUpdated classifies the change between the two snapshots and fires
// each applicable notification independently. A failure in one branch never
// blocks the others.
func (s *NotificationService) ActivityUpdated(before, after *models.Activity) {
	changes := DiffActivity(before, after)
	if changes.Empty() {
		return
	}

	if len(changes.Joined) > 0 {
		s.notifyParticipantsJoined(after, changes.Joined)
	}
	if len(changes.FieldChanges) > 0 {
		s.notifyDetailsChanged(after, changes.FieldChanges)
	}
	if changes.Cancelled {
		s.notifyCancelled(after, changes.CancellationReason)
	}
}

// notifyParticipantsJoined tells the organizer who just joined and the new
// occupancy.
func (s *NotificationService) notifyParticipantsJoined(activity *models.Activity, joined []string) {
	creatorEmail := s.resolver.EmailForUser(activity.CreatorID)
	if creatorEmail == "" {
		return
	}

	names := make([]string, 0, len(joined))
	for _, userID := range joined {
		names = append(names, s.resolver.DisplayNameForUser(userID))
	}

	label := "New participant"
	if len(names) > 1 {
		label = "New participants"
	}

	body := fmt.Sprintf("%s joined %q!\n\n%s: %s\nTotal: %d/%d\nDate: %s at %s",
		label, activity.Name, label, strings.Join(names, ", "),
		activity.ParticipantCount, activity.MaxParticipants,
		activity.Date, activity.Time)

	result := s.mailer.Send([]string{creatorEmail}, fmt.Sprintf("👤 New Participant: %s", activity.Name), body)
	if !result.Delivered {
		fmt.Printf("Failed to send join notification for %s: %s\n", activity.ID, result.Error)
	}
}

// notifyDetailsChanged bulk-mails every current participant the list of
// schedule fields that changed, old → new.
func (s *NotificationService) notifyDetailsChanged(activity *models.Activity, fieldChanges []FieldChange) {
	emails := s.resolver.EmailsForUsers(activity.Participants)
	if len(emails) == 0 {
		return
	}

	lines := make([]string, 0, len(fieldChanges))
	for _, change := range fieldChanges {
		lines = append(lines, fmt.Sprintf("%s: %s → %s", change.Field, change.Old, change.New))
	}

	body := fmt.Sprintf("Activity %q has been updated!\n\nChanges:\n%s\n\nNew Details:\nDate: %s\nTime: %s\nLocation: %s",
		activity.Name, strings.Join(lines, "\n"),
		activity.Date, activity.Time, activity.Location)

	result := s.mailer.Send(emails, fmt.Sprintf("⚠️ Activity Updated: %s", activity.Name), body)
	if !result.Delivered {
		fmt.Printf("Failed to send update notification for %s: %s\n", activity.ID, result.Error)
	}
}

// notifyCancelled bulk-mails every participant the cancellation reason and
// the original schedule.
func (s *NotificationService) notifyCancelled(activity *models.Activity, reason string) {
	emails := s.resolver.EmailsForUsers(activity.Participants)
	if len(emails) == 0 {
		return
	}

	body := fmt.Sprintf("Activity %q has been CANCELLED.\n\nReason: %s\n\nDate was: %s at %s\nLocation: %s",
		activity.Name, reason, activity.Date, activity.Time, activity.Location)

	result := s.mailer.Send(emails, fmt.Sprintf("❌ Activity Cancelled: %s", activity.Name), body)
	if !result.Delivered {
		fmt.Printf("Failed to send cancellation notification for %s: %s\n", activity.ID, result.Error)
	}
}

// SendReminder bulk-mails every participant that the activity starts within
// the next day. Returns whether a dispatch was attempted so the sweep knows
// to persist the reminder flag.
func (s *NotificationService) SendReminder(activity *models.Activity, hoursUntil float64) bool {
	emails := s.resolver.EmailsForUsers(activity.Participants)
	if len(emails) == 0 {
		return false
	}

	body := fmt.Sprintf("Reminder: %q starts in %d hour(s)!\n\nDate: %s\nTime: %s\nLocation: %s\n\nPlease arrive 10-15 minutes early.",
		activity.Name, int(math.Round(hoursUntil)),
		activity.Date, activity.Time, activity.Location)

	result := s.mailer.Send(emails, fmt.Sprintf("⏰ Activity Reminder: %s", activity.Name), body)
	if !result.Delivered {
		fmt.Printf("Failed to send reminder for %s: %s\n", activity.ID, result.Error)
	}
	return true
}
