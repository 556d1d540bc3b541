// File: /services/resolver.go
package services

import (
	"errors"
	"fmt"

	"sportsync-api/repositories"
)

// RecipientResolver maps user ids to deliverable email addresses.
type RecipientResolver struct {
	users *repositories.UserRepository
}

func NewRecipientResolver(users *repositories.UserRepository) *RecipientResolver {
	return &RecipientResolver{users: users}
}

// EmailForUser resolves a single user id to an email address, or "" when the
// user is unknown or has no address on file.
func (r *RecipientResolver) EmailForUser(userID string) string {
	user, err := r.users.GetByID(userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			fmt.Printf("Error resolving email for user %s: %v\n", userID, err)
		}
		return ""
	}
	return user.Email
}

// EmailsForUsers resolves a batch of user ids best-effort: ids that cannot be
// resolved are skipped, duplicates are collapsed, and a failure on one id
// never aborts the rest of the batch.
func (r *RecipientResolver) EmailsForUsers(userIDs []string) []string {
	emails := make([]string, 0, len(userIDs))
	seen := make(map[string]bool, len(userIDs))

	for _, userID := range userIDs {
		email := r.EmailForUser(userID)
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		emails = append(emails, email)
	}

	return emails
}

// DisplayNameForUser resolves a user id to something printable in an email
// body, falling back to a shortened id.
func (r *RecipientResolver) DisplayNameForUser(userID string) string {
	user, err := r.users.GetByID(userID)
	if err == nil && user.Email != "" {
		return user.Email
	}
	if len(userID) > 8 {
		return "User " + userID[:8]
	}
	return "User " + userID
}
