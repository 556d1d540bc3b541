// File: /database/database.go
package database

import (
	"fmt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"sportsync-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Activity{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Creator listings sorted by recency
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_activities_creator_created ON activities(creator_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for activities creator: %v\n", err)
	}

	// Reminder sweep scans only pending, non-cancelled activities
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_activities_reminder_pending ON activities(status, reminder_sent_24h)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for reminder sweep: %v\n", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	testUsers := []models.User{
		{
			ID:       "user-1",
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "$2a$10$dummy", // This should be properly hashed in real scenarios
		},
		{
			ID:       "user-2",
			Name:     "Jane Smith",
			Email:    "jane@example.com",
			Password: "$2a$10$dummy",
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Email, err)
		}
	}

	testActivities := []models.Activity{
		{
			ID:               "activity-1",
			CreatorID:        "user-1",
			Name:             "Sunday Morning Basketball",
			Category:         "Basketball",
			Description:      "Casual 5v5 at the community court, all levels welcome.",
			Date:             "2026-09-20",
			Time:             "09:00",
			Location:         "Albert Park Courts",
			MaxParticipants:  10,
			Participants:     models.StringSlice{"user-1"},
			ParticipantCount: 1,
			Status:           models.StatusUpcoming,
		},
		{
			ID:               "activity-2",
			CreatorID:        "user-2",
			Name:             "Riverside 5k Run",
			Category:         "Running",
			Description:      "Easy-paced group run along the Yarra trail.",
			Date:             "2026-09-22",
			Time:             "07:30",
			Location:         "Southbank Promenade",
			MaxParticipants:  20,
			Participants:     models.StringSlice{"user-2", "user-1"},
			ParticipantCount: 2,
			Status:           models.StatusUpcoming,
		},
	}

	for _, activity := range testActivities {
		if err := db.Create(&activity).Error; err != nil {
			fmt.Printf("Warning: Could not create test activity %s: %v\n", activity.Name, err)
		}
	}

	fmt.Println("Database seeded with test data")
	return nil
}
