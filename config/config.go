// File: /config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	APIBaseURL  string

	// Email Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string

	// Reminder sweep settings
	TimeZone         string
	ReminderInterval time.Duration
}

func Load() *Config {
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "2525"))
	reminderInterval, err := time.ParseDuration(getEnv("REMINDER_INTERVAL", "1h"))
	if err != nil {
		reminderInterval = time.Hour
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/sportsync?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8080"),

		// Email settings
		SMTPHost:     getEnv("SMTP_HOST", "sandbox.smtp.mailtrap.io"),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@sportsync.app"),
		FromName:     getEnv("FROM_NAME", "SportSync"),

		// Activities store wall-clock date/time strings; the reminder sweep
		// needs a reference zone to turn them into instants.
		TimeZone:         getEnv("TIME_ZONE", "Australia/Melbourne"),
		ReminderInterval: reminderInterval,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
