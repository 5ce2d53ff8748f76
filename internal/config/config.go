package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	// Study session shape.
	SessionSize   int
	RepeatSpacing int
	RepeatLimit   int

	// Due-review reminder relay.
	ReminderWorkerCount int
	ReminderQueueSize   int
	ReminderEveryMins   int
	NotifyStartHour     int
	NotifyEndHour       int

	// Optional webhook endpoint for reminder delivery. When empty,
	// reminders go to the application log.
	ReminderWebhookURL string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:     envOr("ADDR", ":8080"),
		DBPath:   envOr("DB_PATH", "file:studydeck.db"),
		LogLevel: envOr("LOG_LEVEL", "INFO"),

		SessionSize:   envIntOr("SESSION_SIZE", 20),
		RepeatSpacing: envIntOr("REPEAT_SPACING", 3),
		RepeatLimit:   envIntOr("REPEAT_LIMIT", 2),

		ReminderWorkerCount: envIntOr("REMINDER_WORKER_COUNT", 2),
		ReminderQueueSize:   envIntOr("REMINDER_QUEUE_SIZE", 64),
		ReminderEveryMins:   envIntOr("REMINDER_EVERY_MINS", 60),
		NotifyStartHour:     envIntOr("NOTIFY_START_HOUR", 8),
		NotifyEndHour:       envIntOr("NOTIFY_END_HOUR", 22),

		ReminderWebhookURL: envOr("REMINDER_WEBHOOK_URL", ""),
	}
}

// Validate checks the loaded configuration for values that would make the
// server unusable at runtime.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.SessionSize < 1 {
		return fmt.Errorf("SESSION_SIZE must be at least 1")
	}
	if c.RepeatSpacing < 1 {
		return fmt.Errorf("REPEAT_SPACING must be at least 1")
	}
	if c.RepeatLimit < 0 {
		return fmt.Errorf("REPEAT_LIMIT cannot be negative")
	}
	if c.ReminderWorkerCount < 1 {
		return fmt.Errorf("REMINDER_WORKER_COUNT must be at least 1")
	}
	if c.NotifyStartHour < 0 || c.NotifyStartHour > 23 || c.NotifyEndHour < 0 || c.NotifyEndHour > 23 {
		return fmt.Errorf("notification hours must be within 0-23")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
