package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int
	DatabasePath    string
	JWTSecret       string
	TokenTTLMinutes int
	AdminUsername   string
	AdminPassword   string
	AcceptedOrigins []string
	BackupPath      string
	BackupSchedule  string // cron expression
	BackupKeep      int    // newest snapshots to retain
}

// Load loads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	// A missing .env file is fine; deployments usually set variables directly.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	ttl, err := strconv.Atoi(getEnv("TOKEN_TTL_MINUTES", "60"))
	if err != nil {
		return nil, err
	}

	keep, err := strconv.Atoi(getEnv("BACKUP_KEEP", "10"))
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:      port,
		DatabasePath:    getEnv("DATABASE_PATH", "./eduportfolio.db"),
		JWTSecret:       secret,
		TokenTTLMinutes: ttl,
		AdminUsername:   getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "changeme"),
		AcceptedOrigins: splitOrigins(getEnv("ACCEPTED_ORIGINS", "*")),
		BackupPath:      getEnv("BACKUP_PATH", "./backups"),
		BackupSchedule:  getEnv("BACKUP_SCHEDULE", "0 3 * * *"),
		BackupKeep:      keep,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
