package config

import (
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	ServerPort int

	// Database
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Imports
	StorageRoot     string
	ImportChunkSize int
	ImportMaxBytes  int64

	// History
	SystemActorID uuid.UUID

	// Logging
	LogLevel string
	LogDir   string
}

// Load reads configuration from the environment, with a .env file applied
// first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "netops_portal"),
		DBPort:     getEnv("DB_PORT", "5432"),

		StorageRoot:     getEnv("IMPORT_STORAGE_ROOT", "./storage/imports"),
		ImportChunkSize: getEnvInt("IMPORT_CHUNK_SIZE", 100),
		ImportMaxBytes:  int64(getEnvInt("IMPORT_MAX_BYTES", 10<<20)),

		LogLevel: getEnv("LOG_LEVEL", "INFO"),
		LogDir:   getEnv("LOG_DIRECTORY", ""),
	}

	actor := getEnv("SYSTEM_ACTOR_ID", "00000000-0000-0000-0000-000000000001")
	id, err := uuid.Parse(actor)
	if err != nil {
		return nil, err
	}
	cfg.SystemActorID = id

	if err := os.MkdirAll(cfg.StorageRoot, 0o755); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
