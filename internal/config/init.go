package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Init loads .env and validates the settings the service cannot run
// without.
func Init() {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	if os.Getenv("DB_DSN") == "" {
		Logger.Fatal("DB_DSN is not set")
	}
	if os.Getenv("REDIS_ADDR") == "" {
		Logger.Fatal("REDIS_ADDR is not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		Logger.Fatal("JWT_SECRET is not set")
	}
}
