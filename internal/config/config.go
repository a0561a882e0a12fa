package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func LoadEnv() error {
	err := godotenv.Load(".env")
	if err != nil {
		log.Printf("No .env file loaded: %v", err)
		return err
	}
	return nil
}

func GetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required but not set", key)
	}
	return value
}

func GetEnvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

// GetEnvSeconds reads a whole-seconds duration, the unit the debounce and
// session wait times are configured in.
func GetEnvSeconds(key string) time.Duration {
	value := GetEnv(key)
	seconds, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Environment variable %s must be a whole number of seconds, got %q", key, value)
	}
	return time.Duration(seconds) * time.Second
}
