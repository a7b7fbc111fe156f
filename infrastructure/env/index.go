package env

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"veriface.io/infrastructure/logger"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		logger.Info("error loading env variables")
	}
}

func LoadEnv() {
}

// GetString returns the env var under key or fallback when unset.
func GetString(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

// GetFloat returns the env var under key parsed as a float or fallback
// when unset or unparseable.
func GetFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logger.Warning("unparseable float env var", logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return fallback
	}
	return parsed
}

// GetInt returns the env var under key parsed as an int or fallback
// when unset or unparseable.
func GetInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logger.Warning("unparseable int env var", logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return fallback
	}
	return parsed
}
