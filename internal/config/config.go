package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	OpenAI   OpenAIConfig
	Report   ReportConfig
	LogLevel string
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// ReportConfig holds report generation knobs. Timezone and thresholds
// are explicit here so runs are deterministic across machines.
type ReportConfig struct {
	Timezone           string
	ChartDir           string
	MissOwnerThreshold float64
	MissDayThreshold   float64
	TopOwners          int
	TopNumbers         int
	TopLocations       int
	TopAgents          int
	VolumeWindowDays   int
	TrendRows          int
}

// Load reads configuration from the environment, with an optional .env
// file. Every value has a default; Load never fails on missing keys.
func Load() *Config {
	// Ignore error if .env doesn't exist
	_ = godotenv.Load()

	return &Config{
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature: getEnvFloat("OPENAI_TEMPERATURE", 0.3),
			MaxTokens:   getEnvInt("OPENAI_MAX_TOKENS", 0), // 0 means no limit
		},
		Report: ReportConfig{
			Timezone:           getEnv("REPORT_TIMEZONE", "Asia/Jerusalem"),
			ChartDir:           getEnv("REPORT_CHART_DIR", "."),
			MissOwnerThreshold: getEnvFloat("REPORT_MISS_OWNER_THRESHOLD", 20),
			MissDayThreshold:   getEnvFloat("REPORT_MISS_DAY_THRESHOLD", 30),
			TopOwners:          getEnvInt("REPORT_TOP_OWNERS", 5),
			TopNumbers:         getEnvInt("REPORT_TOP_NUMBERS", 5),
			TopLocations:       getEnvInt("REPORT_TOP_LOCATIONS", 10),
			TopAgents:          getEnvInt("REPORT_TOP_AGENTS", 5),
			VolumeWindowDays:   getEnvInt("REPORT_VOLUME_WINDOW_DAYS", 30),
			TrendRows:          getEnvInt("REPORT_TREND_ROWS", 10),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Helper functions for environment variable access
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
