package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "https://api.x.ai/v1"

// Config holds everything the server reads from the environment. It is
// loaded once at startup and handed to the tool handler.
type Config struct {
	APIKey    string
	BaseURL   string
	LogLevel  string
	LogFile   string
	LogFormat string
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// LoadConfig loads an optional .env file from the working directory and then
// reads the configuration from the process environment. Variables already
// present in the environment win over the .env file.
func LoadConfig() Config {
	// No .env is the common case when launched by an MCP host.
	_ = godotenv.Load()
	return configFromEnv()
}

func configFromEnv() Config {
	return Config{
		APIKey:    strings.TrimSpace(os.Getenv("XAI_API_KEY")),
		BaseURL:   strings.TrimRight(getEnv("XAI_BASE_URL", defaultBaseURL), "/"),
		LogLevel:  getEnv("AGENTIC_SEARCH_LOG_LEVEL", "info"),
		LogFile:   getEnv("AGENTIC_SEARCH_LOG_FILE", ""),
		LogFormat: getEnv("AGENTIC_SEARCH_LOG_FORMAT", "console"),
	}
}
