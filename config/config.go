// Package config provides configuration for the unified tool server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the server configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Audit database
	DatabaseURL string

	// Backend endpoints
	VolvoxAPIURL    string
	SmartAPIURL     string
	InnoscopeAPIURL string
	KickstartAPIURL string

	// Reasoning backend
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	// Timeouts
	AdapterTimeout time.Duration
	LLMTimeout     time.Duration

	// Workflow runner bound on reasoning iterations
	MaxIterations int

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:        getEnvInt("HTTP_PORT", 4000),
		DatabaseURL:     getEnv("DATABASE_URL", "file:volvox-mcp.db?cache=shared&mode=rwc"),
		VolvoxAPIURL:    getEnv("VOLVOX_API_URL", "http://localhost:8000/api/v1"),
		SmartAPIURL:     getEnv("SMART_API_URL", "http://localhost:8010"),
		InnoscopeAPIURL: getEnv("INNOSCOPE_API_URL", "http://localhost:8020"),
		KickstartAPIURL: getEnv("KICKSTART_API_URL", "http://localhost:5000"),
		LLMBaseURL:      getEnv("LLM_BASE_URL", "http://localhost:4100"),
		LLMAPIKey:       getEnv("LLM_API_KEY", ""),
		LLMModel:        getEnv("LLM_MODEL", "gemini-2.5-flash"),
		AdapterTimeout:  time.Duration(getEnvInt("ADAPTER_TIMEOUT_MS", 300000)) * time.Millisecond,
		LLMTimeout:      time.Duration(getEnvInt("LLM_TIMEOUT_MS", 120000)) * time.Millisecond,
		MaxIterations:   getEnvInt("MAX_AGENT_ITERATIONS", 10),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
