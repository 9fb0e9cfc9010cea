package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	HTTP  HTTPConfig
	MCP   MCPConfig
	Redis RedisConfig
	DND5E DND5EConfig
}

// HTTPConfig holds REST/SSE server configuration
type HTTPConfig struct {
	Addr string
}

// MCPConfig holds MCP server configuration
type MCPConfig struct {
	// Transport selects "stdio" or "http"
	Transport string
	Addr      string
}

// RedisConfig holds Redis-specific configuration. An empty URL means
// in-memory repositories only.
type RedisConfig struct {
	URL string
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	Enabled bool
	Timeout int // seconds
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Addr: getEnvOrDefault("HTTP_ADDR", ":3001"),
		},
		MCP: MCPConfig{
			Transport: getEnvOrDefault("MCP_TRANSPORT", "stdio"),
			Addr:      getEnvOrDefault("MCP_ADDR", ":3002"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		DND5E: DND5EConfig{
			Enabled: getEnvAsBoolOrDefault("DND5E_IMPORT_ENABLED", true),
			Timeout: getEnvAsIntOrDefault("DND5E_TIMEOUT_SECONDS", 30),
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
