// Package logger configures the process-wide logrus logger.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a logger from LOG_LEVEL and LOG_FORMAT environment variables.
// Level defaults to info; format defaults to text, set LOG_FORMAT=json for
// machine-readable output.
func New() *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(envOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// stdout is reserved for the MCP stdio transport
	log.SetOutput(os.Stderr)
	return log
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
